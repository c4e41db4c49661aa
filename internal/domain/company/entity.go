package company

// Calculation method names. The reflection-free method hides the
// accomplishments ("Performance Reflection") section entirely, which
// relaxes the accomplishment-rating submission check.
const (
	CalcMethodStandard     = "standard"
	CalcMethodWeighted     = "weighted"
	CalcMethodNoReflection = "no_reflection"
)

// PeriodSettings holds the review configuration for one period type.
type PeriodSettings struct {
	CalculationMethod string
	SelfRatingEnabled bool
}

// HidesReflection reports whether the accomplishments section is hidden
// for this period configuration.
func (p PeriodSettings) HidesReflection() bool {
	return p.CalculationMethod == CalcMethodNoReflection
}

// Settings is the per-company review configuration.
type Settings struct {
	CompanyID string
	Quarterly PeriodSettings
	Yearly    PeriodSettings
}

// DefaultSettings is used when a company has no settings row.
func DefaultSettings(companyID string) Settings {
	return Settings{
		CompanyID: companyID,
		Quarterly: PeriodSettings{CalculationMethod: CalcMethodStandard, SelfRatingEnabled: true},
		Yearly:    PeriodSettings{CalculationMethod: CalcMethodStandard, SelfRatingEnabled: true},
	}
}

// ForPeriod returns the settings for the given period type. Unknown period
// types fall back to the quarterly configuration.
func (s Settings) ForPeriod(periodType string) PeriodSettings {
	if periodType == "yearly" {
		return s.Yearly
	}
	return s.Quarterly
}

// CalculationMethodName returns the configured calculation method for the
// given period type.
func (s Settings) CalculationMethodName(periodType string) string {
	return s.ForPeriod(periodType).CalculationMethod
}
