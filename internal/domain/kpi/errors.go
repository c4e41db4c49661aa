package kpi

import "errors"

var (
	ErrKPINotFound                = errors.New("kpi not found")
	ErrKPIItemNotFound            = errors.New("kpi item not found")
	ErrKPILocked                  = errors.New("kpi is completed or rejected and can no longer be updated")
	ErrTemplateNotFound           = errors.New("kpi template not found")
	ErrNotKPIOwner                = errors.New("kpi belongs to another employee")
	ErrNotKPIManager              = errors.New("kpi is managed by another manager")
	ErrAlreadyAcknowledged        = errors.New("kpi already acknowledged")
	ErrPartialGoalWeights         = errors.New("some items have goal weights while others do not")
	ErrGoalWeightSum              = errors.New("goal weights must sum to 100")
	ErrWeightConfirmationRequired = errors.New("confirmation required to proceed without goal weights")
)
