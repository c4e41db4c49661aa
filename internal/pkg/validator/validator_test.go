package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", // valid UUIDv7
		"0188D0F2-7B8C-7B4A-8A2B-6B8B8B8B8B8B", // valid UUIDv7 (uppercase)
	}
	invalid := []string{
		"123e4567-e89b-12d3-a456-426614174000", // not v7
		"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",     // missing dashes
		"g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", // invalid hex
		"",                                     // empty
	}
	for _, uuid := range valid {
		if !IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = false, want true", uuid)
		}
	}
	for _, uuid := range invalid {
		if IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = true, want false", uuid)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2025-03-31"); !ok {
		t.Error("IsValidDate(2025-03-31) = false, want true")
	}
	for _, s := range []string{"31-03-2025", "2025-13-01", "not a date", ""} {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestParseNumeric(t *testing.T) {
	cases := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"60", 60, true},
		{" 60 ", 60, true},
		{"60%", 60, true},
		{"60 %", 60, true},
		{"0.4", 0.4, true},
		{"-12.5", -12.5, true},
		{"", 0, false},
		{"   ", 0, false},
		{"%", 0, false},
		{"sixty", 0, false},
	}
	for _, c := range cases {
		got, ok := ParseNumeric(c.input)
		if ok != c.ok || got != c.want {
			t.Errorf("ParseNumeric(%q) = (%v, %v), want (%v, %v)", c.input, got, ok, c.want, c.ok)
		}
	}
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "title", Message: "title is required"},
		{Field: "year", Message: "year is out of range"},
	}
	want := "title: title is required; year: year is out of range"
	if errs.Error() != want {
		t.Errorf("Error() = %q, want %q", errs.Error(), want)
	}
	m := errs.ToMap()
	if m["title"] != "title is required" || m["year"] != "year is out of range" {
		t.Errorf("ToMap() = %v", m)
	}
}
