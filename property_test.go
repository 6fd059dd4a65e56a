package rlottie

import (
	"errors"
	"testing"
)

func TestPropertyArity(t *testing.T) {
	tests := []struct {
		prop  Property
		arity int
	}{
		{PropertyFillColor, 3},
		{PropertyFillOpacity, 1},
		{PropertyStrokeColor, 3},
		{PropertyStrokeOpacity, 1},
		{PropertyStrokeWidth, 1},
		{PropertyTrAnchor, 2},
		{PropertyTrPosition, 2},
		{PropertyTrScale, 2},
		{PropertyTrRotation, 1},
		{PropertyTrOpacity, 1},
	}
	for _, tt := range tests {
		t.Run(tt.prop.String(), func(t *testing.T) {
			if got := propertyArity[tt.prop]; got != tt.arity {
				t.Errorf("arity = %d, want %d", got, tt.arity)
			}
		})
	}
}

// Property validation must reject bad overrides before any native call, so
// these run against an unconstructed Animation without the library loaded.
func TestPropertyOverrideValidation(t *testing.T) {
	a := &Animation{}

	var ipe *InvalidPropertyError
	if err := a.PropertyOverride(Property(99), "**", 1.0); !errors.As(err, &ipe) {
		t.Errorf("unknown kind: got %v, want *InvalidPropertyError", err)
	}
	if err := a.PropertyOverride(PropertyFillColor, "layer.fill", 1.0); !errors.As(err, &ipe) {
		t.Errorf("wrong arity: got %v, want *InvalidPropertyError", err)
	}
	if err := a.PropertyOverride(PropertyTrRotation, "**", 90.0, 1.0); !errors.As(err, &ipe) {
		t.Errorf("excess values: got %v, want *InvalidPropertyError", err)
	}
}

func TestPropertyOverrideClosed(t *testing.T) {
	a := &Animation{closed: true}
	if err := a.PropertyOverride(PropertyTrRotation, "**", 90.0); !errors.Is(err, errClosed) {
		t.Errorf("got %v, want errClosed", err)
	}
}

func TestPropertyString(t *testing.T) {
	if PropertyFillColor.String() != "FillColor" {
		t.Errorf("String() = %q", PropertyFillColor.String())
	}
	if Property(42).String() != "Property(42)" {
		t.Errorf("String() = %q", Property(42).String())
	}
}
