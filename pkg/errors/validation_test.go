package errors

import (
	"math"
	"testing"
)

func TestValidatePositive(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		wantErr bool
	}{
		{"positive", 15, false},
		{"tiny positive", 1e-9, false},

		{"zero", 0, true},
		{"negative", -1, true},
		{"NaN", math.NaN(), true},
		{"+Inf", math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePositive("floor half extent", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePositive(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidConfiguration) {
				t.Errorf("ValidatePositive(%v) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidConfiguration)
			}
		})
	}
}

func TestValidateNonEmpty(t *testing.T) {
	if err := ValidateNonEmpty("catalog", 3); err != nil {
		t.Errorf("ValidateNonEmpty(3) = %v, want nil", err)
	}
	err := ValidateNonEmpty("catalog", 0)
	if !Is(err, ErrCodeInvalidConfiguration) {
		t.Errorf("ValidateNonEmpty(0) = %v, want INVALID_CONFIGURATION", err)
	}
	if UserMessage(err) != "catalog cannot be empty" {
		t.Errorf("UserMessage = %q", UserMessage(err))
	}
}

func TestValidateObjectCount(t *testing.T) {
	tests := []struct {
		input   int
		wantErr bool
	}{
		{1, false},
		{30, false},
		{maxObjectCount, false},
		{0, true},
		{-5, true},
		{maxObjectCount + 1, true},
	}

	for _, tt := range tests {
		err := ValidateObjectCount(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateObjectCount(%d) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}
