package domain

import (
	"errors"
	"testing"
)

func TestValidateID(t *testing.T) {
	tests := []struct {
		id    string
		valid bool
	}{
		{id: "test-1", valid: true},
		{id: "6512bd43d9caa6e02c990b0a", valid: true},
		{id: "3f0e_A", valid: true},
		{id: "", valid: false},
		{id: "../etc", valid: false},
		{id: "a b", valid: false},
		{id: "x' OR 1=1", valid: false},
	}
	for _, tc := range tests {
		err := ValidateID(tc.id)
		if tc.valid && err != nil {
			t.Fatalf("expected %q to be valid, got %v", tc.id, err)
		}
		if !tc.valid && !errors.Is(err, ErrInvalidID) {
			t.Fatalf("expected ErrInvalidID for %q, got %v", tc.id, err)
		}
	}
}
