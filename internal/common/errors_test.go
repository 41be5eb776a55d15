package common

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"lock timeout", ErrLockTimeout, true},
		{"wrapped storage", fmt.Errorf("%w: %w", ErrMutationFailed, ErrStorageUnavailable), true},
		{"stale", fmt.Errorf("%w: %w", ErrMutationFailed, ErrStaleVersion), false},
		{"not found", ErrorNotFound, false},
		{"other", errors.New("boom"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Fatalf("IsRetryable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
