package errors

import (
	"errors"
	"testing"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		msg      string
		expected string
	}{
		{
			name:     "wrap nil error",
			err:      nil,
			msg:      "additional context",
			expected: "",
		},
		{
			name:     "wrap standard error",
			err:      errors.New("original error"),
			msg:      "failed to load config",
			expected: "failed to load config: original error",
		},
		{
			name:     "wrap with empty message",
			err:      errors.New("original error"),
			msg:      "",
			expected: ": original error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Wrap(tt.err, tt.msg)
			if tt.err == nil {
				if result != nil {
					t.Errorf("Expected nil, got %v", result)
				}
				return
			}
			if result.Error() != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, result.Error())
			}
			// Test that the original error is wrapped
			if !errors.Is(result, tt.err) {
				t.Errorf("Expected wrapped error to contain original error")
			}
		})
	}
}

func TestWrapf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		format   string
		args     []interface{}
		expected string
	}{
		{
			name:     "wrapf nil error",
			err:      nil,
			format:   "formatted: %s",
			args:     []interface{}{"test"},
			expected: "",
		},
		{
			name:     "wrapf standard error",
			err:      errors.New("original error"),
			format:   "failed to download %s",
			args:     []interface{}{"https://example.com/vpm.json"},
			expected: "failed to download https://example.com/vpm.json: original error",
		},
		{
			name:     "wrapf with multiple args",
			err:      errors.New("original error"),
			format:   "repository %s at index %d",
			args:     []interface{}{"com.example", 3},
			expected: "repository com.example at index 3: original error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Wrapf(tt.err, tt.format, tt.args...)
			if tt.err == nil {
				if result != nil {
					t.Errorf("Expected nil, got %v", result)
				}
				return
			}
			if result.Error() != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, result.Error())
			}
			// Test that the original error is wrapped
			if !errors.Is(result, tt.err) {
				t.Errorf("Expected wrapped error to contain original error")
			}
		})
	}
}

func TestDetailErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		expected string
	}{
		{
			name:     "output format",
			err:      ErrInvalidOutputFormatWithDetails("yaml"),
			sentinel: ErrInvalidOutputFormat,
			expected: `invalid output format: "yaml" (valid: text, json)`,
		},
		{
			name:     "log level",
			err:      ErrInvalidLogLevelWithDetails("trace"),
			sentinel: ErrInvalidLogLevel,
			expected: `invalid log level: "trace" (valid: debug, info, warn, error)`,
		},
		{
			name:     "repository identity",
			err:      ErrRepositoryIdentityWithIndex(2),
			sentinel: ErrRepositoryIdentity,
			expected: "repository at index 2: repository needs a url or an id",
		},
		{
			name:     "repository exists",
			err:      ErrRepositoryExistsWithID("com.example"),
			sentinel: ErrRepositoryExists,
			expected: "repository already exists: com.example",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, tt.err.Error())
			}
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("Expected error to wrap %v", tt.sentinel)
			}
		})
	}
}
