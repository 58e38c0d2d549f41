package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(CodeNotConvex, "region %s is not convex", "R_1")

	if err.Code != CodeNotConvex {
		t.Errorf("Code = %v, want %v", err.Code, CodeNotConvex)
	}

	if err.Message != "region R_1 is not convex" {
		t.Errorf("Message = %v", err.Message)
	}

	expected := "GEOMETRY_NOT_CONVEX: region R_1 is not convex"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(CodeConfigInvalid, cause, "load machine.toml")

	if err.Code != CodeConfigInvalid {
		t.Errorf("Code = %v, want %v", err.Code, CodeConfigInvalid)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(CodeBadKey, "test"),
			code:     CodeBadKey,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(CodeBadKey, "test"),
			code:     CodeNotConvex,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(CodeNotConvex, New(CodeBadCrossing, "inner"), "outer"),
			code:     CodeNotConvex,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     CodeBadKey,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     CodeBadKey,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name:     "Error type",
			err:      New(CodeNoProjection, "test"),
			expected: CodeNoProjection,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCategories(t *testing.T) {
	if !IsGeometry(New(CodeNotConvex, "test")) {
		t.Error("IsGeometry(CodeNotConvex) = false, want true")
	}
	if IsGeometry(New(CodeConfigInvalid, "test")) {
		t.Error("IsGeometry(CodeConfigInvalid) = true, want false")
	}
	if !IsConfig(New(CodeUnknownLayout, "test")) {
		t.Error("IsConfig(CodeUnknownLayout) = false, want true")
	}
	if IsConfig(New(CodeNoProjection, "test")) {
		t.Error("IsConfig(CodeNoProjection) = true, want false")
	}
}
