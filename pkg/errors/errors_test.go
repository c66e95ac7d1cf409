package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeNotFound, "resource not found")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeNotFound, err.Code)
	}
	if err.Message != "resource not found" {
		t.Errorf("expected message 'resource not found', got %s", err.Message)
	}
	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeIO, "read failed", cause)

	if err.Code != ErrCodeIO {
		t.Errorf("expected code %s, got %s", ErrCodeIO, err.Code)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected cause to be wrapped")
	}
}

func TestWrapWithContext(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	ctx := map[string]any{
		"path":   "/srv/data.json",
		"offset": 12,
	}

	err := WrapWithContext(ErrCodeParse, "Invalid JSON in data file", cause, ctx)

	if err.Code != ErrCodeParse {
		t.Errorf("expected code %s, got %s", ErrCodeParse, err.Code)
	}
	if err.Context == nil {
		t.Fatal("expected context to be set")
	}
	if err.Context["path"] != "/srv/data.json" {
		t.Errorf("expected path to be /srv/data.json")
	}
}

func TestError(t *testing.T) {
	tests := []struct {
		name     string
		err      *StructuredError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(ErrCodeFileNotFound, "Data file not found: data.json"),
			expected: "[FILE_NOT_FOUND] Data file not found: data.json",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeInternal, "failed", errors.New("root cause")),
			expected: "[INTERNAL] failed: root cause",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(ErrCodeInternal, "wrapped", cause)

	unwrapped := err.Unwrap()
	if !errors.Is(unwrapped, cause) {
		t.Errorf("expected unwrapped error to be original cause")
	}

	if !errors.Is(err, cause) {
		t.Errorf("errors.Is should work with Unwrap")
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"structured", New(ErrCodeSchema, "Expected list, got object"), ErrCodeSchema},
		{"wrapped structured", fmt.Errorf("outer: %w", New(ErrCodeNotAFile, "dir")), ErrCodeNotAFile},
		{"plain error", errors.New("boom"), ErrCodeInternal},
		{"nil", nil, ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestMessageOf(t *testing.T) {
	if got := MessageOf(nil); got != "" {
		t.Errorf("MessageOf(nil) = %q, want empty", got)
	}
	if got := MessageOf(Wrap(ErrCodeIO, "Failed to read data file", errors.New("EIO"))); got != "Failed to read data file" {
		t.Errorf("MessageOf() = %q, want message without cause", got)
	}
	if got := MessageOf(errors.New("plain")); got != "plain" {
		t.Errorf("MessageOf() = %q, want plain", got)
	}
}

func TestIsDataUnavailable(t *testing.T) {
	unavailable := []ErrorCode{
		ErrCodePathTraversal,
		ErrCodeFileNotFound,
		ErrCodeNotAFile,
		ErrCodeIO,
		ErrCodeParse,
		ErrCodeSchema,
	}
	for _, code := range unavailable {
		if !IsDataUnavailable(New(code, "x")) {
			t.Errorf("expected %s to be data unavailable", code)
		}
	}

	available := []error{
		New(ErrCodeNotFound, "x"),
		New(ErrCodeInvalidIdentifier, "x"),
		errors.New("plain"),
		nil,
	}
	for _, err := range available {
		if IsDataUnavailable(err) {
			t.Errorf("expected %v not to be data unavailable", err)
		}
	}
}
