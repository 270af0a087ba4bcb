package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"invalid input", ErrInvalidInput, "invalid input"},
		{"validation failed", ErrValidationFailed, "validation failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("groups", nil, "duplicate member key")

	if !errors.Is(err, ErrValidationFailed) {
		t.Error("ValidationError should match ErrValidationFailed")
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Error("ValidationError should match ErrInvalidInput")
	}
	if !IsValidationError(err) {
		t.Error("IsValidationError should return true")
	}
	if !strings.Contains(err.Error(), "groups") {
		t.Errorf("Error message should contain the field, got %q", err.Error())
	}

	// No field
	bare := NewValidationError("", nil, "something wrong")
	if strings.Contains(bare.Error(), "for ") {
		t.Errorf("Fieldless message should not mention a field, got %q", bare.Error())
	}
}

func TestParseErrorWrapping(t *testing.T) {
	cause := fmt.Errorf("unexpected end of JSON input")
	err := WrapParse("json", "prompts.json", cause)

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatal("expected *ParseError")
	}
	if parseErr.Format != "json" || parseErr.File != "prompts.json" {
		t.Errorf("unexpected fields: %+v", parseErr)
	}
	if !errors.Is(err, cause) {
		t.Error("wrapped error should unwrap to cause")
	}
	if !IsParseError(err) {
		t.Error("IsParseError should return true")
	}
}

func TestIOErrorWrapping(t *testing.T) {
	cause := fmt.Errorf("permission denied")
	err := WrapIO("write", "/tmp/out.json", cause)

	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatal("expected *IOError")
	}
	if ioErr.Operation != "write" || ioErr.Path != "/tmp/out.json" {
		t.Errorf("unexpected fields: %+v", ioErr)
	}
	if !errors.Is(err, cause) {
		t.Error("wrapped error should unwrap to cause")
	}
	if !IsIOError(err) {
		t.Error("IsIOError should return true")
	}
}

func TestWrapNilReturnsNil(t *testing.T) {
	if WrapIO("read", "x", nil) != nil {
		t.Error("WrapIO(nil) should return nil")
	}
	if WrapParse("json", "x", nil) != nil {
		t.Error("WrapParse(nil) should return nil")
	}
}

func TestProcessError(t *testing.T) {
	cause := fmt.Errorf("exit status 1")
	err := NewProcessError("delete branch", "git push origin --delete copilot/fix-1", "remote rejected", cause)

	if !strings.Contains(err.Error(), "git push origin --delete copilot/fix-1") {
		t.Errorf("Error message should contain the command, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "remote rejected") {
		t.Errorf("Error message should contain the output, got %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("ProcessError should unwrap to cause")
	}
}
