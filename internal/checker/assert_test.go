package checker

import (
	"errors"
	"strings"
	"testing"

	"typeprobe/internal/config"
)

func TestAssert_IsValidPasses(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	c := newChecker(t, Options{})
	a, err := c.Assert(`var s string = "x"`)
	if err != nil {
		t.Fatalf("Assert() error: %v", err)
	}
	if err := a.IsValid(); err != nil {
		t.Errorf("IsValid() = %v, want nil", err)
	}
	if err := a.IsNotValid(); err == nil {
		t.Errorf("IsNotValid() = nil for a valid snippet")
	}
}

func TestAssert_IsValidFailsWithDiagnostics(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	c := newChecker(t, Options{})
	a, err := c.Assert(`var s string = 1`)
	if err != nil {
		t.Fatalf("Assert() error: %v", err)
	}

	err = a.IsValid("while checking the readme example")
	if err == nil {
		t.Fatalf("IsValid() = nil for an invalid snippet")
	}
	var invalid *InvalidSnippetError
	if !errors.As(err, &invalid) {
		t.Fatalf("error type = %T, want *InvalidSnippetError", err)
	}
	if len(invalid.Messages) == 0 {
		t.Errorf("no diagnostics carried by the error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "string") {
		t.Errorf("diagnostic text missing from error: %q", msg)
	}
	if !strings.Contains(msg, "while checking the readme example") {
		t.Errorf("caller context missing from error: %q", msg)
	}
}

func TestAssert_IsNotValid(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	c := newChecker(t, Options{})

	a, err := c.Assert(`var s string = 1`)
	if err != nil {
		t.Fatalf("Assert() error: %v", err)
	}
	if err := a.IsNotValid(); err != nil {
		t.Errorf("IsNotValid() = %v for an invalid snippet", err)
	}

	a, err = c.Assert(`var s string = "x"`)
	if err != nil {
		t.Fatalf("Assert() error: %v", err)
	}
	err = a.IsNotValid("expected the bad overload to be rejected")
	if err == nil {
		t.Fatalf("IsNotValid() = nil for a valid snippet")
	}
	if !errors.Is(err, ErrExpectedInvalid) {
		t.Errorf("error does not wrap ErrExpectedInvalid: %v", err)
	}
	if !strings.Contains(err.Error(), "expected the bad overload to be rejected") {
		t.Errorf("caller context missing: %q", err)
	}
}

func TestAssert_UsageErrorSurfacesEarly(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	c := newChecker(t, Options{})
	if _, err := c.Assert(`var x Missing = 0`, "Missing"); err == nil {
		t.Fatalf("Assert() should fail for a missing type name")
	}
}
