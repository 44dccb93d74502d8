package apperrors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestProviderCallError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewProviderCallError("tamilmv", "search", cause)

	if !errors.Is(err, &ProviderCallError{}) {
		t.Error("errors.Is failed to match ProviderCallError")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is failed to unwrap to the cause")
	}

	var target *ProviderCallError
	if !errors.As(err, &target) {
		t.Fatal("errors.As failed")
	}
	if target.Provider != "tamilmv" || target.Op != "search" {
		t.Errorf("target = %+v", target)
	}

	msg := err.Error()
	for _, part := range []string{"tamilmv", "search", "connection refused"} {
		if !strings.Contains(msg, part) {
			t.Errorf("message %q missing %q", msg, part)
		}
	}
}

func TestProviderCallError_WrappedChain(t *testing.T) {
	cause := errors.New("boom")
	err := fmt.Errorf("aggregate failed: %w", NewProviderCallError("x", "latest", cause))

	if !errors.Is(err, &ProviderCallError{}) {
		t.Error("errors.Is failed through a wrapping layer")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is failed to reach the root cause")
	}
}

func TestRegistrationError(t *testing.T) {
	err := NewRegistrationError("broken", "no content kinds declared")

	if !errors.Is(err, &RegistrationError{}) {
		t.Error("errors.Is failed to match RegistrationError")
	}
	if errors.Is(err, &ProviderCallError{}) {
		t.Error("RegistrationError matched an unrelated type")
	}
	if !strings.Contains(err.Error(), "no content kinds declared") {
		t.Errorf("message = %q", err.Error())
	}
}

func TestCatalogLookupError(t *testing.T) {
	cause := errors.New("transient status 503")
	err := NewCatalogLookupError("jawan", "movie", cause)

	if !errors.Is(err, &CatalogLookupError{}) {
		t.Error("errors.Is failed to match CatalogLookupError")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is failed to unwrap to the cause")
	}
	if !strings.Contains(err.Error(), "jawan") {
		t.Errorf("message = %q", err.Error())
	}
}
