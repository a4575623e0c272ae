package errors

import (
	"fmt"
	"testing"
)

func TestIconErrorFormatting(t *testing.T) {
	err := New(ErrCodeConfigInvalid, "bad prefix")
	if err.Error() != "CONFIG_INVALID: bad prefix" {
		t.Errorf("Error() = %q", err.Error())
	}

	wrapped := Wrap(fmt.Errorf("disk full"), ErrCodeLibraryWrite, "save failed")
	want := "LIBRARY_WRITE: save failed (caused by: disk full)"
	if wrapped.Error() != want {
		t.Errorf("Error() = %q, want %q", wrapped.Error(), want)
	}
}

func TestGetCode(t *testing.T) {
	err := StateWriteFailed("data.json", fmt.Errorf("permission denied"))
	if GetCode(err) != ErrCodeStateWrite {
		t.Errorf("GetCode() = %q, want %q", GetCode(err), ErrCodeStateWrite)
	}

	// Wrapped in a plain error, the code should still be found via Unwrap
	outer := fmt.Errorf("saving: %w", err)
	if GetCode(outer) != ErrCodeStateWrite {
		t.Errorf("GetCode(wrapped) = %q, want %q", GetCode(outer), ErrCodeStateWrite)
	}

	if GetCode(nil) != "" {
		t.Error("GetCode(nil) should be empty")
	}
	if GetCode(fmt.Errorf("plain")) != "" {
		t.Error("GetCode(plain) should be empty")
	}
}

func TestIs(t *testing.T) {
	err := AllHostsFailed("/search")
	if !Is(err, ErrCodeAllHostsFailed) {
		t.Error("Is() should match the error's own code")
	}
	if Is(err, ErrCodeInternal) {
		t.Error("Is() should not match a different code")
	}
}

func TestWithDetail(t *testing.T) {
	err := New(ErrCodeInvalidInput, "bad id").WithDetail("id", "x:y:z")
	if err.Details["id"] != "x:y:z" {
		t.Errorf("Details[id] = %v", err.Details["id"])
	}
}
