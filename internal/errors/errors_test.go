package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	e := New(CategoryParse, SeverityWarning, "malformed block")
	want := "parse (warning): malformed block"
	if e.Error() != want {
		t.Errorf("Error() = %q, want %q", e.Error(), want)
	}

	wrapped := Wrap(fmt.Errorf("boom"), CategoryFileSystem, SeverityError, "read failed")
	want = "filesystem (error): read failed: boom"
	if wrapped.Error() != want {
		t.Errorf("Error() = %q, want %q", wrapped.Error(), want)
	}
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("underlying")
	e := Wrap(cause, CategoryGit, SeverityFatal, "history walk failed")
	if !errors.Is(e, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestIsCategory(t *testing.T) {
	e := FileReadError("/tmp/x.swift", fmt.Errorf("no such file"))
	if !IsCategory(e, CategoryFileSystem) {
		t.Error("expected filesystem category")
	}
	if IsCategory(e, CategoryParse) {
		t.Error("unexpected parse category")
	}
	if IsCategory(fmt.Errorf("plain"), CategoryParse) {
		t.Error("plain errors belong to no category")
	}
}

func TestWithContext(t *testing.T) {
	e := New(CategoryConfig, SeverityFatal, "x").WithContext("path", "thedoc.yaml")
	if e.Context["path"] != "thedoc.yaml" {
		t.Errorf("context not recorded: %v", e.Context)
	}
}
