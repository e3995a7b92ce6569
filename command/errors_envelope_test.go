package command

import (
	"context"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-objects/core"
)

func TestSaveObjectMessage_ValidateReturnsRichError(t *testing.T) {
	err := (SaveObjectMessage{}).Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}

	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.Category != goerrors.CategoryValidation {
		t.Fatalf("expected validation category, got %q", rich.Category)
	}
	if rich.TextCode != core.ObjectsErrorBadInput {
		t.Fatalf("expected %q text code, got %q", core.ObjectsErrorBadInput, rich.TextCode)
	}
}

func TestSaveObjectCommand_NilServiceReturnsRichError(t *testing.T) {
	var cmd *SaveObjectCommand
	err := cmd.Execute(context.Background(), SaveObjectMessage{})
	if err == nil {
		t.Fatalf("expected command dependency error")
	}

	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.Category != goerrors.CategoryInternal {
		t.Fatalf("expected internal category, got %q", rich.Category)
	}
	if rich.TextCode != core.ObjectsErrorInternal {
		t.Fatalf("expected %q text code, got %q", core.ObjectsErrorInternal, rich.TextCode)
	}
}
