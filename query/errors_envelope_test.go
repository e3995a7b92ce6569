package query

import (
	"context"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-objects/core"
)

func TestGetObjectMessage_ValidateReturnsRichError(t *testing.T) {
	err := (GetObjectMessage{}).Validate()
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

func TestHydrateObjectQuery_NilHydratorReturnsRichError(t *testing.T) {
	var q *HydrateObjectQuery
	_, err := q.Query(context.Background(), HydrateObjectMessage{})
	if err == nil {
		t.Fatalf("expected dependency error")
	}

	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.Category != goerrors.CategoryInternal {
		t.Fatalf("expected internal category, got %q", rich.Category)
	}
}
