package core

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

func TestObjectsErrorMapperSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		category goerrors.Category
		textCode string
		code     int
	}{
		{
			name:     "unsupported type",
			err:      fmt.Errorf("%w: Widget", ErrUnsupportedObjectType),
			category: goerrors.CategoryNotFound,
			textCode: ObjectsErrorUnsupportedType,
			code:     http.StatusNotFound,
		},
		{
			name:     "incompatible version",
			err:      fmt.Errorf("%w: Widget requested 2.0, supported 1.9", ErrIncompatibleVersion),
			category: goerrors.CategoryConflict,
			textCode: ObjectsErrorIncompatibleVersion,
			code:     http.StatusConflict,
		},
		{
			name:     "invalid version string",
			err:      fmt.Errorf("%w: %q", ErrInvalidVersionString, "banana"),
			category: goerrors.CategoryBadInput,
			textCode: ObjectsErrorIncompatibleVersion,
			code:     http.StatusBadRequest,
		},
		{
			name:     "orphaned object",
			err:      fmt.Errorf("%w: Widget.refresh", ErrOrphanedObject),
			category: goerrors.CategoryOperation,
			textCode: ObjectsErrorOrphaned,
			code:     http.StatusNotImplemented,
		},
		{
			name:     "unknown attribute",
			err:      fmt.Errorf("%w: Widget.bogus", ErrUnknownAttribute),
			category: goerrors.CategoryBadInput,
			textCode: ObjectsErrorUnknownAttribute,
			code:     http.StatusBadRequest,
		},
		{
			name:     "coercion failed",
			err:      fmt.Errorf("%w: expected int", ErrCoercionFailed),
			category: goerrors.CategoryValidation,
			textCode: ObjectsErrorCoercionFailed,
			code:     http.StatusBadRequest,
		},
		{
			name:     "not implemented",
			err:      fmt.Errorf("%w: cannot save Widget", ErrNotImplemented),
			category: goerrors.CategoryOperation,
			textCode: ObjectsErrorNotImplemented,
			code:     http.StatusNotImplemented,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rich := objectsErrorMapper(tt.err)
			if rich == nil {
				t.Fatal("mapper returned nil")
			}
			if rich.Category != tt.category {
				t.Fatalf("category = %v, want %v", rich.Category, tt.category)
			}
			if rich.TextCode != tt.textCode {
				t.Fatalf("text code = %q, want %q", rich.TextCode, tt.textCode)
			}
			if rich.Code != tt.code {
				t.Fatalf("code = %d, want %d", rich.Code, tt.code)
			}
		})
	}
}

func TestObjectsErrorMapperPreservesEnvelope(t *testing.T) {
	original := goerrors.New("already rich", goerrors.CategoryConflict).
		WithTextCode("CUSTOM_CODE")

	rich := objectsErrorMapper(original)
	if rich.TextCode != "CUSTOM_CODE" {
		t.Fatalf("text code rewritten to %q", rich.TextCode)
	}
	if rich.Code != http.StatusConflict {
		t.Fatalf("code = %d", rich.Code)
	}
}

func TestObjectsErrorMapperPlainError(t *testing.T) {
	rich := objectsErrorMapper(errors.New("boom"))
	if rich == nil {
		t.Fatal("mapper returned nil")
	}
	if rich.TextCode == "" {
		t.Fatal("mapped error has no text code")
	}
	if rich.Code == 0 {
		t.Fatal("mapped error has no status code")
	}
}

func TestObjectsErrorMapperNil(t *testing.T) {
	if rich := objectsErrorMapper(nil); rich != nil {
		t.Fatalf("expected nil, got %v", rich)
	}
}

func TestErrorPredicates(t *testing.T) {
	if !IsUnknownAttribute(fmt.Errorf("%w: x", ErrUnknownAttribute)) {
		t.Fatal("IsUnknownAttribute")
	}
	if !IsOrphanedObject(fmt.Errorf("%w: x", ErrOrphanedObject)) {
		t.Fatal("IsOrphanedObject")
	}
	if !IsIncompatibleVersion(fmt.Errorf("%w: x", ErrIncompatibleVersion)) {
		t.Fatal("IsIncompatibleVersion")
	}
	if !IsUnsupportedObjectType(fmt.Errorf("%w: x", ErrUnsupportedObjectType)) {
		t.Fatal("IsUnsupportedObjectType")
	}
	if IsUnknownAttribute(errors.New("other")) {
		t.Fatal("false positive")
	}
}
