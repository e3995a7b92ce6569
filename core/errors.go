package core

import (
	"errors"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	ObjectsErrorBadInput            = "OBJECTS_BAD_INPUT"
	ObjectsErrorUnsupportedType     = "OBJECTS_UNSUPPORTED_TYPE"
	ObjectsErrorIncompatibleVersion = "OBJECTS_INCOMPATIBLE_VERSION"
	ObjectsErrorOrphaned            = "OBJECTS_ORPHANED_OBJECT"
	ObjectsErrorUnknownAttribute    = "OBJECTS_UNKNOWN_ATTRIBUTE"
	ObjectsErrorCoercionFailed      = "OBJECTS_COERCION_FAILED"
	ObjectsErrorNotImplemented      = "OBJECTS_NOT_IMPLEMENTED"
	ObjectsErrorInternal            = "OBJECTS_INTERNAL_ERROR"
)

var (
	ErrUnsupportedObjectType = errors.New("core: unsupported object type")
	ErrIncompatibleVersion   = errors.New("core: incompatible object version")
	ErrInvalidVersionString  = errors.New("core: invalid version string")
	ErrOrphanedObject        = errors.New("core: orphaned object")
	ErrUnknownAttribute      = errors.New("core: unknown attribute")
	ErrUnsetAttribute        = errors.New("core: attribute is not set")
	ErrCoercionFailed        = errors.New("core: field coercion failed")
	ErrNotImplemented        = errors.New("core: not implemented in base object")
)

func objectsErrorMapper(err error) *goerrors.Error {
	if err == nil {
		return nil
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return ensureObjectsErrorEnvelope(richErr)
	}

	switch {
	case errors.Is(err, ErrUnsupportedObjectType):
		return newObjectsError(err.Error(), goerrors.CategoryNotFound, ObjectsErrorUnsupportedType)
	case errors.Is(err, ErrInvalidVersionString):
		return newObjectsError(err.Error(), goerrors.CategoryBadInput, ObjectsErrorIncompatibleVersion)
	case errors.Is(err, ErrIncompatibleVersion):
		return newObjectsError(err.Error(), goerrors.CategoryConflict, ObjectsErrorIncompatibleVersion)
	case errors.Is(err, ErrOrphanedObject):
		return newObjectsError(err.Error(), goerrors.CategoryOperation, ObjectsErrorOrphaned)
	case errors.Is(err, ErrUnknownAttribute), errors.Is(err, ErrUnsetAttribute):
		return newObjectsError(err.Error(), goerrors.CategoryBadInput, ObjectsErrorUnknownAttribute)
	case errors.Is(err, ErrCoercionFailed):
		return newObjectsError(err.Error(), goerrors.CategoryValidation, ObjectsErrorCoercionFailed)
	case errors.Is(err, ErrNotImplemented):
		return newObjectsError(err.Error(), goerrors.CategoryOperation, ObjectsErrorNotImplemented)
	}

	mapped := goerrors.MapToError(err, goerrors.DefaultErrorMappers())
	return ensureObjectsErrorEnvelope(mapped)
}

func newObjectsError(message string, category goerrors.Category, textCode string) *goerrors.Error {
	return ensureObjectsErrorEnvelope(
		goerrors.New(message, category).
			WithTextCode(textCode),
	)
}

func ensureObjectsErrorEnvelope(err *goerrors.Error) *goerrors.Error {
	if err == nil {
		return nil
	}
	if err.Code == 0 {
		err.Code = objectsHTTPStatus(err.Category)
	}
	if strings.TrimSpace(err.TextCode) == "" {
		err.TextCode = defaultObjectsTextCode(err.Category)
	}
	if err.Category == goerrors.CategoryInternal && strings.TrimSpace(err.Message) == "" {
		err.Message = "An unexpected error occurred"
	}
	return err
}

func defaultObjectsTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput:
		return ObjectsErrorBadInput
	case goerrors.CategoryValidation:
		return ObjectsErrorCoercionFailed
	case goerrors.CategoryNotFound:
		return ObjectsErrorUnsupportedType
	case goerrors.CategoryConflict:
		return ObjectsErrorIncompatibleVersion
	case goerrors.CategoryOperation:
		return ObjectsErrorNotImplemented
	default:
		return ObjectsErrorInternal
	}
}

func objectsHTTPStatus(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryConflict:
		return http.StatusConflict
	case goerrors.CategoryOperation:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// IsUnknownAttribute reports whether err stems from an access to a field
// name outside an object's effective field set.
func IsUnknownAttribute(err error) bool {
	return errors.Is(err, ErrUnknownAttribute)
}

// IsOrphanedObject reports whether err stems from a remotable method call
// with no bound context and no explicit context argument.
func IsOrphanedObject(err error) bool {
	return errors.Is(err, ErrOrphanedObject)
}

func IsIncompatibleVersion(err error) bool {
	return errors.Is(err, ErrIncompatibleVersion)
}

func IsUnsupportedObjectType(err error) bool {
	return errors.Is(err, ErrUnsupportedObjectType)
}
