package query

import (
	"strings"

	"github.com/goliatone/go-objects/core"
)

const (
	TypeGetObject     = "objects.query.object.get"
	TypeHydrateObject = "objects.query.object.hydrate"
	TypeListTypeNames = "objects.query.types.list"
)

type GetObjectMessage struct {
	Caller   *core.RequestContext
	TypeName string
	ObjectID string
}

func (GetObjectMessage) Type() string { return TypeGetObject }

func (m GetObjectMessage) Validate() error {
	if strings.TrimSpace(m.TypeName) == "" {
		return queryValidationError("type_name", "object type name is required")
	}
	if strings.TrimSpace(m.ObjectID) == "" {
		return queryValidationError("object_id", "object id is required")
	}
	return nil
}

type HydrateObjectMessage struct {
	Caller  *core.RequestContext
	Payload map[string]any
}

func (HydrateObjectMessage) Type() string { return TypeHydrateObject }

func (m HydrateObjectMessage) Validate() error {
	if len(m.Payload) == 0 {
		return queryValidationError("payload", "encoded object payload is required")
	}
	return nil
}

type ListTypeNamesMessage struct{}

func (ListTypeNamesMessage) Type() string { return TypeListTypeNames }

func (ListTypeNamesMessage) Validate() error { return nil }
