package command

import (
	"strings"

	"github.com/goliatone/go-objects/core"
)

const (
	TypeCreateObject = "objects.command.object.create"
	TypeSaveObject   = "objects.command.object.save"
	TypeDeleteObject = "objects.command.object.delete"
)

type CreateObjectMessage struct {
	Caller   *core.RequestContext
	TypeName string
	Version  string
	Fields   map[string]any
}

func (CreateObjectMessage) Type() string { return TypeCreateObject }

func (m CreateObjectMessage) Validate() error {
	if strings.TrimSpace(m.TypeName) == "" {
		return commandValidationError("type_name", "object type name is required")
	}
	if strings.TrimSpace(m.Version) == "" {
		return commandValidationError("version", "object version is required")
	}
	return nil
}

type SaveObjectMessage struct {
	Caller *core.RequestContext
	Object *core.Object
}

func (SaveObjectMessage) Type() string { return TypeSaveObject }

func (m SaveObjectMessage) Validate() error {
	if m.Object == nil {
		return commandValidationError("object", "object is required")
	}
	return nil
}

type DeleteObjectMessage struct {
	Caller   *core.RequestContext
	TypeName string
	ObjectID string
}

func (DeleteObjectMessage) Type() string { return TypeDeleteObject }

func (m DeleteObjectMessage) Validate() error {
	if strings.TrimSpace(m.TypeName) == "" {
		return commandValidationError("type_name", "object type name is required")
	}
	if strings.TrimSpace(m.ObjectID) == "" {
		return commandValidationError("object_id", "object id is required")
	}
	return nil
}
