package command

import (
	"context"

	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-objects/core"
)

// MutatingService is the write surface the commands delegate to. The object
// runtime satisfies it.
type MutatingService interface {
	NewObject(name string, version string, caller *core.RequestContext, initial map[string]any) (*core.Object, error)
	SaveObject(ctx context.Context, caller *core.RequestContext, obj *core.Object) error
	DeleteObject(ctx context.Context, caller *core.RequestContext, typeName string, objectID string) error
}

type CreateObjectCommand struct {
	service MutatingService
}

func NewCreateObjectCommand(service MutatingService) *CreateObjectCommand {
	return &CreateObjectCommand{service: service}
}

func (c *CreateObjectCommand) Execute(ctx context.Context, msg CreateObjectMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: object service is required")
	}
	obj, err := c.service.NewObject(msg.TypeName, msg.Version, msg.Caller, msg.Fields)
	if err != nil {
		return err
	}
	storeResult(ctx, obj)
	return nil
}

type SaveObjectCommand struct {
	service MutatingService
}

func NewSaveObjectCommand(service MutatingService) *SaveObjectCommand {
	return &SaveObjectCommand{service: service}
}

func (c *SaveObjectCommand) Execute(ctx context.Context, msg SaveObjectMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: object service is required")
	}
	if err := c.service.SaveObject(ctx, msg.Caller, msg.Object); err != nil {
		return err
	}
	storeResult(ctx, msg.Object)
	return nil
}

type DeleteObjectCommand struct {
	service MutatingService
}

func NewDeleteObjectCommand(service MutatingService) *DeleteObjectCommand {
	return &DeleteObjectCommand{service: service}
}

func (c *DeleteObjectCommand) Execute(ctx context.Context, msg DeleteObjectMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: object service is required")
	}
	return c.service.DeleteObject(ctx, msg.Caller, msg.TypeName, msg.ObjectID)
}

func storeResult[T any](ctx context.Context, value T) {
	collector := gocmd.ResultFromContext[T](ctx)
	if collector == nil {
		return
	}
	collector.Store(value)
}
