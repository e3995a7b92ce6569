package core

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
)

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger

// RequestContext identifies the caller/session an object instance is bound
// to. A nil *RequestContext marks an instance "orphaned": remote method
// dispatch is disallowed until a context is supplied.
type RequestContext struct {
	RequestID string
	Subject   string
	Tenant    string
	Metadata  map[string]any
}

func (c *RequestContext) Clone() *RequestContext {
	if c == nil {
		return nil
	}
	out := &RequestContext{
		RequestID: c.RequestID,
		Subject:   c.Subject,
		Tenant:    c.Tenant,
	}
	if len(c.Metadata) > 0 {
		out.Metadata = make(map[string]any, len(c.Metadata))
		for key, value := range c.Metadata {
			out.Metadata[key] = value
		}
	}
	return out
}

// Indirection is the remote-call collaborator. When configured on a
// Dispatcher it intercepts object method calls and executes them against the
// authoritative remote instance. Transport errors propagate untranslated.
type Indirection interface {
	ObjectClassAction(
		ctx context.Context,
		caller *RequestContext,
		typeName string,
		method string,
		version string,
		args []any,
		kwargs map[string]any,
	) (any, error)

	ObjectAction(
		ctx context.Context,
		caller *RequestContext,
		obj *Object,
		method string,
		args []any,
		kwargs map[string]any,
	) (map[string]any, any, error)
}

// AttributeLoader populates an unset field slot on demand, typically from
// persistent storage. Implementations set the slot as a side effect.
type AttributeLoader interface {
	LoadAttribute(ctx context.Context, obj *Object, name string) error
}

// Persister writes an object's changed fields back to the store.
type Persister interface {
	Save(ctx context.Context, caller *RequestContext, obj *Object) error
}

type ObjectStore interface {
	SaveObject(ctx context.Context, caller *RequestContext, obj *Object) error
	GetObject(ctx context.Context, caller *RequestContext, typeName string, objectID string) (*Object, error)
	DeleteObject(ctx context.Context, caller *RequestContext, typeName string, objectID string) error
}

// StoreProvider is what repository factories hand back to the runtime.
type StoreProvider interface {
	ObjectStore() ObjectStore
}

type RepositoryStoreFactory interface {
	BuildStores(persistenceClient any) (StoreProvider, error)
}

type ErrorFactory func(message string, category ...goerrors.Category) *goerrors.Error

type ErrorMapper func(err error) *goerrors.Error

type ConfigProvider interface {
	Load(ctx context.Context, defaults Config) (Config, error)
}

type RawConfigLoader interface {
	LoadRaw(ctx context.Context) (map[string]any, error)
}

type OptionsResolver interface {
	Resolve(defaults Config, loaded Config, runtime Config) (Config, error)
}
