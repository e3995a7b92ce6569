package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
)

// Runtime composes the object model for one service process: the type
// registry it resolves against, the wire codec, the entity serializer
// handed to the transport layer, the dispatcher that routes remotable
// calls, and an optional object store backing persistence operations.
type Runtime struct {
	config      Config
	logger      Logger
	registry    *TypeRegistry
	codec       *Codec
	serializer  *Serializer
	dispatcher  *Dispatcher
	objectStore ObjectStore
	errorMapper ErrorMapper
}

func New(cfg Config, options ...Option) (*Runtime, error) {
	builder := defaultRuntimeBuilder(cfg)
	for _, option := range options {
		if option == nil {
			continue
		}
		option(&builder)
	}

	provider, logger := glog.Resolve("objects", builder.loggerProvider, builder.logger)
	logger = glog.Ensure(logger)
	if provider != nil {
		if named := provider.GetLogger("objects"); named != nil {
			logger = glog.Ensure(named)
		}
	}

	if builder.errorFactory == nil {
		builder.errorFactory = goerrors.New
	}
	if builder.errorMapper == nil {
		builder.errorMapper = defaultErrorMapper
	}
	if builder.configProvider == nil {
		builder.configProvider = NewCfgxConfigProvider(nil)
	}
	if builder.optionsResolver == nil {
		builder.optionsResolver = GoOptionsResolver{}
	}
	if builder.registry == nil {
		builder.registry = DefaultRegistry()
	}

	defaults := DefaultConfig()
	loaded, err := builder.configProvider.Load(context.Background(), defaults)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}
	finalConfig, err := builder.optionsResolver.Resolve(defaults, loaded, builder.runtimeConfig)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}

	codec, err := NewCodec(builder.registry, finalConfig.Namespace)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}
	serializer, err := NewSerializer(codec)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}

	endpoint := builder.indirection
	if !finalConfig.Indirection.Enabled {
		endpoint = nil
	}
	dispatcher, err := NewDispatcher(endpoint, codec, logger)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}

	if builder.objectStore == nil && builder.repositoryFactory != nil {
		if storeFactory, ok := builder.repositoryFactory.(RepositoryStoreFactory); ok {
			storeProvider, buildErr := storeFactory.BuildStores(builder.persistenceClient)
			if buildErr != nil {
				return nil, mapBuildError(builder.errorMapper, buildErr)
			}
			if storeProvider != nil {
				builder.objectStore = storeProvider.ObjectStore()
			}
		}
	}

	return &Runtime{
		config:      finalConfig,
		logger:      logger,
		registry:    builder.registry,
		codec:       codec,
		serializer:  serializer,
		dispatcher:  dispatcher,
		objectStore: builder.objectStore,
		errorMapper: builder.errorMapper,
	}, nil
}

func mapBuildError(mapper ErrorMapper, err error) error {
	if err == nil {
		return nil
	}
	if mapper == nil {
		return err
	}
	if mapped := mapper(err); mapped != nil {
		return mapped
	}
	return err
}

func (r *Runtime) Config() Config { return r.config }

func (r *Runtime) Logger() Logger { return r.logger }

func (r *Runtime) Registry() *TypeRegistry { return r.registry }

func (r *Runtime) Codec() *Codec { return r.codec }

func (r *Runtime) Serializer() *Serializer { return r.serializer }

func (r *Runtime) Dispatcher() *Dispatcher { return r.dispatcher }

func (r *Runtime) ObjectStore() ObjectStore { return r.objectStore }

// NewObject resolves name at the requested version and constructs an
// instance bound to caller.
func (r *Runtime) NewObject(name string, version string, caller *RequestContext, initial map[string]any) (*Object, error) {
	def, err := r.registry.Resolve(name, version)
	if err != nil {
		return nil, mapBuildError(r.errorMapper, err)
	}
	obj, err := NewObject(def, caller, initial)
	if err != nil {
		return nil, mapBuildError(r.errorMapper, err)
	}
	return obj, nil
}

// SaveObject persists obj through the configured object store.
func (r *Runtime) SaveObject(ctx context.Context, caller *RequestContext, obj *Object) error {
	startedAt := time.Now()
	err := r.saveObject(ctx, caller, obj)
	r.observeOperation(ctx, startedAt, "object.save", err, map[string]any{
		"object_type": objectTypeName(obj),
	})
	return mapBuildError(r.errorMapper, err)
}

func (r *Runtime) saveObject(ctx context.Context, caller *RequestContext, obj *Object) error {
	if r.objectStore == nil {
		return fmt.Errorf("core: object store is not configured")
	}
	if obj == nil {
		return fmt.Errorf("core: object is required")
	}
	return r.objectStore.SaveObject(ctx, caller, obj)
}

// GetObject loads the stored object of the given type and logical id.
func (r *Runtime) GetObject(ctx context.Context, caller *RequestContext, typeName string, objectID string) (*Object, error) {
	startedAt := time.Now()
	obj, err := r.getObject(ctx, caller, typeName, objectID)
	r.observeOperation(ctx, startedAt, "object.get", err, map[string]any{
		"object_type": strings.TrimSpace(typeName),
		"object_id":   strings.TrimSpace(objectID),
	})
	if err != nil {
		return nil, mapBuildError(r.errorMapper, err)
	}
	return obj, nil
}

func (r *Runtime) getObject(ctx context.Context, caller *RequestContext, typeName string, objectID string) (*Object, error) {
	if r.objectStore == nil {
		return nil, fmt.Errorf("core: object store is not configured")
	}
	return r.objectStore.GetObject(ctx, caller, strings.TrimSpace(typeName), strings.TrimSpace(objectID))
}

// DeleteObject removes the stored object of the given type and logical id.
func (r *Runtime) DeleteObject(ctx context.Context, caller *RequestContext, typeName string, objectID string) error {
	startedAt := time.Now()
	err := r.deleteObject(ctx, caller, typeName, objectID)
	r.observeOperation(ctx, startedAt, "object.delete", err, map[string]any{
		"object_type": strings.TrimSpace(typeName),
		"object_id":   strings.TrimSpace(objectID),
	})
	return mapBuildError(r.errorMapper, err)
}

func (r *Runtime) deleteObject(ctx context.Context, caller *RequestContext, typeName string, objectID string) error {
	if r.objectStore == nil {
		return fmt.Errorf("core: object store is not configured")
	}
	return r.objectStore.DeleteObject(ctx, caller, strings.TrimSpace(typeName), strings.TrimSpace(objectID))
}

func objectTypeName(obj *Object) string {
	if obj == nil {
		return ""
	}
	return obj.TypeName()
}
