package sqlstore

import (
	"fmt"

	"github.com/goliatone/go-objects/core"
	persistence "github.com/goliatone/go-persistence-bun"
	repository "github.com/goliatone/go-repository-bun"
	repositorycache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"
)

// RepositoryFactory wires object storage over a bun database. With a cache
// service configured the factory serves the cached store; reads fall through
// to SQL on miss either way.
type RepositoryFactory struct {
	db    *bun.DB
	codec *core.Codec
	cache repositorycache.CacheService

	objectStore *ObjectStore
	cachedStore *CachedObjectStore
}

type FactoryOption func(*RepositoryFactory)

func WithCacheService(cacheService repositorycache.CacheService) FactoryOption {
	return func(f *RepositoryFactory) {
		f.cache = cacheService
	}
}

func NewRepositoryFactory(codec *core.Codec, options ...FactoryOption) *RepositoryFactory {
	factory := &RepositoryFactory{codec: codec}
	for _, option := range options {
		if option == nil {
			continue
		}
		option(factory)
	}
	return factory
}

func NewRepositoryFactoryFromPersistence(client *persistence.Client, codec *core.Codec, options ...FactoryOption) (*RepositoryFactory, error) {
	factory := NewRepositoryFactory(codec, options...)
	if _, err := factory.BuildStores(client); err != nil {
		return nil, err
	}
	return factory, nil
}

func NewRepositoryFactoryFromDB(db *bun.DB, codec *core.Codec, options ...FactoryOption) (*RepositoryFactory, error) {
	factory := NewRepositoryFactory(codec, options...)
	if _, err := factory.BuildStores(db); err != nil {
		return nil, err
	}
	return factory, nil
}

func (f *RepositoryFactory) BuildStores(persistenceClient any) (core.StoreProvider, error) {
	if f == nil {
		return nil, fmt.Errorf("sqlstore: repository factory is nil")
	}
	if f.codec == nil {
		return nil, fmt.Errorf("sqlstore: object codec is required")
	}
	if f.db == nil {
		db, err := resolveBunDB(persistenceClient)
		if err != nil {
			return nil, err
		}
		f.db = db
	}
	if f.objectStore != nil {
		return f, nil
	}
	if err := f.initStores(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *RepositoryFactory) ObjectStore() core.ObjectStore {
	if f == nil {
		return nil
	}
	if f.cachedStore != nil {
		return f.cachedStore
	}
	if f.objectStore == nil {
		return nil
	}
	return f.objectStore
}

// SQLObjectStore exposes the uncached store, which also serves as the
// definition-level persister and attribute loader.
func (f *RepositoryFactory) SQLObjectStore() *ObjectStore {
	if f == nil {
		return nil
	}
	return f.objectStore
}

func (f *RepositoryFactory) DB() *bun.DB {
	if f == nil {
		return nil
	}
	return f.db
}

func (f *RepositoryFactory) initStores() error {
	objectRepo := repository.NewRepository[*objectRecord](f.db, objectHandlers())
	if validator, ok := objectRepo.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return fmt.Errorf("sqlstore: invalid object repository wiring: %w", err)
		}
	}

	store, err := NewObjectStore(f.db, objectRepo, f.codec)
	if err != nil {
		return err
	}
	f.objectStore = store

	if f.cache != nil {
		cached, err := NewCachedObjectStore(store, f.codec, f.cache)
		if err != nil {
			return err
		}
		f.cachedStore = cached
	}
	return nil
}

func resolveBunDB(candidate any) (*bun.DB, error) {
	switch typed := candidate.(type) {
	case nil:
		return nil, fmt.Errorf("sqlstore: persistence client is required")
	case *bun.DB:
		return typed, nil
	case interface{ DB() *bun.DB }:
		db := typed.DB()
		if db == nil {
			return nil, fmt.Errorf("sqlstore: persistence client returned nil bun db")
		}
		return db, nil
	default:
		return nil, fmt.Errorf("sqlstore: unsupported persistence client type %T", candidate)
	}
}
