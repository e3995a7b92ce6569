package sqlstore

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/goliatone/go-objects/core"
	repositorycache "github.com/goliatone/go-repository-cache/cache"
)

const objectCacheKeyPrefix = "go-objects::object::v1"

// CachedObjectStore layers a read-through cache over a base object store.
// Cached entries hold the primitive payload, not object instances, so every
// hit is rehydrated fresh through the codec and callers never share mutable
// state.
type CachedObjectStore struct {
	base  core.ObjectStore
	codec *core.Codec
	cache repositorycache.CacheService
}

func NewCachedObjectStore(base core.ObjectStore, codec *core.Codec, cacheService repositorycache.CacheService) (*CachedObjectStore, error) {
	if base == nil {
		return nil, fmt.Errorf("sqlstore: base object store is required")
	}
	if codec == nil {
		return nil, fmt.Errorf("sqlstore: object codec is required")
	}
	if cacheService == nil {
		return nil, fmt.Errorf("sqlstore: object cache service is required")
	}
	return &CachedObjectStore{base: base, codec: codec, cache: cacheService}, nil
}

// ObjectCacheKey returns the deterministic cache key contract for object
// reads: go-objects::object::v1::<object_type>::<object_id> with each
// segment URL-path escaped.
func ObjectCacheKey(typeName string, objectID string) (string, error) {
	typeName = strings.TrimSpace(typeName)
	objectID = strings.TrimSpace(objectID)
	if typeName == "" || objectID == "" {
		return "", fmt.Errorf("sqlstore: object type and id are required")
	}
	segments := []string{url.PathEscape(typeName), url.PathEscape(objectID)}
	return strings.Join(append([]string{objectCacheKeyPrefix}, segments...), "::"), nil
}

func (s *CachedObjectStore) SaveObject(ctx context.Context, caller *core.RequestContext, obj *core.Object) error {
	if s == nil || s.base == nil || s.cache == nil {
		return fmt.Errorf("sqlstore: cached object store is not configured")
	}
	objectID, err := logicalObjectID(obj)
	if err != nil {
		return err
	}
	if err := s.base.SaveObject(ctx, caller, obj); err != nil {
		return err
	}
	cacheKey, err := ObjectCacheKey(obj.TypeName(), objectID)
	if err != nil {
		return err
	}
	return s.cache.Delete(ctx, cacheKey)
}

func (s *CachedObjectStore) GetObject(ctx context.Context, caller *core.RequestContext, typeName string, objectID string) (*core.Object, error) {
	if s == nil || s.base == nil || s.cache == nil {
		return nil, fmt.Errorf("sqlstore: cached object store is not configured")
	}
	cacheKey, err := ObjectCacheKey(typeName, objectID)
	if err != nil {
		return nil, err
	}

	payload, err := repositorycache.GetOrFetch(ctx, s.cache, cacheKey, func(ctx context.Context) (map[string]any, error) {
		obj, fetchErr := s.base.GetObject(ctx, caller, typeName, objectID)
		if fetchErr != nil {
			return nil, fetchErr
		}
		return s.codec.ToPrimitive(obj)
	})
	if err != nil {
		return nil, err
	}

	obj, err := s.codec.FromPrimitive(payload, caller)
	if err != nil {
		return nil, err
	}
	obj.ResetChanges()
	return obj, nil
}

func (s *CachedObjectStore) DeleteObject(ctx context.Context, caller *core.RequestContext, typeName string, objectID string) error {
	if s == nil || s.base == nil || s.cache == nil {
		return fmt.Errorf("sqlstore: cached object store is not configured")
	}
	if err := s.base.DeleteObject(ctx, caller, typeName, objectID); err != nil {
		return err
	}
	cacheKey, err := ObjectCacheKey(typeName, objectID)
	if err != nil {
		return err
	}
	return s.cache.Delete(ctx, cacheKey)
}
