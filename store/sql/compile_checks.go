package sqlstore

import "github.com/goliatone/go-objects/core"

var (
	_ core.ObjectStore            = (*ObjectStore)(nil)
	_ core.ObjectStore            = (*CachedObjectStore)(nil)
	_ core.Persister              = (*ObjectStore)(nil)
	_ core.AttributeLoader        = (*ObjectStore)(nil)
	_ core.StoreProvider          = (*RepositoryFactory)(nil)
	_ core.RepositoryStoreFactory = (*RepositoryFactory)(nil)
)
