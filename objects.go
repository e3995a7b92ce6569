package objects

import "github.com/goliatone/go-objects/core"

type Config = core.Config

type IndirectionConfig = core.IndirectionConfig

type Option = core.Option

type Runtime = core.Runtime

type RequestContext = core.RequestContext
type Definition = core.Definition
type FieldDescriptor = core.FieldDescriptor
type Schema = core.Schema
type Object = core.Object
type List = core.List
type TypeRegistry = core.TypeRegistry
type Codec = core.Codec
type Serializer = core.Serializer
type Dispatcher = core.Dispatcher
type Set = core.Set

type Indirection = core.Indirection
type AttributeLoader = core.AttributeLoader
type Persister = core.Persister
type ObjectStore = core.ObjectStore
type StoreProvider = core.StoreProvider

var (
	WithLogger            = core.WithLogger
	WithLoggerProvider    = core.WithLoggerProvider
	WithErrorFactory      = core.WithErrorFactory
	WithErrorMapper       = core.WithErrorMapper
	WithConfigProvider    = core.WithConfigProvider
	WithOptionsResolver   = core.WithOptionsResolver
	WithRegistry          = core.WithRegistry
	WithIndirection       = core.WithIndirection
	WithObjectStore       = core.WithObjectStore
	WithPersistenceClient = core.WithPersistenceClient
	WithRepositoryFactory = core.WithRepositoryFactory
)

func DefaultConfig() Config {
	return core.DefaultConfig()
}

func New(cfg Config, opts ...Option) (*Runtime, error) {
	return core.New(cfg, opts...)
}
