package objects

import (
	"fmt"

	objectscommand "github.com/goliatone/go-objects/command"
	"github.com/goliatone/go-objects/core"
	objectsquery "github.com/goliatone/go-objects/query"
)

type CommandQueryService interface {
	objectscommand.MutatingService
	objectsquery.ObjectReader
}

type Commands struct {
	CreateObject *objectscommand.CreateObjectCommand
	SaveObject   *objectscommand.SaveObjectCommand
	DeleteObject *objectscommand.DeleteObjectCommand
}

type Queries struct {
	GetObject     *objectsquery.GetObjectQuery
	HydrateObject *objectsquery.HydrateObjectQuery
	ListTypeNames *objectsquery.ListTypeNamesQuery
}

type Facade struct {
	service  CommandQueryService
	commands Commands
	queries  Queries
}

type FacadeOption func(*facadeOptions)

type facadeOptions struct {
	hydrator       objectsquery.ObjectHydrator
	typeNameReader objectsquery.TypeNameReader
}

func WithHydrator(hydrator objectsquery.ObjectHydrator) FacadeOption {
	return func(options *facadeOptions) {
		options.hydrator = hydrator
	}
}

func WithTypeNameReader(reader objectsquery.TypeNameReader) FacadeOption {
	return func(options *facadeOptions) {
		options.typeNameReader = reader
	}
}

func NewFacade(service CommandQueryService, opts ...FacadeOption) (*Facade, error) {
	if service == nil {
		return nil, fmt.Errorf("objects: command/query service is required")
	}
	cfg := facadeOptions{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	hydrator := cfg.hydrator
	if hydrator == nil {
		hydrator = resolveHydrator(service)
	}
	typeNameReader := cfg.typeNameReader
	if typeNameReader == nil {
		typeNameReader = resolveTypeNameReader(service)
	}

	facade := &Facade{service: service}
	facade.commands = Commands{
		CreateObject: objectscommand.NewCreateObjectCommand(service),
		SaveObject:   objectscommand.NewSaveObjectCommand(service),
		DeleteObject: objectscommand.NewDeleteObjectCommand(service),
	}
	facade.queries = Queries{
		GetObject:     objectsquery.NewGetObjectQuery(service),
		HydrateObject: objectsquery.NewHydrateObjectQuery(hydrator),
		ListTypeNames: objectsquery.NewListTypeNamesQuery(typeNameReader),
	}

	return facade, nil
}

func (f *Facade) Commands() Commands {
	if f == nil {
		return Commands{}
	}
	return f.commands
}

func (f *Facade) Queries() Queries {
	if f == nil {
		return Queries{}
	}
	return f.queries
}

func (f *Facade) Service() CommandQueryService {
	if f == nil {
		return nil
	}
	return f.service
}

func resolveHydrator(service CommandQueryService) objectsquery.ObjectHydrator {
	if service == nil {
		return nil
	}
	if hydrator, ok := service.(objectsquery.ObjectHydrator); ok {
		return hydrator
	}
	provider, ok := service.(interface {
		Codec() *core.Codec
	})
	if !ok {
		return nil
	}
	codec := provider.Codec()
	if codec == nil {
		return nil
	}
	return codec
}

func resolveTypeNameReader(service CommandQueryService) objectsquery.TypeNameReader {
	if service == nil {
		return nil
	}
	if reader, ok := service.(objectsquery.TypeNameReader); ok {
		return reader
	}
	provider, ok := service.(interface {
		Registry() *core.TypeRegistry
	})
	if !ok {
		return nil
	}
	registry := provider.Registry()
	if registry == nil {
		return nil
	}
	return registry
}
