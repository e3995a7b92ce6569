package query

import (
	"context"

	"github.com/goliatone/go-objects/core"
)

// ObjectReader is the read surface the object queries delegate to. The
// object runtime satisfies it.
type ObjectReader interface {
	GetObject(ctx context.Context, caller *core.RequestContext, typeName string, objectID string) (*core.Object, error)
}

// ObjectHydrator rebuilds instances from encoded payloads. The primitive
// codec satisfies it.
type ObjectHydrator interface {
	FromPrimitive(payload map[string]any, caller *core.RequestContext) (*core.Object, error)
}

// TypeNameReader lists registered object type names. The type registry
// satisfies it.
type TypeNameReader interface {
	Names() []string
}

type GetObjectQuery struct {
	reader ObjectReader
}

func NewGetObjectQuery(reader ObjectReader) *GetObjectQuery {
	return &GetObjectQuery{reader: reader}
}

func (q *GetObjectQuery) Query(ctx context.Context, msg GetObjectMessage) (*core.Object, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: object reader is required")
	}
	return q.reader.GetObject(ctx, msg.Caller, msg.TypeName, msg.ObjectID)
}

type HydrateObjectQuery struct {
	hydrator ObjectHydrator
}

func NewHydrateObjectQuery(hydrator ObjectHydrator) *HydrateObjectQuery {
	return &HydrateObjectQuery{hydrator: hydrator}
}

func (q *HydrateObjectQuery) Query(_ context.Context, msg HydrateObjectMessage) (*core.Object, error) {
	if q == nil || q.hydrator == nil {
		return nil, queryDependencyError("query: object hydrator is required")
	}
	return q.hydrator.FromPrimitive(msg.Payload, msg.Caller)
}

type ListTypeNamesQuery struct {
	reader TypeNameReader
}

func NewListTypeNamesQuery(reader TypeNameReader) *ListTypeNamesQuery {
	return &ListTypeNamesQuery{reader: reader}
}

func (q *ListTypeNamesQuery) Query(_ context.Context, _ ListTypeNamesMessage) ([]string, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: type registry is required")
	}
	return q.reader.Names(), nil
}
