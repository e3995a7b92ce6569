package query

import (
	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-objects/core"
)

var (
	_ gocmd.Querier[GetObjectMessage, *core.Object]     = (*GetObjectQuery)(nil)
	_ gocmd.Querier[HydrateObjectMessage, *core.Object] = (*HydrateObjectQuery)(nil)
	_ gocmd.Querier[ListTypeNamesMessage, []string]     = (*ListTypeNamesQuery)(nil)

	_ ObjectHydrator = (*core.Codec)(nil)
	_ TypeNameReader = (*core.TypeRegistry)(nil)
)
