package sqlstore

import (
	"time"

	"github.com/uptrace/bun"
)

type objectRecord struct {
	bun.BaseModel `bun:"table:object_records,alias:obj"`

	ID         string         `bun:"id,pk"`
	ObjectType string         `bun:"object_type,notnull"`
	ObjectID   string         `bun:"object_id,notnull"`
	Namespace  string         `bun:"namespace,notnull"`
	Version    string         `bun:"version,notnull"`
	Payload    map[string]any `bun:"payload,type:jsonb,notnull"`
	CreatedAt  time.Time      `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt  time.Time      `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}
