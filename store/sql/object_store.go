package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-objects/core"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ObjectStore persists encoded object payloads keyed by type name and the
// object's logical "id" field. It writes the codec's primitive form whole,
// so payloads written by one schema revision remain readable by any
// compatible revision.
type ObjectStore struct {
	db    *bun.DB
	repo  repository.Repository[*objectRecord]
	codec *core.Codec
}

func NewObjectStore(db *bun.DB, repo repository.Repository[*objectRecord], codec *core.Codec) (*ObjectStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	if repo == nil {
		return nil, fmt.Errorf("sqlstore: object repository is required")
	}
	if codec == nil {
		return nil, fmt.Errorf("sqlstore: object codec is required")
	}
	return &ObjectStore{db: db, repo: repo, codec: codec}, nil
}

func (s *ObjectStore) SaveObject(ctx context.Context, caller *core.RequestContext, obj *core.Object) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: object store is not configured")
	}
	if obj == nil {
		return fmt.Errorf("sqlstore: object is required")
	}
	objectID, err := logicalObjectID(obj)
	if err != nil {
		return err
	}

	payload, err := s.codec.ToPrimitive(obj)
	if err != nil {
		return err
	}
	now := time.Now().UTC()

	err = s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		record, err := findObjectRecordTx(ctx, tx, obj.TypeName(), objectID)
		if err != nil {
			return err
		}
		created := false
		if record == nil {
			created = true
			record = &objectRecord{
				ID:         uuid.NewString(),
				ObjectType: obj.TypeName(),
				ObjectID:   objectID,
				CreatedAt:  now,
			}
		}
		record.Namespace = s.codec.Namespace()
		record.Version = obj.Version()
		record.Payload = payload
		record.UpdatedAt = now

		if created {
			if _, insertErr := tx.NewInsert().Model(record).Exec(ctx); insertErr != nil {
				return insertErr
			}
			return nil
		}
		if _, updateErr := tx.NewUpdate().
			Model(record).
			Where("id = ?", record.ID).
			Exec(ctx); updateErr != nil {
			return updateErr
		}
		return nil
	})
	if err != nil {
		return err
	}

	obj.ResetChanges()
	return nil
}

func (s *ObjectStore) GetObject(ctx context.Context, caller *core.RequestContext, typeName string, objectID string) (*core.Object, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("sqlstore: object store is not configured")
	}
	typeName = strings.TrimSpace(typeName)
	objectID = strings.TrimSpace(objectID)
	if typeName == "" || objectID == "" {
		return nil, fmt.Errorf("sqlstore: object type and id are required")
	}

	record := &objectRecord{}
	err := s.db.NewSelect().
		Model(record).
		Where("?TableAlias.object_type = ?", typeName).
		Where("?TableAlias.object_id = ?", objectID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("sqlstore: object not found: %s/%s", typeName, objectID)
		}
		return nil, err
	}

	obj, err := s.codec.FromPrimitive(record.Payload, caller)
	if err != nil {
		return nil, err
	}
	obj.ResetChanges()
	return obj, nil
}

func (s *ObjectStore) DeleteObject(ctx context.Context, caller *core.RequestContext, typeName string, objectID string) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: object store is not configured")
	}
	typeName = strings.TrimSpace(typeName)
	objectID = strings.TrimSpace(objectID)
	if typeName == "" || objectID == "" {
		return fmt.Errorf("sqlstore: object type and id are required")
	}

	res, err := s.db.NewDelete().
		Model((*objectRecord)(nil)).
		Where("object_type = ?", typeName).
		Where("object_id = ?", objectID).
		Exec(ctx)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("sqlstore: object not found: %s/%s", typeName, objectID)
	}
	return nil
}

// Save lets stored object types use this store as their definition-level
// persister.
func (s *ObjectStore) Save(ctx context.Context, caller *core.RequestContext, obj *core.Object) error {
	return s.SaveObject(ctx, caller, obj)
}

// LoadAttribute hydrates a single unset attribute from the stored payload.
// The loaded field is not marked changed.
func (s *ObjectStore) LoadAttribute(ctx context.Context, obj *core.Object, name string) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: object store is not configured")
	}
	if obj == nil {
		return fmt.Errorf("sqlstore: object is required")
	}
	objectID, err := logicalObjectID(obj)
	if err != nil {
		return err
	}
	stored, err := s.GetObject(ctx, obj.Caller(), obj.TypeName(), objectID)
	if err != nil {
		return err
	}
	set, err := stored.AttrIsSet(name)
	if err != nil {
		return err
	}
	if !set {
		return fmt.Errorf("sqlstore: stored %s/%s has no %s value", obj.TypeName(), objectID, name)
	}
	value, err := stored.Get(ctx, name)
	if err != nil {
		return err
	}
	if err := obj.Set(name, value); err != nil {
		return err
	}
	obj.ResetChanges(name)
	return nil
}

func findObjectRecordTx(ctx context.Context, tx bun.Tx, typeName string, objectID string) (*objectRecord, error) {
	record := &objectRecord{}
	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.object_type = ?", typeName).
		Where("?TableAlias.object_id = ?", objectID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return record, nil
}

func logicalObjectID(obj *core.Object) (string, error) {
	set, err := obj.AttrIsSet("id")
	if err != nil {
		return "", fmt.Errorf("sqlstore: %s has no id field: %w", obj.TypeName(), err)
	}
	if !set {
		return "", fmt.Errorf("sqlstore: %s id field is not set", obj.TypeName())
	}
	value, ok := obj.AsDict()["id"].(string)
	if !ok || strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("sqlstore: %s id field must be a non-empty string", obj.TypeName())
	}
	return strings.TrimSpace(value), nil
}
