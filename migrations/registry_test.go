package migrations

import (
	"context"
	"database/sql"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	objects "github.com/goliatone/go-objects"
	_ "github.com/mattn/go-sqlite3"
)

func TestFilesystems_ReturnsPostgresAndSQLite(t *testing.T) {
	filesystems, err := Filesystems()
	if err != nil {
		t.Fatalf("filesystems: %v", err)
	}
	if len(filesystems) != 2 {
		t.Fatalf("expected 2 filesystems, got %d", len(filesystems))
	}

	var postgresFound bool
	var sqliteFound bool
	for _, entry := range filesystems {
		matches, globErr := fs.Glob(entry.FS, "*.up.sql")
		if globErr != nil {
			t.Fatalf("glob %s: %v", entry.Dialect, globErr)
		}
		if len(matches) == 0 {
			t.Fatalf("expected %s migration files, got none", entry.Dialect)
		}
		switch entry.Dialect {
		case DialectPostgres:
			postgresFound = true
		case DialectSQLite:
			sqliteFound = true
		}
	}

	if !postgresFound {
		t.Fatalf("expected postgres filesystem")
	}
	if !sqliteFound {
		t.Fatalf("expected sqlite filesystem")
	}
}

func TestRegister_UsesValidationTargets(t *testing.T) {
	var calls []string
	var labels []string
	_, err := Register(context.Background(), func(_ context.Context, dialect string, label string, _ fs.FS) error {
		calls = append(calls, dialect)
		labels = append(labels, label)
		return nil
	}, WithValidationTargets(DialectSQLite))
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if len(calls) != 1 {
		t.Fatalf("expected 1 registration call, got %d", len(calls))
	}
	if calls[0] != DialectSQLite {
		t.Fatalf("expected sqlite registration, got %q", calls[0])
	}
	if labels[0] != "go-objects" {
		t.Fatalf("expected default source label go-objects, got %q", labels[0])
	}
}

func TestRegister_NilRegisterFunc(t *testing.T) {
	_, err := Register(context.Background(), nil)
	if err == nil {
		t.Fatalf("expected error for nil register function")
	}
}

func TestObjectRecordsMigrationPair_ExistsForBothDialects(t *testing.T) {
	root := objects.GetCoreMigrationsFS()
	paths := []string{
		"data/sql/migrations/20260831000000_create_object_records.up.sql",
		"data/sql/migrations/20260831000000_create_object_records.down.sql",
		"data/sql/migrations/sqlite/20260831000000_create_object_records.up.sql",
		"data/sql/migrations/sqlite/20260831000000_create_object_records.down.sql",
	}
	for _, migrationPath := range paths {
		content, err := fs.ReadFile(root, migrationPath)
		if err != nil {
			t.Fatalf("read migration %s: %v", migrationPath, err)
		}
		if strings.TrimSpace(string(content)) == "" {
			t.Fatalf("expected migration %s to have SQL content", migrationPath)
		}
	}
}

func TestSQLiteObjectRecordsMigration_ApplyAndRollback(t *testing.T) {
	db, err := sql.Open("sqlite3", "file:migrations-object-records?mode=memory&cache=shared&_foreign_keys=on")
	if err != nil {
		t.Fatalf("open sqlite db: %v", err)
	}
	defer func() { _ = db.Close() }()

	root := objects.GetCoreMigrationsFS()
	sqliteMigrations, err := fs.Sub(root, "data/sql/migrations/sqlite")
	if err != nil {
		t.Fatalf("resolve sqlite migrations: %v", err)
	}

	ctx := context.Background()
	if err := execSQLMigration(ctx, db, sqliteMigrations, "20260831000000_create_object_records.up.sql"); err != nil {
		t.Fatalf("apply object records migration up: %v", err)
	}

	insertStatement := `
		INSERT INTO object_records (
			id,
			object_type,
			object_id,
			namespace,
			version,
			payload,
			created_at,
			updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	if _, err := db.ExecContext(ctx, insertStatement,
		"rec-1", "Widget", "wid-1", "objects", "1.5", "{}",
		"2026-08-31T00:00:00Z", "2026-08-31T00:00:00Z",
	); err != nil {
		t.Fatalf("insert seed row: %v", err)
	}

	if _, err := db.ExecContext(ctx, insertStatement,
		"rec-2", "Widget", "wid-1", "objects", "1.5", "{}",
		"2026-08-31T00:00:00Z", "2026-08-31T00:00:00Z",
	); err == nil {
		t.Fatalf("expected duplicate (object_type, object_id) insert to fail")
	}

	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM object_records`).Scan(&count); err != nil {
		t.Fatalf("count object records: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 record after duplicate rejection, got %d", count)
	}

	if err := execSQLMigration(ctx, db, sqliteMigrations, "20260831000000_create_object_records.down.sql"); err != nil {
		t.Fatalf("apply object records migration down: %v", err)
	}

	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM object_records`).Scan(&count); err == nil {
		t.Fatalf("expected object_records table to be dropped")
	}
}

func execSQLMigration(ctx context.Context, db *sql.DB, fsys fs.FS, filename string) error {
	content, err := fs.ReadFile(fsys, filepath.Clean(filename))
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, string(content))
	return err
}
