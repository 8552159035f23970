package sqlitemigrate

import (
	"context"
	"database/sql"
	"errors"
	"reflect"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

const journalSchema = `-- +migrate Up
CREATE TABLE games (
    id TEXT PRIMARY KEY,
    seed INTEGER NOT NULL
);
CREATE TABLE steps (
    game_id TEXT NOT NULL REFERENCES games(id),
    seq INTEGER NOT NULL,
    card TEXT NOT NULL,
    PRIMARY KEY (game_id, seq)
);

-- +migrate Down
DROP TABLE steps;
DROP TABLE games;
`

// journalFS mirrors the layout of the embedded game journal migrations.
func journalFS(extra map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{
		"journal/0001_journal.sql": {Data: []byte(journalSchema)},
		"journal/README.md":        {Data: []byte("not a migration")},
		"journal/old/0000_seed.sql": {
			Data: []byte("-- +migrate Up\nCREATE TABLE nested(id TEXT);"),
		},
	}
	for name, body := range extra {
		fsys[name] = &fstest.MapFile{Data: []byte(body)}
	}
	return fsys
}

func TestApplyMigrationsJournalLayout(t *testing.T) {
	t.Parallel()
	db := openInMemoryDB(t)
	ctx := context.Background()

	fsys := journalFS(map[string]string{
		"journal/0002_standings.sql": "-- +migrate Up\nCREATE TABLE standings (game_id TEXT NOT NULL, rank INTEGER NOT NULL);",
	})
	if err := ApplyMigrations(ctx, db, fsys, "journal"); err != nil {
		t.Fatalf("ApplyMigrations() error = %v", err)
	}

	got := appliedNames(t, db)
	want := []string{"journal/0001_journal.sql", "journal/0002_standings.sql"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("applied = %v, want %v", got, want)
	}
	for _, table := range []string{"games", "steps", "standings"} {
		if !tableExists(t, db, table) {
			t.Fatalf("table %s missing", table)
		}
	}
	if tableExists(t, db, "nested") {
		t.Fatal("nested directories must not be migrated")
	}
}

func TestApplyMigrationsOnlyRunsNewFiles(t *testing.T) {
	t.Parallel()
	db := openInMemoryDB(t)
	ctx := context.Background()

	if err := ApplyMigrations(ctx, db, journalFS(nil), "journal"); err != nil {
		t.Fatalf("first apply: %v", err)
	}
	if _, err := db.Exec("INSERT INTO games (id, seed) VALUES ('g1', 7)"); err != nil {
		t.Fatal(err)
	}

	// A second run must not recreate games, or the row above would be lost.
	next := journalFS(map[string]string{
		"journal/0002_games_winner.sql": "-- +migrate Up\nALTER TABLE games ADD COLUMN winner TEXT;",
	})
	if err := ApplyMigrations(ctx, db, next, "journal"); err != nil {
		t.Fatalf("second apply: %v", err)
	}
	if n := queryInt64(t, db, "SELECT COUNT(*) FROM games"); n != 1 {
		t.Fatalf("games rows = %d, want 1", n)
	}
	if n := queryInt64(t, db, "SELECT COUNT(*) FROM schema_migrations"); n != 2 {
		t.Fatalf("migrations = %d, want 2", n)
	}
	if _, err := db.Exec("UPDATE games SET winner = 'alice' WHERE id = 'g1'"); err != nil {
		t.Fatalf("winner column missing: %v", err)
	}
}

func TestApplyMigrationsLeavesFailedFileUnrecorded(t *testing.T) {
	t.Parallel()
	db := openInMemoryDB(t)
	ctx := context.Background()

	broken := journalFS(map[string]string{
		"journal/0002_standings.sql": "-- +migrate Up\nCREAT TABLE standings (rank INTEGER);",
	})
	if err := ApplyMigrations(ctx, db, broken, "journal"); err == nil {
		t.Fatal("expected broken migration to fail")
	}
	if got := appliedNames(t, db); !reflect.DeepEqual(got, []string{"journal/0001_journal.sql"}) {
		t.Fatalf("applied = %v", got)
	}

	fixed := journalFS(map[string]string{
		"journal/0002_standings.sql": "-- +migrate Up\nCREATE TABLE standings (rank INTEGER);",
	})
	if err := ApplyMigrations(ctx, db, fixed, "journal"); err != nil {
		t.Fatalf("apply fixed migration: %v", err)
	}
	if !tableExists(t, db, "standings") {
		t.Fatal("standings missing after fix")
	}
}

func TestApplyMigrationsSkipsEmptyUpSection(t *testing.T) {
	t.Parallel()
	db := openInMemoryDB(t)

	fsys := fstest.MapFS{
		"journal/0001_noop.sql": {Data: []byte("-- +migrate Up\n\n-- +migrate Down\nDROP TABLE games;")},
	}
	if err := ApplyMigrations(context.Background(), db, fsys, "journal"); err != nil {
		t.Fatalf("ApplyMigrations() error = %v", err)
	}
	if got := appliedNames(t, db); len(got) != 0 {
		t.Fatalf("applied = %v, want none", got)
	}
}

func TestApplyMigrationsRejectsBadInput(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	if err := ApplyMigrations(ctx, nil, journalFS(nil), "journal"); err == nil {
		t.Fatal("expected error for nil db")
	}
	db := openInMemoryDB(t)
	if err := ApplyMigrations(ctx, db, journalFS(nil), "missing"); err == nil {
		t.Fatal("expected error for missing root")
	}
}

func TestExtractUpMigration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "no markers", content: "CREATE TABLE games(id);", want: "CREATE TABLE games(id);"},
		{name: "up only", content: "-- +migrate Up\nCREATE TABLE games(id);", want: "\nCREATE TABLE games(id);"},
		{name: "up and down", content: "-- +migrate Up\nA;\n-- +migrate Down\nB;", want: "\nA;\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := ExtractUpMigration(tc.content); got != tc.want {
				t.Fatalf("ExtractUpMigration() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestIsAlreadyExistsError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		err  error
		want bool
	}{
		{err: nil, want: false},
		{err: errors.New("table games already exists"), want: true},
		{err: errors.New("duplicate column name: winner"), want: true},
		{err: errors.New("near \"CREAT\": syntax error"), want: false},
	}
	for _, tc := range tests {
		if got := IsAlreadyExistsError(tc.err); got != tc.want {
			t.Fatalf("IsAlreadyExistsError(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}

func openInMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	// Every pooled connection would get its own empty database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("close db: %v", err)
		}
	})
	return db
}

func appliedNames(t *testing.T, db *sql.DB) []string {
	t.Helper()
	rows, err := db.Query("SELECT name FROM schema_migrations ORDER BY name")
	if err != nil {
		t.Fatalf("list migrations: %v", err)
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatalf("scan migration: %v", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("list migrations: %v", err)
	}
	return names
}

func queryInt64(t *testing.T, db *sql.DB, query string) int64 {
	t.Helper()
	var value int64
	if err := db.QueryRow(query).Scan(&value); err != nil {
		t.Fatalf("query %q: %v", query, err)
	}
	return value
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var found string
	err := db.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", name).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false
	}
	if err != nil {
		t.Fatalf("check table %s: %v", name, err)
	}
	return true
}
