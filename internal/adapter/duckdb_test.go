package adapter

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestDuckDBAdapter_ConnectInMemory(t *testing.T) {
	ctx := context.Background()
	adapter := NewDuckDBAdapter()

	err := adapter.Connect(ctx, Config{Path: ":memory:"})
	if err != nil {
		t.Fatalf("failed to connect to in-memory DuckDB: %v", err)
	}
	defer adapter.Close()
}

func TestDuckDBAdapter_ConnectFileBased(t *testing.T) {
	ctx := context.Background()
	adapter := NewDuckDBAdapter()

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.duckdb")

	err := adapter.Connect(ctx, Config{Path: dbPath})
	if err != nil {
		t.Fatalf("failed to connect to file-based DuckDB: %v", err)
	}
	defer adapter.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestDuckDBAdapter_ExecAndQuery(t *testing.T) {
	ctx := context.Background()
	adapter := NewDuckDBAdapter()

	if err := adapter.Connect(ctx, Config{Path: ":memory:"}); err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	defer adapter.Close()

	if _, err := adapter.Exec(ctx, `CREATE TABLE users (id INTEGER, name VARCHAR)`); err != nil {
		t.Fatalf("failed to create table: %v", err)
	}

	affected, err := adapter.Exec(ctx, `INSERT INTO users VALUES (1, 'alice'), (2, 'bob')`)
	if err != nil {
		t.Fatalf("failed to insert data: %v", err)
	}
	if affected != 2 {
		t.Errorf("rows affected: got %d, want 2", affected)
	}

	rows, err := adapter.Query(ctx, `SELECT id, name FROM users ORDER BY id`)
	if err != nil {
		t.Fatalf("failed to query: %v", err)
	}
	defer rows.Close()

	expected := []struct {
		id   int
		name string
	}{
		{1, "alice"},
		{2, "bob"},
	}

	i := 0
	for rows.Next() {
		var id int
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			t.Fatalf("failed to scan row: %v", err)
		}
		if i >= len(expected) {
			t.Fatalf("unexpected extra row: id=%d, name=%s", id, name)
		}
		if id != expected[i].id || name != expected[i].name {
			t.Errorf("row %d: got (%d, %s), want (%d, %s)", i, id, name, expected[i].id, expected[i].name)
		}
		i++
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("rows iteration error: %v", err)
	}
	if i != len(expected) {
		t.Errorf("row count: got %d, want %d", i, len(expected))
	}
}

func TestDuckDBAdapter_ListTables(t *testing.T) {
	ctx := context.Background()
	adapter := NewDuckDBAdapter()

	if err := adapter.Connect(ctx, Config{Path: ":memory:"}); err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	defer adapter.Close()

	if _, err := adapter.Exec(ctx, `CREATE TABLE b_table (id INTEGER)`); err != nil {
		t.Fatalf("failed to create table: %v", err)
	}
	if _, err := adapter.Exec(ctx, `CREATE TABLE a_table (id INTEGER)`); err != nil {
		t.Fatalf("failed to create table: %v", err)
	}

	names, err := adapter.ListTables(ctx)
	if err != nil {
		t.Fatalf("failed to list tables: %v", err)
	}
	if len(names) != 2 || names[0] != "a_table" || names[1] != "b_table" {
		t.Errorf("table names: got %v, want [a_table b_table]", names)
	}
}

func TestDuckDBAdapter_NotConnected(t *testing.T) {
	ctx := context.Background()
	adapter := NewDuckDBAdapter()

	if _, err := adapter.Exec(ctx, "SELECT 1"); err == nil {
		t.Error("Exec without connect should fail")
	}
	if _, err := adapter.Query(ctx, "SELECT 1"); err == nil {
		t.Error("Query without connect should fail")
	}
}

func TestDuckDBAdapter_DialectName(t *testing.T) {
	if got := NewDuckDBAdapter().DialectName(); got != "duckdb" {
		t.Errorf("DialectName: got %q, want duckdb", got)
	}
}
