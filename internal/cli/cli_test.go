package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseCondition(t *testing.T) {
	tests := []struct {
		in   string
		want Condition
	}{
		{"age:>:18", Condition{"age", ">", int64(18)}},
		{"name:=:bob", Condition{"name", "=", "bob"}},
		{"price:<=:9.5", Condition{"price", "<=", 9.5}},
		{"deleted_at:is:null", Condition{"deleted_at", "IS", nil}},
		{"active:=:true", Condition{"active", "=", true}},
		{"id:in:1, 2,x", Condition{"id", "IN", []any{int64(1), int64(2), "x"}}},
		{"note:like:a:b", Condition{"note", "LIKE", "a:b"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCondition(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"age", "age:>", ":=:1", "age::1"} {
		_, err := ParseCondition(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseOrder(t *testing.T) {
	col, dir := ParseOrder("name:desc")
	assert.Equal(t, "name", col)
	assert.Equal(t, "desc", dir)

	col, dir = ParseOrder("id")
	assert.Equal(t, "id", col)
	assert.Equal(t, "asc", dir)
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "1 row", plural("row", 1))
	assert.Equal(t, "47 rows", plural("row", 47))
	assert.Equal(t, "0 bindings", plural("binding", 0))
}

func TestExplain(t *testing.T) {
	out, err := execute(t, "explain", "users",
		"--columns", "id,name",
		"--where", "age:>:18",
		"--order", "name:desc",
		"--limit", "10")
	require.NoError(t, err)

	want := "SQL\n" +
		"  SELECT `id`, `name` FROM `users` WHERE `age` > :age_0 ORDER BY `name` DESC LIMIT 10\n" +
		"Bindings (1 binding)\n" +
		"  age_0 = 18\n" +
		"Debug\n" +
		"  SELECT `id`, `name` FROM `users` WHERE `age` > 18 ORDER BY `name` DESC LIMIT 10\n"
	assert.Equal(t, want, out)
}

func TestExplainPostgres(t *testing.T) {
	out, err := execute(t, "explain", "orders", "--dialect", "postgres", "-w", "status:in:paid,shipped")
	require.NoError(t, err)
	assert.Contains(t, out, `SELECT * FROM "orders" WHERE "status" IN (@status_0, @status_1)`)
	assert.Contains(t, out, "Bindings (2 bindings)")
}

func TestExplainErrors(t *testing.T) {
	_, err := execute(t, "explain", "users", "--where", "age:~:1")
	assert.Error(t, err)

	_, err = execute(t, "explain", "users", "--dialect", "oracle")
	assert.EqualError(t, err, `unknown dialect "oracle"`)

	_, err = execute(t, "explain", "users", "--limit", "-1")
	assert.Error(t, err)
}

func seedSQLite(t *testing.T, path string, n int) {
	t.Helper()
	db, err := sqlx.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	db.MustExec(`CREATE TABLE items (id INTEGER PRIMARY KEY, name TEXT NOT NULL)`)
	for i := 1; i <= n; i++ {
		db.MustExec(`INSERT INTO items (id, name) VALUES (?, ?)`, i, fmt.Sprintf("item-%d", i))
	}
}

func sqliteConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	dbPath := filepath.Join(dir, "items.db")
	seedSQLite(t, dbPath, 47)

	cfgPath := filepath.Join(dir, "querykit.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("driver: sqlite\nconnection:\n  database: "+dbPath+"\n"), 0o600))
	return cfgPath
}

func TestCount(t *testing.T) {
	cfg := sqliteConfig(t)

	out, err := execute(t, "count", "items", "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, "47 rows\n", out)

	out, err = execute(t, "count", "items", "--config", cfg, "--where", "id:<=:1")
	require.NoError(t, err)
	assert.Equal(t, "1 row\n", out)
}

func TestPage(t *testing.T) {
	cfg := sqliteConfig(t)

	out, err := execute(t, "page", "items", "--config", cfg, "--order", "id", "--size", "15", "--page", "4")
	require.NoError(t, err)
	assert.Equal(t, "page 4 of 4 (47 rows, 4 pages)\n"+
		"id=46  name=item-46\n"+
		"id=47  name=item-47\n", out)

	out, err = execute(t, "page", "items", "--config", cfg, "--columns", "name", "--order", "id:desc", "--size", "1")
	require.NoError(t, err)
	assert.Equal(t, "page 1 of 47 (47 rows, 47 pages)\nname=item-47\n", out)
}

func TestUnknownDriver(t *testing.T) {
	cfg := sqliteConfig(t)

	_, err := execute(t, "count", "items", "--config", cfg, "--driver", "oracle")
	assert.EqualError(t, err, "provider oracle not registered")
}
