package database

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteConn(t *testing.T) *SQLXConn {
	t.Helper()
	db, err := sqlx.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`CREATE TABLE users (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT NOT NULL, age INTEGER)`)
	require.NoError(t, err)

	conn := NewSQLXConn(db, 8)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func run(t *testing.T, conn Conn, sql string, mode ExecMode, args map[string]any) *Result {
	t.Helper()
	ctx := context.Background()
	stmt, err := conn.Prepare(ctx, sql)
	require.NoError(t, err)
	defer stmt.Close()

	for name, v := range args {
		stmt.Bind(name, v)
	}
	res, err := stmt.Execute(ctx, mode)
	require.NoError(t, err)
	return res
}

func TestSQLXConnExecAndQuery(t *testing.T) {
	conn := newSQLiteConn(t)

	res := run(t, conn, `INSERT INTO "users" ("name", "age") VALUES (:name_0, :age_1)`, ModeExec,
		map[string]any{"name_0": "ada", "age_1": 36})
	assert.Equal(t, int64(1), res.Affected)
	require.NotNil(t, res.LastInsertID)
	assert.Equal(t, int64(1), *res.LastInsertID)

	run(t, conn, `INSERT INTO "users" ("name", "age") VALUES (:name_0, :age_1)`, ModeExec,
		map[string]any{"name_0": "bob", "age_1": 17})

	res = run(t, conn, `SELECT "id", "name" FROM "users" WHERE "age" > :age_0 ORDER BY "name" ASC`, ModeQuery,
		map[string]any{"age_0": 18})
	assert.Equal(t, []string{"id", "name"}, res.Columns)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "ada", res.Rows[0]["name"])
	assert.Equal(t, int64(1), res.Rows[0]["id"])
}

func TestSQLXConnReusesStatements(t *testing.T) {
	conn := newSQLiteConn(t)
	query := `SELECT COUNT(*) AS n FROM "users" WHERE "age" > :age_0`

	run(t, conn, query, ModeQuery, map[string]any{"age_0": 1})
	run(t, conn, query, ModeQuery, map[string]any{"age_0": 2})

	assert.Equal(t, 1, conn.stmts.Len())
}

func TestSQLXConnPrepareError(t *testing.T) {
	conn := newSQLiteConn(t)
	_, err := conn.Prepare(context.Background(), `SELECT * FROM "missing"`)
	assert.Error(t, err)
}

func TestSQLXConnExecuteError(t *testing.T) {
	conn := newSQLiteConn(t)
	ctx := context.Background()

	stmt, err := conn.Prepare(ctx, `INSERT INTO "users" ("name") VALUES (:name_0)`)
	require.NoError(t, err)
	defer stmt.Close()

	stmt.Bind("name_0", nil)
	_, err = stmt.Execute(ctx, ModeExec)
	assert.Error(t, err)
}

func TestExecModeString(t *testing.T) {
	assert.Equal(t, "query", ModeQuery.String())
	assert.Equal(t, "exec", ModeExec.String())
}
