package cache

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

type countingPreparer struct {
	db    *sqlx.DB
	calls int
}

func (c *countingPreparer) PrepareNamedContext(ctx context.Context, query string) (*sqlx.NamedStmt, error) {
	c.calls++
	return c.db.PrepareNamedContext(ctx, query)
}

func TestStatementCacheReusesPrepared(t *testing.T) {
	ctx := context.Background()
	p := &countingPreparer{db: openDB(t)}
	c := NewStatementCache(4)

	first, release, err := c.GetOrPrepare(ctx, p, "SELECT :a_0 AS v")
	require.NoError(t, err)
	release()

	second, release, err := c.GetOrPrepare(ctx, p, "SELECT :a_0 AS v")
	require.NoError(t, err)
	defer release()

	assert.Same(t, first, second)
	assert.Equal(t, 1, p.calls)
	assert.Equal(t, 1, c.Len())
}

func TestStatementCacheEvictsLeastRecent(t *testing.T) {
	ctx := context.Background()
	p := &countingPreparer{db: openDB(t)}
	c := NewStatementCache(1)

	held, release, err := c.GetOrPrepare(ctx, p, "SELECT :a_0 AS v")
	require.NoError(t, err)

	_, release2, err := c.GetOrPrepare(ctx, p, "SELECT :b_0 AS v")
	require.NoError(t, err)
	release2()
	assert.Equal(t, 1, c.Len())

	// still usable until released
	var v int
	require.NoError(t, held.GetContext(ctx, &v, map[string]any{"a_0": 3}))
	assert.Equal(t, 3, v)
	release()

	_, release3, err := c.GetOrPrepare(ctx, p, "SELECT :a_0 AS v")
	require.NoError(t, err)
	release3()
	assert.Equal(t, 3, p.calls)
}

func TestStatementCachePrepareError(t *testing.T) {
	c := NewStatementCache(0)
	_, release, err := c.GetOrPrepare(context.Background(), &countingPreparer{db: openDB(t)}, "SELEC nonsense")
	assert.Error(t, err)
	assert.Nil(t, release)
	assert.Equal(t, 0, c.Len())
	assert.NoError(t, c.Close())
}
