package cache

import (
	"context"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/jmoiron/sqlx"

	"github.com/Konsultn-Engineering/querykit/utils"
)

const DefaultStatementCacheSize = 256

// Preparer is satisfied by *sqlx.DB and *sqlx.Tx.
type Preparer interface {
	PrepareNamedContext(ctx context.Context, query string) (*sqlx.NamedStmt, error)
}

type entry struct {
	sql  string
	stmt *sqlx.NamedStmt

	mu      sync.Mutex
	refs    int
	evicted bool
}

func (e *entry) acquire() {
	e.mu.Lock()
	e.refs++
	e.mu.Unlock()
}

func (e *entry) release() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.refs--
	if e.evicted && e.refs == 0 {
		_ = e.stmt.Close()
	}
}

func (e *entry) evict() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.evicted = true
	if e.refs == 0 {
		_ = e.stmt.Close()
	}
}

// StatementCache keeps prepared named statements keyed by the fingerprint of their SQL.
// Evicted statements are closed once the last borrower releases them.
type StatementCache struct {
	cache *lru.Cache[uint64, *entry]
	mu    sync.Mutex
}

func NewStatementCache(size int) *StatementCache {
	if size <= 0 {
		size = DefaultStatementCacheSize
	}
	cache, _ := lru.NewWithEvict(size, func(_ uint64, e *entry) {
		e.evict()
	})

	return &StatementCache{
		cache: cache,
	}
}

// GetOrPrepare returns the cached statement for query, preparing it on a miss.
// The caller must call release when done with the statement.
func (s *StatementCache) GetOrPrepare(ctx context.Context, db Preparer, query string) (stmt *sqlx.NamedStmt, release func(), err error) {
	key := utils.FingerprintString(query)

	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.cache.Get(key); ok {
		if e.sql == query {
			e.acquire()
			return e.stmt, e.release, nil
		}
		// fingerprint collision: the older statement gives way
		s.cache.Remove(key)
	}

	prepared, err := db.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, nil, err
	}

	e := &entry{sql: query, stmt: prepared}
	e.acquire()
	s.cache.Add(key, e)
	return e.stmt, e.release, nil
}

func (s *StatementCache) Len() int {
	return s.cache.Len()
}

// Close closes every cached statement not currently borrowed; borrowed ones close on release.
func (s *StatementCache) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Purge()
	return nil
}
