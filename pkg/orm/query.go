package orm

import (
	"context"
	"time"

	"github.com/shashiranjanraj/storefront/pkg/cache"
	"github.com/shashiranjanraj/storefront/pkg/database"
	"gorm.io/gorm"
)

type Query struct {
	db *gorm.DB
}

// DB wraps the shared connection opened by database.Connect.
func DB() *Query {
	return &Query{db: database.DB}
}

// New wraps an explicit connection (or transaction handle).
func New(db *gorm.DB) *Query {
	if db == nil {
		db = database.DB
	}
	return &Query{db: db}
}

// Gorm exposes the underlying handle for calls the builder does not cover.
func (q *Query) Gorm() *gorm.DB {
	return q.db
}

func (q *Query) WithContext(ctx context.Context) *Query {
	return &Query{db: q.fork().WithContext(ctx)}
}

func (q *Query) Model(v interface{}) *Query {
	return &Query{db: q.fork().Model(v)}
}

func (q *Query) Where(query interface{}, args ...interface{}) *Query {
	return &Query{db: q.fork().Where(query, args...)}
}

func (q *Query) Order(value interface{}) *Query {
	return &Query{db: q.fork().Order(value)}
}

func (q *Query) Preload(query string, args ...interface{}) *Query {
	return &Query{db: q.fork().Preload(query, args...)}
}

// Page restricts the query to the rows of p.
func (q *Query) Page(p Pagination) *Query {
	return &Query{db: q.fork().Offset(p.Offset()).Limit(p.PageSize)}
}

// fork clones the current statement so a Query can be extended or executed
// more than once without the branches seeing each other's clauses.
func (q *Query) fork() *gorm.DB {
	return q.db.Session(&gorm.Session{})
}

func (q *Query) Get(dest interface{}) error {
	return q.fork().Find(dest).Error
}

func (q *Query) First(dest interface{}) error {
	return q.fork().First(dest).Error
}

func (q *Query) Count() (int64, error) {
	var n int64
	err := q.fork().Count(&n).Error
	return n, err
}

func (q *Query) Create(v interface{}) error {
	return q.fork().Create(v).Error
}

func (q *Query) Save(v interface{}) error {
	return q.fork().Save(v).Error
}

// Delete removes rows matching v and the current conditions, reporting how
// many rows went away.
func (q *Query) Delete(v interface{}, conds ...interface{}) (int64, error) {
	res := q.fork().Delete(v, conds...)
	return res.RowsAffected, res.Error
}

// Transaction runs fn inside a database transaction. Returning an error from
// fn rolls everything back.
func (q *Query) Transaction(fn func(tx *Query) error) error {
	return q.fork().Transaction(func(tx *gorm.DB) error {
		return fn(&Query{db: tx})
	})
}

func (q *Query) Cache(key string, ttl time.Duration, dest interface{}) error {
	if cache.Get(key, dest) {
		return nil
	}

	err := q.fork().Find(dest).Error
	if err != nil {
		return err
	}

	cache.Set(key, dest, ttl) //nolint:errcheck
	return nil
}
