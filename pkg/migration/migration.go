// Package migration runs and tracks schema migrations.
//
//	func init() {
//	    migration.Register("20260301000000_create_users_table", &CreateUsersTable{})
//	}
//
// From the CLI:
//
//	storefront migrate            // run all pending
//	storefront migrate:rollback   // roll back the last batch
//	storefront migrate:status
package migration

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/shashiranjanraj/storefront/pkg/logger"
	"gorm.io/gorm"
)

// Migration is the interface every migration must implement.
type Migration interface {
	Up(db *gorm.DB) error
	Down(db *gorm.DB) error
}

type migrationRecord struct {
	ID    uint      `gorm:"primaryKey;autoIncrement"`
	Name  string    `gorm:"uniqueIndex;size:255;not null"`
	Batch int       `gorm:"not null"`
	RunAt time.Time `gorm:"autoCreateTime"`
}

func (migrationRecord) TableName() string { return "migrations" }

type registered struct {
	name string
	m    Migration
}

var (
	registryMu sync.Mutex
	registry   []registered
)

// Register adds a migration to the global registry. Names are timestamp
// prefixed so lexical order is chronological order.
func Register(name string, m Migration) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = append(registry, registered{name: name, m: m})
}

func sortedRegistry() []registered {
	registryMu.Lock()
	out := append([]registered(nil), registry...)
	registryMu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// StatusRow describes one registered migration.
type StatusRow struct {
	Name  string
	Ran   bool
	Batch int
}

// Runner executes and tracks migrations.
type Runner struct {
	db  *gorm.DB
	out io.Writer
}

// New creates a Runner; progress lines are written to out (may be nil).
func New(db *gorm.DB, out io.Writer) *Runner {
	if out == nil {
		out = io.Discard
	}
	return &Runner{db: db, out: out}
}

// EnsureTable creates the tracking table if it does not exist.
func (r *Runner) EnsureTable() error {
	return r.db.AutoMigrate(&migrationRecord{})
}

func (r *Runner) ran() (map[string]migrationRecord, error) {
	var rows []migrationRecord
	if err := r.db.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]migrationRecord, len(rows))
	for _, rec := range rows {
		out[rec.Name] = rec
	}
	return out, nil
}

// Run executes all pending migrations as one batch and returns how many ran.
// Each migration and its tracking row commit together.
func (r *Runner) Run() (int, error) {
	if err := r.EnsureTable(); err != nil {
		return 0, fmt.Errorf("migration: ensure table: %w", err)
	}

	done, err := r.ran()
	if err != nil {
		return 0, fmt.Errorf("migration: fetch ran: %w", err)
	}

	batch, err := r.lastBatch()
	if err != nil {
		return 0, err
	}
	batch++

	count := 0
	for _, reg := range sortedRegistry() {
		if _, ok := done[reg.name]; ok {
			continue
		}

		fmt.Fprintf(r.out, "Migrating: %s\n", reg.name)
		err := r.db.Transaction(func(tx *gorm.DB) error {
			if err := reg.m.Up(tx); err != nil {
				return err
			}
			return tx.Create(&migrationRecord{Name: reg.name, Batch: batch}).Error
		})
		if err != nil {
			return count, fmt.Errorf("migration: %s up: %w", reg.name, err)
		}
		count++
	}

	if count == 0 {
		fmt.Fprintln(r.out, "Nothing to migrate.")
	}
	logger.Info("migration: done", "ran", count, "batch", batch)
	return count, nil
}

// Rollback reverses every migration of the most recent batch, newest first.
func (r *Runner) Rollback() (int, error) {
	if err := r.EnsureTable(); err != nil {
		return 0, fmt.Errorf("migration: ensure table: %w", err)
	}

	batch, err := r.lastBatch()
	if err != nil {
		return 0, err
	}
	if batch == 0 {
		fmt.Fprintln(r.out, "Nothing to roll back.")
		return 0, nil
	}

	var records []migrationRecord
	if err := r.db.Where("batch = ?", batch).Order("name desc").Find(&records).Error; err != nil {
		return 0, err
	}

	byName := make(map[string]Migration)
	for _, reg := range sortedRegistry() {
		byName[reg.name] = reg.m
	}

	for i, rec := range records {
		m, ok := byName[rec.Name]
		if !ok {
			return i, fmt.Errorf("migration: cannot roll back %s: not registered", rec.Name)
		}

		fmt.Fprintf(r.out, "Rolling back: %s\n", rec.Name)
		rec := rec
		err := r.db.Transaction(func(tx *gorm.DB) error {
			if err := m.Down(tx); err != nil {
				return err
			}
			return tx.Delete(&rec).Error
		})
		if err != nil {
			return i, fmt.Errorf("migration: %s down: %w", rec.Name, err)
		}
	}
	return len(records), nil
}

// Status lists every registered migration and whether it has run.
func (r *Runner) Status() ([]StatusRow, error) {
	if err := r.EnsureTable(); err != nil {
		return nil, err
	}
	done, err := r.ran()
	if err != nil {
		return nil, err
	}

	var rows []StatusRow
	for _, reg := range sortedRegistry() {
		rec, ok := done[reg.name]
		rows = append(rows, StatusRow{Name: reg.name, Ran: ok, Batch: rec.Batch})
	}
	return rows, nil
}

func (r *Runner) lastBatch() (int, error) {
	var max struct{ Max int }
	err := r.db.Model(&migrationRecord{}).Select("COALESCE(MAX(batch), 0) as max").Scan(&max).Error
	if err != nil {
		return 0, fmt.Errorf("migration: last batch: %w", err)
	}
	return max.Max, nil
}
