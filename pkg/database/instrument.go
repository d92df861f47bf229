package database

import (
	"time"

	"github.com/shashiranjanraj/storefront/pkg/metrics"
	"gorm.io/gorm"
)

const startedAtKey = "storefront:started_at"

// Instrument registers gorm callbacks that feed metrics.DBQueryDuration.
func Instrument(db *gorm.DB) error {
	cb := db.Callback()

	steps := []error{
		cb.Query().Before("gorm:query").Register("metrics:before_select", markStart),
		cb.Query().After("gorm:query").Register("metrics:after_select", observe("select")),
		cb.Create().Before("gorm:create").Register("metrics:before_insert", markStart),
		cb.Create().After("gorm:create").Register("metrics:after_insert", observe("insert")),
		cb.Update().Before("gorm:update").Register("metrics:before_update", markStart),
		cb.Update().After("gorm:update").Register("metrics:after_update", observe("update")),
		cb.Delete().Before("gorm:delete").Register("metrics:before_delete", markStart),
		cb.Delete().After("gorm:delete").Register("metrics:after_delete", observe("delete")),
	}
	for _, err := range steps {
		if err != nil {
			return err
		}
	}
	return nil
}

func markStart(db *gorm.DB) {
	db.InstanceSet(startedAtKey, time.Now())
}

func observe(op string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		v, ok := db.InstanceGet(startedAtKey)
		if !ok {
			return
		}
		if start, ok := v.(time.Time); ok {
			metrics.ObserveDBQuery(op, start)
		}
	}
}
