// Package mock provides in-process stand-ins for the external services the
// feature suite talks to.
package mock

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbOnce sync.Once
var sharedDb *Db

// Db wraps the shared in-memory SQLite database backing the feature suite.
type Db struct {
	Conn   *gorm.DB
	models map[string]any
}

// NewDb opens the shared test database and migrates the given models, keyed
// by table name. The connection is a singleton; every call after the first
// returns the same instance regardless of arguments.
func NewDb(models map[string]any) *Db {
	dbOnce.Do(func() {
		sharedDb = open(models)
	})
	return sharedDb
}

func open(models map[string]any) *Db {
	// cache=shared keeps the schema visible across the pooled
	// connections gorm opens; one connection max avoids table locks.
	sqlDb, err := sql.Open("sqlite", "file::memory:?cache=shared")
	if err != nil {
		panic(err)
	}
	sqlDb.SetMaxOpenConns(1)

	conn, err := gorm.Open(sqlite.Dialector{Conn: sqlDb}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to open test database: " + err.Error())
	}

	modelList := make([]any, 0, len(models))
	for _, model := range models {
		modelList = append(modelList, model)
	}
	if err := conn.AutoMigrate(modelList...); err != nil {
		panic("failed to migrate test database: " + err.Error())
	}

	return &Db{Conn: conn, models: models}
}

// Clear deletes every row from every migrated table. Foreign keys are
// switched off for the duration so deletion order does not matter.
func (d *Db) Clear() error {
	if err := d.Conn.Exec("PRAGMA foreign_keys = OFF").Error; err != nil {
		return err
	}
	defer d.Conn.Exec("PRAGMA foreign_keys = ON")

	for table, model := range d.models {
		err := d.Conn.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Unscoped().Delete(model).Error
		if err != nil {
			return fmt.Errorf("failed to clear table %s: %w", table, err)
		}
	}
	return nil
}

// GetModel returns the model registered for a table name.
func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.models[table]
	return model, ok
}
