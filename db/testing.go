package db

import (
	"fmt"
	"sync/atomic"

	"gorm.io/driver/sqlite"
	gormlogger "gorm.io/gorm/logger"
)

var memSeq atomic.Int64

// NewMemory opens a migrated, private in-memory sqlite database.
func NewMemory() (Database, error) {
	name := fmt.Sprintf("file:houses_mem_%d?mode=memory&cache=shared", memSeq.Add(1))
	database, err := Open(sqlite.Open(name), gormlogger.Silent)
	if err != nil {
		return nil, err
	}
	sqlDB, err := database.GetDB().DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	if err := Migrate(database.GetDB()); err != nil {
		return nil, err
	}
	return database, nil
}
