package repositories

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"kasir/internal/models"
)

// SchemaVersion is the version the two collections are created at. Backup
// snapshots carry it so an import can be matched against the store that
// wrote it.
const SchemaVersion = 2

// schemaMeta is a single-row table recording which schema version the
// products and sales collections were built with.
type schemaMeta struct {
	ID      uint `gorm:"primaryKey"`
	Version int
}

func (schemaMeta) TableName() string { return "schema_meta" }

// Open connects to the SQLite database at path and ensures the products and
// sales collections exist at SchemaVersion. On first use or on a version
// change both collections are dropped and rebuilt from scratch — rows
// written under an older version are lost. This store has never had a
// migration path, only a rebuild; keep that in mind before bumping
// SchemaVersion.
func Open(path string, log *zap.Logger) (*gorm.DB, error) {
	if log == nil {
		log = zap.NewNop()
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrStorageUnavailable, path, err)
	}

	if err := db.AutoMigrate(&schemaMeta{}); err != nil {
		return nil, wrapStorageErr("schema_meta", "migrate", err)
	}

	var meta schemaMeta
	err = db.First(&meta).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, wrapStorageErr("schema_meta", "read", err)
	}
	if err == nil && meta.Version == SchemaVersion {
		return db, nil
	}

	log.Info("rebuilding collections",
		zap.Int("stored_version", meta.Version),
		zap.Int("schema_version", SchemaVersion))

	migrator := db.Migrator()
	for _, table := range []interface{}{&models.Product{}, &models.Sale{}} {
		if migrator.HasTable(table) {
			if err := migrator.DropTable(table); err != nil {
				return nil, wrapStorageErr(tableName(db, table), "drop", err)
			}
		}
	}
	if err := db.AutoMigrate(&models.Product{}, &models.Sale{}); err != nil {
		// Index creation can race with another connection rebuilding the
		// same schema; the rebuild recreates both collections either way.
		if strings.Contains(err.Error(), "already exists") {
			log.Warn("index already exists during rebuild, ignoring", zap.Error(err))
		} else {
			return nil, wrapStorageErr("products/sales", "migrate", err)
		}
	}

	meta.ID = 1
	meta.Version = SchemaVersion
	if err := db.Save(&meta).Error; err != nil {
		return nil, wrapStorageErr("schema_meta", "write", err)
	}
	return db, nil
}

func tableName(db *gorm.DB, model interface{}) string {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(model); err != nil {
		return "unknown"
	}
	return stmt.Table
}

// wrapStorageErr names the failing collection and operation, and promotes
// SQLite lock contention to ErrStorageBlocked so callers can tell the user
// to close other sessions.
func wrapStorageErr(collection, op string, err error) error {
	msg := err.Error()
	if strings.Contains(msg, "database is locked") || strings.Contains(msg, "table is locked") {
		return fmt.Errorf("%w: %s %s: %v", ErrStorageBlocked, op, collection, err)
	}
	return fmt.Errorf("%s %s failed: %w", op, collection, err)
}
