package database

import (
	"database/sql"
	"embed"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"konnect-service-go/internal/config"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// NewDatabase creates a new database connection and migrates the schema.
func NewDatabase(cfg config.Database, log *zap.Logger) (*gorm.DB, error) {
	dsn := withConnParams(cfg.DSN)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(zap.NewStdLog(log.Named("gorm")), gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	// Every connection to an in-memory database sees its own empty database.
	if isMemory(dsn) {
		sqlDB.SetMaxOpenConns(1)
	} else if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	if err := Migrate(sqlDB, log); err != nil {
		sqlDB.Close()
		return nil, err
	}

	return db, nil
}

// Migrate applies the embedded goose migrations.
func Migrate(db *sql.DB, log *zap.Logger) error {
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(zap.NewStdLog(log.Named("migrations")))

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, err := goose.GetDBVersion(db)
	if err != nil {
		return fmt.Errorf("failed to verify migration version: %w", err)
	}
	log.Info("Database schema migrated", zap.Int64("version", version))
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// connParams are appended to the DSN unless it already sets them (or an alias).
// Transactions take the write lock at BEGIN; concurrent writers wait on the busy timeout.
var connParams = []struct {
	key, value string
	aliases    []string
}{
	{key: "_foreign_keys", value: "on", aliases: []string{"_fk"}},
	{key: "_txlock", value: "immediate"},
	{key: "_busy_timeout", value: "30000", aliases: []string{"_timeout"}},
}

func withConnParams(dsn string) string {
	for _, p := range connParams {
		if hasParam(dsn, p.key, p.aliases) {
			continue
		}
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + p.key + "=" + p.value
	}
	return dsn
}

func hasParam(dsn, key string, aliases []string) bool {
	_, query, ok := strings.Cut(dsn, "?")
	if !ok {
		return false
	}
	for _, kv := range strings.Split(query, "&") {
		name, _, _ := strings.Cut(kv, "=")
		if name == key || slices.Contains(aliases, name) {
			return true
		}
	}
	return false
}

func isMemory(dsn string) bool {
	return strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}
