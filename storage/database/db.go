package database

import (
	"context"
	"log"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core"
	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/storage/database/migrations"
)

const sqliteDriver = "sqlite" // registered by modernc.org/sqlite

// MemoryPath opens a private in-memory sqlite database.
const MemoryPath = ":memory:"

func init() {
	sqlx.BindDriver(sqliteDriver, sqlx.QUESTION)
}

func sqliteDSN(path string) string {
	q := make(url.Values)
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "busy_timeout(5000)")
	return "file:" + path + "?" + q.Encode()
}

func postgresDSN(conf *core.Config) string {
	sslMode := "require"
	if conf.Database.DisableTLS {
		sslMode = "disable"
	}
	q := make(url.Values)
	q.Set("sslmode", sslMode)
	q.Set("timezone", "utc")

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(conf.Database.User, conf.Database.Password),
		Host:     conf.Database.Address(),
		Path:     conf.Database.Name,
		RawQuery: q.Encode(),
	}
	return u.String()
}

// Open opens the configured database. It does not check the connection.
func Open(conf *core.Config) (*sqlx.DB, error) {
	switch conf.Database.Engine {
	case core.EnginePostgres:
		db, err := sqlx.Open("postgres", postgresDSN(conf))
		return db, errors.Wrap(err, "opening postgres database")
	case core.EngineSQLite:
		return OpenSQLite(conf.Database.Path)
	default:
		return nil, errors.Errorf("database engine %q has no SQL connection", conf.Database.Engine)
	}
}

// OpenSQLite opens a sqlite database file (or MemoryPath) with foreign keys enforced.
func OpenSQLite(path string) (*sqlx.DB, error) {
	db, err := sqlx.Open(sqliteDriver, sqliteDSN(path))
	if err != nil {
		return nil, errors.Wrap(err, "opening sqlite database")
	}
	// sqlite allows a single writer, and each connection to ":memory:" is a new database
	db.SetMaxOpenConns(1)
	return db, nil
}

// Ping waits for the database to be ready. Waits 100ms longer between each attempt.
func Ping(ctx context.Context, db *sqlx.DB, maxAttempts int) error {
	var err error
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		if err = db.PingContext(ctx); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "DB ping")
		case <-time.After(time.Duration(attempts) * 100 * time.Millisecond):
		}
	}
	return errors.Wrap(err, "DB ping timeout")
}

func dialect(db *sqlx.DB) (name, dir string, err error) {
	switch db.DriverName() {
	case sqliteDriver:
		return "sqlite3", "sqlite", nil
	case "postgres":
		return "postgres", "postgres", nil
	default:
		return "", "", errors.Errorf("no migrations for driver %q", db.DriverName())
	}
}

// RunMigration runs a goose command ("up", "down", "status", "version", "reset", "redo"...) on the schema.
func RunMigration(ctx context.Context, db *sqlx.DB, logger *log.Logger, command string, args ...string) error {
	d, dir, err := dialect(db)
	if err != nil {
		return err
	}
	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(logger)
	if err = goose.SetDialect(d); err != nil {
		return errors.Wrap(err, "setting migration dialect")
	}
	if err = goose.RunContext(ctx, command, db.DB, dir, args...); err != nil {
		return errors.Wrapf(err, "migrating database (%s)", command)
	}
	return nil
}

// Migrate creates the schema if it does not exist yet.
func Migrate(ctx context.Context, db *sqlx.DB, logger *log.Logger) error {
	return RunMigration(ctx, db, logger, "up")
}
