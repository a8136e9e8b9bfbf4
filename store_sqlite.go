package radix

import (
	"database/sql"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

type SqliteAuthStore struct {
	db *sql.DB
	mu sync.Mutex
}

var _ AuthStore = &SqliteAuthStore{}

func NewSqliteAuthStore(path string) (store *SqliteAuthStore, err error) {
	log.Info().Msgf("opening sqlite auth store at: '%s'", path)

	sqldb, err := sql.Open("sqlite3", path)
	if err != nil {
		err = errors.Wrap(err, "failed to open database")
		return
	}

	if err = sqldb.Ping(); err != nil {
		_ = sqldb.Close()
		err = errors.Wrap(err, "failed to ping database")
		return
	}

	store = &SqliteAuthStore{db: sqldb}
	if err = store.initTables(); err != nil {
		_ = sqldb.Close()
		err = errors.Wrap(err, "failed to init tables")
		return
	}

	return
}

func (s *SqliteAuthStore) initTables() (err error) {
	_, err = s.db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`)
	err = errors.WithStack(err)
	return
}

func (s *SqliteAuthStore) Put(key, value string) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.Exec("INSERT OR REPLACE INTO kv (key, value) VALUES (?, ?)", key, value)
	err = errors.WithStack(err)

	return
}

func (s *SqliteAuthStore) Get(key string) (value string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		err = errors.Wrapf(ErrTokenNotFound, "no value stored for key %s", key)
		return
	}
	err = errors.WithStack(err)

	return
}

func (s *SqliteAuthStore) Delete(key string) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.Exec("DELETE FROM kv WHERE key = ?", key)
	err = errors.WithStack(err)

	return
}

func (s *SqliteAuthStore) Close() (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return errors.WithStack(s.db.Close())
}
