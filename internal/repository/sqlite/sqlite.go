// Package sqlite implementa los repositorios sobre SQLite (modernc.org/sqlite).
// Se usa para desarrollo local y tests; el backend de producción es Postgres.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"rental-hub/internal/repository"
)

// Ancho fijo para que el orden lexicográfico coincida con el temporal.
const timeLayout = "2006-01-02T15:04:05.000000Z07:00"

const dateLayout = "2006-01-02"

// Open abre (o crea) la base en path y aplica el schema.
func Open(path string) (*sql.DB, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("sqlite: empty path")
	}
	if !strings.HasPrefix(path, "file:") && path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("sqlite: creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", withPragmas(path))
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	// Un único escritor: las transacciones se serializan en la conexión.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: creating schema: %w", err)
	}
	return db, nil
}

func withPragmas(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(value string) (time.Time, error) {
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", value, err)
	}
	return t.UTC(), nil
}

// translateError lleva los errores del driver a los del paquete repository.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return repository.ErrNotFound
	case strings.Contains(err.Error(), "UNIQUE constraint failed"):
		return repository.ErrDuplicate
	case strings.Contains(err.Error(), "FOREIGN KEY constraint failed"):
		return repository.ErrMissingReference
	}
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	name          TEXT NOT NULL DEFAULT '',
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL DEFAULT '',
	location      TEXT NOT NULL DEFAULT '',
	occupation    TEXT NOT NULL DEFAULT '',
	phone_number  TEXT NOT NULL DEFAULT '',
	bio           TEXT NOT NULL DEFAULT '',
	profile_url   TEXT NOT NULL DEFAULT '',
	created_at    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS listings (
	id             TEXT PRIMARY KEY,
	owner_id       TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	title          TEXT NOT NULL,
	location       TEXT NOT NULL,
	price          REAL NOT NULL DEFAULT 0,
	bedrooms       INTEGER NOT NULL DEFAULT 0,
	bathrooms      INTEGER NOT NULL DEFAULT 0,
	size           TEXT NOT NULL DEFAULT '',
	image_url      TEXT NOT NULL DEFAULT '',
	description    TEXT NOT NULL DEFAULT '',
	available_from TEXT,
	amenities      TEXT NOT NULL DEFAULT '[]',
	status         TEXT NOT NULL DEFAULT '',
	contact_name   TEXT NOT NULL DEFAULT '',
	contact_phone  TEXT NOT NULL DEFAULT '',
	contact_email  TEXT NOT NULL DEFAULT '',
	created_at     TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_listings_owner ON listings(owner_id);

CREATE TABLE IF NOT EXISTS comments (
	id         TEXT PRIMARY KEY,
	listing_id TEXT NOT NULL REFERENCES listings(id) ON DELETE CASCADE,
	author_id  TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	content    TEXT NOT NULL CHECK (content <> ''),
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_comments_listing ON comments(listing_id, created_at);

CREATE TABLE IF NOT EXISTS conversations (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	listing_id      TEXT NOT NULL REFERENCES listings(id) ON DELETE CASCADE,
	requester_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	owner_id        TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	created_at      TEXT NOT NULL,
	last_message_at TEXT NOT NULL,
	UNIQUE (listing_id, requester_id, owner_id),
	CHECK (requester_id <> owner_id)
);

CREATE INDEX IF NOT EXISTS idx_conversations_requester ON conversations(requester_id);
CREATE INDEX IF NOT EXISTS idx_conversations_owner ON conversations(owner_id);

CREATE TABLE IF NOT EXISTS messages (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	conversation_id INTEGER NOT NULL REFERENCES conversations(id) ON DELETE CASCADE,
	listing_id      TEXT NOT NULL,
	sender_id       TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	content         TEXT NOT NULL CHECK (content <> ''),
	created_at      TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_messages_conversation ON messages(conversation_id, id);
`
