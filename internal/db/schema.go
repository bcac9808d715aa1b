package db

// La tupla (listing_id, requester_id, owner_id) es única: dos pedidos
// concurrentes para el mismo par terminan en una sola conversación.
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
	created_at    TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS listings (
	id             TEXT PRIMARY KEY,
	owner_id       TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	title          TEXT NOT NULL,
	location       TEXT NOT NULL,
	price          NUMERIC(12, 2) NOT NULL DEFAULT 0,
	bedrooms       INTEGER NOT NULL DEFAULT 0,
	bathrooms      INTEGER NOT NULL DEFAULT 0,
	size           TEXT NOT NULL DEFAULT '',
	image_url      TEXT NOT NULL DEFAULT '',
	description    TEXT NOT NULL DEFAULT '',
	available_from DATE,
	amenities      JSONB NOT NULL DEFAULT '[]'::jsonb,
	status         TEXT NOT NULL DEFAULT '',
	contact_name   TEXT NOT NULL DEFAULT '',
	contact_phone  TEXT NOT NULL DEFAULT '',
	contact_email  TEXT NOT NULL DEFAULT '',
	created_at     TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_listings_owner ON listings(owner_id);

CREATE TABLE IF NOT EXISTS comments (
	id         TEXT PRIMARY KEY,
	listing_id TEXT NOT NULL REFERENCES listings(id) ON DELETE CASCADE,
	author_id  TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	content    TEXT NOT NULL CHECK (content <> ''),
	created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_comments_listing ON comments(listing_id, created_at);

CREATE TABLE IF NOT EXISTS conversations (
	id              BIGSERIAL PRIMARY KEY,
	listing_id      TEXT NOT NULL REFERENCES listings(id) ON DELETE CASCADE,
	requester_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	owner_id        TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	created_at      TIMESTAMPTZ NOT NULL,
	last_message_at TIMESTAMPTZ NOT NULL,
	CONSTRAINT conversations_participants_key UNIQUE (listing_id, requester_id, owner_id),
	CONSTRAINT conversations_distinct_participants CHECK (requester_id <> owner_id)
);

CREATE INDEX IF NOT EXISTS idx_conversations_requester ON conversations(requester_id);
CREATE INDEX IF NOT EXISTS idx_conversations_owner ON conversations(owner_id);

CREATE TABLE IF NOT EXISTS messages (
	id              BIGSERIAL PRIMARY KEY,
	conversation_id BIGINT NOT NULL REFERENCES conversations(id) ON DELETE CASCADE,
	listing_id      TEXT NOT NULL,
	sender_id       TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	content         TEXT NOT NULL CHECK (content <> ''),
	created_at      TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_messages_conversation ON messages(conversation_id, id);
`
