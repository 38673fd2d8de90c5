package sqlite

import "database/sql"

// migrations contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
// IMPORTANT: users must be created before items/proposals due to foreign
// key constraints.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    username TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    image_url TEXT,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS items (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT,
    price REAL NOT NULL DEFAULT 0,
    min_price REAL NOT NULL DEFAULT 0,
    max_price REAL NOT NULL DEFAULT 0,
    priority INTEGER NOT NULL DEFAULT 0,
    image_url TEXT,
    created_by_id TEXT NOT NULL,
    public INTEGER NOT NULL DEFAULT 0,
    matches_list INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL,
    FOREIGN KEY (created_by_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS contributors (
    item_id TEXT NOT NULL,
    user_id TEXT NOT NULL,
    getting INTEGER NOT NULL DEFAULT 0,
    number_getting INTEGER NOT NULL DEFAULT 0,
    contributing INTEGER NOT NULL DEFAULT 0,
    contribute_amount REAL NOT NULL DEFAULT 0,
    PRIMARY KEY (item_id, user_id),
    FOREIGN KEY (item_id) REFERENCES items(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS proposals (
    id TEXT PRIMARY KEY,
    item_id TEXT NOT NULL,
    creator_id TEXT NOT NULL,
    status TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL,
    FOREIGN KEY (item_id) REFERENCES items(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS participants (
    proposal_id TEXT NOT NULL,
    user_id TEXT NOT NULL,
    amount_requested REAL NOT NULL DEFAULT 0,
    state TEXT NOT NULL,
    is_buying INTEGER NOT NULL DEFAULT 0,
    position INTEGER NOT NULL,
    PRIMARY KEY (proposal_id, user_id),
    FOREIGN KEY (proposal_id) REFERENCES proposals(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS money_entries (
    id TEXT PRIMARY KEY,
    amount REAL NOT NULL,
    owed_from_id TEXT NOT NULL,
    owed_from_name TEXT NOT NULL,
    owed_to_id TEXT NOT NULL,
    owed_to_name TEXT NOT NULL,
    note TEXT,
    item_id TEXT,
    idempotency_key TEXT,
    paid INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL,
    created_by_id TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS questions (
    id TEXT PRIMARY KEY,
    asked_by_id TEXT NOT NULL,
    asked_of_id TEXT NOT NULL,
    text TEXT NOT NULL,
    answer TEXT,
    answered_at INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (asked_by_id) REFERENCES users(id) ON DELETE CASCADE,
    FOREIGN KEY (asked_of_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_money_idempotency_key
    ON money_entries(idempotency_key) WHERE idempotency_key IS NOT NULL;
CREATE INDEX IF NOT EXISTS idx_items_created_by ON items(created_by_id);
CREATE INDEX IF NOT EXISTS idx_contributors_user ON contributors(user_id);
CREATE INDEX IF NOT EXISTS idx_proposals_item ON proposals(item_id);
CREATE INDEX IF NOT EXISTS idx_participants_user ON participants(user_id);
CREATE INDEX IF NOT EXISTS idx_money_from ON money_entries(owed_from_id);
CREATE INDEX IF NOT EXISTS idx_money_to ON money_entries(owed_to_id);
CREATE INDEX IF NOT EXISTS idx_questions_of ON questions(asked_of_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
