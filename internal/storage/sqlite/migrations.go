package sqlite

import "database/sql"

// schema runs on startup to ensure tables exist.
const schema = `
CREATE TABLE IF NOT EXISTS bills (
    id TEXT PRIMARY KEY,
    phone TEXT NOT NULL,
    file_name TEXT NOT NULL,
    total_due TEXT NOT NULL,
    lines INTEGER NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS consultations (
    id TEXT PRIMARY KEY,
    phone TEXT NOT NULL,
    file_name TEXT NOT NULL,
    size_bytes INTEGER NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_bills_phone ON bills(phone);
CREATE INDEX IF NOT EXISTS idx_consultations_phone ON consultations(phone);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
