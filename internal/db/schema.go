package db

import "context"

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS requests (
		id BIGSERIAL PRIMARY KEY,
		description TEXT NOT NULL,
		requester_id BIGINT NOT NULL REFERENCES users (id),
		created TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS items (
		id BIGSERIAL PRIMARY KEY,
		owner_id BIGINT NOT NULL REFERENCES users (id),
		name TEXT NOT NULL,
		description TEXT NOT NULL,
		available BOOLEAN NOT NULL,
		request_id BIGINT REFERENCES requests (id)
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id BIGSERIAL PRIMARY KEY,
		start_date TIMESTAMPTZ NOT NULL,
		end_date TIMESTAMPTZ NOT NULL,
		item_id BIGINT NOT NULL REFERENCES items (id),
		booker_id BIGINT NOT NULL REFERENCES users (id),
		status TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS comments (
		id BIGSERIAL PRIMARY KEY,
		text TEXT NOT NULL,
		item_id BIGINT NOT NULL REFERENCES items (id),
		author_id BIGINT NOT NULL REFERENCES users (id),
		created TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS bookings_booker_idx ON bookings (booker_id, end_date DESC)`,
	`CREATE INDEX IF NOT EXISTS bookings_item_idx ON bookings (item_id)`,
	`CREATE INDEX IF NOT EXISTS items_owner_idx ON items (owner_id)`,
}

// EnsureSchema creates the tables on startup so a fresh database is usable
// without a separate migration step.
func EnsureSchema(ctx context.Context, database DB) error {
	for _, stmt := range schemaStatements {
		if _, err := database.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
