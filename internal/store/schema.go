package store

// schemaSQL creates the participants table. The (last_name, first_name, id)
// index backs the stable total order every filtered fetch relies on.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS participants (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	first_name TEXT NOT NULL DEFAULT '',
	last_name  TEXT NOT NULL DEFAULT '',
	role       TEXT NOT NULL,
	email      TEXT NOT NULL DEFAULT '',
	phone      TEXT NOT NULL DEFAULT '',
	table_no   INTEGER NOT NULL DEFAULT 0,
	notes      TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_participants_order
	ON participants (last_name, first_name, id);

CREATE INDEX IF NOT EXISTS idx_participants_role
	ON participants (role);
`

// orderClause is the stable total order shared by every fetch. Ties on name
// break on id so the order is strict.
const orderClause = "ORDER BY last_name, first_name, id"
