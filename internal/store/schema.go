package store

// schemaSQL creates all snapshot tables. Replacing a snapshot rewrites
// whole tables, so there is nothing to migrate between versions.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS bills (
	id       TEXT PRIMARY KEY,
	name     TEXT NOT NULL,
	amount   REAL NOT NULL,
	frequency TEXT NOT NULL,
	due_day  INTEGER NOT NULL,
	is_active INTEGER NOT NULL,
	is_paid  INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS incomes (
	id       TEXT PRIMARY KEY,
	name     TEXT NOT NULL,
	amount   REAL NOT NULL,
	frequency TEXT NOT NULL,
	next_payment_date TEXT,
	is_active INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS debts (
	id       TEXT PRIMARY KEY,
	name     TEXT NOT NULL,
	monthly_payment REAL NOT NULL,
	next_payment_date TEXT,
	is_active INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS transactions (
	id       TEXT PRIMARY KEY,
	date     TEXT NOT NULL,
	amount   REAL NOT NULL,
	category TEXT NOT NULL,
	merchant TEXT
);

CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date);

CREATE TABLE IF NOT EXISTS category_budgets (
	category TEXT PRIMARY KEY,
	amount   REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS settings (
	key   TEXT PRIMARY KEY,
	value REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`
