// Package store provides SQLite persistence for the bookkeeping engine:
// accounts, journal entries with their lines, bank transactions and upload
// batches.
package store

// Schema defines the SQL statements to create the five relations.
const Schema = `
-- Chart of accounts
CREATE TABLE IF NOT EXISTS accounts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    code TEXT UNIQUE NOT NULL,
    name TEXT NOT NULL,
    type TEXT NOT NULL CHECK(type IN ('asset', 'liability', 'equity', 'revenue', 'expense')),
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Journal entries
CREATE TABLE IF NOT EXISTS entries (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    date TEXT NOT NULL,                -- YYYY-MM-DD
    description TEXT,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Journal entry lines, owned by their entry
CREATE TABLE IF NOT EXISTS entry_lines (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    entry_id INTEGER NOT NULL,
    account_id INTEGER NOT NULL,
    debit REAL DEFAULT 0,
    credit REAL DEFAULT 0,
    memo TEXT,
    FOREIGN KEY (entry_id) REFERENCES entries(id) ON DELETE CASCADE,
    FOREIGN KEY (account_id) REFERENCES accounts(id)
);

CREATE INDEX IF NOT EXISTS idx_entry_lines_entry
    ON entry_lines(entry_id);

CREATE INDEX IF NOT EXISTS idx_entry_lines_account
    ON entry_lines(account_id);

-- Upload batches group bank transactions ingested together
CREATE TABLE IF NOT EXISTS upload_batches (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    source TEXT,
    row_count INTEGER DEFAULT 0,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Bank statement transactions. entry_id and transfer_pair_id are the two
-- mutually exclusive resolution paths. transfer_pair_id carries the smaller
-- transaction id of the pair, not a foreign key.
CREATE TABLE IF NOT EXISTS bank_transactions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    date TEXT,                         -- YYYY-MM-DD
    description TEXT,
    amount REAL,                       -- signed: positive inflow, negative outflow
    company TEXT,
    label TEXT,
    batch_id INTEGER,
    entry_id INTEGER,
    transfer_pair_id INTEGER,
    is_internal_transfer INTEGER DEFAULT 0,
    FOREIGN KEY (batch_id) REFERENCES upload_batches(id),
    FOREIGN KEY (entry_id) REFERENCES entries(id)
);

CREATE INDEX IF NOT EXISTS idx_bank_transactions_batch
    ON bank_transactions(batch_id);

CREATE INDEX IF NOT EXISTS idx_bank_transactions_date
    ON bank_transactions(date, id);
`

// InitializeSchema creates all tables if they don't exist.
func InitializeSchema(conn *Connection) error {
	if _, err := conn.Exec(Schema); err != nil {
		return err
	}
	return nil
}
