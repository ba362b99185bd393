package sqlite

import "database/sql"

// migrations contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
// IMPORTANT: customers and services must be created BEFORE transactions due
// to foreign key constraints.
const schema = `
CREATE TABLE IF NOT EXISTS employees (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    role TEXT NOT NULL,
    phone TEXT,
    password_hash TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS customers (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    phone TEXT,
    loyalty_points INTEGER NOT NULL DEFAULT 0,
    membership_uses INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS vehicles (
    id TEXT PRIMARY KEY,
    customer_id TEXT NOT NULL,
    plate TEXT NOT NULL,
    make TEXT,
    model TEXT,
    color TEXT,
    FOREIGN KEY (customer_id) REFERENCES customers(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS services (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    price REAL NOT NULL,
    commission REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS transactions (
    id TEXT PRIMARY KEY,
    customer_id TEXT,
    vehicle_id TEXT,
    service_id TEXT,
    employee_id TEXT,
    status TEXT NOT NULL,
    price REAL NOT NULL,
    commission_amount REAL NOT NULL,
    tip REAL NOT NULL DEFAULT 0,
    payment_method TEXT,
    date INTEGER NOT NULL,
    created_at INTEGER NOT NULL,
    started_at INTEGER,
    finished_at INTEGER,
    cancelled_by TEXT
);

CREATE TABLE IF NOT EXISTS extras (
    id TEXT PRIMARY KEY,
    transaction_id TEXT NOT NULL,
    description TEXT NOT NULL,
    price REAL NOT NULL,
    commission REAL NOT NULL,
    assigned_to TEXT,
    FOREIGN KEY (transaction_id) REFERENCES transactions(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS assignments (
    transaction_id TEXT NOT NULL,
    employee_id TEXT NOT NULL,
    PRIMARY KEY (transaction_id, employee_id),
    FOREIGN KEY (transaction_id) REFERENCES transactions(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS expenses (
    id TEXT PRIMARY KEY,
    employee_id TEXT,
    category TEXT NOT NULL,
    amount REAL NOT NULL,
    note TEXT,
    date INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS feedback (
    id TEXT PRIMARY KEY,
    transaction_id TEXT NOT NULL,
    rating INTEGER NOT NULL,
    comment TEXT,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (transaction_id) REFERENCES transactions(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS settings (
    name TEXT PRIMARY KEY,
    daily_target REAL NOT NULL DEFAULT 0,
    review_link TEXT NOT NULL DEFAULT '',
    stripe_link TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date);
CREATE INDEX IF NOT EXISTS idx_transactions_status ON transactions(status);
CREATE INDEX IF NOT EXISTS idx_extras_transaction_id ON extras(transaction_id);
CREATE INDEX IF NOT EXISTS idx_assignments_employee_id ON assignments(employee_id);
CREATE INDEX IF NOT EXISTS idx_expenses_date ON expenses(date);
CREATE INDEX IF NOT EXISTS idx_vehicles_customer_id ON vehicles(customer_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
