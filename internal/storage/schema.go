// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: A single samples table keyed by an autoincrement integer ID.
package storage

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS samples (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		metric_type TEXT NOT NULL,
		value REAL NOT NULL,
		recorded_at DATETIME NOT NULL,
		notes TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_samples_type ON samples(metric_type);
	CREATE INDEX IF NOT EXISTS idx_samples_recorded ON samples(recorded_at DESC);
	CREATE INDEX IF NOT EXISTS idx_samples_type_recorded ON samples(metric_type, recorded_at DESC);
	`

	_, err := d.db.Exec(schema)
	return err
}
