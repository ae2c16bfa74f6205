package datastore

// Store defines the write interface used by the sync command.
type Store interface {
	// Connect establishes a connection to the data store
	Connect() error

	// Replace atomically swaps the applications table contents for rows.
	// extraColumns lists dynamic columns beyond the schema base set.
	Replace(extraColumns []string, rows []map[string]any) error

	// Close closes the connection to the data store
	Close() error
}
