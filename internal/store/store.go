package store

// Storer defines the interface for data persistence.
// This allows swapping between MemStore (testing) and SQLiteStore (production).
// Get methods return nil, nil when the record does not exist.
type Storer interface {
	// Extractions
	UpsertExtraction(e *Extraction) error
	GetExtraction(id string) (*Extraction, error)
	DeleteExtraction(id string) error
	ListExtractions(url string) ([]*Extraction, error)
	CountExtractions() (int, error)

	// Cases
	UpsertCase(c *Case) error
	GetCase(id string) (*Case, error)
	ListCases(positive bool) ([]*Case, error)
	CountCases() (int, error)

	// Lifecycle
	Close() error
}
