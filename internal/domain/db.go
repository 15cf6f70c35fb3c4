package domain

// Database owns a storage handle. Each implementation (SQLite, Postgres,
// in-memory) creates its own dogs table, so the backend stays swappable.
type Database interface {
	Dogs() DogRepository
	Close() error
}
