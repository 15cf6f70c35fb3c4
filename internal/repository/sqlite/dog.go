package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/msomdec/kennel/internal/domain"
)

// DogRepository implements domain.DogRepository using SQLite.
type DogRepository struct {
	db *sql.DB
}

// NewDogRepository creates a new SQLite-backed DogRepository.
func NewDogRepository(db *DB) *DogRepository {
	return &DogRepository{db: db.SqlDB}
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *DogRepository) CreateTable(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS dogs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT,
			breed TEXT
		)
	`)
	if err != nil {
		return fmt.Errorf("create dogs table: %w", err)
	}
	return nil
}

func (r *DogRepository) DropTable(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DROP TABLE IF EXISTS dogs"); err != nil {
		return fmt.Errorf("drop dogs table: %w", err)
	}
	return nil
}

// Save inserts the dog and assigns its generated ID. Saving a dog that
// already has an ID is rejected rather than inserting a second row.
func (r *DogRepository) Save(ctx context.Context, dog *domain.Dog) error {
	if dog.Persisted() {
		return fmt.Errorf("%w: id %d", domain.ErrAlreadyPersisted, dog.ID)
	}
	return insertDog(ctx, r.db, dog)
}

func (r *DogRepository) Create(ctx context.Context, name, breed string) (*domain.Dog, error) {
	dog := domain.NewDog(name, breed)
	if err := r.Save(ctx, dog); err != nil {
		return nil, err
	}
	return dog, nil
}

func (r *DogRepository) GetAll(ctx context.Context) ([]domain.Dog, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name, breed FROM dogs ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list dogs: %w", err)
	}
	defer rows.Close()
	return scanDogs(rows)
}

// FindByName returns the earliest inserted dog with the given name.
func (r *DogRepository) FindByName(ctx context.Context, name string) (*domain.Dog, error) {
	dog, err := scanDog(r.db.QueryRowContext(ctx,
		"SELECT id, name, breed FROM dogs WHERE name = ? ORDER BY id LIMIT 1", name))
	if err != nil {
		return nil, notFoundOr(err, "find dog by name")
	}
	return dog, nil
}

func (r *DogRepository) FindByID(ctx context.Context, id int64) (*domain.Dog, error) {
	dog, err := scanDog(r.db.QueryRowContext(ctx,
		"SELECT id, name, breed FROM dogs WHERE id = ?", id))
	if err != nil {
		return nil, notFoundOr(err, "find dog by id")
	}
	return dog, nil
}

// FindOrCreateBy looks up a dog by exact name and breed, inserting one when
// none exists. Lookup and insert share a single transaction.
func (r *DogRepository) FindOrCreateBy(ctx context.Context, name, breed string) (*domain.Dog, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	dog, err := scanDog(tx.QueryRowContext(ctx,
		"SELECT id, name, breed FROM dogs WHERE name = ? AND breed = ? ORDER BY id LIMIT 1", name, breed))
	switch {
	case err == nil:
		if err := tx.Commit(); err != nil {
			return nil, fmt.Errorf("commit find or create: %w", err)
		}
		return dog, nil
	case !errors.Is(err, sql.ErrNoRows):
		return nil, fmt.Errorf("find dog by name and breed: %w", err)
	}

	dog = domain.NewDog(name, breed)
	if err := insertDog(ctx, tx, dog); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit find or create: %w", err)
	}
	return dog, nil
}

func (r *DogRepository) Update(ctx context.Context, dog *domain.Dog) error {
	if !dog.Persisted() {
		return domain.ErrNotPersisted
	}

	result, err := r.db.ExecContext(ctx,
		"UPDATE dogs SET name = ?, breed = ? WHERE id = ?",
		dog.Name, dog.Breed, dog.ID,
	)
	if err != nil {
		return fmt.Errorf("update dog: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func insertDog(ctx context.Context, q execer, dog *domain.Dog) error {
	result, err := q.ExecContext(ctx,
		"INSERT INTO dogs (name, breed) VALUES (?, ?)",
		dog.Name, dog.Breed,
	)
	if err != nil {
		return fmt.Errorf("insert dog: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	dog.ID = id
	return nil
}

// scanDog reads a single (id, name, breed) row through domain.DogFromRow.
func scanDog(row *sql.Row) (*domain.Dog, error) {
	values := make([]any, 3)
	if err := row.Scan(&values[0], &values[1], &values[2]); err != nil {
		return nil, err
	}
	return domain.DogFromRow(values)
}

func scanDogs(rows *sql.Rows) ([]domain.Dog, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("dog columns: %w", err)
	}

	dogs := []domain.Dog{}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan dog: %w", err)
		}
		dog, err := domain.DogFromRow(values)
		if err != nil {
			return nil, err
		}
		dogs = append(dogs, *dog)
	}
	return dogs, rows.Err()
}

func notFoundOr(err error, op string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
