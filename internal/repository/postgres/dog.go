package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/msomdec/kennel/internal/domain"
)

// DogRepository implements domain.DogRepository on Postgres.
type DogRepository struct {
	db *sql.DB
}

func NewDogRepository(db *DB) *DogRepository {
	return &DogRepository{db: db.SqlDB}
}

type rowQueryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (r *DogRepository) CreateTable(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS dogs (
			id BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
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

	dogs := []domain.Dog{}
	for rows.Next() {
		values := make([]any, 3)
		if err := rows.Scan(&values[0], &values[1], &values[2]); err != nil {
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

func (r *DogRepository) FindByName(ctx context.Context, name string) (*domain.Dog, error) {
	return findOne(ctx, r.db, "find dog by name",
		"SELECT id, name, breed FROM dogs WHERE name = $1 ORDER BY id LIMIT 1", name)
}

func (r *DogRepository) FindByID(ctx context.Context, id int64) (*domain.Dog, error) {
	return findOne(ctx, r.db, "find dog by id",
		"SELECT id, name, breed FROM dogs WHERE id = $1", id)
}

// FindOrCreateBy serialises concurrent callers for the same (name, breed)
// with a transaction-scoped advisory lock before looking up and inserting.
func (r *DogRepository) FindOrCreateBy(ctx context.Context, name, breed string) (*domain.Dog, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"SELECT pg_advisory_xact_lock(hashtext($1::text || '|' || $2::text))", name, breed); err != nil {
		return nil, fmt.Errorf("lock name and breed: %w", err)
	}

	dog, err := findOne(ctx, tx, "find dog by name and breed",
		"SELECT id, name, breed FROM dogs WHERE name = $1 AND breed = $2 ORDER BY id LIMIT 1", name, breed)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotFound):
		dog = domain.NewDog(name, breed)
		if err := insertDog(ctx, tx, dog); err != nil {
			return nil, err
		}
	default:
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
		"UPDATE dogs SET name = $1, breed = $2 WHERE id = $3",
		dog.Name, dog.Breed, dog.ID,
	)
	if err != nil {
		return fmt.Errorf("update dog: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// insertDog uses RETURNING since pgx does not report LastInsertId.
func insertDog(ctx context.Context, q rowQueryer, dog *domain.Dog) error {
	var id int64
	err := q.QueryRowContext(ctx,
		"INSERT INTO dogs (name, breed) VALUES ($1, $2) RETURNING id",
		dog.Name, dog.Breed,
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("insert dog: %w", err)
	}

	dog.ID = id
	return nil
}

func findOne(ctx context.Context, q rowQueryer, op, query string, args ...any) (*domain.Dog, error) {
	values := make([]any, 3)
	err := q.QueryRowContext(ctx, query, args...).Scan(&values[0], &values[1], &values[2])
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return domain.DogFromRow(values)
}
