package domain

import (
	"context"
	"fmt"
)

// Dog represents one row of the dogs table. A zero ID means the dog has never
// been saved; store identifiers start at 1.
type Dog struct {
	ID    int64
	Name  string
	Breed string
}

// NewDog returns an unsaved Dog. Name and breed are not validated.
func NewDog(name, breed string) *Dog {
	return &Dog{Name: name, Breed: breed}
}

// Persisted reports whether the dog has been assigned a store identifier.
func (d *Dog) Persisted() bool {
	return d.ID != 0
}

// DogFromRow builds a Dog from a raw (id, name, breed) row as returned by a
// driver scan into []any. NULL text columns become empty strings.
func DogFromRow(row []any) (*Dog, error) {
	if len(row) != 3 {
		return nil, fmt.Errorf("%w: expected 3 columns, got %d", ErrMalformedRow, len(row))
	}

	id, err := rowInt(row[0])
	if err != nil {
		return nil, fmt.Errorf("%w: id: %v", ErrMalformedRow, err)
	}
	name, err := rowText(row[1])
	if err != nil {
		return nil, fmt.Errorf("%w: name: %v", ErrMalformedRow, err)
	}
	breed, err := rowText(row[2])
	if err != nil {
		return nil, fmt.Errorf("%w: breed: %v", ErrMalformedRow, err)
	}

	return &Dog{ID: id, Name: name, Breed: breed}, nil
}

func rowInt(v any) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int32:
		return int64(n), nil
	case int:
		return int64(n), nil
	default:
		return 0, fmt.Errorf("unexpected type %T", v)
	}
}

func rowText(v any) (string, error) {
	switch s := v.(type) {
	case nil:
		return "", nil
	case string:
		return s, nil
	case []byte:
		return string(s), nil
	default:
		return "", fmt.Errorf("unexpected type %T", v)
	}
}

// DogRepository defines table lifecycle and row operations for dogs.
// Lookups that match nothing return ErrNotFound.
type DogRepository interface {
	CreateTable(ctx context.Context) error
	DropTable(ctx context.Context) error
	Save(ctx context.Context, dog *Dog) error
	Create(ctx context.Context, name, breed string) (*Dog, error)
	GetAll(ctx context.Context) ([]Dog, error)
	FindByName(ctx context.Context, name string) (*Dog, error)
	FindByID(ctx context.Context, id int64) (*Dog, error)
	FindOrCreateBy(ctx context.Context, name, breed string) (*Dog, error)
	Update(ctx context.Context, dog *Dog) error
}
