package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/msomdec/kennel/internal/domain"
)

var errNoTable = errors.New("no such table: dogs")

// DogRepository is an in-process dogs table. Rows keep insertion order and
// ids auto-increment from 1 without reuse, even across drop/create.
type DogRepository struct {
	mu     sync.RWMutex
	rows   []domain.Dog
	exists bool
	nextID int64
}

func NewDogRepository() *DogRepository {
	return &DogRepository{nextID: 1}
}

// DB adapts a DogRepository to domain.Database.
type DB struct {
	dogs *DogRepository
}

func New() *DB {
	return &DB{dogs: NewDogRepository()}
}

func (d *DB) Dogs() domain.DogRepository { return d.dogs }

func (d *DB) Close() error { return nil }

func (r *DogRepository) CreateTable(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.exists {
		r.exists = true
		r.rows = nil
	}
	return nil
}

func (r *DogRepository) DropTable(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.exists = false
	r.rows = nil
	return nil
}

func (r *DogRepository) Save(ctx context.Context, dog *domain.Dog) error {
	if dog.Persisted() {
		return fmt.Errorf("%w: id %d", domain.ErrAlreadyPersisted, dog.ID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.insertLocked(dog)
}

func (r *DogRepository) Create(ctx context.Context, name, breed string) (*domain.Dog, error) {
	dog := domain.NewDog(name, breed)
	if err := r.Save(ctx, dog); err != nil {
		return nil, err
	}
	return dog, nil
}

func (r *DogRepository) GetAll(ctx context.Context) ([]domain.Dog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.exists {
		return nil, fmt.Errorf("list dogs: %w", errNoTable)
	}

	out := make([]domain.Dog, len(r.rows))
	copy(out, r.rows)
	return out, nil
}

func (r *DogRepository) FindByName(ctx context.Context, name string) (*domain.Dog, error) {
	return r.find(func(d domain.Dog) bool { return d.Name == name })
}

func (r *DogRepository) FindByID(ctx context.Context, id int64) (*domain.Dog, error) {
	return r.find(func(d domain.Dog) bool { return d.ID == id })
}

// FindOrCreateBy holds the write lock across lookup and insert.
func (r *DogRepository) FindOrCreateBy(ctx context.Context, name, breed string) (*domain.Dog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.exists {
		return nil, fmt.Errorf("find dog by name and breed: %w", errNoTable)
	}
	for _, d := range r.rows {
		if d.Name == name && d.Breed == breed {
			return &d, nil
		}
	}

	dog := domain.NewDog(name, breed)
	if err := r.insertLocked(dog); err != nil {
		return nil, err
	}
	return dog, nil
}

func (r *DogRepository) Update(ctx context.Context, dog *domain.Dog) error {
	if !dog.Persisted() {
		return domain.ErrNotPersisted
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.exists {
		return fmt.Errorf("update dog: %w", errNoTable)
	}
	for i := range r.rows {
		if r.rows[i].ID == dog.ID {
			r.rows[i].Name = dog.Name
			r.rows[i].Breed = dog.Breed
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *DogRepository) insertLocked(dog *domain.Dog) error {
	if !r.exists {
		return fmt.Errorf("insert dog: %w", errNoTable)
	}
	dog.ID = r.nextID
	r.nextID++
	r.rows = append(r.rows, *dog)
	return nil
}

func (r *DogRepository) find(match func(domain.Dog) bool) (*domain.Dog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.exists {
		return nil, fmt.Errorf("find dog: %w", errNoTable)
	}
	for _, d := range r.rows {
		if match(d) {
			return &d, nil
		}
	}
	return nil, domain.ErrNotFound
}
