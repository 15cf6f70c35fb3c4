package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/msomdec/kennel/internal/domain"
)

// DogService exposes the dog mapper to the HTTP API and the CLI.
type DogService struct {
	dogs domain.DogRepository
}

// NewDogService creates a new DogService.
func NewDogService(dogs domain.DogRepository) *DogService {
	return &DogService{dogs: dogs}
}

// DogPatch lists the attributes to overwrite. Nil fields are left unchanged.
type DogPatch struct {
	Name  *string
	Breed *string
}

func (s *DogService) CreateTable(ctx context.Context) error {
	if err := s.dogs.CreateTable(ctx); err != nil {
		return err
	}
	slog.Debug("dogs table ensured")
	return nil
}

func (s *DogService) DropTable(ctx context.Context) error {
	if err := s.dogs.DropTable(ctx); err != nil {
		return err
	}
	slog.Info("dogs table dropped")
	return nil
}

// ResetTable drops and recreates the dogs table, leaving it empty.
func (s *DogService) ResetTable(ctx context.Context) error {
	if err := s.DropTable(ctx); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	if err := s.CreateTable(ctx); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	return nil
}

// Save persists an unsaved dog and assigns its ID.
func (s *DogService) Save(ctx context.Context, dog *domain.Dog) error {
	if err := s.dogs.Save(ctx, dog); err != nil {
		return err
	}
	slog.Info("dog created", "id", dog.ID, "name", dog.Name, "breed", dog.Breed)
	return nil
}

func (s *DogService) Create(ctx context.Context, name, breed string) (*domain.Dog, error) {
	dog := domain.NewDog(name, breed)
	if err := s.Save(ctx, dog); err != nil {
		return nil, err
	}
	return dog, nil
}

func (s *DogService) List(ctx context.Context) ([]domain.Dog, error) {
	return s.dogs.GetAll(ctx)
}

func (s *DogService) FindByName(ctx context.Context, name string) (*domain.Dog, error) {
	return s.dogs.FindByName(ctx, name)
}

func (s *DogService) FindByID(ctx context.Context, id int64) (*domain.Dog, error) {
	return s.dogs.FindByID(ctx, id)
}

func (s *DogService) FindOrCreate(ctx context.Context, name, breed string) (*domain.Dog, error) {
	dog, err := s.dogs.FindOrCreateBy(ctx, name, breed)
	if err != nil {
		return nil, err
	}
	slog.Debug("dog found or created", "id", dog.ID, "name", name, "breed", breed)
	return dog, nil
}

// Update loads the dog with the given ID, applies the patch, and writes it
// back.
func (s *DogService) Update(ctx context.Context, id int64, patch DogPatch) (*domain.Dog, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: id must be positive", domain.ErrInvalidInput)
	}

	dog, err := s.dogs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		dog.Name = *patch.Name
	}
	if patch.Breed != nil {
		dog.Breed = *patch.Breed
	}

	if err := s.dogs.Update(ctx, dog); err != nil {
		return nil, fmt.Errorf("update dog %d: %w", id, err)
	}
	slog.Info("dog updated", "id", dog.ID, "name", dog.Name, "breed", dog.Breed)
	return dog, nil
}
