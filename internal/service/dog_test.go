package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/msomdec/kennel/internal/domain"
	"github.com/msomdec/kennel/internal/repository/memory"
	"github.com/msomdec/kennel/internal/service"
)

func newTestDogService(t *testing.T) *service.DogService {
	t.Helper()
	svc := service.NewDogService(memory.NewDogRepository())
	if err := svc.CreateTable(context.Background()); err != nil {
		t.Fatalf("CreateTable: %v", err)
	}
	return svc
}

func ptr(s string) *string { return &s }

func TestDogService_CreateAndFind(t *testing.T) {
	svc := newTestDogService(t)
	ctx := context.Background()

	dog, err := svc.Create(ctx, "Rex", "Lab")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	found, err := svc.FindByID(ctx, dog.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found.Name != "Rex" || found.Breed != "Lab" {
		t.Fatalf("expected Rex/Lab, got %s/%s", found.Name, found.Breed)
	}

	byName, err := svc.FindByName(ctx, "Rex")
	if err != nil {
		t.Fatalf("FindByName: %v", err)
	}
	if byName.ID != dog.ID {
		t.Fatalf("expected id %d, got %d", dog.ID, byName.ID)
	}
}

func TestDogService_Save_Twice(t *testing.T) {
	svc := newTestDogService(t)
	ctx := context.Background()

	dog := domain.NewDog("Rex", "Lab")
	if err := svc.Save(ctx, dog); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := svc.Save(ctx, dog); !errors.Is(err, domain.ErrAlreadyPersisted) {
		t.Fatalf("expected ErrAlreadyPersisted, got %v", err)
	}
}

func TestDogService_FindOrCreate(t *testing.T) {
	svc := newTestDogService(t)
	ctx := context.Background()

	first, err := svc.FindOrCreate(ctx, "Fido", "Poodle")
	if err != nil {
		t.Fatalf("FindOrCreate: %v", err)
	}
	second, err := svc.FindOrCreate(ctx, "Fido", "Poodle")
	if err != nil {
		t.Fatalf("FindOrCreate: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected same id, got %d and %d", first.ID, second.ID)
	}
}

func TestDogService_Update_Patch(t *testing.T) {
	svc := newTestDogService(t)
	ctx := context.Background()

	dog, err := svc.Create(ctx, "Kevin", "Shepard")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.Update(ctx, dog.ID, service.DogPatch{Name: ptr("Susan")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "Susan" || updated.Breed != "Shepard" {
		t.Fatalf("expected Susan/Shepard, got %s/%s", updated.Name, updated.Breed)
	}

	updated, err = svc.Update(ctx, dog.ID, service.DogPatch{Breed: ptr("")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Breed != "" {
		t.Fatalf("expected empty breed, got %q", updated.Breed)
	}
}

func TestDogService_Update_Errors(t *testing.T) {
	svc := newTestDogService(t)
	ctx := context.Background()

	if _, err := svc.Update(ctx, 0, service.DogPatch{}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Update(ctx, 404, service.DogPatch{}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDogService_ResetTable(t *testing.T) {
	svc := newTestDogService(t)
	ctx := context.Background()

	for _, name := range []string{"Rex", "Fido"} {
		if _, err := svc.Create(ctx, name, "Mutt"); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	if err := svc.ResetTable(ctx); err != nil {
		t.Fatalf("ResetTable: %v", err)
	}

	dogs, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(dogs) != 0 {
		t.Fatalf("expected empty list after reset, got %d", len(dogs))
	}
}
