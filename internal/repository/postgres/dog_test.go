package postgres_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/msomdec/kennel/internal/domain"
	"github.com/msomdec/kennel/internal/repository/postgres"
)

// Verify that *postgres.DB implements domain.Database at compile time.
var _ domain.Database = (*postgres.DB)(nil)

// newTestRepo connects to the database named by KENNEL_TEST_DATABASE_URL and
// starts every test from an empty dogs table.
func newTestRepo(t *testing.T) *postgres.DogRepository {
	t.Helper()
	dsn := os.Getenv("KENNEL_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("KENNEL_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := postgres.Open(ctx, dsn)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	repo := postgres.NewDogRepository(db)
	if err := repo.DropTable(ctx); err != nil {
		t.Fatalf("DropTable: %v", err)
	}
	if err := repo.CreateTable(ctx); err != nil {
		t.Fatalf("CreateTable: %v", err)
	}
	return repo
}

func TestDogRepository_CreateFindUpdate(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	dog, err := repo.Create(ctx, "Rex", "Lab")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if dog.ID == 0 {
		t.Fatal("expected id to be assigned")
	}

	found, err := repo.FindByID(ctx, dog.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if *found != *dog {
		t.Fatalf("expected %+v, got %+v", *dog, *found)
	}

	found.Breed = "Labrador"
	if err := repo.Update(ctx, found); err != nil {
		t.Fatalf("Update: %v", err)
	}

	byName, err := repo.FindByName(ctx, "Rex")
	if err != nil {
		t.Fatalf("FindByName: %v", err)
	}
	if byName.Breed != "Labrador" {
		t.Fatalf("expected Labrador, got %s", byName.Breed)
	}
}

func TestDogRepository_NotFoundAndPreconditions(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.FindByName(ctx, "nonexistent"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := repo.FindByID(ctx, 99999); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := repo.Update(ctx, domain.NewDog("Ghost", "Husky")); !errors.Is(err, domain.ErrNotPersisted) {
		t.Fatalf("expected ErrNotPersisted, got %v", err)
	}
}

func TestDogRepository_GetAll(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	dogs, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(dogs) != 0 {
		t.Fatalf("expected empty table, got %d dogs", len(dogs))
	}

	for _, name := range []string{"Rex", "Fido", "Bella"} {
		if _, err := repo.Create(ctx, name, "Mutt"); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	dogs, err = repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(dogs) != 3 {
		t.Fatalf("expected 3 dogs, got %d", len(dogs))
	}
}

func TestDogRepository_FindOrCreateBy_Concurrent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	const workers = 8
	ids := make([]int64, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			dog, err := repo.FindOrCreateBy(ctx, "Fido", "Poodle")
			if err != nil {
				errs[i] = err
				return
			}
			ids[i] = dog.ID
		}()
	}
	wg.Wait()

	for i := range workers {
		if errs[i] != nil {
			t.Fatalf("worker %d: %v", i, errs[i])
		}
		if ids[i] != ids[0] {
			t.Fatalf("worker %d got id %d, expected %d", i, ids[i], ids[0])
		}
	}

	dogs, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(dogs) != 1 {
		t.Fatalf("expected exactly one row, got %d", len(dogs))
	}
}
