package repository_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/msomdec/kennel/internal/config"
	"github.com/msomdec/kennel/internal/repository"
)

func TestOpen_SQLite(t *testing.T) {
	cfg := &config.Config{
		DatabaseDriver: config.DriverSQLite,
		DatabasePath:   filepath.Join(t.TempDir(), "dogs.db"),
	}

	db, err := repository.Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.Dogs().CreateTable(ctx); err != nil {
		t.Fatalf("CreateTable: %v", err)
	}
	if _, err := db.Dogs().Create(ctx, "Rex", "Lab"); err != nil {
		t.Fatalf("Create: %v", err)
	}
}

func TestOpen_Memory(t *testing.T) {
	db, err := repository.Open(context.Background(), &config.Config{DatabaseDriver: config.DriverMemory})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	if err := db.Dogs().CreateTable(context.Background()); err != nil {
		t.Fatalf("CreateTable: %v", err)
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	if _, err := repository.Open(context.Background(), &config.Config{DatabaseDriver: "oracle"}); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}
