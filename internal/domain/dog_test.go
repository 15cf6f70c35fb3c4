package domain_test

import (
	"errors"
	"testing"

	"github.com/msomdec/kennel/internal/domain"
)

func TestNewDog_Unpersisted(t *testing.T) {
	dog := domain.NewDog("", "")
	if dog.Persisted() {
		t.Fatal("expected new dog to be unpersisted")
	}
	if dog.ID != 0 {
		t.Fatalf("expected zero ID, got %d", dog.ID)
	}
}

func TestDogFromRow(t *testing.T) {
	dog, err := domain.DogFromRow([]any{int64(7), "Rex", []byte("Lab")})
	if err != nil {
		t.Fatalf("DogFromRow: %v", err)
	}
	if dog.ID != 7 || dog.Name != "Rex" || dog.Breed != "Lab" {
		t.Fatalf("unexpected dog: %+v", dog)
	}
	if !dog.Persisted() {
		t.Fatal("expected materialized dog to be persisted")
	}
}

func TestDogFromRow_NullText(t *testing.T) {
	dog, err := domain.DogFromRow([]any{int64(1), nil, nil})
	if err != nil {
		t.Fatalf("DogFromRow: %v", err)
	}
	if dog.Name != "" || dog.Breed != "" {
		t.Fatalf("expected empty name and breed, got %+v", dog)
	}
}

func TestDogFromRow_Malformed(t *testing.T) {
	tests := []struct {
		name string
		row  []any
	}{
		{"too short", []any{int64(1), "Rex"}},
		{"too long", []any{int64(1), "Rex", "Lab", "extra"}},
		{"empty", nil},
		{"text id", []any{"1", "Rex", "Lab"}},
		{"numeric name", []any{int64(1), 42, "Lab"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.DogFromRow(tt.row)
			if !errors.Is(err, domain.ErrMalformedRow) {
				t.Fatalf("expected ErrMalformedRow, got %v", err)
			}
		})
	}
}
