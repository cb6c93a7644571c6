package importer

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryStorePutTake(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	batch := &Batch{
		Rows:   []RowValues{{ContainerCode: "MSKU1234567"}},
		YearID: 1,
		Year:   2024,
	}
	if err := store.Put(ctx, "tok", batch); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	got, err := store.Take(ctx, "tok")
	if err != nil {
		t.Fatalf("Take returned error: %v", err)
	}
	if len(got.Rows) != 1 || got.Rows[0].ContainerCode != "MSKU1234567" {
		t.Fatalf("unexpected batch: %+v", got)
	}

	// The batch is consumed; a second take finds nothing.
	if _, err := store.Take(ctx, "tok"); !errors.Is(err, ErrBatchNotFound) {
		t.Fatalf("second Take error = %v, want ErrBatchNotFound", err)
	}
}

func TestMemoryStoreMissingToken(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	if _, err := store.Take(context.Background(), "nope"); !errors.Is(err, ErrBatchNotFound) {
		t.Fatalf("Take error = %v, want ErrBatchNotFound", err)
	}
}

func TestMemoryStoreOverwrite(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	store.Put(ctx, "tok", &Batch{Year: 2023})
	store.Put(ctx, "tok", &Batch{Year: 2024})

	got, err := store.Take(ctx, "tok")
	if err != nil {
		t.Fatalf("Take returned error: %v", err)
	}
	if got.Year != 2024 {
		t.Fatalf("got year %d, want 2024 (last preview wins)", got.Year)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(-time.Second)
	ctx := context.Background()

	store.Put(ctx, "tok", &Batch{Year: 2024})
	if _, err := store.Take(ctx, "tok"); !errors.Is(err, ErrBatchNotFound) {
		t.Fatalf("expired Take error = %v, want ErrBatchNotFound", err)
	}
}
