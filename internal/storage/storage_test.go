package storage

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"financas/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestLoadEmptySlot(t *testing.T) {
	repo := newTestRepo(t)
	if _, err := repo.Load(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	l := core.DefaultLedger(2026)
	l, _ = l.SetExpense(3, core.CategoryStudies, 1500)
	l, _ = l.SetIncome(11, 6750)

	if err := repo.Save(ctx, l); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, l) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, l)
	}
}

func TestSaveOverwritesSlot(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := core.DefaultLedger(2026)
	if err := repo.Save(ctx, first); err != nil {
		t.Fatalf("Save first: %v", err)
	}

	second, _ := first.SetIncome(0, 9999)
	if err := repo.Save(ctx, second); err != nil {
		t.Fatalf("Save second: %v", err)
	}

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Months[0].Income != 9999 {
		t.Fatalf("latest save did not win: income = %v", got.Months[0].Income)
	}
	if got.Version != second.Version {
		t.Fatalf("version = %d, want %d", got.Version, second.Version)
	}
}
