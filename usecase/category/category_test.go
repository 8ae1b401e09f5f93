package category

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fastygo/planner/domain"
	"github.com/fastygo/planner/internal/retry"
)

type fakeCategories struct {
	items     []domain.Category
	listFails int
	calls     int
}

func (f *fakeCategories) List(_ context.Context, ownerID string) ([]domain.Category, error) {
	f.calls++
	if f.listFails > 0 {
		f.listFails--
		return nil, errors.New("timeout")
	}
	var out []domain.Category
	for _, c := range f.items {
		if c.OwnerID == ownerID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCategories) Insert(_ context.Context, c *domain.Category) (*domain.Category, error) {
	for _, existing := range f.items {
		if existing.OwnerID == c.OwnerID && existing.Name == c.Name {
			return nil, domain.ErrCategoryExists
		}
	}
	created := *c
	created.ID = c.Name
	f.items = append(f.items, created)
	return &created, nil
}

func (f *fakeCategories) Delete(_ context.Context, ownerID, id string) error {
	for i, c := range f.items {
		if c.OwnerID == ownerID && c.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrCategoryNotFound
}

var fast = retry.Policy{Attempts: 2, Initial: time.Millisecond, Multiplier: 1}

func TestCreateTrimsAndRejectsDuplicates(t *testing.T) {
	uc := New(&fakeCategories{}, fast, nil)

	created, err := uc.Create(context.Background(), "u1", domain.Category{Name: " Work "})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Name != "Work" || created.OwnerID != "u1" {
		t.Fatalf("unexpected category %+v", created)
	}
	if _, err := uc.Create(context.Background(), "u1", domain.Category{Name: "Work"}); !errors.Is(err, domain.ErrCategoryExists) {
		t.Fatalf("expected ErrCategoryExists, got %v", err)
	}
	if _, err := uc.Create(context.Background(), "u2", domain.Category{Name: "Work"}); err != nil {
		t.Fatalf("other owner may reuse the name: %v", err)
	}
	if _, err := uc.Create(context.Background(), "u1", domain.Category{Name: "  "}); !domain.IsDomainError(err, domain.ErrCodeInvalid) {
		t.Fatalf("expected INVALID, got %v", err)
	}
}

func TestListRetriesTransientFailure(t *testing.T) {
	store := &fakeCategories{items: []domain.Category{{ID: "a", OwnerID: "u1", Name: "a"}}, listFails: 1}
	uc := New(store, fast, nil)

	got, err := uc.List(context.Background(), "u1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || store.calls != 2 {
		t.Fatalf("got %d categories after %d calls", len(got), store.calls)
	}

	store.listFails = 5
	if _, err := uc.List(context.Background(), "u1"); !domain.IsDomainError(err, domain.ErrCodeUnavailable) {
		t.Fatalf("expected UNAVAILABLE, got %v", err)
	}
}

func TestDeleteMissing(t *testing.T) {
	uc := New(&fakeCategories{}, fast, nil)
	if err := uc.Delete(context.Background(), "u1", "nope"); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}
