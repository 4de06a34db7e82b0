package app_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/akreem/alliance/internal/app"
	"github.com/akreem/alliance/internal/domain"
)

func TestToggleConfirmsAndInvalidates(t *testing.T) {
	requests := 0
	api := &fakeAPI{
		toggleFn: func(ctx context.Context, id string) (map[string]any, error) {
			requests++
			return map[string]any{"id": id, "isFavorite": true}, nil
		},
	}
	cache := &fakeCache{store: map[string]any{
		"properties:all": []domain.Property{{ID: "5"}},
		"property:5":     domain.Property{ID: "5"},
	}}
	f := app.NewFavoriteService(api, cache)

	res, err := f.Toggle(context.Background(), "5")
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if res.ID != "5" || !res.IsFavorite {
		t.Fatalf("Toggle = %+v", res)
	}
	if requests != 1 {
		t.Fatalf("upstream hit %d times, want exactly 1", requests)
	}
	if _, ok := cache.store["properties:all"]; ok {
		t.Fatal("list cache not invalidated after toggle")
	}
	if _, ok := cache.store["property:5"]; ok {
		t.Fatal("detail cache not invalidated after toggle")
	}
}

func TestToggleFailureIsNotRetried(t *testing.T) {
	requests := 0
	api := &fakeAPI{
		toggleFn: func(ctx context.Context, id string) (map[string]any, error) {
			requests++
			return nil, errUpstreamDown
		},
	}
	f := app.NewFavoriteService(api, &fakeCache{})

	if _, err := f.Toggle(context.Background(), "5"); err == nil {
		t.Fatal("expected error")
	}
	if requests != 1 {
		t.Fatalf("upstream hit %d times, want exactly 1", requests)
	}
}

func TestToggleUsesRequestIDWhenResponseOmitsIt(t *testing.T) {
	api := &fakeAPI{
		toggleFn: func(ctx context.Context, id string) (map[string]any, error) {
			return map[string]any{"is_favorite": true}, nil
		},
	}
	f := app.NewFavoriteService(api, &fakeCache{})

	res, err := f.Toggle(context.Background(), "9")
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if res.ID != "9" || !res.IsFavorite {
		t.Fatalf("Toggle = %+v", res)
	}
}

func TestApplyToggleResultPatchesOneRecord(t *testing.T) {
	in := []domain.Property{
		{ID: "1", Title: "Villa Sidi Bou Said", IsFavorite: false},
		{ID: "2", Title: "Appartement Lac 2", IsFavorite: true},
		{ID: "3", Title: "Maison Carthage", IsFavorite: false},
	}
	out := app.ApplyToggleResult(in, domain.ToggleResult{ID: "1", IsFavorite: true})

	if !out[0].IsFavorite {
		t.Fatal("record 1 not patched")
	}
	if out[0].Title != in[0].Title {
		t.Fatal("patched record lost other fields")
	}
	if !reflect.DeepEqual(out[1], in[1]) || !reflect.DeepEqual(out[2], in[2]) {
		t.Fatal("untouched records changed")
	}
	// input is never mutated
	if in[0].IsFavorite {
		t.Fatal("input slice mutated")
	}
}

func TestApplyToggleResultUnknownIDIsNoop(t *testing.T) {
	in := []domain.Property{{ID: "1"}, {ID: "2"}}
	out := app.ApplyToggleResult(in, domain.ToggleResult{ID: "99", IsFavorite: true})
	if !reflect.DeepEqual(out, in) {
		t.Fatalf("out = %+v, want unchanged copy", out)
	}
}
