package app

import (
	"testing"

	"github.com/akreem/alliance/internal/domain"
)

func TestMapPropertySnakeAndCamel(t *testing.T) {
	snake := map[string]any{
		"id":          float64(1),
		"title":       "Villa Sidi Bou Said",
		"location":    "Sidi Bou Said",
		"type":        "Villa",
		"price":       "1,200,000 TND",
		"price_value": float64(1200000),
		"beds":        float64(4),
		"baths":       float64(3),
		"is_favorite": true,
		"image_url":   "https://img.example/1.jpg",
	}
	camel := map[string]any{
		"id":           "1",
		"title":        "Villa Sidi Bou Said",
		"location":     "Sidi Bou Said",
		"propertyType": "Villa",
		"price":        "1,200,000 TND",
		"priceValue":   float64(1200000),
		"beds":         float64(4),
		"baths":        float64(3),
		"isFavorite":   true,
		"imageUrl":     "https://img.example/1.jpg",
	}

	for name, payload := range map[string]map[string]any{"snake": snake, "camel": camel} {
		p := mapProperty(payload)
		if p.ID != "1" || p.Title != "Villa Sidi Bou Said" || p.Type != "Villa" {
			t.Fatalf("%s: %+v", name, p)
		}
		if p.PriceValue != 1200000 || p.Beds != 4 || p.Baths != 3 || !p.IsFavorite {
			t.Fatalf("%s: %+v", name, p)
		}
		if p.Image != "https://img.example/1.jpg" {
			t.Fatalf("%s: image = %q", name, p.Image)
		}
	}
}

func TestMapPropertyPriceFallback(t *testing.T) {
	p := mapProperty(map[string]any{
		"id": "2", "title": "t", "location": "l",
		"price": "850,000 TND",
	})
	if p.PriceValue != 850000 {
		t.Fatalf("PriceValue = %v, want 850000", p.PriceValue)
	}

	// no digits anywhere: defaults to 0, never an error
	p = mapProperty(map[string]any{
		"id": "3", "title": "t", "location": "l",
		"price": "Prix sur demande",
	})
	if p.PriceValue != 0 {
		t.Fatalf("PriceValue = %v, want 0", p.PriceValue)
	}
}

func TestMapPropertyMirrorsImages(t *testing.T) {
	// list only: primary image is the first entry
	p := mapProperty(map[string]any{
		"id": "4", "title": "t", "location": "l",
		"images": []any{"a.jpg", "b.jpg"},
	})
	if p.Image != "a.jpg" {
		t.Fatalf("Image = %q", p.Image)
	}

	// primary only: list gets seeded with it
	p = mapProperty(map[string]any{
		"id": "5", "title": "t", "location": "l",
		"image": "main.jpg",
	})
	if len(p.Images) != 1 || p.Images[0] != "main.jpg" {
		t.Fatalf("Images = %v", p.Images)
	}

	// object entries with image_url keys
	p = mapProperty(map[string]any{
		"id": "6", "title": "t", "location": "l",
		"images": []any{
			map[string]any{"image_url": "x.jpg", "is_primary": true},
			map[string]any{"image_url": "y.jpg"},
		},
	})
	if len(p.Images) != 2 || p.Images[0] != "x.jpg" {
		t.Fatalf("Images = %v", p.Images)
	}
}

func TestMapPropertyDefaultsAndAgent(t *testing.T) {
	p := mapProperty(map[string]any{
		"id": "7", "title": "t", "location": "l",
		"agent": map[string]any{"email": "sami@alliance.tn", "full_name": "Sami Ben Ali"},
	})
	if p.Type != "Unknown" {
		t.Fatalf("Type = %q, want Unknown", p.Type)
	}
	if p.Agent == nil || p.Agent.Name != "Sami Ben Ali" {
		t.Fatalf("Agent = %+v", p.Agent)
	}

	lat, lng := p.Coords()
	if lat != domain.DefaultLat || lng != domain.DefaultLng {
		t.Fatalf("Coords = %v, %v; want defaults", lat, lng)
	}
}

func TestMapAuthResponseShapes(t *testing.T) {
	flat := map[string]any{
		"id": float64(1), "username": "amel", "email": "amel@alliance.tn", "token": "t1",
	}
	u, tok := mapAuthResponse(flat)
	if tok != "t1" || u.Username != "amel" || u.ID != 1 {
		t.Fatalf("flat: %+v, %q", u, tok)
	}

	nested := map[string]any{
		"user":   map[string]any{"id": float64(2), "username": "karim", "email": "karim@alliance.tn"},
		"access": "t2",
	}
	u, tok = mapAuthResponse(nested)
	if tok != "t2" || u.Username != "karim" || u.ID != 2 {
		t.Fatalf("nested: %+v, %q", u, tok)
	}
}

func TestMapAuthResponseStaffHeuristic(t *testing.T) {
	u, _ := mapAuthResponse(map[string]any{"username": "admin", "token": "t"})
	if !u.IsStaff {
		t.Fatal("admin username not flagged staff")
	}

	u, _ = mapAuthResponse(map[string]any{
		"username": "karim", "email": "karim@alliance.tn", "token": "t",
	})
	if u.IsStaff {
		t.Fatal("regular user flagged staff")
	}

	u, _ = mapAuthResponse(map[string]any{
		"username": "karim", "is_staff": true, "token": "t",
	})
	if !u.IsStaff {
		t.Fatal("explicit is_staff ignored")
	}
}

func TestMapToggleResultFallbackID(t *testing.T) {
	res := mapToggleResult(map[string]any{"isFavorite": true}, "8")
	if res.ID != "8" || !res.IsFavorite {
		t.Fatalf("res = %+v", res)
	}

	res = mapToggleResult(map[string]any{"id": float64(9), "is_favorite": false}, "8")
	if res.ID != "9" || res.IsFavorite {
		t.Fatalf("res = %+v", res)
	}
}

func TestParsePriceDigits(t *testing.T) {
	cases := map[string]float64{
		"1,200,000 TND": 1200000,
		"850000":        850000,
		"TND 2.100.000": 2100000,
		"":              0,
		"sur demande":   0,
	}
	for in, want := range cases {
		if got := parsePriceDigits(in); got != want {
			t.Errorf("parsePriceDigits(%q) = %v, want %v", in, got, want)
		}
	}
}
