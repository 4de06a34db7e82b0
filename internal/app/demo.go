package app

import (
	"github.com/google/uuid"

	"github.com/akreem/alliance/internal/domain"
)

// DemoProperties returns the built-in showcase listings, served only when the
// upstream is unreachable, no snapshot exists, and the demo fallback is
// explicitly enabled. Identifiers are transient uuids regenerated per call;
// they are never sent upstream and never persisted.
func DemoProperties() []domain.Property {
	seed := []domain.Property{
		{
			Title: "Luxury Villa in Sidi Bou Said", Location: "Sidi Bou Said, Tunis",
			Price: "1,200,000 TND", PriceValue: 1200000,
			Beds: 4, Baths: 3, Sqft: 3500, Type: "Villa",
			Image: "https://images.unsplash.com/photo-1600596542815-ffad4c1539a9",
		},
		{
			Title: "Modern Downtown Apartment", Location: "Les Berges du Lac, Tunis",
			Price: "850,000 TND", PriceValue: 850000,
			Beds: 3, Baths: 2, Sqft: 2800, Type: "Apartment", IsFavorite: true,
			Image: "https://images.unsplash.com/photo-1600607687939-ce8a6c25118c",
		},
		{
			Title: "Elegant Beachfront Estate", Location: "Hammamet, Tunisia",
			Price: "2,100,000 TND", PriceValue: 2100000,
			Beds: 5, Baths: 4, Sqft: 4200, Type: "Estate",
			Image: "https://images.unsplash.com/photo-1600585154340-be6161a56a0c",
		},
		{
			Title: "Waterfront Modern Villa", Location: "Gammarth, Tunis",
			Price: "1,800,000 TND", PriceValue: 1800000,
			Beds: 6, Baths: 5, Sqft: 5500, Type: "Villa",
			Image: "https://images.unsplash.com/photo-1600047509807-ba8f99d2cdde",
		},
		{
			Title: "Contemporary Home in Carthage", Location: "Carthage, Tunis",
			Price: "950,000 TND", PriceValue: 950000,
			Beds: 4, Baths: 4, Sqft: 3800, Type: "House",
			Image: "https://images.unsplash.com/photo-1600566753376-12c8ab8e17a9",
		},
		{
			Title: "Luxury Condo with Sea View", Location: "La Marsa, Tunis",
			Price: "750,000 TND", PriceValue: 750000,
			Beds: 2, Baths: 2, Sqft: 1800, Type: "Condo",
			Image: "https://images.unsplash.com/photo-1600573472550-8090b5e0745e",
		},
	}
	for i := range seed {
		seed[i].ID = "demo-" + uuid.NewString()
		seed[i].Images = []string{seed[i].Image}
	}
	return seed
}
