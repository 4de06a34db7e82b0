package domain

import "strconv"

// Fallback coordinates (central Tunis) used whenever a listing carries no
// geolocation. Map consumers must never fail on missing coordinates.
const (
	DefaultLat = 36.8065
	DefaultLng = 10.1815
)

// Property is a normalized listing record. Identifiers are opaque strings
// assigned by the upstream API; the gateway never fabricates persistent ids
// (demo listings use transient ones).
type Property struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Location    string   `json:"location"`
	Type        string   `json:"type"`
	Beds        int      `json:"beds"`
	Baths       int      `json:"baths"`
	Sqft        float64  `json:"sqft"`
	Price       string   `json:"price"`      // display string, e.g. "1,200,000 TND"
	PriceValue  float64  `json:"priceValue"` // canonical numeric price; 0 when underivable
	Image       string   `json:"image"`
	Images      []string `json:"images,omitempty"` // first entry mirrors Image
	Features    []string `json:"features,omitempty"`
	Lat         *float64 `json:"lat,omitempty"`
	Lng         *float64 `json:"lng,omitempty"`
	Agent       *Agent   `json:"agent,omitempty"`
	IsFavorite  bool     `json:"isFavorite"` // mutated only through the toggle flow
}

// EffectivePrice returns the canonical numeric price. When PriceValue is
// absent it is derived by concatenating the digit runs of the display string
// ("1,200,000 TND" -> 1200000); anything underivable counts as 0.
func (p Property) EffectivePrice() float64 {
	if p.PriceValue > 0 {
		return p.PriceValue
	}
	var digits []byte
	for i := 0; i < len(p.Price); i++ {
		if c := p.Price[i]; c >= '0' && c <= '9' {
			digits = append(digits, c)
		}
	}
	if len(digits) == 0 {
		return 0
	}
	v, err := strconv.ParseFloat(string(digits), 64)
	if err != nil {
		return 0
	}
	return v
}

// Coords returns the listing's coordinates, falling back to the default
// location when either component is missing.
func (p Property) Coords() (lat, lng float64) {
	if p.Lat == nil || p.Lng == nil {
		return DefaultLat, DefaultLng
	}
	return *p.Lat, *p.Lng
}

// Agent is a brokerage representative, keyed by email and shared across
// listings.
type Agent struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Image string `json:"image,omitempty"`
}

// ToggleResult is the upstream's confirmation of a favorite toggle.
type ToggleResult struct {
	ID         string `json:"id"`
	IsFavorite bool   `json:"isFavorite"`
}

// PropertyDraft carries the writable listing fields for create/update calls.
type PropertyDraft struct {
	Title       string
	Price       string
	PriceValue  float64
	Location    string
	Type        string
	Beds        int
	Baths       int
	Sqft        float64
	Description string
	Lat         *float64
	Lng         *float64
}

// ImageInput is one entry of an image-set update.
type ImageInput struct {
	URL       string
	IsPrimary bool
}

// ContactForm is a customer enquiry relayed to the upstream.
type ContactForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Message string `json:"message"`
}
