package app

import (
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/akreem/alliance/internal/domain"
)

/********** alias registries (single source of truth) **********/

// The upstream serializes snake_case; older deployments and the browser
// client used camelCase. Both are accepted here so normalization happens in
// exactly one place.
var propertyAliases = map[string][]string{
	"id":          {"id", "pk", "externalId", "external_id"},
	"title":       {"title", "name"},
	"description": {"description", "markdown_description"},
	"location":    {"location", "address", "full_address"},
	"type":        {"type", "property_type", "propertyType"},
	"price":       {"price", "price_display", "priceDisplay"},
	"image":       {"image", "main_image", "image_url", "imageUrl"},
}

var agentAliases = map[string][]string{
	"email": {"email", "contact_email"},
	"name":  {"name", "full_name", "fullName"},
	"phone": {"phone", "phone_number", "phoneNumber"},
	"image": {"image", "image_url", "imageUrl", "photo"},
}

var userAliases = map[string][]string{
	"username": {"username", "user_name", "login"},
	"email":    {"email"},
	"token":    {"token", "access", "access_token", "accessToken", "authToken"},
}

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// lookupStr returns the string at path or "".
func lookupStr(m map[string]any, path string) string {
	if v := lookupAny(m, path); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// firstNonEmptyAlias: first non-empty string for a named alias set.
func firstNonEmptyAlias(m map[string]any, aliases map[string][]string, key string) string {
	for _, p := range aliases[key] {
		if s := lookupStr(m, p); s != "" {
			return s
		}
	}
	return ""
}

// getFloatFlexible: number from several paths (float64/int/string like "1,5").
func getFloatFlexible(m map[string]any, paths ...string) (float64, bool) {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			return v, true
		case int:
			return float64(v), true
		case int64:
			return float64(v), true
		case string:
			s := strings.TrimSpace(strings.ReplaceAll(v, ",", "."))
			if s == "" {
				continue
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}

// getBoolFlexible: bool from several paths (bool/"true"/1).
func getBoolFlexible(m map[string]any, paths ...string) bool {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case bool:
			return v
		case string:
			if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
				return b
			}
		case float64:
			return v != 0
		}
	}
	return false
}

// idString renders an opaque identifier from a string or numeric wire value.
func idString(m map[string]any, paths ...string) string {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatInt(int64(v), 10)
		case int:
			return strconv.Itoa(v)
		case int64:
			return strconv.FormatInt(v, 10)
		}
	}
	return ""
}

// stringList: accept []any holding either strings or {image_url/url/src}.
func stringList(m map[string]any, paths ...string) []string {
	for _, k := range paths {
		raw, ok := lookupAny(m, k).([]any)
		if !ok {
			continue
		}
		out := make([]string, 0, len(raw))
		for _, it := range raw {
			switch t := it.(type) {
			case string:
				if t != "" {
					out = append(out, t)
				}
			case map[string]any:
				for _, key := range []string{"image_url", "url", "src", "image"} {
					if u, ok := t[key].(string); ok && u != "" {
						out = append(out, u)
						break
					}
				}
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

// parsePriceDigits concatenates the digit runs of a price display string.
// "1,200,000 TND" -> 1200000; no digits -> 0.
func parsePriceDigits(price string) float64 {
	var digits []byte
	for i := 0; i < len(price); i++ {
		if c := price[i]; c >= '0' && c <= '9' {
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

/********** property mapper **********/

func mapProperty(p map[string]any) domain.Property {
	out := domain.Property{
		ID:          idString(p, propertyAliases["id"]...),
		Title:       firstNonEmptyAlias(p, propertyAliases, "title"),
		Description: firstNonEmptyAlias(p, propertyAliases, "description"),
		Location:    firstNonEmptyAlias(p, propertyAliases, "location"),
		Type:        firstNonEmptyAlias(p, propertyAliases, "type"),
		Price:       firstNonEmptyAlias(p, propertyAliases, "price"),
		Image:       firstNonEmptyAlias(p, propertyAliases, "image"),
		IsFavorite:  getBoolFlexible(p, "is_favorite", "isFavorite"),
		Images:      stringList(p, "images", "photos"),
		Features:    stringList(p, "features", "amenities"),
	}
	if out.Type == "" {
		out.Type = "Unknown"
	}

	if v, ok := getFloatFlexible(p, "price_value", "priceValue"); ok {
		out.PriceValue = v
	} else if out.Price != "" {
		out.PriceValue = parsePriceDigits(out.Price)
		if out.PriceValue == 0 {
			log.Warn().Str("id", out.ID).Str("price", out.Price).
				Msg("listing price not derivable, defaulting to 0")
		}
	}

	if v, ok := getFloatFlexible(p, "beds", "bedrooms"); ok {
		out.Beds = int(v)
	}
	if v, ok := getFloatFlexible(p, "baths", "bathrooms"); ok {
		out.Baths = int(v)
	}
	if v, ok := getFloatFlexible(p, "sqft", "area", "areaSqFt"); ok {
		out.Sqft = v
	}
	if v, ok := getFloatFlexible(p, "lat", "latitude", "location.lat"); ok {
		lat := v
		out.Lat = &lat
	}
	if v, ok := getFloatFlexible(p, "lng", "lon", "longitude", "location.lng"); ok {
		lng := v
		out.Lng = &lng
	}

	if a, ok := lookupAny(p, "agent").(map[string]any); ok {
		ag := mapAgent(a)
		if ag.Email != "" || ag.Name != "" {
			out.Agent = &ag
		}
	}

	// Keep the primary image and the image list mirrored, as the detail view
	// expects the first entry to be the main image.
	if out.Image == "" && len(out.Images) > 0 {
		out.Image = out.Images[0]
	} else if out.Image != "" && len(out.Images) == 0 {
		out.Images = []string{out.Image}
	}

	return out
}

func mapProperties(in []map[string]any) []domain.Property {
	out := make([]domain.Property, 0, len(in))
	for _, p := range in {
		out = append(out, mapProperty(p))
	}
	return out
}

/********** agent mapper **********/

func mapAgent(a map[string]any) domain.Agent {
	return domain.Agent{
		Email: firstNonEmptyAlias(a, agentAliases, "email"),
		Name:  firstNonEmptyAlias(a, agentAliases, "name"),
		Phone: firstNonEmptyAlias(a, agentAliases, "phone"),
		Image: firstNonEmptyAlias(a, agentAliases, "image"),
	}
}

func mapAgents(in []map[string]any) []domain.Agent {
	out := make([]domain.Agent, 0, len(in))
	for _, a := range in {
		out = append(out, mapAgent(a))
	}
	return out
}

/********** auth mappers **********/

// mapAuthResponse accepts both envelope shapes the upstream has used:
// {id, username, email, token} and {user: {...}, token, refresh}.
func mapAuthResponse(payload map[string]any) (domain.User, string) {
	token := firstNonEmptyAlias(payload, userAliases, "token")

	u := payload
	if nested, ok := payload["user"].(map[string]any); ok {
		u = nested
	}

	user := domain.User{
		Username: firstNonEmptyAlias(u, userAliases, "username"),
		Email:    firstNonEmptyAlias(u, userAliases, "email"),
	}
	if v, ok := getFloatFlexible(u, "id", "pk", "user_id"); ok {
		user.ID = int64(v)
	}
	user.IsStaff = getBoolFlexible(u, "is_staff", "isStaff", "is_admin", "isAdmin")
	if !user.IsStaff {
		// Same heuristic the old client used when the backend omits the flag.
		user.IsStaff = user.Username == "admin" || strings.Contains(user.Email, "admin")
	}
	return user, token
}

/********** toggle mapper **********/

func mapToggleResult(payload map[string]any, fallbackID string) domain.ToggleResult {
	res := domain.ToggleResult{
		ID:         idString(payload, "id"),
		IsFavorite: getBoolFlexible(payload, "isFavorite", "is_favorite"),
	}
	if res.ID == "" {
		res.ID = fallbackID
	}
	return res
}
