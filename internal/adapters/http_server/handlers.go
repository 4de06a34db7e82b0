// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/akreem/alliance/internal/app"
	"github.com/akreem/alliance/internal/domain"
)

type Handlers struct {
	Q       *app.QueryService
	F       *app.FavoriteService
	Auth    *app.AuthService
	Admin   *app.AdminService
	Contact *app.ContactService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Get("/v1/properties", h.listProperties)
	s.mux.Get("/v1/properties/types", h.propertyTypes)
	s.mux.Get("/v1/properties/{id}", h.getProperty)
	s.mux.Post("/v1/properties/{id}/favorite", h.toggleFavorite)
	s.mux.Get("/v1/agents", h.listAgents)

	s.mux.Post("/v1/auth/register", h.register)
	s.mux.Post("/v1/auth/login", h.login)
	s.mux.Post("/v1/contact", h.contact)

	s.mux.Group(func(r chi.Router) {
		r.Use(RequireSession(h.Auth))
		r.Post("/v1/auth/logout", h.logout)
		r.Get("/v1/auth/me", h.me)
		r.Post("/v1/properties", h.createProperty)
		r.Put("/v1/properties/{id}", h.updateProperty)
		r.Delete("/v1/properties/{id}", h.deleteProperty)
		r.Post("/v1/properties/{id}/main-image", h.setMainImage)
		r.Post("/v1/properties/{id}/images", h.setImages)
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeCacheable(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

// ---- listings ----

// filterFromQuery builds the filter; an absent upper bound means unbounded.
func filterFromQuery(r *http.Request) (domain.FilterState, error) {
	q := r.URL.Query()
	f := domain.FilterState{
		Search:   q.Get("q"),
		PriceMax: math.Inf(1),
		Types:    q["type"],
	}
	if v := q.Get("price_min"); v != "" {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil || n < 0 {
			return f, errors.New("price_min must be a non-negative number")
		}
		f.PriceMin = n
	}
	if v := q.Get("price_max"); v != "" {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil || n < 0 {
			return f, errors.New("price_max must be a non-negative number")
		}
		f.PriceMax = n
	}
	if v := q.Get("min_beds"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return f, errors.New("min_beds must be a non-negative integer")
		}
		f.MinBeds = n
	}
	return f, nil
}

func (h *Handlers) listProperties(w http.ResponseWriter, r *http.Request) {
	f, err := filterFromQuery(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid filter", err.Error())
		return
	}
	out, err := h.Q.Search(r.Context(), f)
	if err != nil {
		writeProblem(w, http.StatusBadGateway, "Upstream error", "could not load properties")
		return
	}
	writeCacheable(w, r, out)
}

func (h *Handlers) propertyTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.Q.PropertyTypes(r.Context())
	if err != nil {
		writeProblem(w, http.StatusBadGateway, "Upstream error", "could not load property types")
		return
	}
	writeCacheable(w, r, types)
}

func (h *Handlers) getProperty(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, err := h.Q.GetProperty(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeProblem(w, http.StatusNotFound, "Not Found", "property not found")
			return
		}
		writeProblem(w, http.StatusBadGateway, "Upstream error", "could not load property")
		return
	}
	writeCacheable(w, r, p)
}

func (h *Handlers) toggleFavorite(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	res, err := h.F.Toggle(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeProblem(w, http.StatusNotFound, "Not Found", "property not found")
			return
		}
		writeProblem(w, http.StatusBadGateway, "Upstream error", "could not toggle favorite")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handlers) listAgents(w http.ResponseWriter, r *http.Request) {
	agents, err := h.Q.ListAgents(r.Context())
	if err != nil {
		writeProblem(w, http.StatusBadGateway, "Upstream error", "could not load agents")
		return
	}
	writeCacheable(w, r, agents)
}

// ---- auth ----

type credentialsRequest struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid request", "username and password are required")
		return
	}
	sess, err := h.Auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			writeProblem(w, http.StatusUnauthorized, "Unauthorized", "invalid credentials")
			return
		}
		writeProblem(w, http.StatusBadGateway, "Upstream error", "login failed")
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (h *Handlers) register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Email == "" || req.Password == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid request", "username, email and password are required")
		return
	}
	sess, err := h.Auth.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeProblem(w, http.StatusBadGateway, "Upstream error", "registration failed")
		return
	}
	writeJSON(w, http.StatusCreated, sess)
}

func (h *Handlers) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Auth.Logout(r.Context(), sessionFromCtx(r.Context())); err != nil {
		writeProblem(w, http.StatusInternalServerError, "Logout failed", "could not clear session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) me(w http.ResponseWriter, r *http.Request) {
	u, ok := h.Auth.CurrentUser(r.Context(), sessionFromCtx(r.Context()))
	if !ok {
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", "no active session")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// ---- contact ----

func (h *Handlers) contact(w http.ResponseWriter, r *http.Request) {
	var form domain.ContactForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid request", "malformed contact form")
		return
	}
	msg, err := h.Contact.Submit(r.Context(), form)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Contact failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": msg})
}

// ---- admin catalog writes ----

type propertyRequest struct {
	Title       string   `json:"title"`
	Price       string   `json:"price"`
	PriceValue  float64  `json:"priceValue"`
	Location    string   `json:"location"`
	Type        string   `json:"type"`
	Beds        int      `json:"beds"`
	Baths       int      `json:"baths"`
	Sqft        float64  `json:"sqft"`
	Description string   `json:"description"`
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
}

func (p propertyRequest) draft() domain.PropertyDraft {
	return domain.PropertyDraft{
		Title: p.Title, Price: p.Price, PriceValue: p.PriceValue,
		Location: p.Location, Type: p.Type,
		Beds: p.Beds, Baths: p.Baths, Sqft: p.Sqft,
		Description: p.Description, Lat: p.Lat, Lng: p.Lng,
	}
}

// token fetches the upstream bearer for the gated request.
func (h *Handlers) token(w http.ResponseWriter, r *http.Request) (string, bool) {
	tok, ok := h.Auth.Token(r.Context(), sessionFromCtx(r.Context()))
	if !ok {
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", "authentication required")
	}
	return tok, ok
}

func (h *Handlers) createProperty(w http.ResponseWriter, r *http.Request) {
	tok, ok := h.token(w, r)
	if !ok {
		return
	}
	var req propertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid request", "title is required")
		return
	}
	p, err := h.Admin.CreateProperty(r.Context(), tok, req.draft())
	if err != nil {
		h.writeWriteError(w, err, "could not create property")
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *Handlers) updateProperty(w http.ResponseWriter, r *http.Request) {
	tok, ok := h.token(w, r)
	if !ok {
		return
	}
	var req propertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid request", "malformed property payload")
		return
	}
	p, err := h.Admin.UpdateProperty(r.Context(), tok, chi.URLParam(r, "id"), req.draft())
	if err != nil {
		h.writeWriteError(w, err, "could not update property")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handlers) deleteProperty(w http.ResponseWriter, r *http.Request) {
	tok, ok := h.token(w, r)
	if !ok {
		return
	}
	if err := h.Admin.DeleteProperty(r.Context(), tok, chi.URLParam(r, "id")); err != nil {
		h.writeWriteError(w, err, "could not delete property")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) setMainImage(w http.ResponseWriter, r *http.Request) {
	tok, ok := h.token(w, r)
	if !ok {
		return
	}
	var req struct {
		ImageURL string `json:"image_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ImageURL == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid request", "image_url is required")
		return
	}
	p, err := h.Admin.SetMainImage(r.Context(), tok, chi.URLParam(r, "id"), req.ImageURL)
	if err != nil {
		h.writeWriteError(w, err, "could not update main image")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handlers) setImages(w http.ResponseWriter, r *http.Request) {
	tok, ok := h.token(w, r)
	if !ok {
		return
	}
	var req struct {
		Images []struct {
			ImageURL  string `json:"image_url"`
			IsPrimary bool   `json:"is_primary"`
		} `json:"images"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Images) == 0 {
		writeProblem(w, http.StatusBadRequest, "Invalid request", "images are required")
		return
	}
	images := make([]domain.ImageInput, 0, len(req.Images))
	for _, img := range req.Images {
		images = append(images, domain.ImageInput{URL: img.ImageURL, IsPrimary: img.IsPrimary})
	}
	p, err := h.Admin.SetImages(r.Context(), tok, chi.URLParam(r, "id"), images)
	if err != nil {
		h.writeWriteError(w, err, "could not update images")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handlers) writeWriteError(w http.ResponseWriter, err error, detail string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", detail)
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrForbidden):
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", "upstream rejected the session token")
	default:
		writeProblem(w, http.StatusBadGateway, "Upstream error", detail)
	}
}
