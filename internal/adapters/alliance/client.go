// internal/adapters/alliance/client.go
package alliance

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/akreem/alliance/internal/adapters/observability"
	"github.com/akreem/alliance/internal/domain"
)

// Client talks to the brokerage REST API. Reads are retried on 429/transient
// 5xx with jittered backoff; writes are issued exactly once, since a replayed
// favorite toggle would flip the flag twice.
type Client struct {
	base string
	hc   *http.Client
	rl   *rate.Limiter
}

func New(base string, rps int) (*Client, error) {
	if base == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 20 * time.Second},
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// ---- Read paths ----

func (c *Client) ListProperties(ctx context.Context) ([]map[string]any, error) {
	var out []map[string]any
	return out, c.get(ctx, c.base+"/api/properties/", &out)
}

func (c *Client) GetProperty(ctx context.Context, id string) (map[string]any, error) {
	var out map[string]any
	return out, c.get(ctx, fmt.Sprintf("%s/api/properties/%s/", c.base, id), &out)
}

func (c *Client) ListAgents(ctx context.Context) ([]map[string]any, error) {
	var out []map[string]any
	return out, c.get(ctx, c.base+"/api/agents/", &out)
}

// ---- Favorite toggle ----

func (c *Client) ToggleFavorite(ctx context.Context, id string) (map[string]any, error) {
	var out map[string]any
	url := fmt.Sprintf("%s/api/properties/%s/favorite/", c.base, id)
	return out, c.write(ctx, http.MethodPost, url, "", nil, &out)
}

// ---- Authenticated catalog writes ----

func (c *Client) CreateProperty(ctx context.Context, token string, draft domain.PropertyDraft) (map[string]any, error) {
	var out map[string]any
	return out, c.write(ctx, http.MethodPost, c.base+"/api/properties/", token, draftPayload(draft), &out)
}

func (c *Client) UpdateProperty(ctx context.Context, token, id string, draft domain.PropertyDraft) (map[string]any, error) {
	var out map[string]any
	url := fmt.Sprintf("%s/api/properties/%s/", c.base, id)
	return out, c.write(ctx, http.MethodPut, url, token, draftPayload(draft), &out)
}

func (c *Client) DeleteProperty(ctx context.Context, token, id string) error {
	url := fmt.Sprintf("%s/api/properties/%s/", c.base, id)
	return c.write(ctx, http.MethodDelete, url, token, nil, nil)
}

func (c *Client) UpdateMainImage(ctx context.Context, token, id, imageURL string) (map[string]any, error) {
	var out map[string]any
	url := fmt.Sprintf("%s/api/properties/%s/update_main_image/", c.base, id)
	return out, c.write(ctx, http.MethodPost, url, token, map[string]any{"image_url": imageURL}, &out)
}

func (c *Client) UpdateImages(ctx context.Context, token, id string, images []domain.ImageInput) (map[string]any, error) {
	payload := make([]map[string]any, 0, len(images))
	for _, img := range images {
		payload = append(payload, map[string]any{"image_url": img.URL, "is_primary": img.IsPrimary})
	}
	var out map[string]any
	url := fmt.Sprintf("%s/api/properties/%s/update_images/", c.base, id)
	return out, c.write(ctx, http.MethodPost, url, token, map[string]any{"images": payload}, &out)
}

// ---- Auth & contact ----

func (c *Client) Register(ctx context.Context, username, email, password string) (map[string]any, error) {
	var out map[string]any
	body := map[string]any{"username": username, "email": email, "password": password}
	return out, c.write(ctx, http.MethodPost, c.base+"/api/auth/register/", "", body, &out)
}

func (c *Client) Login(ctx context.Context, username, password string) (map[string]any, error) {
	var out map[string]any
	body := map[string]any{"username": username, "password": password}
	return out, c.write(ctx, http.MethodPost, c.base+"/api/auth/login/", "", body, &out)
}

func (c *Client) SubmitContact(ctx context.Context, form domain.ContactForm) (map[string]any, error) {
	var out map[string]any
	return out, c.write(ctx, http.MethodPost, c.base+"/api/contact/", "", form, &out)
}

// ---- Internals ----

// draftPayload serializes the writable listing fields the way the upstream
// create/update serializer expects them.
func draftPayload(d domain.PropertyDraft) map[string]any {
	m := map[string]any{
		"title":       d.Title,
		"price":       d.Price,
		"price_value": d.PriceValue,
		"location":    d.Location,
		"type":        d.Type,
		"beds":        d.Beds,
		"baths":       d.Baths,
		"sqft":        d.Sqft,
		"description": d.Description,
	}
	if d.Lat != nil {
		m["lat"] = *d.Lat
	}
	if d.Lng != nil {
		m["lng"] = *d.Lng
	}
	return m
}

// get performs a rate-limited GET with retries on 429 and transient 5xx,
// honoring Retry-After when provided.
func (c *Client) get(ctx context.Context, url string, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	var lastErr error
	for i := 0; i < 4; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			observability.ObserveExternal("alliance", url, 0, time.Since(start))
			lastErr = err
			if i < 3 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			return lastErr
		}
		observability.ObserveExternal("alliance", url, resp.StatusCode, time.Since(start))

		done, err := decodeOrStatus(resp, out)
		if done {
			return err
		}
		// retryable status
		wait := retryAfter(resp)
		if wait == 0 {
			wait = backoff(i)
		}
		lastErr = err
		if i < 3 && sleepCtx(ctx, wait) {
			continue
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return lastErr
	}
	return lastErr
}

// write performs a single non-retried request with an optional bearer token.
func (c *Client) write(ctx context.Context, method, url, token string, body, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		observability.ObserveExternal("alliance", url, 0, time.Since(start))
		return err
	}
	observability.ObserveExternal("alliance", url, resp.StatusCode, time.Since(start))

	done, err := decodeOrStatus(resp, out)
	if done {
		return err
	}
	return err // retryable statuses are plain errors on the write path
}

// decodeOrStatus consumes and closes the response. It reports done=false for
// statuses the read path may retry (429, transient 5xx).
func decodeOrStatus(resp *http.Response, out any) (done bool, err error) {
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted:
		if out == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			return true, nil
		}
		err := json.NewDecoder(resp.Body).Decode(out)
		resp.Body.Close()
		return true, err

	case http.StatusNoContent:
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return true, nil

	case http.StatusNotFound:
		resp.Body.Close()
		return true, fmt.Errorf("alliance: %w", domain.ErrNotFound)

	case http.StatusUnauthorized:
		resp.Body.Close()
		return true, fmt.Errorf("alliance: %w", domain.ErrUnauthorized)

	case http.StatusForbidden:
		resp.Body.Close()
		return true, fmt.Errorf("alliance: %w", domain.ErrForbidden)

	case http.StatusTooManyRequests, http.StatusInternalServerError,
		http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return false, fmt.Errorf("remote %d", resp.StatusCode)

	default:
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return true, fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After (seconds or HTTP-date). Returns 0 if absent.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff returns an exponential delay (200ms, 400ms, 800ms...) with up to
// +50% jitter.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	j := time.Duration(0.5 * f * float64(base))
	return base + j
}
