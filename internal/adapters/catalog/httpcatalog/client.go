package httpcatalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pet-console/internal/domain/pets"
	"pet-console/internal/platform/httpclient"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-Id"

// DefaultMaxBody alcanza para el catálogo completo: List no pagina.
const DefaultMaxBody int64 = 64 << 20 // 64MB

// Config del cliente del catálogo.
type Config struct {
	// BaseURL incluye el prefijo del servicio, p.ej. http://localhost:8080/marron
	BaseURL string
	// Timeout 0 => sin timeout propio.
	Timeout time.Duration
	// Transport opcional (tests).
	Transport http.RoundTripper
	// MaxBody 0 => DefaultMaxBody; < 0 => sin límite.
	MaxBody int64
}

// Client implementa pets.Catalog contra el servicio HTTP.
type Client struct {
	http *httpclient.Client
}

var _ pets.Catalog = (*Client)(nil)

func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errors.New("httpcatalog: base url required")
	}
	hc, err := httpclient.NewWithBaseURL(cfg.BaseURL, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	if cfg.Transport != nil {
		hc.WithTransport(cfg.Transport)
	}
	hc.MaxBody = cfg.MaxBody
	if cfg.MaxBody == 0 {
		hc.MaxBody = DefaultMaxBody
	}
	return &Client{http: hc}, nil
}

func (c *Client) List(ctx context.Context) ([]pets.Pet, error) {
	var out []pets.Pet
	if err := c.do(ctx, http.MethodGet, "/pets", nil, &out); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

func (c *Client) Get(ctx context.Context, id int) (pets.Pet, error) {
	var out pets.Pet
	if err := c.do(ctx, http.MethodGet, petPath(id), nil, &out); err != nil {
		return pets.Pet{}, err
	}
	return out, nil
}

func (c *Client) Create(ctx context.Context, in pets.Payload) (pets.Pet, error) {
	var out pets.Pet
	if err := c.do(ctx, http.MethodPost, "/pets", in, &out); err != nil {
		return pets.Pet{}, err
	}
	return out, nil
}

func (c *Client) Update(ctx context.Context, id int, in pets.Payload) (pets.Pet, error) {
	var out pets.Pet
	if err := c.do(ctx, http.MethodPut, petPath(id), in, &out); err != nil {
		return pets.Pet{}, err
	}
	return out, nil
}

func (c *Client) Delete(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, petPath(id), nil, nil)
}

func (c *Client) Search(ctx context.Context, crit pets.SearchCriteria) ([]pets.Pet, error) {
	path := "/pets/search"
	if q := crit.Query(); len(q) > 0 {
		path += "?" + q.Encode()
	}
	return c.search(ctx, path)
}

// SearchByPrice manda el valor tal cual lo escribió el usuario.
func (c *Client) SearchByPrice(ctx context.Context, max string) ([]pets.Pet, error) {
	return c.search(ctx, "/pets/search/price/"+url.PathEscape(max))
}

// search tolera la respuesta del servicio para "sin resultados":
// 200 con {"message": "..."} en vez de un array.
func (c *Client) search(ctx context.Context, path string) ([]pets.Pet, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return []pets.Pet{}, nil
	}
	var out []pets.Pet
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &pets.ServiceError{Message: err.Error()}
	}
	return nonNil(out), nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	headers := map[string]string{requestIDHeader: requestID(ctx)}
	err := c.http.DoJSON(ctx, method, path, headers, in, out)
	if err == nil {
		return nil
	}
	return toServiceError(err)
}

// toServiceError unifica transporte y status no-2xx en pets.ServiceError.
func toServiceError(err error) error {
	var he *httpclient.HTTPError
	if errors.As(err, &he) {
		return &pets.ServiceError{
			Status:  he.StatusCode,
			Message: errorMessage(he),
		}
	}
	var te *httpclient.TransportError
	if errors.As(err, &te) {
		return &pets.ServiceError{Message: te.Error()}
	}
	return &pets.ServiceError{Message: err.Error()}
}

// errorMessage usa el campo message del body si viene; si no, el texto estándar del status.
func errorMessage(he *httpclient.HTTPError) string {
	var body struct {
		Message string `json:"message"`
	}
	if he.Body != "" && json.Unmarshal([]byte(he.Body), &body) == nil {
		if m := strings.TrimSpace(body.Message); m != "" {
			return m
		}
	}
	if txt := http.StatusText(he.StatusCode); txt != "" {
		return txt
	}
	return fmt.Sprintf("status %d", he.StatusCode)
}

func requestID(ctx context.Context) string {
	if id := chimw.GetReqID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}

func petPath(id int) string {
	return fmt.Sprintf("/pets/%d", id)
}

func nonNil(in []pets.Pet) []pets.Pet {
	if in == nil {
		return []pets.Pet{}
	}
	return in
}
