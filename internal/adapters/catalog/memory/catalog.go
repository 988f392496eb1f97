package memory

import (
	"context"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"

	"pet-console/internal/domain/pets"
)

// Catalog es una implementación en memoria de pets.Catalog para modo dev y tests.
// Reproduce las respuestas del servicio real: búsqueda por atributos con OR de
// igualdades y búsqueda por precio <= max.
type Catalog struct {
	mu     sync.RWMutex
	byID   map[int]pets.Pet
	nextID int
}

var _ pets.Catalog = (*Catalog)(nil)

func New(seed ...pets.Pet) *Catalog {
	c := &Catalog{
		byID:   make(map[int]pets.Pet),
		nextID: 1,
	}
	for _, p := range seed {
		if p.ID <= 0 {
			p.ID = c.nextID
		}
		c.byID[p.ID] = p
		if p.ID >= c.nextID {
			c.nextID = p.ID + 1
		}
	}
	return c
}

func (c *Catalog) List(ctx context.Context) ([]pets.Pet, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.filter(func(pets.Pet) bool { return true }), nil
}

func (c *Catalog) Get(ctx context.Context, id int) (pets.Pet, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.byID[id]
	if !ok {
		return pets.Pet{}, notFound()
	}
	return p, nil
}

func (c *Catalog) Create(ctx context.Context, in pets.Payload) (pets.Pet, error) {
	if err := validate(in); err != nil {
		return pets.Pet{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p := fromPayload(c.nextID, in)
	c.byID[p.ID] = p
	c.nextID++
	return p, nil
}

func (c *Catalog) Update(ctx context.Context, id int, in pets.Payload) (pets.Pet, error) {
	if err := validate(in); err != nil {
		return pets.Pet{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.byID[id]; !ok {
		return pets.Pet{}, notFound()
	}
	p := fromPayload(id, in)
	c.byID[id] = p
	return p, nil
}

func (c *Catalog) Delete(ctx context.Context, id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.byID[id]; !ok {
		return notFound()
	}
	delete(c.byID, id)
	return nil
}

func (c *Catalog) Search(ctx context.Context, crit pets.SearchCriteria) ([]pets.Pet, error) {
	q := crit.Query()

	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.filter(func(p pets.Pet) bool {
		for field, values := range q {
			if len(values) > 0 && fieldValue(p, pets.Field(field)) == values[0] {
				return true
			}
		}
		return false
	}), nil
}

func (c *Catalog) SearchByPrice(ctx context.Context, max string) ([]pets.Pet, error) {
	limit, err := strconv.ParseFloat(strings.TrimSpace(max), 64)
	if err != nil {
		return nil, &pets.ServiceError{
			Status:  http.StatusBadRequest,
			Message: http.StatusText(http.StatusBadRequest),
		}
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.filter(func(p pets.Pet) bool {
		return p.Price != nil && *p.Price <= limit
	}), nil
}

// filter asume lock tomado. Orden estable por id.
func (c *Catalog) filter(keep func(pets.Pet) bool) []pets.Pet {
	out := make([]pets.Pet, 0, len(c.byID))
	for _, p := range c.byID {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}

func validate(in pets.Payload) error {
	var missing []string
	if strings.TrimSpace(in.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(in.Species) == "" {
		missing = append(missing, "species")
	}
	if in.Price == nil {
		missing = append(missing, "price")
	} else if *in.Price < 0 {
		return &pets.ServiceError{Status: http.StatusBadRequest, Message: "price must not be negative"}
	}
	if len(missing) > 0 {
		return &pets.ServiceError{
			Status:  http.StatusBadRequest,
			Message: strings.Join(missing, ", ") + " required",
		}
	}
	return nil
}

func fromPayload(id int, in pets.Payload) pets.Pet {
	price := *in.Price
	return pets.Pet{
		ID:          id,
		Name:        in.Name,
		Species:     in.Species,
		Breed:       optional(in.Breed),
		Gender:      optional(in.Gender),
		Image:       optional(in.Image),
		Description: optional(in.Description),
		Price:       &price,
	}
}

func fieldValue(p pets.Pet, f pets.Field) string {
	return pets.DraftFromPet(p).Get(f)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func notFound() error {
	return &pets.ServiceError{
		Status:  http.StatusNotFound,
		Message: http.StatusText(http.StatusNotFound),
	}
}
