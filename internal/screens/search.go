package screens

import (
	"context"

	"pet-console/internal/domain/pets"
)

// Search comparte un único criterio, un único mensaje y una única lista
// de resultados entre la búsqueda por atributos y la búsqueda por precio.
type Search struct {
	catalog  pets.Catalog
	gate     gate
	criteria pets.SearchCriteria
	results  []pets.Pet
	message  string
}

func NewSearch(catalog pets.Catalog) *Search {
	return &Search{catalog: catalog, results: []pets.Pet{}}
}

// Set actualiza un solo campo del criterio.
func (s *Search) Set(f pets.Field, value string) error {
	var err error
	s.gate.read(func() { err = s.criteria.Set(f, value) })
	return err
}

// ByFields busca por los atributos no vacíos (nunca price).
func (s *Search) ByFields(ctx context.Context) {
	var crit pets.SearchCriteria
	gen := s.gate.snapshot(func() { crit = s.criteria })

	found, err := s.catalog.Search(ctx, crit)

	s.gate.apply(gen, func() {
		if err != nil {
			s.fail(err)
			return
		}
		s.results = found
		s.message = ""
		if len(found) == 0 {
			s.message = MsgNoMatches
		}
	})
}

// ByPrice busca por precio máximo. Con price vacío no hay request.
func (s *Search) ByPrice(ctx context.Context) {
	var max string
	gen := s.gate.snapshot(func() { max = s.criteria.Price })

	if max == "" {
		s.gate.apply(gen, func() {
			s.message = MsgEnterPrice
			s.results = []pets.Pet{}
		})
		return
	}

	found, err := s.catalog.SearchByPrice(ctx, max)

	s.gate.apply(gen, func() {
		if err != nil {
			s.fail(err)
			return
		}
		s.results = found
		s.message = ""
		if len(found) == 0 {
			s.message = MsgNoPriceMatches(max)
		}
	})
}

func (s *Search) fail(err error) {
	s.message = ErrorPrefix + pets.Message(err)
	s.results = []pets.Pet{}
}

func (s *Search) Criteria() pets.SearchCriteria {
	var c pets.SearchCriteria
	s.gate.read(func() { c = s.criteria })
	return c
}

func (s *Search) Results() []pets.Pet {
	var out []pets.Pet
	s.gate.read(func() { out = append([]pets.Pet(nil), s.results...) })
	return out
}

func (s *Search) Message() string {
	var m string
	s.gate.read(func() { m = s.message })
	return m
}
