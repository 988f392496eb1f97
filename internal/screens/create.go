package screens

import (
	"context"

	"pet-console/internal/domain/pets"
)

// Create mantiene el draft de alta. No valida: el catálogo decide.
type Create struct {
	catalog pets.Catalog
	gate    gate
	draft   pets.Draft
	message string
	created *pets.Pet
}

func NewCreate(catalog pets.Catalog) *Create {
	return &Create{catalog: catalog}
}

// Set actualiza un solo campo del draft.
func (s *Create) Set(f pets.Field, value string) error {
	var err error
	s.gate.read(func() { err = s.draft.Set(f, value) })
	return err
}

// Submit envía el alta. Éxito: mensaje + draft vacío. Falla: mensaje con
// prefijo de error y el draft queda para corregir.
func (s *Create) Submit(ctx context.Context) {
	var draft pets.Draft
	gen := s.gate.snapshot(func() { draft = s.draft })

	created, err := s.catalog.Create(ctx, draft.CreatePayload())

	s.gate.apply(gen, func() {
		if err != nil {
			s.message = ErrorPrefix + pets.Message(err)
			s.created = nil
			return
		}
		s.message = MsgCreated
		s.draft = pets.Draft{}
		s.created = &created
	})
}

func (s *Create) Draft() pets.Draft {
	var d pets.Draft
	s.gate.read(func() { d = s.draft })
	return d
}

func (s *Create) Message() string {
	var m string
	s.gate.read(func() { m = s.message })
	return m
}

// Created es el registro devuelto por el último alta exitosa.
func (s *Create) Created() (pets.Pet, bool) {
	var p *pets.Pet
	s.gate.read(func() { p = s.created })
	if p == nil {
		return pets.Pet{}, false
	}
	return *p, true
}

