package screens

import (
	"context"

	"pet-console/internal/domain/pets"
)

// List carga el catálogo completo al entrar. Sin reintentos: para recargar
// hay que volver a entrar (crear otra List).
type List struct {
	catalog pets.Catalog
	gate    gate
	state   Remote[[]pets.Pet]
}

func NewList(catalog pets.Catalog) *List {
	return &List{catalog: catalog, state: Pending[[]pets.Pet]()}
}

// Load emite "list all" y aplica Loaded o Failed. Loaded y Failed son
// terminales: una vez resuelta, Load no hace nada y recargar es crear otra List.
func (s *List) Load(ctx context.Context) {
	gen, ok := s.gate.beginIf(func() bool { return s.state.Status() == Loading })
	if !ok {
		return
	}

	items, err := s.catalog.List(ctx)

	s.gate.apply(gen, func() {
		if err != nil {
			s.state = Failure[[]pets.Pet](pets.Message(err))
			return
		}
		s.state = Ready(items)
	})
}

func (s *List) State() Remote[[]pets.Pet] {
	var out Remote[[]pets.Pet]
	s.gate.read(func() { out = s.state })
	return out
}

// ErrorText es el texto que reemplaza la lista si la carga falló.
func (s *List) ErrorText() string {
	if msg := s.State().Err(); msg != "" {
		return loadPetsPrefix + msg
	}
	return ""
}
