package screens

import (
	"context"
	"errors"

	"pet-console/internal/domain/pets"
	"pet-console/internal/routes"
)

// DetailPhase es la etiqueta del estado de la pantalla de detalle.
type DetailPhase int

const (
	DetailLoading DetailPhase = iota
	DetailFailed              // falla de la carga inicial: terminal
	DetailViewing
	DetailEditing
	DetailDeleted
)

func (p DetailPhase) String() string {
	switch p {
	case DetailLoading:
		return "loading"
	case DetailFailed:
		return "failed"
	case DetailViewing:
		return "viewing"
	case DetailEditing:
		return "editing"
	case DetailDeleted:
		return "deleted"
	}
	return "unknown"
}

var ErrWrongPhase = errors.New("screens: action not allowed in current phase")

// ConfirmFunc hace la pregunta interactiva previa al borrado.
type ConfirmFunc func(prompt string) bool

// Detail carga una mascota y alterna entre vista y edición.
// Los errores posteriores a la carga no son terminales: se muestran junto
// con el último registro conocido.
type Detail struct {
	catalog pets.Catalog
	id      int
	gate    gate

	phase    DetailPhase
	pet      pets.Pet
	draft    pets.Draft
	errText  string
	navigate string
}

func NewDetail(catalog pets.Catalog, id int) *Detail {
	return &Detail{catalog: catalog, id: id, phase: DetailLoading}
}

func (s *Detail) ID() int {
	var id int
	s.gate.read(func() { id = s.id })
	return id
}

// Load (re)carga el registro; se usa al montar y cuando cambia el id.
func (s *Detail) Load(ctx context.Context) {
	var id int
	gen := s.gate.snapshot(func() {
		id = s.id
		s.phase = DetailLoading
		s.errText = ""
	})

	p, err := s.catalog.Get(ctx, id)

	s.gate.apply(gen, func() {
		if err != nil {
			s.phase = DetailFailed
			s.errText = loadDetailsPrefix + pets.Message(err)
			return
		}
		s.pet = p
		s.draft = pets.DraftFromPet(p)
		s.phase = DetailViewing
	})
}

// SetID cambia la mascota mostrada y recarga.
func (s *Detail) SetID(ctx context.Context, id int) {
	s.gate.read(func() { s.id = id })
	s.Load(ctx)
}

// Edit pasa de Viewing a Editing sin request; el draft queda como estaba.
func (s *Detail) Edit() error {
	ok := s.gate.transition(func() bool {
		if s.phase != DetailViewing {
			return false
		}
		s.phase = DetailEditing
		return true
	})
	if !ok {
		return ErrWrongPhase
	}
	return nil
}

// Set actualiza un campo del draft (solo en Editing).
func (s *Detail) Set(f pets.Field, value string) error {
	var err error
	s.gate.read(func() {
		if s.phase != DetailEditing {
			err = ErrWrongPhase
			return
		}
		err = s.draft.Set(f, value)
	})
	return err
}

// Cancel descarta el draft y lo vuelve a derivar del registro actual.
func (s *Detail) Cancel() error {
	ok := s.gate.transition(func() bool {
		if s.phase != DetailEditing {
			return false
		}
		s.draft = pets.DraftFromPet(s.pet)
		s.errText = ""
		s.phase = DetailViewing
		return true
	})
	if !ok {
		return ErrWrongPhase
	}
	return nil
}

// Save manda el draft completo. Éxito: registro y draft salen de la respuesta.
// Falla: sigue en Editing con el error y el draft sin tocar.
func (s *Detail) Save(ctx context.Context) error {
	var (
		draft pets.Draft
		id    int
	)
	gen, ok := s.gate.beginIf(func() bool {
		draft, id = s.draft, s.id
		return s.phase == DetailEditing
	})
	if !ok {
		return ErrWrongPhase
	}

	updated, uerr := s.catalog.Update(ctx, id, draft.UpdatePayload())

	s.gate.apply(gen, func() {
		if uerr != nil {
			s.errText = updatePrefix + pets.Message(uerr)
			return
		}
		s.pet = updated
		s.draft = pets.DraftFromPet(updated)
		s.errText = ""
		s.phase = DetailViewing
	})
	return nil
}

// Delete pide confirmación y borra. Declinar no hace nada.
// Éxito: Deleted con navegación a la lista.
func (s *Detail) Delete(ctx context.Context, confirm ConfirmFunc) error {
	viewing := func() bool { return s.phase == DetailViewing }

	var ok bool
	s.gate.read(func() { ok = viewing() })
	if !ok {
		return ErrWrongPhase
	}
	if confirm == nil || !confirm(MsgConfirmDelete) {
		return nil
	}

	var id int
	gen, ok := s.gate.beginIf(func() bool {
		id = s.id
		return viewing()
	})
	if !ok {
		return ErrWrongPhase
	}
	derr := s.catalog.Delete(ctx, id)

	s.gate.apply(gen, func() {
		if derr != nil {
			s.errText = deletePrefix + pets.Message(derr)
			return
		}
		s.phase = DetailDeleted
		s.errText = ""
		s.navigate = routes.ListPath
	})
	return nil
}

// DetailView es una foto consistente del estado para renderizar.
type DetailView struct {
	ID    int
	Phase DetailPhase
	Pet   pets.Pet
	Draft pets.Draft
	Error string
}

func (s *Detail) View() DetailView {
	var v DetailView
	s.gate.read(func() {
		v = DetailView{
			ID:    s.id,
			Phase: s.phase,
			Pet:   s.pet,
			Draft: s.draft,
			Error: s.errText,
		}
	})
	return v
}

// Navigate devuelve a dónde ir después de un borrado exitoso.
func (s *Detail) Navigate() (string, bool) {
	var to string
	s.gate.read(func() { to = s.navigate })
	return to, to != ""
}

// Confirmed y Declined sirven para front ends que ya preguntaron.
func Confirmed(string) bool { return true }
func Declined(string) bool  { return false }
