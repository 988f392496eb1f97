// Package screens contiene las máquinas de estado de cada pantalla de la consola.
// No saben nada de HTML ni de terminal: solo hablan con pets.Catalog.
package screens

import "sync"

// Status es la etiqueta de un Remote.
type Status int

const (
	Idle Status = iota
	Loading
	Loaded
	Failed
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// Remote es un valor que viene del catálogo. Los campos no se exportan:
// solo los constructores crean combinaciones válidas.
type Remote[T any] struct {
	status Status
	value  T
	err    string
}

func Pending[T any]() Remote[T] { return Remote[T]{status: Loading} }

func Ready[T any](v T) Remote[T] { return Remote[T]{status: Loaded, value: v} }

func Failure[T any](msg string) Remote[T] { return Remote[T]{status: Failed, err: msg} }

func (r Remote[T]) Status() Status { return r.status }

// Value devuelve el dato solo en Loaded.
func (r Remote[T]) Value() (T, bool) {
	if r.status != Loaded {
		var zero T
		return zero, false
	}
	return r.value, true
}

// Err devuelve el mensaje solo en Failed.
func (r Remote[T]) Err() string {
	if r.status != Failed {
		return ""
	}
	return r.err
}

// gate numera cada operación; solo la última emitida puede aplicar su resultado.
// Respuestas más viejas se descartan sin tocar el estado.
type gate struct {
	mu  sync.Mutex
	gen uint64
}

// snapshot abre una operación nueva; read corre bajo el mismo lock.
func (g *gate) snapshot(read func()) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	read()
	g.gen++
	return g.gen
}

// beginIf abre una operación solo si check (evaluado bajo lock) es true.
func (g *gate) beginIf(check func() bool) (uint64, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !check() {
		return 0, false
	}
	g.gen++
	return g.gen, true
}

// transition aplica un cambio local que reemplaza cualquier operación en vuelo.
func (g *gate) transition(fn func() bool) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !fn() {
		return false
	}
	g.gen++
	return true
}

// apply ejecuta fn bajo lock si gen sigue siendo la última. Reporta si se aplicó.
func (g *gate) apply(gen uint64, fn func()) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if gen != g.gen {
		return false
	}
	fn()
	return true
}

// read ejecuta fn bajo lock sin abrir operación.
func (g *gate) read(fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	fn()
}
