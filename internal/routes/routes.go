// Package routes es la tabla de rutas de la consola como función pura:
// path => (pantalla, parámetros). La usan el router web y la TUI.
package routes

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Screen identifica una pantalla.
type Screen string

const (
	ScreenList   Screen = "list"
	ScreenCreate Screen = "create"
	ScreenSearch Screen = "search"
	ScreenDetail Screen = "detail"
)

const (
	ListPath   = "/"
	CreatePath = "/add"
	SearchPath = "/search"

	// ParamID es el parámetro de la pantalla de detalle.
	ParamID = "id"
)

// Route asocia un patrón (sintaxis chi, con regex opcional) a una pantalla.
type Route struct {
	Pattern string
	Screen  Screen
}

var table = []Route{
	{Pattern: ListPath, Screen: ScreenList},
	{Pattern: CreatePath, Screen: ScreenCreate},
	{Pattern: SearchPath, Screen: ScreenSearch},
	{Pattern: "/pets/{" + ParamID + ":[0-9]+}", Screen: ScreenDetail},
}

// All devuelve la tabla en orden.
func All() []Route {
	out := make([]Route, len(table))
	copy(out, table)
	return out
}

// Match es el resultado de resolver un path.
type Match struct {
	Screen Screen
	Params map[string]string
}

// ID devuelve el parámetro id como entero.
func (m Match) ID() (int, bool) {
	v, ok := m.Params[ParamID]
	if !ok {
		return 0, false
	}
	id, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return id, true
}

// PetPath arma el path de detalle de una mascota.
func PetPath(id int) string {
	return fmt.Sprintf("/pets/%d", id)
}

// Resolve busca la pantalla de un path con el mismo árbol de chi que sirve la
// consola web. Igual que chimw.StripSlashes, la barra final se ignora.
// Solo el path: query y fragmento se descartan.
func Resolve(path string) (Match, bool) {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		path = "/"
	}
	if len(path) > 1 && strings.HasSuffix(path, "/") {
		path = path[:len(path)-1]
	}

	rctx := chi.NewRouteContext()
	pattern := resolver.Find(rctx, http.MethodGet, path)
	screen, ok := screenByPattern[pattern]
	if !ok {
		return Match{}, false
	}

	params := make(map[string]string, len(rctx.URLParams.Keys))
	for i, k := range rctx.URLParams.Keys {
		params[k] = rctx.URLParams.Values[i]
	}
	return Match{Screen: screen, Params: params}, true
}

var resolver, screenByPattern = build(table)

// build registra la tabla en un chi.Mux propio; los handlers nunca se ejecutan.
func build(rs []Route) (*chi.Mux, map[string]Screen) {
	mx := chi.NewRouter()
	byPattern := make(map[string]Screen, len(rs))
	for _, rt := range rs {
		mx.Get(rt.Pattern, http.NotFound)
		byPattern[rt.Pattern] = rt.Screen
	}
	return mx, byPattern
}
