package web

import (
	"net/http"
	"strconv"

	"pet-console/internal/domain/pets"
	"pet-console/internal/platform/logger"
	"pet-console/internal/routes"
	"pet-console/internal/screens"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Handlers arma una pantalla nueva por request: el estado de cada pantalla
// vive lo que dura la request y se descarta al navegar.
type Handlers struct {
	catalog pets.Catalog
	render  *Renderer
	log     logger.Logger
}

func NewHandlers(catalog pets.Catalog, render *Renderer, log logger.Logger) *Handlers {
	if log == nil {
		log = logger.Nop()
	}
	return &Handlers{catalog: catalog, render: render, log: log}
}

// RegisterRoutes registra las pantallas desde la tabla de routes y las acciones de formulario.
func RegisterRoutes(r chi.Router, h *Handlers) {
	show := map[routes.Screen]http.HandlerFunc{
		routes.ScreenList:   h.listPage(),
		routes.ScreenCreate: h.createPage(),
		routes.ScreenSearch: h.searchPage(),
		routes.ScreenDetail: h.detailPage(),
	}
	for _, rt := range routes.All() {
		r.Get(rt.Pattern, show[rt.Screen])
	}

	r.Post(routes.CreatePath, h.createSubmit())

	const pet = "/pets/{" + routes.ParamID + ":[0-9]+}"
	r.Get(pet+"/edit", h.editPage())
	r.Post(pet+"/edit", h.editSubmit())
	r.Get(pet+"/delete", h.deletePage())
	r.Post(pet+"/delete", h.deleteSubmit())

	r.Handle("/static/*", Static())
	r.NotFound(h.notFound())
}

func (h *Handlers) listPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := screens.NewList(h.catalog)
		s.Load(r.Context())
		if msg := s.State().Err(); msg != "" {
			h.logFailure(r, "list pets", msg)
		}
		h.render.render(w, http.StatusOK, pageList, newListView(h.render.title, s))
	}
}

func (h *Handlers) createPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := screens.NewCreate(h.catalog)
		h.render.render(w, http.StatusOK, pageCreate, newCreateView(h.render.title, s))
	}
}

func (h *Handlers) createSubmit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		s := screens.NewCreate(h.catalog)
		applyForm(r, s.Set)
		s.Submit(r.Context())

		if msg := s.Message(); screens.IsError(msg) {
			h.logFailure(r, "create pet", msg)
		} else if p, ok := s.Created(); ok {
			h.log.Info("pet created", map[string]any{"pet_id": p.ID, "request_id": chimw.GetReqID(r.Context())})
		}
		h.render.render(w, http.StatusOK, pageCreate, newCreateView(h.render.title, s))
	}
}

func (h *Handlers) searchPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := screens.NewSearch(h.catalog)
		applyForm(r, s.Set)

		switch r.URL.Query().Get("action") {
		case "fields":
			s.ByFields(r.Context())
		case "price":
			s.ByPrice(r.Context())
		}
		if msg := s.Message(); screens.IsError(msg) {
			h.logFailure(r, "search pets", msg)
		}
		h.render.render(w, http.StatusOK, pageSearch, newSearchView(h.render.title, s))
	}
}

func (h *Handlers) detailPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := h.loadDetail(w, r)
		if !ok {
			return
		}
		h.renderDetail(w, s, false)
	}
}

func (h *Handlers) editPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := h.loadDetail(w, r)
		if !ok {
			return
		}
		_ = s.Edit()
		h.renderDetail(w, s, false)
	}
}

// editSubmit recarga el registro (es el snapshot contra el que se cancela),
// entra en edición, aplica el formulario y guarda o cancela.
func (h *Handlers) editSubmit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}
		s, ok := h.loadDetail(w, r)
		if !ok {
			return
		}
		if err := s.Edit(); err != nil {
			h.renderDetail(w, s, false)
			return
		}

		if r.PostForm.Get("action") == "cancel" {
			_ = s.Cancel()
			http.Redirect(w, r, routes.PetPath(s.ID()), http.StatusSeeOther)
			return
		}

		applyForm(r, s.Set)
		_ = s.Save(r.Context())

		v := s.View()
		if v.Phase == screens.DetailViewing {
			h.log.Info("pet updated", map[string]any{"pet_id": v.ID, "request_id": chimw.GetReqID(r.Context())})
			http.Redirect(w, r, routes.PetPath(v.ID), http.StatusSeeOther)
			return
		}
		h.logFailure(r, "update pet", v.Error)
		h.renderDetail(w, s, false)
	}
}

func (h *Handlers) deletePage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := h.loadDetail(w, r)
		if !ok {
			return
		}
		h.renderDetail(w, s, true)
	}
}

func (h *Handlers) deleteSubmit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}
		s, ok := h.loadDetail(w, r)
		if !ok {
			return
		}

		confirm := screens.Declined
		if r.PostForm.Get("confirm") == "yes" {
			confirm = screens.Confirmed
		}
		if err := s.Delete(r.Context(), confirm); err != nil {
			h.renderDetail(w, s, false)
			return
		}

		if to, ok := s.Navigate(); ok {
			h.log.Info("pet deleted", map[string]any{"pet_id": s.ID(), "request_id": chimw.GetReqID(r.Context())})
			http.Redirect(w, r, to, http.StatusSeeOther)
			return
		}
		if v := s.View(); v.Error != "" {
			h.logFailure(r, "delete pet", v.Error)
			h.renderDetail(w, s, false)
			return
		}
		// confirmación declinada: no-op
		http.Redirect(w, r, routes.PetPath(s.ID()), http.StatusSeeOther)
	}
}

func (h *Handlers) notFound() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.render.render(w, http.StatusNotFound, pageNotFound, struct{ Title string }{h.render.title})
	}
}

// loadDetail resuelve el id del path y carga la mascota.
// Un id fuera de rango de int cuenta como ruta inexistente.
func (h *Handlers) loadDetail(w http.ResponseWriter, r *http.Request) (*screens.Detail, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, routes.ParamID))
	if err != nil {
		h.notFound()(w, r)
		return nil, false
	}

	s := screens.NewDetail(h.catalog, id)
	s.Load(r.Context())
	if v := s.View(); v.Phase == screens.DetailFailed {
		h.logFailure(r, "get pet", v.Error)
	}
	return s, true
}

func (h *Handlers) renderDetail(w http.ResponseWriter, s *screens.Detail, confirm bool) {
	h.render.render(w, http.StatusOK, pageDetail, newDetailView(h.render.title, s, confirm))
}

func (h *Handlers) logFailure(r *http.Request, op, msg string) {
	h.log.Warn("catalog request failed", map[string]any{
		"op":         op,
		"error":      msg,
		"request_id": chimw.GetReqID(r.Context()),
	})
}

// applyForm copia al draft solo los campos presentes en el formulario,
// de a uno, sin tocar los demás.
func applyForm(r *http.Request, set func(pets.Field, string) error) {
	_ = r.ParseForm()
	for _, f := range pets.Fields {
		if vals, ok := r.Form[string(f)]; ok && len(vals) > 0 {
			_ = set(f, vals[0])
		}
	}
}
