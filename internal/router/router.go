package router

import (
	"errors"
	"net/http"

	"pet-console/internal/domain/pets"
	"pet-console/internal/middleware"
	"pet-console/internal/platform/logger"
	"pet-console/internal/web"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

const DefaultTitle = "Marron's Pet Store"

type Options struct {
	// Catalog es obligatorio (HTTP o memoria).
	Catalog pets.Catalog

	// Opcionales.
	Logger logger.Logger
	Title  string
}

func NewRouter(opts Options) (http.Handler, error) {
	if opts.Catalog == nil {
		return nil, errors.New("router: catalog required")
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	title := opts.Title
	if title == "" {
		title = DefaultTitle
	}

	rnd, err := web.NewRenderer(title, log)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.StripSlashes)
	r.Use(middleware.AccessLog(log))
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	web.RegisterRoutes(r, web.NewHandlers(opts.Catalog, rnd, log))

	return r, nil
}
