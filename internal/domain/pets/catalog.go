package pets

import (
	"context"
	"errors"
	"net/url"
)

// Catalog es el servicio externo dueño de los datos.
// Cada llamada es exactamente un round trip: sin reintentos ni cache.
type Catalog interface {
	List(ctx context.Context) ([]Pet, error)
	Get(ctx context.Context, id int) (Pet, error)
	Create(ctx context.Context, in Payload) (Pet, error)
	Update(ctx context.Context, id int, in Payload) (Pet, error)
	Delete(ctx context.Context, id int) error
	Search(ctx context.Context, c SearchCriteria) ([]Pet, error)
	SearchByPrice(ctx context.Context, max string) ([]Pet, error)
}

// ServiceError es el único tipo de fallo del catálogo.
// Status == 0 significa que la request no llegó (falla de transporte).
type ServiceError struct {
	Status  int
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}

// Message extrae el texto a mostrar de cualquier error del catálogo.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Message
	}
	return err.Error()
}

// SearchCriteria reutiliza el draft: los seis campos de texto forman la
// búsqueda por atributos y Price es el tope de la búsqueda por precio.
type SearchCriteria struct {
	Draft
}

// searchFields son los campos que entran en la query; price nunca.
var searchFields = []Field{
	FieldName,
	FieldSpecies,
	FieldBreed,
	FieldGender,
	FieldImage,
	FieldDescription,
}

// Query arma los parámetros omitiendo los criterios vacíos.
func (c SearchCriteria) Query() url.Values {
	q := url.Values{}
	for _, f := range searchFields {
		if v := c.Get(f); v != "" {
			q.Set(string(f), v)
		}
	}
	return q
}
