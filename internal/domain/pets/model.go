package pets

import (
	"errors"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Field nombra un campo editable del draft / criterio de búsqueda.
type Field string

const (
	FieldName        Field = "name"
	FieldSpecies     Field = "species"
	FieldBreed       Field = "breed"
	FieldGender      Field = "gender"
	FieldImage       Field = "image"
	FieldDescription Field = "description"
	FieldPrice       Field = "price"
)

// Fields en el orden en que se muestran en los formularios.
var Fields = []Field{
	FieldName,
	FieldSpecies,
	FieldBreed,
	FieldGender,
	FieldImage,
	FieldDescription,
	FieldPrice,
}

var ErrUnknownField = errors.New("unknown field")

// PricePlaceholder se muestra cuando la mascota no tiene precio.
const PricePlaceholder = "N/A"

// Pet es el registro tal como lo devuelve el catálogo.
// Los campos opcionales son punteros: nil = null en el JSON.
type Pet struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Species     string   `json:"species"`
	Breed       *string  `json:"breed"`
	Gender      *string  `json:"gender"`
	Image       *string  `json:"image"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
}

// Draft es la copia editable (todo string) usada por alta y edición.
type Draft struct {
	Name        string
	Species     string
	Breed       string
	Gender      string
	Image       string
	Description string
	Price       string
}

// Get devuelve el valor de un campo del draft.
func (d Draft) Get(f Field) string {
	switch f {
	case FieldName:
		return d.Name
	case FieldSpecies:
		return d.Species
	case FieldBreed:
		return d.Breed
	case FieldGender:
		return d.Gender
	case FieldImage:
		return d.Image
	case FieldDescription:
		return d.Description
	case FieldPrice:
		return d.Price
	}
	return ""
}

// Set cambia exactamente un campo y deja el resto intacto.
func (d *Draft) Set(f Field, value string) error {
	switch f {
	case FieldName:
		d.Name = value
	case FieldSpecies:
		d.Species = value
	case FieldBreed:
		d.Breed = value
	case FieldGender:
		d.Gender = value
	case FieldImage:
		d.Image = value
	case FieldDescription:
		d.Description = value
	case FieldPrice:
		d.Price = value
	default:
		return ErrUnknownField
	}
	return nil
}

// DraftFromPet deriva el draft de edición a partir del último registro leído.
// Se usa tanto al cargar como al cancelar.
func DraftFromPet(p Pet) Draft {
	d := Draft{
		Name:        p.Name,
		Species:     p.Species,
		Breed:       deref(p.Breed),
		Gender:      deref(p.Gender),
		Image:       deref(p.Image),
		Description: deref(p.Description),
	}
	if p.Price != nil {
		d.Price = strconv.FormatFloat(*p.Price, 'f', -1, 64)
	}
	return d
}

// Payload es el cuerpo JSON de POST/PUT. Price nil viaja como null.
type Payload struct {
	Name        string   `json:"name"`
	Species     string   `json:"species"`
	Breed       string   `json:"breed"`
	Gender      string   `json:"gender"`
	Image       string   `json:"image"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
}

// CreatePayload arma el cuerpo de alta. Un precio vacío o no numérico
// no se corrige: viaja como null y el catálogo decide.
func (d Draft) CreatePayload() Payload {
	p := d.payload()
	if v, ok := ParsePrice(d.Price); ok {
		p.Price = &v
	}
	return p
}

// UpdatePayload arma el cuerpo de edición. Precio vacío => 0.
func (d Draft) UpdatePayload() Payload {
	p := d.payload()
	raw := d.Price
	if raw == "" {
		raw = "0"
	}
	if v, ok := ParsePrice(raw); ok {
		p.Price = &v
	}
	return p
}

func (d Draft) payload() Payload {
	return Payload{
		Name:        d.Name,
		Species:     d.Species,
		Breed:       d.Breed,
		Gender:      d.Gender,
		Image:       d.Image,
		Description: d.Description,
	}
}

// ParsePrice toma el prefijo decimal más largo válido (tras espacios iniciales),
// igual que un input numérico de formulario: "12.5kg" => 12.5, "abc" => !ok.
func ParsePrice(s string) (float64, bool) {
	s = strings.TrimLeft(s, " \t\n\r\f\v")
	end := decimalPrefix(s)
	if end == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// decimalPrefix devuelve el largo del prefijo [+-]digits[.digits][e[+-]digits].
func decimalPrefix(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			frac++
		}
		if digits > 0 || frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return 0
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		exp := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			exp++
		}
		if exp > 0 {
			i = j
		}
	}
	return i
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// FormatPrice: "$" + dos decimales, o el placeholder si no hay precio.
func FormatPrice(price *float64) string {
	if price == nil {
		return PricePlaceholder
	}
	return "$" + fixed2(*price)
}

// exactDigits alcanza para expandir cualquier float64 sin redondear (2^-1074).
const exactDigits = 1074

// fixed2 redondea a dos decimales sobre el valor binario exacto y en empate
// gana el mayor en módulo: 10.125 => "10.13", 1.005 (en binario 1.00499...) => "1.00".
func fixed2(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	exact := new(big.Float).SetFloat64(v).Text('f', exactDigits)
	intPart, frac, _ := strings.Cut(exact, ".")
	frac += "000"

	n, _ := new(big.Int).SetString(intPart+frac[:2], 10)
	if frac[2] >= '5' {
		n.Add(n, big.NewInt(1))
	}

	digits := n.String()
	if len(digits) < 3 {
		digits = strings.Repeat("0", 3-len(digits)) + digits
	}
	return sign + digits[:len(digits)-2] + "." + digits[len(digits)-2:]
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
