package pets

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string      { return &s }
func pricep(f float64) *float64 { return &f }

func TestFormatPrice(t *testing.T) {
	cases := []struct {
		in   *float64
		want string
	}{
		{nil, PricePlaceholder},
		{pricep(50), "$50.00"},
		{pricep(0), "$0.00"},
		{pricep(19.999), "$20.00"},
		{pricep(3.1), "$3.10"},
		{pricep(1234.5), "$1234.50"},
		// empates exactos en binario redondean hacia arriba
		{pricep(0.125), "$0.13"},
		{pricep(10.125), "$10.13"},
		{pricep(0.625), "$0.63"},
		{pricep(0.375), "$0.38"},
		// 1.005 y 2.675 quedan apenas por debajo del empate en binario
		{pricep(1.005), "$1.00"},
		{pricep(2.675), "$2.67"},
		{pricep(0.004), "$0.00"},
		{pricep(99.995), "$100.00"},
		{pricep(-10.125), "$-10.13"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatPrice(tc.in))
	}
}

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"", 0, false},
		{"abc", 0, false},
		{"-", 0, false},
		{".", 0, false},
		{"42", 42, true},
		{"  7.5", 7.5, true},
		{"12.5kg", 12.5, true},
		{".5", 0.5, true},
		{"3.", 3, true},
		{"1e2", 100, true},
		{"1e", 1, true},
		{"-4", -4, true},
	}
	for _, tc := range cases {
		got, ok := ParsePrice(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		if tc.ok {
			assert.InDelta(t, tc.want, got, 1e-9, "input %q", tc.in)
		}
	}
}

func TestDraft_SetChangesOnlyOneField(t *testing.T) {
	base := Draft{
		Name:        "Rex",
		Species:     "Dog",
		Breed:       "Lab",
		Gender:      "M",
		Image:       "http://img/rex.png",
		Description: "good boy",
		Price:       "50",
	}

	for _, f := range Fields {
		d := base
		require.NoError(t, d.Set(f, "changed"))
		assert.Equal(t, "changed", d.Get(f))

		for _, other := range Fields {
			if other == f {
				continue
			}
			assert.Equal(t, base.Get(other), d.Get(other), "setting %s touched %s", f, other)
		}
	}
}

func TestDraft_SetUnknownField(t *testing.T) {
	d := Draft{Name: "Rex"}
	err := d.Set(Field("owner"), "x")
	assert.ErrorIs(t, err, ErrUnknownField)
	assert.Equal(t, Draft{Name: "Rex"}, d)
}

func TestDraftFromPet(t *testing.T) {
	full := Pet{
		ID:          7,
		Name:        "Mia",
		Species:     "Cat",
		Breed:       strp("Siamese"),
		Gender:      strp("F"),
		Image:       strp("http://img/mia.png"),
		Description: strp("quiet"),
		Price:       pricep(12.5),
	}
	want := Draft{
		Name:        "Mia",
		Species:     "Cat",
		Breed:       "Siamese",
		Gender:      "F",
		Image:       "http://img/mia.png",
		Description: "quiet",
		Price:       "12.5",
	}
	if diff := cmp.Diff(want, DraftFromPet(full)); diff != "" {
		t.Fatalf("DraftFromPet mismatch (-want +got):\n%s", diff)
	}

	sparse := Pet{ID: 8, Name: "Rex", Species: "Dog"}
	if diff := cmp.Diff(Draft{Name: "Rex", Species: "Dog"}, DraftFromPet(sparse)); diff != "" {
		t.Fatalf("nullable fields must map to empty strings (-want +got):\n%s", diff)
	}

	whole := Pet{Name: "Rex", Species: "Dog", Price: pricep(50)}
	assert.Equal(t, "50", DraftFromPet(whole).Price)
}

func TestCreatePayload_InvalidPriceIsNull(t *testing.T) {
	for _, raw := range []string{"", "abc"} {
		d := Draft{Name: "Mia", Species: "Cat", Price: raw}
		p := d.CreatePayload()
		assert.Nil(t, p.Price, "price %q", raw)

		b, err := json.Marshal(p)
		require.NoError(t, err)
		assert.Contains(t, string(b), `"price":null`)
	}

	p := Draft{Name: "Mia", Species: "Cat", Price: "9.99"}.CreatePayload()
	require.NotNil(t, p.Price)
	assert.InDelta(t, 9.99, *p.Price, 1e-9)
}

func TestUpdatePayload_EmptyPriceIsZero(t *testing.T) {
	p := Draft{Name: "Rex", Species: "Dog"}.UpdatePayload()
	require.NotNil(t, p.Price)
	assert.Equal(t, 0.0, *p.Price)

	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"price":0`)

	assert.Nil(t, Draft{Price: "abc"}.UpdatePayload().Price)
}

func TestSearchCriteria_QueryOmitsEmpty(t *testing.T) {
	var c SearchCriteria
	require.NoError(t, c.Set(FieldSpecies, "Dog"))
	require.NoError(t, c.Set(FieldGender, "F"))
	require.NoError(t, c.Set(FieldPrice, "100"))

	q := c.Query()
	assert.Equal(t, "gender=F&species=Dog", q.Encode())
	assert.NotContains(t, q, "price")
	assert.NotContains(t, q, "name")

	assert.Empty(t, SearchCriteria{}.Query())
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "", Message(nil))
	assert.Equal(t, "Not Found", Message(&ServiceError{Status: 404, Message: "Not Found"}))
}
