package web

import (
	"pet-console/internal/domain/pets"
	"pet-console/internal/routes"
	"pet-console/internal/screens"
)

// card es una mascota lista para mostrar; el mismo formato en lista y búsqueda.
type card struct {
	ID          int
	Name        string
	Species     string
	Breed       string
	Gender      string
	Image       string
	Description string
	Price       string
	Link        string
}

func toCard(p pets.Pet) card {
	d := pets.DraftFromPet(p)
	return card{
		ID:          p.ID,
		Name:        p.Name,
		Species:     p.Species,
		Breed:       d.Breed,
		Gender:      d.Gender,
		Image:       d.Image,
		Description: d.Description,
		Price:       pets.FormatPrice(p.Price),
		Link:        routes.PetPath(p.ID),
	}
}

func toCards(in []pets.Pet) []card {
	out := make([]card, 0, len(in))
	for _, p := range in {
		out = append(out, toCard(p))
	}
	return out
}

type listView struct {
	Title       string
	Loading     bool
	LoadingText string
	Error       string
	Cards       []card
}

func newListView(title string, s *screens.List) listView {
	v := listView{Title: title, LoadingText: screens.MsgLoadingPets}
	st := s.State()
	switch st.Status() {
	case screens.Loaded:
		items, _ := st.Value()
		v.Cards = toCards(items)
	case screens.Failed:
		v.Error = s.ErrorText()
	default:
		v.Loading = true
	}
	return v
}

type createView struct {
	Title   string
	Message string
	Draft   pets.Draft
}

func newCreateView(title string, s *screens.Create) createView {
	return createView{Title: title, Message: s.Message(), Draft: s.Draft()}
}

type searchView struct {
	Title    string
	Criteria pets.SearchCriteria
	Message  string
	Cards    []card
}

func newSearchView(title string, s *screens.Search) searchView {
	return searchView{
		Title:    title,
		Criteria: s.Criteria(),
		Message:  s.Message(),
		Cards:    toCards(s.Results()),
	}
}

type detailView struct {
	Title       string
	Loading     bool
	LoadingText string
	Failed      bool
	Editing     bool
	Confirm     bool
	ConfirmText string
	Pet         card
	Draft       pets.Draft
	Error       string
	EditLink    string
	DeleteLink  string
}

func newDetailView(title string, s *screens.Detail, confirm bool) detailView {
	st := s.View()
	v := detailView{
		Title:       title,
		LoadingText: screens.MsgLoadingDetails,
		ConfirmText: screens.MsgConfirmDelete,
		Draft:       st.Draft,
		Error:       st.Error,
		EditLink:    editPath(st.ID),
		DeleteLink:  deletePath(st.ID),
	}
	switch st.Phase {
	case screens.DetailLoading:
		v.Loading = true
	case screens.DetailFailed:
		v.Failed = true
	case screens.DetailEditing:
		v.Editing = true
	case screens.DetailViewing:
		v.Confirm = confirm
	}
	v.Pet = toCard(st.Pet)
	return v
}

func editPath(id int) string   { return routes.PetPath(id) + "/edit" }
func deletePath(id int) string { return routes.PetPath(id) + "/delete" }
