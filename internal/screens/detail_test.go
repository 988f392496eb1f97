package screens

import (
	"context"
	"errors"
	"sync"
	"testing"

	"pet-console/internal/domain/pets"
	"pet-console/internal/routes"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadedDetail(t *testing.T, cat *fakeCatalog) *Detail {
	t.Helper()
	if cat.get == nil {
		cat.get = func(_ context.Context, id int) (pets.Pet, error) {
			p := rex()
			p.ID = id
			return p, nil
		}
	}
	s := NewDetail(cat, 1)
	s.Load(context.Background())
	require.Equal(t, DetailViewing, s.View().Phase)
	return s
}

func TestDetail_LoadFailureIsTerminal(t *testing.T) {
	s := NewDetail(&fakeCatalog{}, 99)
	assert.Equal(t, DetailLoading, s.View().Phase)

	s.Load(context.Background())

	v := s.View()
	assert.Equal(t, DetailFailed, v.Phase)
	assert.Equal(t, "Error loading details: Not Found", v.Error)
	assert.ErrorIs(t, s.Edit(), ErrWrongPhase)
	assert.ErrorIs(t, s.Delete(context.Background(), Confirmed), ErrWrongPhase)
}

func TestDetail_LoadDerivesDraft(t *testing.T) {
	s := loadedDetail(t, &fakeCatalog{})

	want := pets.Draft{Name: "Rex", Species: "Dog", Breed: "Lab", Price: "50"}
	if diff := cmp.Diff(want, s.View().Draft); diff != "" {
		t.Fatalf("draft mismatch (-want +got):\n%s", diff)
	}
}

func TestDetail_EditCancelRestoresDraft(t *testing.T) {
	cat := &fakeCatalog{}
	s := loadedDetail(t, cat)

	assert.ErrorIs(t, s.Set(pets.FieldName, "nope"), ErrWrongPhase)

	require.NoError(t, s.Edit())
	require.NoError(t, s.Set(pets.FieldName, "Max"))
	assert.Equal(t, "Max", s.View().Draft.Name)

	require.NoError(t, s.Cancel())
	v := s.View()
	assert.Equal(t, DetailViewing, v.Phase)
	assert.Equal(t, "Rex", v.Draft.Name)
	assert.Equal(t, "Rex", v.Pet.Name)
	assert.Equal(t, []string{"get"}, cat.Calls())

	assert.ErrorIs(t, s.Cancel(), ErrWrongPhase)
}

func TestDetail_SaveSuccess(t *testing.T) {
	cat := &fakeCatalog{}
	s := loadedDetail(t, cat)

	require.NoError(t, s.Edit())
	require.NoError(t, s.Set(pets.FieldName, "Max"))
	require.NoError(t, s.Save(context.Background()))

	v := s.View()
	assert.Equal(t, DetailViewing, v.Phase)
	assert.Equal(t, "Max", v.Pet.Name)
	assert.Equal(t, "Max", v.Draft.Name)
	assert.Empty(t, v.Error)
	assert.Equal(t, "Lab", cat.lastPayload.Breed)
}

func TestDetail_SaveEmptyPriceSendsZero(t *testing.T) {
	cat := &fakeCatalog{}
	s := loadedDetail(t, cat)

	require.NoError(t, s.Edit())
	require.NoError(t, s.Set(pets.FieldPrice, ""))
	require.NoError(t, s.Save(context.Background()))

	require.NotNil(t, cat.lastPayload.Price)
	assert.Equal(t, 0.0, *cat.lastPayload.Price)
}

func TestDetail_SaveFailureStaysEditing(t *testing.T) {
	cat := &fakeCatalog{update: func(int, pets.Payload) (pets.Pet, error) {
		return pets.Pet{}, &pets.ServiceError{Status: 400, Message: "name required"}
	}}
	s := loadedDetail(t, cat)

	require.NoError(t, s.Edit())
	require.NoError(t, s.Set(pets.FieldName, ""))
	require.NoError(t, s.Save(context.Background()))

	v := s.View()
	assert.Equal(t, DetailEditing, v.Phase)
	assert.Equal(t, "Error updating: name required", v.Error)
	assert.Equal(t, "", v.Draft.Name)
	assert.Equal(t, "Rex", v.Pet.Name)
}

func TestDetail_SaveOutsideEditing(t *testing.T) {
	cat := &fakeCatalog{}
	s := loadedDetail(t, cat)

	assert.ErrorIs(t, s.Save(context.Background()), ErrWrongPhase)
	assert.Equal(t, []string{"get"}, cat.Calls())
}

func TestDetail_DeleteDeclinedIsNoop(t *testing.T) {
	cat := &fakeCatalog{}
	s := loadedDetail(t, cat)

	var prompt string
	require.NoError(t, s.Delete(context.Background(), func(p string) bool {
		prompt = p
		return false
	}))

	assert.Equal(t, MsgConfirmDelete, prompt)
	assert.Equal(t, DetailViewing, s.View().Phase)
	assert.Equal(t, []string{"get"}, cat.Calls())
	_, ok := s.Navigate()
	assert.False(t, ok)
}

func TestDetail_DeleteSuccessNavigatesToList(t *testing.T) {
	cat := &fakeCatalog{}
	s := loadedDetail(t, cat)

	require.NoError(t, s.Delete(context.Background(), Confirmed))

	assert.Equal(t, DetailDeleted, s.View().Phase)
	to, ok := s.Navigate()
	require.True(t, ok)
	assert.Equal(t, routes.ListPath, to)
}

func TestDetail_DeleteFailureKeepsRecord(t *testing.T) {
	cat := &fakeCatalog{del: func(int) error {
		return &pets.ServiceError{Status: 500, Message: "locked"}
	}}
	s := loadedDetail(t, cat)

	require.NoError(t, s.Delete(context.Background(), Confirmed))

	v := s.View()
	assert.Equal(t, DetailViewing, v.Phase)
	assert.Equal(t, "Error deleting: locked", v.Error)
	assert.Equal(t, "Rex", v.Pet.Name)
}

func TestDetail_DeleteWhileEditing(t *testing.T) {
	s := loadedDetail(t, &fakeCatalog{})
	require.NoError(t, s.Edit())
	assert.ErrorIs(t, s.Delete(context.Background(), Confirmed), ErrWrongPhase)
}

// Una respuesta de una carga anterior no debe pisar la del id actual.
func TestDetail_StaleLoadIsIgnored(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	cat := &fakeCatalog{get: func(ctx context.Context, id int) (pets.Pet, error) {
		if id == 1 {
			close(started)
			<-release
			return pets.Pet{ID: 1, Name: "Old", Species: "Dog"}, nil
		}
		return pets.Pet{ID: id, Name: "New", Species: "Cat"}, nil
	}}
	s := NewDetail(cat, 1)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.Load(context.Background())
	}()

	<-started
	s.SetID(context.Background(), 2)
	close(release)
	wg.Wait()

	v := s.View()
	assert.Equal(t, 2, v.ID)
	assert.Equal(t, DetailViewing, v.Phase)
	assert.Equal(t, "New", v.Pet.Name)
}

// Cancelar mientras un guardado está en vuelo descarta su respuesta.
func TestDetail_CancelDiscardsInFlightSave(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	cat := &fakeCatalog{update: func(id int, in pets.Payload) (pets.Pet, error) {
		close(started)
		<-release
		return pets.Pet{}, errors.New("too late")
	}}
	s := loadedDetail(t, cat)
	require.NoError(t, s.Edit())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = s.Save(context.Background())
	}()

	<-started
	require.NoError(t, s.Cancel())
	close(release)
	wg.Wait()

	v := s.View()
	assert.Equal(t, DetailViewing, v.Phase)
	assert.Empty(t, v.Error)
}

func TestDetailPhase_String(t *testing.T) {
	assert.Equal(t, "editing", DetailEditing.String())
	assert.Equal(t, "unknown", DetailPhase(42).String())
}

func TestDetail_NullPriceSavesAsZero(t *testing.T) {
	cat := &fakeCatalog{get: func(_ context.Context, id int) (pets.Pet, error) {
		return pets.Pet{ID: id, Name: "Nemo", Species: "Fish"}, nil
	}}
	s := NewDetail(cat, 7)
	s.Load(context.Background())
	assert.Equal(t, "", s.View().Draft.Price)

	require.NoError(t, s.Edit())
	require.NoError(t, s.Save(context.Background()))

	require.NotNil(t, cat.lastPayload.Price)
	assert.Equal(t, 0.0, *cat.lastPayload.Price)
}
