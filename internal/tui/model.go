// Package tui es un front end de terminal sobre las mismas pantallas que la consola web:
// lista, detalle y borrado con confirmación. Navega por paths de la tabla de routes.
package tui

import (
	"context"
	"fmt"
	"strings"

	"pet-console/internal/domain/pets"
	"pet-console/internal/platform/logger"
	"pet-console/internal/routes"
	"pet-console/internal/screens"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type listLoadedMsg struct{ screen *screens.List }

type detailLoadedMsg struct{ screen *screens.Detail }

type deleteDoneMsg struct{ screen *screens.Detail }

// Model es el modelo bubbletea de la consola.
type Model struct {
	ctx     context.Context
	catalog pets.Catalog
	log     logger.Logger
	title   string

	path       string
	screen     routes.Screen
	list       *screens.List
	detail     *screens.Detail
	cursor     int
	confirming bool
	notice     string

	spinner spinner.Model
}

func New(ctx context.Context, catalog pets.Catalog, title string, log logger.Logger) Model {
	if log == nil {
		log = logger.Nop()
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return Model{
		ctx:     ctx,
		catalog: catalog,
		log:     log,
		title:   title,
		spinner: sp,
	}
}

// Run arranca el programa y bloquea hasta salir.
func Run(ctx context.Context, catalog pets.Catalog, title string, log logger.Logger) error {
	p := tea.NewProgram(New(ctx, catalog, title, log), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.navigateCmd(routes.ListPath))
}

// navigateCmd emite la navegación como mensaje para que la aplique Update.
func (m Model) navigateCmd(path string) tea.Cmd {
	return func() tea.Msg { return navigateMsg{path: path} }
}

type navigateMsg struct{ path string }

// navigate resuelve el path y entra a la pantalla (estado nuevo, carga nueva).
func (m Model) navigate(path string) (Model, tea.Cmd) {
	match, ok := routes.Resolve(path)
	m.confirming = false
	m.notice = ""
	if !ok {
		m.notice = "no screen for " + path
		return m, nil
	}

	switch match.Screen {
	case routes.ScreenList:
		m.path, m.screen = path, match.Screen
		m.detail = nil
		m.cursor = 0
		s := screens.NewList(m.catalog)
		m.list = s
		ctx := m.ctx
		return m, func() tea.Msg {
			s.Load(ctx)
			return listLoadedMsg{screen: s}
		}
	case routes.ScreenDetail:
		id, ok := match.ID()
		if !ok {
			m.notice = "invalid pet id in " + path
			return m, nil
		}
		m.path, m.screen = path, match.Screen
		s := screens.NewDetail(m.catalog, id)
		m.detail = s
		ctx := m.ctx
		return m, func() tea.Msg {
			s.Load(ctx)
			return detailLoadedMsg{screen: s}
		}
	default:
		m.notice = fmt.Sprintf("%s is only available in the web console", path)
		return m, nil
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case navigateMsg:
		return m.navigate(msg.path)

	case listLoadedMsg:
		// respuestas de pantallas ya abandonadas se ignoran
		if msg.screen != m.list {
			return m, nil
		}
		if e := msg.screen.State().Err(); e != "" {
			m.log.Warn("catalog request failed", map[string]any{"op": "list pets", "error": e})
		}
		return m, nil

	case detailLoadedMsg:
		if msg.screen != m.detail {
			return m, nil
		}
		if v := msg.screen.View(); v.Phase == screens.DetailFailed {
			m.log.Warn("catalog request failed", map[string]any{"op": "get pet", "error": v.Error})
		}
		return m, nil

	case deleteDoneMsg:
		if msg.screen != m.detail {
			return m, nil
		}
		if to, ok := msg.screen.Navigate(); ok {
			m.log.Info("pet deleted", map[string]any{"pet_id": msg.screen.ID()})
			return m.navigate(to)
		}
		if v := msg.screen.View(); v.Error != "" {
			m.log.Warn("catalog request failed", map[string]any{"op": "delete pet", "error": v.Error})
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}

	if m.confirming {
		switch key {
		case "y", "Y":
			m.confirming = false
			s := m.detail
			ctx := m.ctx
			return m, func() tea.Msg {
				_ = s.Delete(ctx, screens.Confirmed)
				return deleteDoneMsg{screen: s}
			}
		case "n", "N", "esc":
			m.confirming = false
		}
		return m, nil
	}

	if key == "q" {
		return m, tea.Quit
	}

	switch m.screen {
	case routes.ScreenList:
		return m.listKey(key)
	case routes.ScreenDetail:
		return m.detailKey(key)
	}
	return m, nil
}

func (m Model) listKey(key string) (tea.Model, tea.Cmd) {
	items := m.items()
	switch key {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(items)-1 {
			m.cursor++
		}
	case "enter":
		if m.cursor < len(items) {
			return m.navigate(routes.PetPath(items[m.cursor].ID))
		}
	case "r":
		return m.navigate(routes.ListPath)
	}
	return m, nil
}

func (m Model) detailKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "d":
		if m.detail != nil && m.detail.View().Phase == screens.DetailViewing {
			m.confirming = true
		}
	case "b", "esc":
		return m.navigate(routes.ListPath)
	}
	return m, nil
}

func (m Model) items() []pets.Pet {
	if m.list == nil {
		return nil
	}
	items, _ := m.list.State().Value()
	return items
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")

	switch m.screen {
	case routes.ScreenList:
		b.WriteString(m.listView())
	case routes.ScreenDetail:
		b.WriteString(m.detailView())
	}

	if m.notice != "" {
		b.WriteString("\n" + errorStyle.Render(m.notice))
	}
	return b.String()
}

func (m Model) listView() string {
	if m.list == nil {
		return ""
	}
	st := m.list.State()
	switch st.Status() {
	case screens.Failed:
		return errorStyle.Render(m.list.ErrorText())
	case screens.Loaded:
	default:
		return m.spinner.View() + " " + screens.MsgLoadingPets
	}

	items, _ := st.Value()
	var b strings.Builder
	b.WriteString(labelStyle.Render("Available Pets") + "\n")
	for i, p := range items {
		line := fmt.Sprintf("%s · %s · %s", p.Name, p.Species, pets.FormatPrice(p.Price))
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> "+line) + "\n")
			continue
		}
		b.WriteString(itemStyle.Render(line) + "\n")
	}
	b.WriteString(helpStyle.Render("↑/↓ select • enter details • r reload • q quit"))
	return b.String()
}

func (m Model) detailView() string {
	if m.detail == nil {
		return ""
	}
	v := m.detail.View()
	switch v.Phase {
	case screens.DetailLoading:
		return m.spinner.View() + " " + screens.MsgLoadingDetails
	case screens.DetailFailed:
		return errorStyle.Render(v.Error) + "\n" + helpStyle.Render("b back • q quit")
	}

	d := pets.DraftFromPet(v.Pet)
	var b strings.Builder
	b.WriteString(labelStyle.Render(v.Pet.Name) + "\n")
	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label+":") + " " + value + "\n")
	}
	row("Species", v.Pet.Species)
	row("Breed", d.Breed)
	row("Gender", d.Gender)
	row("Image", d.Image)
	row("Description", d.Description)
	row("Price", pets.FormatPrice(v.Pet.Price))

	if v.Error != "" {
		b.WriteString(errorStyle.Render(v.Error) + "\n")
	}
	if m.confirming {
		b.WriteString(confirmStyle.Render(screens.MsgConfirmDelete + " (y/n)"))
		return b.String()
	}
	b.WriteString(helpStyle.Render("d delete • b back • q quit"))
	return b.String()
}
