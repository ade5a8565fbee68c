// Package tui is the interactive editor: a Bubble Tea program over the
// case store and the checklist editor.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/previdlabs/ppp/internal/catalog"
	"github.com/previdlabs/ppp/internal/config"
	"github.com/previdlabs/ppp/internal/editor"
	"github.com/previdlabs/ppp/internal/export"
	"github.com/previdlabs/ppp/internal/model"
	"github.com/previdlabs/ppp/internal/store/casestore"
	"github.com/previdlabs/ppp/internal/ui"
	"github.com/previdlabs/ppp/pkg/log"
)

type view int

const (
	viewCases view = iota
	viewChecklist
	viewBenefit
	viewRural
	viewExport
)

// input modes layered on top of viewChecklist
type inputMode int

const (
	inputNone inputMode = iota
	inputAddItem
	inputEditItem
	inputClientName
	inputClientCPF
)

// caseEntry adapts a stored case to bubbles/list.Item.
type caseEntry struct {
	a model.Atendimento
}

func (c caseEntry) Title() string {
	name := c.a.ClientName
	if name == "" {
		name = "(sem nome)"
	}
	return name
}
func (c caseEntry) Description() string {
	delivered, pending := model.Stats(c.a.ChecklistItems)
	return fmt.Sprintf("%s · %d/%d · %s",
		c.a.BenefitName, delivered, delivered+pending,
		c.a.UpdatedAt.Format("02/01/2006"))
}
func (c caseEntry) FilterValue() string {
	return c.a.ClientName + " " + c.a.ClientCPF + " " + c.a.BenefitName
}

// itemEntry adapts a checklist item to bubbles/list.Item.
type itemEntry struct {
	id      string
	text    string
	checked bool
}

func (i itemEntry) Title() string       { return i.text }
func (i itemEntry) Description() string { return "" }
func (i itemEntry) FilterValue() string { return i.text }

// benefitEntry adapts a catalog benefit.
type benefitEntry struct {
	id   string
	name string
}

func (b benefitEntry) Title() string       { return b.name }
func (b benefitEntry) Description() string { return "" }
func (b benefitEntry) FilterValue() string { return b.name }

// ruralEntry is a rural proof with its picker selection state.
type ruralEntry struct {
	id       string
	name     string
	selected bool
}

func (r ruralEntry) Title() string       { return r.name }
func (r ruralEntry) Description() string { return "" }
func (r ruralEntry) FilterValue() string { return r.name }

// itemDelegate renders one checklist line: checkbox glyph plus text.
type itemDelegate struct {
	theme ui.Theme
}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, _ := item.(itemEntry)

	box := d.theme.Muted.Render(d.theme.Box(false))
	text := it.text
	if it.checked {
		box = d.theme.Success.Render(d.theme.Box(true))
		text = d.theme.Done.Render(text)
	}
	prefix := "  "
	if index == m.Index() {
		prefix = d.theme.Selected.Render("> ")
	}
	fmt.Fprintln(w, prefix+box+" "+text)
}

// pickDelegate renders one selectable line (benefits, rural proofs).
type pickDelegate struct {
	theme    ui.Theme
	showBox  bool
	selected func(id string) bool
}

func (d pickDelegate) Height() int                               { return 1 }
func (d pickDelegate) Spacing() int                              { return 0 }
func (d pickDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d pickDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	var id, name string
	switch v := item.(type) {
	case benefitEntry:
		id, name = v.id, v.name
	case ruralEntry:
		id, name = v.id, v.name
	default:
		return
	}
	line := name
	if d.showBox {
		box := d.theme.Muted.Render(d.theme.Box(false))
		if d.selected != nil && d.selected(id) {
			box = d.theme.Success.Render(d.theme.Box(true))
		}
		line = box + " " + name
	}
	prefix := "  "
	if index == m.Index() {
		prefix = d.theme.Selected.Render("> ")
	}
	fmt.Fprintln(w, prefix+line)
}

type tuiModel struct {
	store  *casestore.Store
	ed     *editor.Editor
	cfg    *config.Config
	theme  ui.Theme
	logger log.Logger

	view  view
	input inputMode

	caseList    list.Model
	itemList    list.Model
	benefitList list.Model
	ruralList   list.Model

	ti       textinput.Model
	editID   string // item being edited inline
	inputErr string

	ruralSelected map[string]bool

	// benefit change awaiting confirmation
	confirmBenefit string

	exportTab int // 0 pendentes, 1 entregues, 2 completo

	width  int
	height int
}

// Run starts the interactive editor and blocks until it exits. Unsaved
// changes are committed on quit.
func Run(s *casestore.Store, cfg *config.Config, theme ui.Theme, logger log.Logger) error {
	ed := editor.New(s, CatalogLookup(), editor.Options{
		AutosaveDelay: cfg.Editor.AutosaveDelay,
		Logger:        logger,
	})
	defer ed.Stop()

	m := newModel(s, ed, cfg, theme, logger)
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(tuiModel); ok && fm.ed.Dirty() {
		if err := fm.ed.Save(); err != nil {
			return fmt.Errorf("save on quit: %w", err)
		}
	}
	return nil
}

// CatalogLookup adapts the static catalog to the editor's lookup shape.
func CatalogLookup() editor.BenefitLookup {
	return func(id string) (string, []string, bool) {
		b, ok := catalog.Find(id)
		if !ok {
			return "", nil, false
		}
		return b.Name, b.Documents, true
	}
}

func newModel(s *casestore.Store, ed *editor.Editor, cfg *config.Config, theme ui.Theme, logger log.Logger) tuiModel {
	m := tuiModel{
		store:         s,
		ed:            ed,
		cfg:           cfg,
		theme:         theme,
		logger:        logger,
		view:          viewCases,
		ruralSelected: map[string]bool{},
	}

	m.caseList = list.New(nil, list.NewDefaultDelegate(), 0, 0)
	m.caseList.Title = "Atendimentos"
	m.caseList.SetShowHelp(true)
	m.caseList.SetFilteringEnabled(true)
	m.caseList.Styles.Title = theme.Title
	m.caseList.Styles.HelpStyle = theme.Help
	m.caseList.FilterInput.Prompt = "/ "
	m.caseList.SetStatusBarItemName("atendimento", "atendimentos")
	newBind := key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "novo"))
	delBind := key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "excluir"))
	m.caseList.AdditionalShortHelpKeys = func() []key.Binding { return []key.Binding{newBind, delBind} }
	m.caseList.AdditionalFullHelpKeys = m.caseList.AdditionalShortHelpKeys
	m.syncCases()

	m.itemList = list.New(nil, itemDelegate{theme: theme}, 0, 0)
	m.itemList.SetShowHelp(true)
	m.itemList.SetShowPagination(true)
	m.itemList.SetShowStatusBar(true)
	m.itemList.SetFilteringEnabled(true)
	m.itemList.Styles.Title = theme.Title
	m.itemList.Styles.HelpStyle = theme.Help
	m.itemList.Styles.PaginationStyle = theme.Help
	m.itemList.FilterInput.Prompt = "/ "
	m.itemList.SetStatusBarItemName("documento", "documentos")
	binds := []key.Binding{
		key.NewBinding(key.WithKeys(" "), key.WithHelp("espaço", "entregar")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "adicionar")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "editar")),
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "remover")),
		key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "benefício")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "provas rurais")),
		key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "gerar lista")),
		key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "nome")),
		key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "cpf")),
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "salvar")),
	}
	m.itemList.AdditionalShortHelpKeys = func() []key.Binding { return binds[:4] }
	m.itemList.AdditionalFullHelpKeys = func() []key.Binding { return binds }

	var bitems []list.Item
	for _, b := range catalog.Benefits() {
		bitems = append(bitems, benefitEntry{id: b.ID, name: b.Name})
	}
	m.benefitList = list.New(bitems, pickDelegate{theme: theme}, 0, 0)
	m.benefitList.Title = "Selecione o benefício"
	m.benefitList.Styles.Title = theme.Title
	m.benefitList.Styles.HelpStyle = theme.Help
	m.benefitList.SetFilteringEnabled(true)

	var ritems []list.Item
	for _, p := range catalog.RuralProofs() {
		ritems = append(ritems, ruralEntry{id: p.ID, name: p.Name})
	}
	m.ruralList = list.New(ritems, pickDelegate{
		theme:    theme,
		showBox:  true,
		selected: func(id string) bool { return m.ruralSelected[id] },
	}, 0, 0)
	m.ruralList.Title = "Provas de Atividade Rural"
	m.ruralList.Styles.Title = theme.Title
	m.ruralList.Styles.HelpStyle = theme.Help
	m.ruralList.SetFilteringEnabled(false)

	m.ti = textinput.New()
	m.ti.Prompt = "> "
	m.ti.CharLimit = 200

	return m
}

func (m tuiModel) Init() tea.Cmd { return nil }

// syncCases rebuilds the case list from the store.
func (m *tuiModel) syncCases() {
	cases := m.store.All()
	items := make([]list.Item, 0, len(cases))
	for _, a := range cases {
		items = append(items, caseEntry{a: a})
	}
	m.caseList.SetItems(items)
}

// syncItems rebuilds the checklist view from the editor.
func (m *tuiModel) syncItems() {
	snap := m.ed.Snapshot()
	items := make([]list.Item, 0, len(snap.Items))
	for _, it := range snap.Items {
		items = append(items, itemEntry{id: it.ID, text: it.Text, checked: it.Checked})
	}
	idx := m.itemList.Index()
	m.itemList.SetItems(items)
	if idx >= len(items) {
		idx = len(items) - 1
	}
	if idx >= 0 {
		m.itemList.Select(idx)
	}

	title := "Checklist de Documentos"
	if snap.ClientName != "" {
		title = snap.ClientName
	}
	delivered, pending := model.Stats(snap.Items)
	badge := ""
	if snap.Dirty {
		badge = "  " + m.theme.Pending.Render("● não salvo")
	}
	m.itemList.Title = fmt.Sprintf("%s   %s %d  %s %d%s",
		m.theme.Title.Render(title),
		m.theme.Success.Render("✔"), delivered,
		m.theme.Pending.Render("•"), pending,
		badge,
	)
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		h := m.height - 4
		m.caseList.SetSize(m.width-2, h)
		m.itemList.SetSize(m.width-2, h)
		m.benefitList.SetSize(m.width-2, h)
		m.ruralList.SetSize(m.width-2, h)
		return m, nil
	}

	if m.input != inputNone {
		return m.updateInput(msg)
	}
	if m.confirmBenefit != "" {
		return m.updateConfirm(msg)
	}

	switch m.view {
	case viewCases:
		return m.updateCases(msg)
	case viewChecklist:
		return m.updateChecklist(msg)
	case viewBenefit:
		return m.updateBenefit(msg)
	case viewRural:
		return m.updateRural(msg)
	case viewExport:
		return m.updateExport(msg)
	}
	return m, nil
}

func (m tuiModel) updateCases(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && m.caseList.FilterState() != list.Filtering {
		switch k.String() {
		case "q", "esc":
			return m, tea.Quit
		case "n":
			m.ed.Reset()
			m.view = viewChecklist
			m.syncItems()
			return m, nil
		case "enter":
			if e, ok := m.caseList.SelectedItem().(caseEntry); ok {
				m.ed.LoadCase(e.a.ID)
				m.view = viewChecklist
				m.syncItems()
			}
			return m, nil
		case "x":
			if e, ok := m.caseList.SelectedItem().(caseEntry); ok {
				if err := m.ed.DeleteCase(e.a.ID); err != nil {
					m.logger.Errorf(context.Background(), "delete: %v", err)
				}
				m.syncCases()
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.caseList, cmd = m.caseList.Update(msg)
	return m, cmd
}

func (m tuiModel) updateChecklist(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && m.itemList.FilterState() != list.Filtering {
		switch k.String() {
		case "q":
			return m, tea.Quit
		case "esc":
			// back to the case list; a dirty editor keeps autosaving
			m.view = viewCases
			m.syncCases()
			return m, nil
		case " ":
			if it, ok := m.itemList.SelectedItem().(itemEntry); ok {
				m.ed.ToggleItem(it.id)
				m.syncItems()
			}
			return m, nil
		case "d":
			if it, ok := m.itemList.SelectedItem().(itemEntry); ok {
				m.ed.RemoveItem(it.id)
				m.syncItems()
			}
			return m, nil
		case "a":
			m.startInput(inputAddItem, "", "Novo documento...")
			return m, nil
		case "e":
			if it, ok := m.itemList.SelectedItem().(itemEntry); ok {
				m.editID = it.id
				m.startInput(inputEditItem, it.text, "Editar documento...")
			}
			return m, nil
		case "c":
			m.startInput(inputClientName, m.ed.Snapshot().ClientName, "Nome do cliente...")
			return m, nil
		case "f":
			m.startInput(inputClientCPF, m.ed.Snapshot().ClientCPF, "000.000.000-00")
			return m, nil
		case "b":
			m.view = viewBenefit
			return m, nil
		case "r":
			m.clearRural()
			m.view = viewRural
			return m, nil
		case "g":
			m.exportTab = 0
			m.view = viewExport
			return m, nil
		case "s":
			if err := m.ed.Save(); err != nil {
				m.logger.Errorf(context.Background(), "save: %v", err)
			}
			m.syncItems()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.itemList, cmd = m.itemList.Update(msg)
	return m, cmd
}

func (m tuiModel) updateBenefit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && m.benefitList.FilterState() != list.Filtering {
		switch k.String() {
		case "esc":
			m.view = viewChecklist
			return m, nil
		case "enter":
			if b, ok := m.benefitList.SelectedItem().(benefitEntry); ok {
				// changing benefit wipes the checklist, so ask first
				// when configured and there is something to lose
				if m.cfg.Editor.ConfirmBenefitReplace && len(m.ed.Snapshot().Items) > 0 {
					m.confirmBenefit = b.id
					return m, nil
				}
				m.ed.SelectBenefit(b.id)
				m.view = viewChecklist
				m.syncItems()
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.benefitList, cmd = m.benefitList.Update(msg)
	return m, cmd
}

func (m tuiModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "y", "s", "enter":
			m.ed.SelectBenefit(m.confirmBenefit)
			m.confirmBenefit = ""
			m.view = viewChecklist
			m.syncItems()
		case "n", "esc":
			m.confirmBenefit = ""
			m.view = viewChecklist
		}
	}
	return m, nil
}

func (m tuiModel) updateRural(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc":
			m.view = viewChecklist
			return m, nil
		case " ":
			if r, ok := m.ruralList.SelectedItem().(ruralEntry); ok {
				m.ruralSelected[r.id] = !m.ruralSelected[r.id]
			}
			return m, nil
		case "A":
			all := countSelected(m.ruralSelected) == len(catalog.RuralProofs())
			m.clearRural()
			if !all {
				for _, p := range catalog.RuralProofs() {
					m.ruralSelected[p.ID] = true
				}
			}
			return m, nil
		case "enter":
			texts := catalog.ProofTexts(m.ruralSelected)
			m.ed.AddBulkItems(texts)
			m.clearRural()
			m.view = viewChecklist
			m.syncItems()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ruralList, cmd = m.ruralList.Update(msg)
	return m, cmd
}

func (m tuiModel) updateExport(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc", "q", "g":
			m.view = viewChecklist
			return m, nil
		case "left", "h":
			if m.exportTab > 0 {
				m.exportTab--
			}
			return m, nil
		case "right", "l", "tab":
			if m.exportTab < 2 {
				m.exportTab++
			}
			return m, nil
		}
	}
	return m, nil
}

func (m *tuiModel) startInput(mode inputMode, value, placeholder string) {
	m.input = mode
	m.inputErr = ""
	m.ti.SetValue(value)
	m.ti.Placeholder = placeholder
	m.ti.CursorEnd()
	m.ti.Focus()
}

func (m *tuiModel) stopInput() {
	m.input = inputNone
	m.inputErr = ""
	m.editID = ""
	m.ti.SetValue("")
	m.ti.Blur()
}

func (m tuiModel) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "enter":
			value := m.ti.Value()
			switch m.input {
			case inputAddItem:
				if !m.ed.AddItem(value) {
					m.inputErr = "O texto não pode ser vazio"
					return m, nil
				}
			case inputEditItem:
				if strings.TrimSpace(value) == "" {
					m.inputErr = "O texto não pode ser vazio"
					return m, nil
				}
				m.ed.EditItemText(m.editID, strings.TrimSpace(value))
			case inputClientName:
				m.ed.SetClientName(strings.TrimSpace(value))
			case inputClientCPF:
				m.ed.SetClientCPF(value)
			}
			m.stopInput()
			m.syncItems()
			return m, nil
		case "esc":
			m.stopInput()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m tuiModel) View() string {
	var content string

	switch m.view {
	case viewCases:
		content = m.caseList.View()
	case viewBenefit:
		content = m.benefitList.View()
	case viewRural:
		help := m.theme.Help.Render("espaço marcar · A todos · enter adicionar · esc voltar")
		content = m.ruralList.View() + "\n" + help
	case viewExport:
		content = m.exportView()
	default:
		content = m.checklistView()
	}

	if m.confirmBenefit != "" {
		warn := m.theme.Error.Render("Trocar o benefício substitui todo o checklist.") +
			"\nContinuar? (s/n)"
		content += "\n" + m.theme.Panel([]string{warn})
	}

	if m.input != inputNone {
		title := inputTitle(m.input)
		if m.inputErr != "" {
			title += " — " + m.theme.Error.Render(m.inputErr)
		}
		content += "\n" + m.theme.Panel([]string{title, m.ti.View()})
	}
	return content
}

func (m tuiModel) checklistView() string {
	snap := m.ed.Snapshot()
	header := m.theme.Muted.Render("CPF: "+orDash(snap.ClientCPF)) + "  " +
		m.theme.Muted.Render("Benefício: "+orDash(snap.BenefitName))
	return header + "\n" + m.itemList.View()
}

func (m tuiModel) exportView() string {
	snap := m.ed.Snapshot()
	tabs := []string{"Pendentes", "Entregues", "Completo"}
	var head []string
	for i, tab := range tabs {
		if i == m.exportTab {
			head = append(head, m.theme.Selected.Render(" "+tab+" "))
		} else {
			head = append(head, m.theme.Muted.Render(" "+tab+" "))
		}
	}

	var text string
	switch m.exportTab {
	case 1:
		text = export.DeliveredText(snap.Items, snap.ClientName, snap.BenefitName)
	case 2:
		text = export.CompleteText(snap.Items, snap.ClientName, snap.BenefitName)
	default:
		text = export.PendingText(snap.Items, snap.ClientName, snap.BenefitName)
	}

	help := m.theme.Help.Render("←/→ alternar · esc voltar")
	return strings.Join(head, "") + "\n\n" + m.theme.Panel(strings.Split(text, "\n")) + "\n" + help
}

func inputTitle(mode inputMode) string {
	switch mode {
	case inputAddItem:
		return "Adicionar documento"
	case inputEditItem:
		return "Editar documento"
	case inputClientName:
		return "Nome do cliente"
	case inputClientCPF:
		return "CPF do cliente"
	}
	return ""
}

// clearRural empties the selection in place. The rural list's delegate
// closed over this map at construction, so it must be mutated, never
// replaced.
func (m *tuiModel) clearRural() {
	for k := range m.ruralSelected {
		delete(m.ruralSelected, k)
	}
}

func countSelected(sel map[string]bool) int {
	n := 0
	for _, v := range sel {
		if v {
			n++
		}
	}
	return n
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
