package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/prodboard/internal/board"
	"github.com/alexanderramin/prodboard/internal/cli/formatter"
	"github.com/alexanderramin/prodboard/internal/domain"
	"github.com/alexanderramin/prodboard/internal/provider"
	"github.com/alexanderramin/prodboard/internal/service"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// narrowCells is the terminal width below which the board uses the narrow
// layout.
const narrowCells = 80

// maxNotices bounds the notice log under the grid.
const maxNotices = 3

type refreshMsg board.Refresh

type invalidatedMsg struct{ resource string }

type moveDoneMsg struct {
	state service.MoveState
	err   error
}

type statusOptionsMsg struct {
	field   domain.StatusField
	options []domain.LookupRecord
	err     error
}

type statusDoneMsg struct {
	pick board.StatusPick
	err  error
}

var menuFields = []domain.StatusField{
	domain.FieldOrderStatus,
	domain.FieldPaymentStatus,
	domain.FieldProductionStatus,
}

type statusMenu struct {
	field   domain.StatusField
	options []domain.LookupRecord
	cursor  int
	loading bool
	err     error
}

// boardModel is the bubbletea model of the interactive board. Board state
// lives in the controller; the model adds the cursor, drag and menu.
type boardModel struct {
	ctx  context.Context
	app  *App
	ctrl *board.Controller

	keys     boardKeyMap
	menuKeys menuKeyMap
	help     help.Model
	search   textinput.Model

	width, height int
	cursor        formatter.Cursor
	drag          *domain.DragPayload
	menu          *statusMenu
	notices       []service.Notice
	quitting      bool
}

func newBoardModel(ctx context.Context, app *App, ctrl *board.Controller) boardModel {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "order, client, status…"
	ti.CharLimit = 64

	return boardModel{
		ctx:      ctx,
		app:      app,
		ctrl:     ctrl,
		keys:     newBoardKeyMap(),
		menuKeys: newMenuKeyMap(),
		help:     help.New(),
		search:   ti,
		cursor:   formatter.Cursor{Day: todayIndex(ctrl), Card: -1},
	}
}

func todayIndex(ctrl *board.Controller) int {
	today := ctrl.Today()
	for i, d := range ctrl.Days() {
		if d.Equal(today) {
			return i
		}
	}
	return 0
}

func (m boardModel) Init() tea.Cmd {
	return m.refresh()
}

func (m boardModel) refresh() tea.Cmd {
	w := m.ctrl.BeginRefresh()
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		return refreshMsg(ctrl.FetchWindow(ctx, w))
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.ctrl.Resize(float64(msg.Width*formatter.PixelsPerCell), msg.Width < narrowCells)
		return m, nil

	case refreshMsg:
		if m.ctrl.ApplyRefresh(board.Refresh(msg)) {
			if m.menu != nil && m.ctrl.Menu() == nil {
				m.menu = nil
			}
			m.clampCursor()
		}
		m.collectNotices()
		return m, nil

	case invalidatedMsg:
		return m, m.refresh()

	case moveDoneMsg:
		m.collectNotices()
		if msg.err != nil && len(m.notices) == 0 {
			m.addNotice(service.Notice{Level: service.NoticeError, Message: msg.err.Error()})
		}
		return m, nil

	case statusOptionsMsg:
		if m.menu != nil && m.menu.field == msg.field {
			m.menu.loading = false
			m.menu.options = msg.options
			m.menu.err = msg.err
			m.menu.cursor = 0
		}
		return m, nil

	case statusDoneMsg:
		m.collectNotices()
		m.ctrl.FinishPick(msg.pick, msg.err)
		if m.ctrl.Menu() == nil {
			m.menu = nil
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m boardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}
	if m.search.Focused() {
		return m.handleSearchKey(msg)
	}
	if m.menu != nil {
		return m.handleMenuKey(msg)
	}

	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, k.PrevWeek):
		m.ctrl.PreviousWeek()
		return m, m.refresh()
	case key.Matches(msg, k.NextWeek):
		m.ctrl.NextWeek()
		return m, m.refresh()
	case key.Matches(msg, k.Today):
		m.ctrl.GoToday()
		m.cursor = formatter.Cursor{Day: todayIndex(m.ctrl), Card: -1}
		return m, m.refresh()
	case key.Matches(msg, k.Reload):
		return m, m.refresh()
	case key.Matches(msg, k.Left):
		m.cursor.Day--
		m.cursor.Card = -1
		m.clampCursor()
	case key.Matches(msg, k.Right):
		m.cursor.Day++
		m.cursor.Card = -1
		m.clampCursor()
	case key.Matches(msg, k.Up):
		m.cursor.Card--
		m.clampCursor()
	case key.Matches(msg, k.Down):
		m.cursor.Card++
		m.clampCursor()
	case key.Matches(msg, k.Detailed):
		_ = m.ctrl.SetMode(domain.ViewDetailed)
	case key.Matches(msg, k.Compact):
		_ = m.ctrl.SetMode(domain.ViewCompact)
	case key.Matches(msg, k.Brief):
		_ = m.ctrl.SetMode(domain.ViewBrief)
	case key.Matches(msg, k.ZoomIn):
		m.ctrl.ZoomIn()
	case key.Matches(msg, k.ZoomOut):
		m.ctrl.ZoomOut()
	case key.Matches(msg, k.ZoomZero):
		m.ctrl.ResetScale()
	case key.Matches(msg, k.Search):
		m.search.SetValue(m.ctrl.Query())
		cmd := m.search.Focus()
		return m, cmd
	case key.Matches(msg, k.Pick):
		if col, o, ok := m.focused(); ok {
			p := domain.NewDragPayload(o, col.Key)
			m.drag = &p
		}
	case key.Matches(msg, k.Drop):
		cmd := m.drop()
		return m, cmd
	case key.Matches(msg, k.Cancel):
		m.drag = nil
	case key.Matches(msg, k.Menu):
		cmd := m.openMenu()
		return m, cmd
	}
	return m, nil
}

func (m boardModel) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.search.Blur()
		m.search.SetValue("")
		m.ctrl.SetQuery("")
		m.clampCursor()
		return m, nil
	case tea.KeyEnter:
		m.search.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.ctrl.SetQuery(strings.TrimSpace(m.search.Value()))
	m.clampCursor()
	return m, cmd
}

func (m boardModel) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.menuKeys
	switch {
	case key.Matches(msg, k.Close):
		m.ctrl.CloseMenu()
		m.menu = nil
	case key.Matches(msg, k.Up):
		if m.menu.cursor > 0 {
			m.menu.cursor--
		}
	case key.Matches(msg, k.Down):
		if m.menu.cursor < len(m.menu.options)-1 {
			m.menu.cursor++
		}
	case key.Matches(msg, k.Field):
		next := menuFields[0]
		for i, f := range menuFields {
			if f == m.menu.field {
				next = menuFields[(i+1)%len(menuFields)]
			}
		}
		m.menu = &statusMenu{field: next, loading: true}
		return m, m.loadOptions(next)
	case key.Matches(msg, k.Choose):
		return m, m.pickStatus()
	}
	return m, nil
}

// focused returns the day column and card under the cursor.
func (m boardModel) focused() (board.DayColumn, domain.ScheduledOrder, bool) {
	cols := m.ctrl.View().Columns
	if m.cursor.Day < 0 || m.cursor.Day >= len(cols) {
		return board.DayColumn{}, domain.ScheduledOrder{}, false
	}
	col := cols[m.cursor.Day]
	if m.cursor.Card < 0 || m.cursor.Card >= len(col.Orders) {
		return col, domain.ScheduledOrder{}, false
	}
	return col, col.Orders[m.cursor.Card], true
}

func (m *boardModel) clampCursor() {
	cols := m.ctrl.View().Columns
	if len(cols) == 0 {
		m.cursor = formatter.Cursor{Card: -1}
		return
	}
	m.cursor.Day = min(max(m.cursor.Day, 0), len(cols)-1)
	m.cursor.Card = min(max(m.cursor.Card, -1), len(cols[m.cursor.Day].Orders)-1)
}

func (m *boardModel) drop() tea.Cmd {
	if m.drag == nil {
		return nil
	}
	cols := m.ctrl.View().Columns
	if m.cursor.Day < 0 || m.cursor.Day >= len(cols) {
		return nil
	}
	payload, target := *m.drag, cols[m.cursor.Day].Key
	m.drag = nil
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		state, err := ctrl.Drop(ctx, payload, target)
		return moveDoneMsg{state: state, err: err}
	}
}

func (m *boardModel) openMenu() tea.Cmd {
	_, o, ok := m.focused()
	if !ok {
		return nil
	}
	m.ctrl.OpenMenu(o, m.cursor.Day, m.cursor.Card)
	m.menu = &statusMenu{field: domain.FieldOrderStatus, loading: true}
	return m.loadOptions(domain.FieldOrderStatus)
}

func (m boardModel) loadOptions(field domain.StatusField) tea.Cmd {
	records, ctx := m.app.Records, m.ctx
	return func() tea.Msg {
		opts, err := records.StatusOptions(ctx, field)
		return statusOptionsMsg{field: field, options: opts, err: err}
	}
}

func (m boardModel) pickStatus() tea.Cmd {
	if m.menu == nil || len(m.menu.options) == 0 {
		return nil
	}
	opt := m.menu.options[m.menu.cursor]
	pick, err := m.ctrl.BeginPick(m.menu.field, opt.ID, opt.Name)
	if err != nil {
		return nil
	}
	ctx := m.ctx
	return func() tea.Msg {
		return statusDoneMsg{pick: pick, err: pick.Run(ctx)}
	}
}

func (m *boardModel) collectNotices() {
	if m.app.Inbox == nil {
		return
	}
	for _, n := range m.app.Inbox.Drain() {
		m.addNotice(n)
	}
}

func (m *boardModel) addNotice(n service.Notice) {
	m.notices = append(m.notices, n)
	if len(m.notices) > maxNotices {
		m.notices = m.notices[len(m.notices)-maxNotices:]
	}
}

func (m boardModel) View() string {
	if m.quitting {
		return ""
	}
	var sections []string
	sections = append(sections, m.renderHeader())

	switch err := m.ctrl.Err(); {
	case err != nil:
		sections = append(sections,
			formatter.StyleRed.Render("Could not load the board: "+provider.Message(err)),
			formatter.Dim("press r to retry"))
	case !m.ctrl.Loaded():
		sections = append(sections, formatter.Dim("loading…"))
	default:
		v := m.ctrl.View()
		for _, w := range v.Warnings {
			sections = append(sections, formatter.StyleYellow.Render("⚠ "+w))
		}
		opts := formatter.GridOptions{
			Today:  m.ctrl.Today(),
			Issued: m.ctrl.IssuedStatus(),
			Cursor: &m.cursor,
			Busy: func(id int64) bool {
				return m.ctrl.IsMoving(id) || m.ctrl.IsUpdating(id)
			},
		}
		if m.drag != nil {
			opts.Picked = m.drag.Order.ID
		}
		sections = append(sections, formatter.RenderGrid(v, opts))
	}

	if m.menu != nil {
		sections = append(sections, m.renderMenu())
	}
	if m.search.Focused() || m.ctrl.Query() != "" {
		sections = append(sections, m.search.View())
	}
	for _, n := range m.notices {
		sections = append(sections, formatter.NoticeStyle(n.Level == service.NoticeError).Render(n.Message))
	}
	if m.menu != nil {
		sections = append(sections, m.help.View(m.menuKeys))
	} else {
		sections = append(sections, m.help.View(m.keys))
	}
	return strings.Join(sections, "\n")
}

func (m boardModel) renderHeader() string {
	w := m.ctrl.Window()
	title := formatter.StylePurple.Render("prodboard")
	span := formatter.Dim(fmt.Sprintf("%s – %s", w.Start.Key(), w.End.Key()))
	mode := string(m.ctrl.Mode())
	if m.ctrl.CanZoom() {
		mode += fmt.Sprintf(" ×%.1f", m.ctrl.Scale())
	}
	header := title + "  " + span + "  " + formatter.Dim(mode)
	if m.ctrl.Loading() {
		header += "  " + formatter.Dim("refreshing…")
	}
	if m.drag != nil {
		header += "  " + formatter.StyleYellow.Render("moving "+m.drag.Order.Name+": enter to drop, esc to cancel")
	}
	return header
}

func (m boardModel) renderMenu() string {
	menu := m.ctrl.Menu()
	if menu == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(formatter.Header(fmt.Sprintf("%s · %s", menu.Order.Name, m.menu.field.Label())))
	b.WriteString("\n")
	switch {
	case m.menu.loading:
		b.WriteString(formatter.Dim("loading…"))
	case m.menu.err != nil:
		b.WriteString(formatter.StyleRed.Render(provider.Message(m.menu.err)))
	default:
		current := currentStatus(menu.Order, m.menu.field)
		for i, o := range m.menu.options {
			line := "  " + o.Name
			if i == m.menu.cursor {
				line = formatter.StyleHeader.Render("▸ " + o.Name)
			}
			if strings.EqualFold(o.Name, current) {
				line += formatter.Dim(" (current)")
			}
			b.WriteString(line + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func currentStatus(o domain.ScheduledOrder, field domain.StatusField) string {
	switch field {
	case domain.FieldOrderStatus:
		return o.OrderStatus
	case domain.FieldPaymentStatus:
		return o.PaymentStatus
	default:
		return o.ProductionStatus
	}
}
