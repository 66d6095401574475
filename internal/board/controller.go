// Package board holds the interactive state of the scheduling board: the
// visible window, view mode, zoom, layout, context menu and the last applied
// snapshot. Renderers (TUI, HTTP) drive it and draw its View.
package board

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/alexanderramin/prodboard/internal/aggregator"
	"github.com/alexanderramin/prodboard/internal/calendar"
	"github.com/alexanderramin/prodboard/internal/domain"
	"github.com/alexanderramin/prodboard/internal/layout"
	"github.com/alexanderramin/prodboard/internal/service"
	"github.com/google/uuid"
)

// Card zoom bounds.
const (
	MinScale     = 0.5
	MaxScale     = 1.5
	ScaleStep    = 0.1
	DefaultScale = 1.0
)

var (
	// ErrNoMenuTarget is returned by PickStatus when no context menu is open.
	ErrNoMenuTarget = errors.New("no order selected")
	// ErrUnknownDay is returned when a drop targets a key that is not a day.
	ErrUnknownDay = errors.New("unknown target day")
)

// Menu is an open context menu anchored at X, Y on an order card.
// Gesture identifies the menu session in mutation logs.
type Menu struct {
	Gesture uuid.UUID
	Order   domain.ScheduledOrder
	X, Y    int
}

// Options configures a Controller.
type Options struct {
	IssuedStatus string
	Mode         domain.ViewMode
	Scale        float64
	Width        float64
	Narrow       bool
}

// Refresh is the outcome of a background fetch, applied with ApplyRefresh.
type Refresh struct {
	Seq      uint64
	Snapshot *aggregator.Snapshot
	Err      error
}

// Controller is not safe for concurrent use; a UI owns it on its event
// loop. Only FetchWindow may run on another goroutine.
type Controller struct {
	feed     *aggregator.Feed
	nav      *calendar.Navigator
	moves    service.MoveService
	statuses service.StatusService

	issued string
	mode   domain.ViewMode
	scale  float64
	width  float64
	narrow bool
	grid   layout.Result
	query  string

	menu     *Menu
	snapshot *aggregator.Snapshot
	err      error
	loading  bool
}

// NewController wires a board over its collaborators.
func NewController(feed *aggregator.Feed, nav *calendar.Navigator, moves service.MoveService, statuses service.StatusService, opts Options) *Controller {
	c := &Controller{
		feed:     feed,
		nav:      nav,
		moves:    moves,
		statuses: statuses,
		issued:   opts.IssuedStatus,
		mode:     opts.Mode,
		scale:    opts.Scale,
		width:    opts.Width,
		narrow:   opts.Narrow,
	}
	if !domain.ValidViewModes[string(c.mode)] {
		c.mode = domain.ViewDetailed
	}
	if c.scale == 0 {
		c.scale = DefaultScale
	}
	c.scale = clampScale(c.scale)
	c.relayout()
	return c
}

// Load refreshes the current window synchronously. A fatal refresh error
// is kept as the controller's error state and returned.
func (c *Controller) Load(ctx context.Context) error {
	seq, snap, err := c.feed.Fetch(ctx, c.nav.Window())
	c.ApplyRefresh(Refresh{Seq: seq, Snapshot: snap, Err: err})
	return c.err
}

// Retry repeats Load after a failed refresh.
func (c *Controller) Retry(ctx context.Context) error {
	return c.Load(ctx)
}

// BeginRefresh marks the board loading and returns the window to fetch.
func (c *Controller) BeginRefresh() calendar.Window {
	c.loading = true
	return c.nav.Window()
}

// FetchWindow runs a refresh of w. It touches no controller state and can
// run off the UI goroutine.
func (c *Controller) FetchWindow(ctx context.Context, w calendar.Window) Refresh {
	seq, snap, err := c.feed.Fetch(ctx, w)
	return Refresh{Seq: seq, Snapshot: snap, Err: err}
}

// ApplyRefresh installs a fetched result. Results overtaken by a newer
// applied refresh are ignored. It reports whether the board changed.
func (c *Controller) ApplyRefresh(r Refresh) bool {
	if r.Err != nil {
		if !c.feed.Fail(r.Seq) {
			return false
		}
		c.loading = false
		c.err = r.Err
		return true
	}
	if !c.feed.Apply(r.Seq, r.Snapshot) {
		return false
	}
	c.loading = false
	c.err = nil
	c.snapshot = r.Snapshot
	if c.menu != nil {
		if o, ok := r.Snapshot.Order(c.menu.Order.ID); ok {
			c.menu.Order = o
		} else {
			c.menu = nil
		}
	}
	return true
}

func (c *Controller) Err() error           { return c.err }
func (c *Controller) Loading() bool        { return c.loading }
func (c *Controller) Loaded() bool         { return c.snapshot != nil }
func (c *Controller) IssuedStatus() string { return c.issued }

// Snapshot returns the last applied snapshot, or nil.
func (c *Controller) Snapshot() *aggregator.Snapshot { return c.snapshot }

// Navigation only moves the window; call Load or BeginRefresh afterwards.

func (c *Controller) NextWeek()     { c.nav.GoForward() }
func (c *Controller) PreviousWeek() { c.nav.GoBackward() }
func (c *Controller) GoToday()      { c.nav.GoToday() }

// SetPivot centers the window on day.
func (c *Controller) SetPivot(day domain.CalendarDay) { c.nav.SetPivot(day) }

func (c *Controller) Pivot() domain.CalendarDay  { return c.nav.Pivot() }
func (c *Controller) Today() domain.CalendarDay  { return c.nav.Today() }
func (c *Controller) Days() []domain.CalendarDay { return c.nav.Days() }
func (c *Controller) Window() calendar.Window    { return c.nav.Window() }

// Resize records a new container width and viewport class and recomputes
// the grid.
func (c *Controller) Resize(width float64, narrow bool) {
	c.width = width
	c.narrow = narrow
	c.relayout()
}

func (c *Controller) Layout() layout.Result { return c.grid }
func (c *Controller) Mode() domain.ViewMode { return c.mode }

// SetMode switches the rendering density.
func (c *Controller) SetMode(m domain.ViewMode) error {
	if !domain.ValidViewModes[string(m)] {
		return fmt.Errorf("unknown view mode %q", m)
	}
	c.mode = m
	c.relayout()
	return nil
}

// Scale returns the stored card scale. It is kept while in brief mode but
// has no effect there.
func (c *Controller) Scale() float64 { return c.scale }

// EffectiveScale is the scale the layout uses.
func (c *Controller) EffectiveScale() float64 {
	if !c.mode.Scalable() {
		return DefaultScale
	}
	return c.scale
}

func (c *Controller) ZoomIn()     { c.setScale(c.scale + ScaleStep) }
func (c *Controller) ZoomOut()    { c.setScale(c.scale - ScaleStep) }
func (c *Controller) ResetScale() { c.setScale(DefaultScale) }

// CanZoom reports whether zoom controls apply in the current mode.
func (c *Controller) CanZoom() bool { return c.mode.Scalable() }

func (c *Controller) setScale(s float64) {
	if !c.mode.Scalable() {
		return
	}
	c.scale = clampScale(s)
	c.relayout()
}

func clampScale(s float64) float64 {
	s = math.Round(s*10) / 10
	return math.Min(math.Max(s, MinScale), MaxScale)
}

func (c *Controller) relayout() {
	c.grid = layout.Compute(c.width, c.narrow, c.EffectiveScale())
}

// SetQuery sets the keyword filter; empty shows every order.
func (c *Controller) SetQuery(q string) { c.query = q }
func (c *Controller) Query() string     { return c.query }

// OpenMenu opens the context menu for order at a screen position.
func (c *Controller) OpenMenu(order domain.ScheduledOrder, x, y int) {
	c.menu = &Menu{Gesture: uuid.New(), Order: order, X: x, Y: y}
}

func (c *Controller) CloseMenu() { c.menu = nil }

// Menu returns the open context menu, or nil.
func (c *Controller) Menu() *Menu { return c.menu }

// IsMoving reports whether a move of the order is being persisted; drops
// of that order are rejected meanwhile.
func (c *Controller) IsMoving(orderID int64) bool { return c.moves.IsMoving(orderID) }

// IsUpdating reports whether a status change of the order is running.
func (c *Controller) IsUpdating(orderID int64) bool { return c.statuses.IsUpdating(orderID) }

// Drop routes a finished drag gesture to the move coordinator.
func (c *Controller) Drop(ctx context.Context, payload domain.DragPayload, targetKey string) (service.MoveState, error) {
	if c.moves.IsMoving(payload.Order.ID) {
		return service.MoveIdle, service.ErrMoveInProgress
	}
	target, err := domain.ParseDay(targetKey)
	if err != nil {
		return service.MoveIdle, fmt.Errorf("%w: %s", ErrUnknownDay, targetKey)
	}
	ctx = service.WithGesture(ctx, payload.GestureID)
	return c.moves.MoveOrder(ctx, payload.Order, payload.SourceKey, target)
}

// StatusPick is a status change chosen from the context menu. BeginPick
// captures it on the UI goroutine; Run only reaches the status service and
// may run elsewhere; FinishPick hands the outcome back.
type StatusPick struct {
	Gesture    uuid.UUID
	Order      domain.ScheduledOrder
	Field      domain.StatusField
	StatusID   int64
	StatusName string

	statuses service.StatusService
}

// BeginPick captures a status change for the open menu's order.
func (c *Controller) BeginPick(field domain.StatusField, statusID int64, statusName string) (StatusPick, error) {
	if c.menu == nil {
		return StatusPick{}, ErrNoMenuTarget
	}
	if c.statuses.IsUpdating(c.menu.Order.ID) {
		return StatusPick{}, service.ErrStatusInProgress
	}
	return StatusPick{
		Gesture:    c.menu.Gesture,
		Order:      c.menu.Order,
		Field:      field,
		StatusID:   statusID,
		StatusName: statusName,
		statuses:   c.statuses,
	}, nil
}

// Run writes the status under the menu's gesture id.
func (p StatusPick) Run(ctx context.Context) error {
	ctx = service.WithGesture(ctx, p.Gesture)
	return p.statuses.UpdateStatus(ctx, p.Order, p.Field, p.StatusID, p.StatusName)
}

// FinishPick closes the menu the pick came from when it succeeded. A menu
// reopened in the meantime stays open.
func (c *Controller) FinishPick(p StatusPick, err error) {
	if err == nil && c.menu != nil && c.menu.Gesture == p.Gesture {
		c.menu = nil
	}
}

// PickStatus applies a status chosen from the open context menu and closes
// the menu on success.
func (c *Controller) PickStatus(ctx context.Context, field domain.StatusField, statusID int64, statusName string) error {
	p, err := c.BeginPick(field, statusID, statusName)
	if err != nil {
		return err
	}
	err = p.Run(ctx)
	c.FinishPick(p, err)
	return err
}

// View projects the current snapshot onto the visible days.
func (c *Controller) View() View {
	var orders []domain.ScheduledOrder
	var warnings []string
	if c.snapshot != nil {
		orders = c.snapshot.Orders
		warnings = c.snapshot.Warnings
	}
	cols := Project(c.nav.Days(), orders, c.nav.Today(), c.issued, c.query)
	return View{
		Columns:  cols,
		Rows:     Rows(cols, c.grid.ColumnsPerRow),
		Layout:   c.grid,
		Mode:     c.mode,
		Scale:    c.EffectiveScale(),
		Query:    c.query,
		Warnings: warnings,
	}
}
