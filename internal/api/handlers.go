package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/alexanderramin/prodboard/internal/board"
	"github.com/alexanderramin/prodboard/internal/calendar"
	"github.com/alexanderramin/prodboard/internal/domain"
	"github.com/alexanderramin/prodboard/internal/layout"
	"github.com/alexanderramin/prodboard/internal/provider"
	"github.com/alexanderramin/prodboard/internal/repository"
	"github.com/alexanderramin/prodboard/internal/service"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// Pinger reports backend reachability.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type handlers struct {
	deps    Deps
	records *repository.Records
}

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status    string `json:"status"`
	Backend   bool   `json:"backend"`
	WSClients int    `json:"ws_clients"`
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	ok := h.deps.Pinger == nil || h.deps.Pinger.PingContext(r.Context()) == nil
	resp := HealthResponse{Status: "healthy", Backend: ok}
	if h.deps.Hub != nil {
		resp.WSClients = h.deps.Hub.ClientCount()
	}
	status := http.StatusOK
	if !ok {
		resp.Status = "degraded"
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}

func (h *handlers) board(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	nav := calendar.NewNavigator(h.deps.DaysBack, h.deps.DaysForward, h.deps.Clock)
	if p := q.Get("pivot"); p != "" {
		day, err := domain.ParseDay(p)
		if err != nil {
			writeError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
			return
		}
		nav.SetPivot(day)
	}

	width := 1200.0
	if v := q.Get("width"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 {
			writeError(w, http.StatusBadRequest, ErrCodeBadRequest, "width must be a non-negative number")
			return
		}
		width = f
	}
	narrow, _ := strconv.ParseBool(q.Get("narrow"))
	mode := domain.ViewDetailed
	if v := q.Get("mode"); v != "" {
		if !domain.ValidViewModes[v] {
			writeError(w, http.StatusBadRequest, ErrCodeBadRequest, "mode must be detailed, compact or brief")
			return
		}
		mode = domain.ViewMode(v)
	}
	scale := board.DefaultScale
	if v := q.Get("scale"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < board.MinScale || f > board.MaxScale {
			writeError(w, http.StatusBadRequest, ErrCodeBadRequest, "scale must be within [0.5, 1.5]")
			return
		}
		scale = f
	}
	if !mode.Scalable() {
		scale = board.DefaultScale
	}

	snap, err := h.deps.Aggregator.Refresh(r.Context(), nav.Window())
	if err != nil {
		writeError(w, http.StatusBadGateway, ErrCodeBackend, provider.Message(err))
		return
	}

	grid := layout.Compute(width, narrow, scale)
	today := nav.Today()
	cols := board.Project(nav.Days(), snap.Orders, today, h.deps.IssuedStatus, q.Get("q"))
	resp := BoardResponse{
		Pivot:    nav.Pivot().ISO(),
		Today:    today.ISO(),
		Start:    nav.Window().Start.ISO(),
		End:      nav.Window().End.ISO(),
		Mode:     string(mode),
		Layout:   LayoutDTO{ColumnWidth: grid.ColumnWidth, ColumnsPerRow: grid.ColumnsPerRow, Scale: scale},
		Warnings: snap.Warnings,
	}
	if resp.Warnings == nil {
		resp.Warnings = []string{}
	}
	for _, row := range board.Rows(cols, grid.ColumnsPerRow) {
		out := make([]DayDTO, len(row))
		for i, c := range row {
			out[i] = toDayDTO(c, today, h.deps.IssuedStatus, mode == domain.ViewDetailed)
		}
		resp.Rows = append(resp.Rows, out)
	}
	writeJSON(w, http.StatusOK, resp)
}

// MoveRequest is the body of POST /api/orders/{id}/move.
// MoveRequest moves an order to To. Gesture optionally carries the client's
// drag gesture id for log correlation.
type MoveRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Gesture string `json:"gesture,omitempty"`
}

// gestureContext tags the request context with the client's gesture id, or a
// new one when the client sent none.
func gestureContext(r *http.Request, raw string) (context.Context, error) {
	id := uuid.New()
	if raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid gesture id %q", raw)
		}
		id = parsed
	}
	return service.WithGesture(r.Context(), id), nil
}

func (h *handlers) move(w http.ResponseWriter, r *http.Request) {
	order, ok := h.loadOrder(w, r)
	if !ok {
		return
	}
	var req MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	ctx, err := gestureContext(r, req.Gesture)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}
	target, err := domain.ParseDay(req.To)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}
	source := req.From
	if source == "" && order.ScheduleDate != nil {
		source = order.ScheduleDate.Key()
	} else if source != "" {
		day, err := domain.ParseDay(source)
		if err != nil {
			writeError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
			return
		}
		source = day.Key()
	}

	state, err := h.deps.Moves.MoveOrder(ctx, order, source, target)
	switch {
	case errors.Is(err, service.ErrMoveInProgress):
		writeError(w, http.StatusConflict, ErrCodeConflict, err.Error())
	case err != nil:
		writeError(w, http.StatusBadGateway, ErrCodeBackend, provider.Message(err))
	default:
		writeJSON(w, http.StatusOK, map[string]string{"state": string(state)})
	}
}

// StatusRequest is the body of POST /api/orders/{id}/status.
type StatusRequest struct {
	Field      string `json:"field"`
	StatusID   int64  `json:"status_id"`
	StatusName string `json:"status_name"`
	Gesture    string `json:"gesture,omitempty"`
}

func (h *handlers) status(w http.ResponseWriter, r *http.Request) {
	order, ok := h.loadOrder(w, r)
	if !ok {
		return
	}
	var req StatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	ctx, err := gestureContext(r, req.Gesture)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}
	err = h.deps.Statuses.UpdateStatus(ctx, order, domain.StatusField(req.Field), req.StatusID, req.StatusName)
	switch {
	case errors.Is(err, service.ErrUnknownStatusField):
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	case errors.Is(err, service.ErrStatusInProgress):
		writeError(w, http.StatusConflict, ErrCodeConflict, err.Error())
	case err != nil:
		writeError(w, http.StatusBadGateway, ErrCodeBackend, provider.Message(err))
	default:
		writeJSON(w, http.StatusOK, map[string]string{"state": "updated"})
	}
}

func (h *handlers) loadOrder(w http.ResponseWriter, r *http.Request) (domain.ScheduledOrder, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, "order id must be a positive integer")
		return domain.ScheduledOrder{}, false
	}
	rec, err := h.records.OrderByID(r.Context(), id)
	if errors.Is(err, provider.ErrNotFound) {
		writeError(w, http.StatusNotFound, ErrCodeNotFound, "order not found")
		return domain.ScheduledOrder{}, false
	}
	if err != nil {
		writeError(w, http.StatusBadGateway, ErrCodeBackend, provider.Message(err))
		return domain.ScheduledOrder{}, false
	}
	return domain.ScheduledOrder{
		ID:           rec.ID,
		Name:         rec.Name,
		ScheduleDate: rec.ScheduleDate,
		OrderStatus:  rec.OrderStatusName,
	}, true
}
