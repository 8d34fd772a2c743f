package clusterlist

import (
	"log/slog"
	"sort"
	"strings"
)

// DefaultOverscan is how many rows past each viewport edge get materialized.
const DefaultOverscan = 15

// HeightFunc returns the height in lines of the row at index.
type HeightFunc func(index int) int

// RenderFunc returns the view of the row at index.
type RenderFunc func(index int) string

// RowGeometry is the vertical extent of one row in list coordinates.
type RowGeometry struct {
	Index  int
	Offset int
	Height int
}

// End is the first line after the row.
func (g RowGeometry) End() int {
	return g.Offset + g.Height
}

// Metrics describes the viewport the engine last laid out against.
type Metrics struct {
	Top            int
	ViewportHeight int
	TotalHeight    int
}

type EngineOption func(*Engine)

// WithOverscan sets the number of rows materialized beyond each edge.
func WithOverscan(rows int) EngineOption {
	return func(e *Engine) {
		if rows >= 0 {
			e.overscan = rows
		}
	}
}

// WithRowHeight sets the single-row height. It sizes the overscan margin and
// replaces any non-positive height the height function returns.
func WithRowHeight(lines int) EngineOption {
	return func(e *Engine) {
		if lines > 0 {
			e.rowHeight = lines
		}
	}
}

func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// Engine virtualizes a list of variable-height rows. It lays rows out lazily,
// keeps their offsets until told a height changed, and renders only the rows
// near the viewport. Scroll position belongs to the caller.
type Engine struct {
	count     int
	height    HeightFunc
	render    RenderFunc
	overscan  int
	rowHeight int
	logger    *slog.Logger

	// rows[:valid] hold current geometry; the rest must be re-measured.
	rows  []RowGeometry
	valid int

	views map[int]string
}

func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		overscan:  DefaultOverscan,
		rowHeight: 1,
		logger:    slog.New(slog.DiscardHandler),
		views:     make(map[int]string),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetRows replaces the row count and callbacks and drops all cached layout.
func (e *Engine) SetRows(count int, height HeightFunc, render RenderFunc) {
	if count < 0 {
		count = 0
	}
	e.count = count
	e.height = height
	e.render = render
	e.rows = make([]RowGeometry, count)
	e.valid = 0
	e.views = make(map[int]string)
}

// SetHeightFunc swaps the height function. Cached offsets stay until
// InvalidateFrom is called for the first row whose height changed.
func (e *Engine) SetHeightFunc(height HeightFunc) {
	e.height = height
}

// Len returns the number of rows.
func (e *Engine) Len() int {
	return e.count
}

// RowHeight returns the configured single-row height.
func (e *Engine) RowHeight() int {
	return e.rowHeight
}

// InvalidateFrom drops cached geometry and views for rows at or after index.
// The next Layout or window query re-measures them.
func (e *Engine) InvalidateFrom(index int) {
	if index < 0 {
		index = 0
	}
	if index < e.valid {
		e.valid = index
	}
	for i := range e.views {
		if i >= index {
			delete(e.views, i)
		}
	}
}

// RefreshRows drops cached views for the given rows without touching layout.
func (e *Engine) RefreshRows(indexes ...int) {
	for _, i := range indexes {
		delete(e.views, i)
	}
}

// RefreshViews drops every cached view without touching layout.
func (e *Engine) RefreshViews() {
	e.views = make(map[int]string)
}

// Pending reports whether some rows still need measuring.
func (e *Engine) Pending() bool {
	return e.valid < e.count
}

// Layout measures every row that is not current.
func (e *Engine) Layout() {
	e.measure(e.count)
}

// Metrics lays out all rows and reports them against the given viewport.
func (e *Engine) Metrics(top, viewportHeight int) Metrics {
	return Metrics{Top: top, ViewportHeight: viewportHeight, TotalHeight: e.TotalHeight()}
}

// TotalHeight returns the height of all rows together.
func (e *Engine) TotalHeight() int {
	if e.count == 0 {
		return 0
	}
	e.Layout()
	return e.rows[e.count-1].End()
}

// Geometry returns the geometry of the row at index.
func (e *Engine) Geometry(index int) (RowGeometry, bool) {
	if index < 0 || index >= e.count {
		return RowGeometry{}, false
	}
	e.measure(index + 1)
	return e.rows[index], true
}

// RowAt returns the row covering list line y.
func (e *Engine) RowAt(y int) (RowGeometry, bool) {
	if y < 0 || e.count == 0 {
		return RowGeometry{}, false
	}
	e.measureUntil(y + 1)
	i := sort.Search(e.valid, func(i int) bool { return e.rows[i].End() > y })
	if i >= e.valid {
		return RowGeometry{}, false
	}
	return e.rows[i], true
}

// Window returns the rows whose extent intersects the viewport widened by the
// overscan margin on both sides, in order.
func (e *Engine) Window(top, viewportHeight int) []RowGeometry {
	if e.count == 0 || viewportHeight <= 0 {
		return nil
	}

	margin := e.overscan * e.rowHeight
	lo, hi := top-margin, top+viewportHeight+margin

	e.measureUntil(hi)
	end := sort.Search(e.valid, func(i int) bool { return e.rows[i].Offset >= hi })
	start := sort.Search(end, func(i int) bool { return e.rows[i].End() > lo })

	window := make([]RowGeometry, end-start)
	copy(window, e.rows[start:end])
	return window
}

// Render materializes the window rows and returns the lines visible in
// [top, top+viewportHeight). Each row contributes exactly its measured height
// in lines, padded or cut as needed.
func (e *Engine) Render(top, viewportHeight int) string {
	window := e.Window(top, viewportHeight)
	if len(window) == 0 {
		return ""
	}

	bottom := top + viewportHeight
	lines := make([]string, 0, viewportHeight)
	for _, g := range window {
		view := e.view(g.Index)
		if g.End() <= top || g.Offset >= bottom {
			continue
		}
		rowLines := strings.Split(view, "\n")
		for j := 0; j < g.Height; j++ {
			y := g.Offset + j
			if y < top || y >= bottom {
				continue
			}
			if j < len(rowLines) {
				lines = append(lines, rowLines[j])
			} else {
				lines = append(lines, "")
			}
		}
	}
	return strings.Join(lines, "\n")
}

func (e *Engine) view(index int) string {
	if v, ok := e.views[index]; ok {
		return v
	}
	v := ""
	if e.render != nil {
		v = e.render(index)
	}
	e.views[index] = v
	return v
}

// measure makes rows[:upTo] current.
func (e *Engine) measure(upTo int) {
	if upTo > e.count {
		upTo = e.count
	}
	for i := e.valid; i < upTo; i++ {
		offset := 0
		if i > 0 {
			offset = e.rows[i-1].End()
		}
		e.rows[i] = RowGeometry{Index: i, Offset: offset, Height: e.heightOf(i)}
	}
	if upTo > e.valid {
		e.valid = upTo
	}
}

// measureUntil measures rows until one starts at or past y.
func (e *Engine) measureUntil(y int) {
	for e.valid < e.count {
		if e.valid > 0 && e.rows[e.valid-1].End() >= y {
			return
		}
		e.measure(e.valid + 1)
	}
}

func (e *Engine) heightOf(index int) int {
	h := 0
	if e.height != nil {
		h = e.height(index)
	}
	if h <= 0 {
		e.logger.Debug("non-positive row height, using default",
			"index", index, "height", h, "default", e.rowHeight)
		return e.rowHeight
	}
	return h
}
