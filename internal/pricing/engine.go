package pricing

import (
	"fmt"
	"hash/fnv"
	"math"
	"sort"

	"go.uber.org/zap"

	"podpricer/internal/canvas"
)

// Summary is the aggregation result for one design at one order quantity:
// a per-side breakdown plus the grand total additional charge. Totals are
// whole currency units, rounded half-up at assembly; nothing is rounded
// mid-calculation.
type Summary struct {
	DesignID string        `json:"designId"`
	Quantity int           `json:"quantity"`
	Currency string        `json:"currency"`
	Sides    []SideSummary `json:"sides"`
	Total    int64         `json:"total"`
}

// SideSummary prices one printable face. HasObjects distinguishes "no
// design on this side" from "a zero-cost design"; callers render both.
type SideSummary struct {
	SideID          string          `json:"sideId"`
	Name            string          `json:"name"`
	HasObjects      bool            `json:"hasObjects"`
	AdditionalPrice int64           `json:"additionalPrice"`
	Objects         []ObjectPricing `json:"objects,omitempty"`
}

// ObjectPricing is the per-object breakdown entry. Clamped reports that
// the object exceeded the largest bucket and was priced as A3.
type ObjectPricing struct {
	ObjectID string  `json:"objectId"`
	Method   Method  `json:"method"`
	Size     Size    `json:"size"`
	WidthMM  float64 `json:"widthMM"`
	HeightMM float64 `json:"heightMM"`
	Clamped  bool    `json:"clamped,omitempty"`
	Price    int64   `json:"price"`
}

// Engine computes print-pricing summaries for canvas designs. It is a pure
// computation over the snapshot it is handed: no state, no I/O, safe for
// concurrent use.
type Engine struct {
	table  *Table
	logger *zap.Logger
}

// NewEngine validates the price table and returns an engine bound to it.
// An incomplete table is the one hard failure in this package; every
// malformed per-object input afterwards degrades to a documented fallback.
func NewEngine(table *Table, logger *zap.Logger) (*Engine, error) {
	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("price table: %w", err)
	}
	return &Engine{table: table, logger: logger}, nil
}

// Table returns the price table the engine was built with.
func (e *Engine) Table() *Table {
	return e.table
}

// Quote prices every eligible object across the design's sides at the
// given order quantity. Objects flagged non-exportable and the product
// mockup never contribute; a side without eligible objects still gets an
// entry with HasObjects=false and a zero price.
func (e *Engine) Quote(design canvas.Design, quantity int) Summary {
	summary := Summary{
		DesignID: design.ID,
		Quantity: quantity,
		Currency: e.table.Currency,
		Sides:    make([]SideSummary, 0, len(design.Sides)),
	}

	var total float64
	for _, side := range design.Sides {
		sideSummary, sideTotal := e.quoteSide(side, quantity)
		summary.Sides = append(summary.Sides, sideSummary)
		total += sideTotal
	}

	summary.Total = roundHalfUp(total)
	return summary
}

func (e *Engine) quoteSide(side canvas.Side, quantity int) (SideSummary, float64) {
	ruler := NewRuler(side.PrintArea.Width, side.WidthMM)

	sideSummary := SideSummary{
		SideID: side.ID,
		Name:   side.Name,
	}

	var sideTotal float64
	for _, obj := range side.Objects {
		if !obj.UserContent() {
			continue
		}

		widthMM := ruler.ToMM(obj.Bounds.Width)
		heightMM := ruler.ToMM(obj.Bounds.Height)
		size, clamped := BucketFor(widthMM, heightMM)
		method := NormalizeMethod(obj.Method)

		price := e.table.Price(method, size, quantity)
		if clamped {
			e.logger.Debug("object exceeds largest print size, clamped to A3",
				zap.String("design_side", side.ID),
				zap.String("object_id", obj.ID),
				zap.Float64("width_mm", widthMM),
				zap.Float64("height_mm", heightMM))
		}

		sideSummary.HasObjects = true
		sideSummary.Objects = append(sideSummary.Objects, ObjectPricing{
			ObjectID: obj.ID,
			Method:   method,
			Size:     size,
			WidthMM:  widthMM,
			HeightMM: heightMM,
			Clamped:  clamped,
			Price:    roundHalfUp(price),
		})
		sideTotal += price
	}

	if sideTotal < 0 {
		sideTotal = 0
	}
	sideSummary.AdditionalPrice = roundHalfUp(sideTotal)
	return sideSummary, sideTotal
}

// CacheKey builds the memoization key for a quote: design version, the
// per-object print-method assignments, and the order quantity. Any edit
// that changes one of those changes the key.
func CacheKey(design canvas.Design, quantity int) string {
	assignments := make([]string, 0, 16)
	for _, side := range design.Sides {
		for _, obj := range side.Objects {
			if !obj.UserContent() {
				continue
			}
			assignments = append(assignments,
				side.ID+"/"+obj.ID+"="+string(NormalizeMethod(obj.Method)))
		}
	}
	sort.Strings(assignments)

	h := fnv.New64a()
	for _, a := range assignments {
		h.Write([]byte(a))
		h.Write([]byte{0})
	}

	return fmt.Sprintf("quote:%s:v%d:%x:q%d", design.ID, design.Version, h.Sum64(), quantity)
}

// roundHalfUp rounds to the nearest whole currency unit, halves away from
// zero on the positive axis (prices are never negative by this point).
func roundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}
