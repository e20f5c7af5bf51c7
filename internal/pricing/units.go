package pricing

// DefaultMMPerPixel is the fallback pixel-to-millimeter ratio applied when
// a print area's real-world width is not configured on the product.
const DefaultMMPerPixel = 0.25

// Ruler converts between canvas pixels and physical millimeters for one
// print area.
type Ruler struct {
	mmPerPixel float64
}

// NewRuler derives the conversion ratio from the print area's width in
// canvas pixels and its configured real-world width in millimeters. When
// either is missing or non-positive the ruler falls back to
// DefaultMMPerPixel: the result feeds a cost estimate, not a manufacturing
// instruction, so incomplete product metadata degrades instead of failing.
func NewRuler(canvasWidthPx, realWidthMM float64) Ruler {
	if canvasWidthPx <= 0 || realWidthMM <= 0 {
		return Ruler{mmPerPixel: DefaultMMPerPixel}
	}
	return Ruler{mmPerPixel: realWidthMM / canvasWidthPx}
}

// ToMM converts a pixel measurement to millimeters.
func (r Ruler) ToMM(px float64) float64 {
	return px * r.mmPerPixel
}

// ToPixels converts a millimeter measurement back to canvas pixels.
func (r Ruler) ToPixels(mm float64) float64 {
	return mm / r.mmPerPixel
}
