package canvas

// Kind discriminates the vector object types a user can place on a side.
type Kind string

const (
	KindImage Kind = "image"
	KindText  Kind = "text"
	KindShape Kind = "shape"
)

// MockupObjectID tags the reserved background image that renders the
// product itself. It is part of every designer document but is never user
// content and never priced.
const MockupObjectID = "product-mockup"

// Rect is a pixel-space bounding rectangle in canvas coordinates.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Object is one user-placed element on a side: a shape, a text run or an
// uploaded image. Method carries the raw print-method tag as stored by the
// designer; normalization to the closed method set happens in the pricing
// engine, never here.
type Object struct {
	ID       string `json:"id"`
	Kind     Kind   `json:"kind"`
	Bounds   Rect   `json:"bounds"`
	Fill     string `json:"fill,omitempty"`
	Stroke   string `json:"stroke,omitempty"`
	Method   string `json:"printMethod,omitempty"`
	Excluded bool   `json:"excludeFromExport,omitempty"`
}

// UserContent reports whether the object is user-added content eligible
// for pricing: not flagged non-exportable and not the product mockup.
func (o Object) UserContent() bool {
	return !o.Excluded && o.ID != MockupObjectID
}

// Side is one printable face of a product (front, back, sleeve). WidthMM
// and HeightMM come from product configuration and may be zero when the
// product metadata is incomplete; consumers fall back to a fixed
// pixel-to-millimeter ratio in that case.
type Side struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	PrintArea   Rect              `json:"printArea"`
	WidthMM     float64           `json:"widthMM,omitempty"`
	HeightMM    float64           `json:"heightMM,omitempty"`
	LayerColors map[string]string `json:"layerColors,omitempty"`
	Objects     []Object          `json:"objects"`
}

// Design is an immutable snapshot of a designer document. Version changes
// whenever the user edits the canvas; it keys memoized pricing results.
type Design struct {
	ID        string `json:"id"`
	ProductID string `json:"productId,omitempty"`
	Version   int64  `json:"version"`
	Sides     []Side `json:"sides"`
}
