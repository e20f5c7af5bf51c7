package pricing

import "strings"

// Method is the physical production technique used to render a design
// element: transfer/digital methods price flat per size bucket, bulk
// methods price a base quantity plus per-piece overage.
type Method string

const (
	MethodDTF            Method = "dtf"
	MethodDTG            Method = "dtg"
	MethodScreenPrinting Method = "screen_printing"
	MethodEmbroidery     Method = "embroidery"
	MethodApplique       Method = "applique"
)

// legacyPrintingTag is the deprecated method value older stored designs
// carry; it always meant a DTF transfer.
const legacyPrintingTag = "printing"

// Methods returns every supported print method.
func Methods() []Method {
	return []Method{
		MethodDTF,
		MethodDTG,
		MethodScreenPrinting,
		MethodEmbroidery,
		MethodApplique,
	}
}

// NormalizeMethod resolves a stored method tag to the closed Method set.
// The legacy "printing" tag and any empty or unrecognized value map to dtf,
// so every object resolves to some price instead of blocking the user.
func NormalizeMethod(raw string) Method {
	tag := strings.ToLower(strings.TrimSpace(raw))
	switch Method(tag) {
	case MethodDTF, MethodDTG, MethodScreenPrinting, MethodEmbroidery, MethodApplique:
		return Method(tag)
	}
	if tag == legacyPrintingTag {
		return MethodDTF
	}
	return MethodDTF
}

// Tiered reports whether the method prices with a base quantity plus
// per-piece overage rather than a flat per-size price.
func (m Method) Tiered() bool {
	switch m {
	case MethodScreenPrinting, MethodEmbroidery, MethodApplique:
		return true
	}
	return false
}
