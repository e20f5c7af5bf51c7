package pricing

// Size is a discrete print-size bucket used for pricing tiers.
type Size string

const (
	Size10x10 Size = "10x10"
	SizeA4    Size = "A4"
	SizeA3    Size = "A3"
)

// Bucket dimensions in millimeters, portrait orientation, smallest first.
var buckets = []struct {
	size     Size
	widthMM  float64
	heightMM float64
}{
	{Size10x10, 100, 100},
	{SizeA4, 210, 297},
	{SizeA3, 297, 420},
}

// Sizes returns every print-size bucket, smallest first.
func Sizes() []Size {
	return []Size{Size10x10, SizeA4, SizeA3}
}

// BucketFor returns the smallest bucket that contains a widthMM×heightMM
// bounding box. Orientation does not matter: both the box and the bucket
// are compared portrait-normalized, so a 250×100 strip still fits A4.
// Boxes larger than A3 clamp to A3 and report clamped=true; the estimate
// is informational, oversized designs are not rejected here.
func BucketFor(widthMM, heightMM float64) (size Size, clamped bool) {
	w, h := widthMM, heightMM
	if w > h {
		w, h = h, w
	}
	for _, b := range buckets {
		if w <= b.widthMM && h <= b.heightMM {
			return b.size, false
		}
	}
	return SizeA3, true
}
