package capture

import (
	"bytes"
	"image/png"

	"github.com/corona10/goimagehash"
)

// Verdict is the pairwise comparison result for two consecutive captures.
type Verdict struct {
	SamePage   bool
	Confidence float64
}

// Detector decides whether two page captures show the same page. It uses a
// difference hash as a cheap structural proxy rather than full pixel
// comparison; the hash distance over 64 bits maps onto a [0,1] confidence.
type Detector struct {
	Threshold float64
}

// NewDetector builds a detector with the given same-page threshold.
func NewDetector(threshold float64) *Detector {
	return &Detector{Threshold: threshold}
}

// Compare reports whether a and b are the same page. Any measurement failure
// (undecodable image) yields a "different page" verdict so capture never
// terminates early on a bad frame.
func (d *Detector) Compare(a, b []byte) Verdict {
	if bytes.Equal(a, b) {
		return Verdict{SamePage: true, Confidence: 1}
	}

	hashA, ok := hashPNG(a)
	if !ok {
		return Verdict{}
	}
	hashB, ok := hashPNG(b)
	if !ok {
		return Verdict{}
	}

	distance, err := hashA.Distance(hashB)
	if err != nil {
		return Verdict{}
	}
	confidence := 1 - float64(distance)/64
	return Verdict{SamePage: confidence >= d.Threshold, Confidence: confidence}
}

func hashPNG(data []byte) (*goimagehash.ImageHash, bool) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, false
	}
	hash, err := goimagehash.DifferenceHash(img)
	if err != nil {
		return nil, false
	}
	return hash, true
}
