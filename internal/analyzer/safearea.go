package analyzer

import (
	"image"
	"math"
)

// Margins are the fractions of each frame edge that a platform covers with
// its own UI.
type Margins struct {
	Top, Bottom, Left, Right float64
}

var (
	// VerticalMargins: short-video players put captions and the channel
	// line at the bottom and the action buttons down the right edge.
	VerticalMargins = Margins{Top: 0.07, Bottom: 0.2, Left: 0.05, Right: 0.12}
	// LandscapeMargins is the classic 5% title-safe area.
	LandscapeMargins = Margins{Top: 0.05, Bottom: 0.05, Left: 0.05, Right: 0.05}
)

// MarginsFor picks the margins for a frame's orientation.
func MarginsFor(width, height int) Margins {
	if height > width {
		return VerticalMargins
	}
	return LandscapeMargins
}

// SafeRect is the part of bounds not covered by the margins.
func (m Margins) SafeRect(bounds image.Rectangle) image.Rectangle {
	w, h := float64(bounds.Dx()), float64(bounds.Dy())
	return image.Rect(
		bounds.Min.X+int(math.Round(m.Left*w)),
		bounds.Min.Y+int(math.Round(m.Top*h)),
		bounds.Max.X-int(math.Round(m.Right*w)),
		bounds.Max.Y-int(math.Round(m.Bottom*h)),
	)
}

// Violation is a block reaching into one or more margins.
type Violation struct {
	Block Block
	Edges []string // top, bottom, left, right
}

// Check lists the blocks that leave safe.
func Check(blocks []Block, safe image.Rectangle) []Violation {
	var out []Violation
	for _, b := range blocks {
		var edges []string
		if b.Rect.Min.Y < safe.Min.Y {
			edges = append(edges, "top")
		}
		if b.Rect.Max.Y > safe.Max.Y {
			edges = append(edges, "bottom")
		}
		if b.Rect.Min.X < safe.Min.X {
			edges = append(edges, "left")
		}
		if b.Rect.Max.X > safe.Max.X {
			edges = append(edges, "right")
		}
		if len(edges) > 0 {
			out = append(out, Violation{Block: b, Edges: edges})
		}
	}
	return out
}

// CheckFrame detects content in img and checks it against m.
func CheckFrame(det Detector, img image.Image, m Margins) ([]Violation, error) {
	blocks, err := det.Detect(img)
	if err != nil {
		return nil, err
	}
	return Check(blocks, m.SafeRect(img.Bounds())), nil
}
