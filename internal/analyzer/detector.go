// Package analyzer finds drawn content in rendered frames and checks it
// against the margins that video platforms cover with their own UI.
package analyzer

import (
	"fmt"
	"image"
)

// Block is a detected region of content in a frame.
type Block struct {
	Rect       image.Rectangle
	Confidence float64 // 0.0-1.0
}

// Detector is the interface for image analysis strategies.
type Detector interface {
	Detect(img image.Image) ([]Block, error)
}

// NewDetector creates a detector based on the specified variant.
func NewDetector(variant string) (Detector, error) {
	switch variant {
	case "contrast", "":
		return NewContrastDetector(), nil
	default:
		return nil, fmt.Errorf("unknown detector variant: %s", variant)
	}
}
