package scene

import "unicode"

// Item is one child of a stacked layout. Margin is the space before it on
// the stacking axis.
type Item struct {
	W, H   float64
	Margin float64
	Build  func(Box) Node
}

// Block is an Item built from a fixed node factory.
func Block(w, h, margin float64, build func(Box) Node) Item {
	return Item{W: w, H: h, Margin: margin, Build: build}
}

// VStack centres items as a column inside area.
func VStack(area Box, items ...Item) []Node {
	total := 0.0
	for i, it := range items {
		if i > 0 {
			total += it.Margin
		}
		total += it.H
	}

	y := area.Y + (area.H-total)/2
	nodes := make([]Node, 0, len(items))
	for i, it := range items {
		if i > 0 {
			y += it.Margin
		}
		box := Box{X: area.X + (area.W-it.W)/2, Y: y, W: it.W, H: it.H}
		nodes = append(nodes, it.Build(box))
		y += it.H
	}
	return nodes
}

// HStack centres items as a row inside area, each vertically centred.
func HStack(area Box, items ...Item) []Node {
	total := 0.0
	for i, it := range items {
		if i > 0 {
			total += it.Margin
		}
		total += it.W
	}

	x := area.X + (area.W-total)/2
	nodes := make([]Node, 0, len(items))
	for i, it := range items {
		if i > 0 {
			x += it.Margin
		}
		box := Box{X: x, Y: area.Y + (area.H-it.H)/2, W: it.W, H: it.H}
		nodes = append(nodes, it.Build(box))
		x += it.W
	}
	return nodes
}

// StackSize returns the bounding size of items laid out on one axis.
func StackSize(vertical bool, items ...Item) (w, h float64) {
	for i, it := range items {
		main, cross := it.H, it.W
		if !vertical {
			main, cross = it.W, it.H
		}
		if i > 0 {
			main += it.Margin
		}
		if vertical {
			h += main
			if cross > w {
				w = cross
			}
		} else {
			w += main
			if cross > h {
				h = cross
			}
		}
	}
	return w, h
}

// MeasureText estimates the advance width of s at the given size. Wide
// (CJK, emoji) runes take a full em, everything else about 0.6 em. Layout
// uses the estimate; the rasterizer centres text inside the resulting box.
func MeasureText(s string, size float64) float64 {
	w := 0.0
	for _, r := range s {
		if isWide(r) {
			w += size
		} else {
			w += size * 0.6
		}
	}
	return w
}

func isWide(r rune) bool {
	switch {
	case r >= 0x1100 && r <= 0x115F,
		r >= 0x2E80 && r <= 0xA4CF,
		r >= 0xAC00 && r <= 0xD7A3,
		r >= 0xF900 && r <= 0xFAFF,
		r >= 0xFE30 && r <= 0xFE4F,
		r >= 0xFF00 && r <= 0xFF60,
		r >= 0x1F300 && r <= 0x1FAFF,
		r == 0x2728:
		return true
	}
	return unicode.Is(unicode.Han, r)
}
