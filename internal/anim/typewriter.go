package anim

import "unicode/utf8"

// CursorPeriod is the blink period, in frames, once typing completes.
const CursorPeriod = 16

var cursorBlink = MustTable(
	[]float64{0, CursorPeriod / 2, CursorPeriod},
	[]float64{1, 0, 1},
)

// TypewriterState is the visible part of a typewriter reveal at one frame.
type TypewriterState struct {
	VisibleText string
	Typed       int
	Complete    bool
	// ShowCursor is false when the caller disabled the cursor.
	ShowCursor    bool
	CursorOpacity float64
}

// Typewriter reveals one rune of text every charFrames frames. Frame 0 shows
// nothing. charFrames below 1 is treated as 1.
func Typewriter(text string, frame, charFrames int, showCursor bool) TypewriterState {
	if charFrames < 1 {
		charFrames = 1
	}

	total := utf8.RuneCountInString(text)
	typed := 0
	if frame > 0 {
		typed = frame / charFrames
	}
	if typed > total {
		typed = total
	}

	st := TypewriterState{
		VisibleText: prefix(text, typed),
		Typed:       typed,
		Complete:    frame >= 0 && frame/charFrames >= total,
		ShowCursor:  showCursor,
	}
	if !showCursor {
		return st
	}

	st.CursorOpacity = 1
	if st.Complete {
		phase := frame % CursorPeriod
		if phase < 0 {
			phase += CursorPeriod
		}
		st.CursorOpacity = cursorBlink.At(float64(phase), Clamped())
	}
	return st
}

// prefix returns the first n runes of s.
func prefix(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
