package anim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypewriterReveal(t *testing.T) {
	tests := []struct {
		frame int
		want  string
	}{
		{-4, ""},
		{0, ""},
		{1, ""},
		{2, "A"},
		{3, "A"},
		{4, "AB"},
		{6, "ABC"},
		{100, "ABC"},
	}

	for _, tt := range tests {
		st := Typewriter("ABC", tt.frame, 2, true)
		assert.Equal(t, tt.want, st.VisibleText, "frame %d", tt.frame)
	}
}

func TestTypewriterRunes(t *testing.T) {
	st := Typewriter("支援したいけど...", 9, 3, true)
	assert.Equal(t, "支援し", st.VisibleText)
	assert.Equal(t, 3, st.Typed)
	assert.False(t, st.Complete)
}

func TestTypewriterCursor(t *testing.T) {
	typing := Typewriter("ABC", 3, 2, true)
	assert.True(t, typing.ShowCursor)
	assert.Equal(t, 1.0, typing.CursorOpacity, "solid while typing")

	// Fully revealed from frame 6 on; blink follows frame mod 16.
	assert.Equal(t, 1.0, Typewriter("ABC", 16, 2, true).CursorOpacity)
	assert.Equal(t, 0.0, Typewriter("ABC", 24, 2, true).CursorOpacity)
	assert.Equal(t, 1.0, Typewriter("ABC", 32, 2, true).CursorOpacity)
	assert.InDelta(t, 0.5, Typewriter("ABC", 20, 2, true).CursorOpacity, 1e-12)

	hidden := Typewriter("ABC", 24, 2, false)
	assert.False(t, hidden.ShowCursor)
	assert.Equal(t, 0.0, hidden.CursorOpacity)
	assert.Equal(t, "ABC", hidden.VisibleText)
}

func TestTypewriterDegenerateInput(t *testing.T) {
	st := Typewriter("", 0, 2, true)
	assert.Equal(t, "", st.VisibleText)
	assert.True(t, st.Complete)

	st = Typewriter("AB", 1, 0, false)
	assert.Equal(t, "A", st.VisibleText, "charFrames below 1 reveals one rune per frame")
}

func TestTypewriterIsPure(t *testing.T) {
	for f := 0; f < 40; f++ {
		assert.Equal(t, Typewriter("スキャンするだけ!", f, 2, false), Typewriter("スキャンするだけ!", f, 2, false))
	}
}
