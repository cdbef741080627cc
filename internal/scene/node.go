package scene

// Kind identifies a draw operation.
type Kind string

const (
	KindGroup Kind = "group"
	KindRect  Kind = "rect"
	KindText  Kind = "text"
	KindImage Kind = "image"
	KindGrid  Kind = "grid"
)

// Align is horizontal text alignment inside a node's box.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Box is an axis-aligned rectangle in canvas pixels.
type Box struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// Center returns the centre point of b.
func (b Box) Center() (float64, float64) {
	return b.X + b.W/2, b.Y + b.H/2
}

// Inset shrinks b by d on every side.
func (b Box) Inset(d float64) Box {
	return Box{X: b.X + d, Y: b.Y + d, W: b.W - 2*d, H: b.H - 2*d}
}

// Outset grows b by d on every side.
func (b Box) Outset(d float64) Box {
	return b.Inset(-d)
}

// Transform is applied about the centre of the node's box, after layout,
// and inherited by children. Opacity multiplies down the tree.
type Transform struct {
	TranslateX float64 `yaml:"translate_x,omitempty"`
	TranslateY float64 `yaml:"translate_y,omitempty"`
	Scale      float64 `yaml:"scale"`
	Opacity    float64 `yaml:"opacity"`
}

// Identity leaves a node where layout put it.
func Identity() Transform {
	return Transform{Scale: 1, Opacity: 1}
}

// Then composes t with an outer transform applied about the same origin.
func (t Transform) Then(outer Transform) Transform {
	return Transform{
		TranslateX: t.TranslateX*outer.Scale + outer.TranslateX,
		TranslateY: t.TranslateY*outer.Scale + outer.TranslateY,
		Scale:      t.Scale * outer.Scale,
		Opacity:    t.Opacity * outer.Opacity,
	}
}

// Font describes how a text node is set.
type Font struct {
	Family     string  `yaml:"family,omitempty"`
	Size       float64 `yaml:"size"`
	Weight     int     `yaml:"weight,omitempty"`
	Color      Color   `yaml:"color"`
	Align      Align   `yaml:"align,omitempty"`
	LineHeight float64 `yaml:"line_height,omitempty"`
}

// Grid is a boolean cell matrix drawn as rounded squares.
type Grid struct {
	Cols   int     `yaml:"cols"`
	Cells  []bool  `yaml:"cells,flow"`
	Gap    float64 `yaml:"gap,omitempty"`
	Radius float64 `yaml:"radius,omitempty"`
	Color  Color   `yaml:"color"`
}

// Rows returns the number of rows in g.
func (g Grid) Rows() int {
	if g.Cols <= 0 {
		return 0
	}
	return (len(g.Cells) + g.Cols - 1) / g.Cols
}

// Node is one element of a frame's draw tree. Nodes are plain data; the
// rasterizer is the only consumer that interprets them.
type Node struct {
	Kind      Kind      `yaml:"kind"`
	Name      string    `yaml:"name,omitempty"`
	Box       Box       `yaml:"box"`
	Transform Transform `yaml:"transform"`

	Fill        Color   `yaml:"fill,omitempty"`
	Radius      float64 `yaml:"radius,omitempty"`
	Border      float64 `yaml:"border,omitempty"`
	BorderColor Color   `yaml:"border_color,omitempty"`
	Blur        float64 `yaml:"blur,omitempty"`

	Text  string `yaml:"text,omitempty"`
	Font  *Font  `yaml:"font,omitempty"`
	Image string `yaml:"image,omitempty"`
	Grid  *Grid  `yaml:"grid,omitempty"`

	Children []Node `yaml:"children,omitempty"`
}

// Group wraps children in a box.
func Group(name string, box Box, children ...Node) Node {
	return Node{Kind: KindGroup, Name: name, Box: box, Transform: Identity(), Children: children}
}

// Rect is a filled rectangle.
func Rect(name string, box Box, fill Color) Node {
	return Node{Kind: KindRect, Name: name, Box: box, Transform: Identity(), Fill: fill}
}

// Text sets a single line of text inside box.
func Text(name string, box Box, text string, font Font) Node {
	return Node{Kind: KindText, Name: name, Box: box, Transform: Identity(), Text: text, Font: &font}
}

// Image draws the asset behind handle scaled into box.
func Image(name string, box Box, handle string) Node {
	return Node{Kind: KindImage, Name: name, Box: box, Transform: Identity(), Image: handle}
}

// GridOf draws g inside box.
func GridOf(name string, box Box, g Grid) Node {
	return Node{Kind: KindGrid, Name: name, Box: box, Transform: Identity(), Grid: &g}
}

// Translated offsets n by (dx, dy).
func (n Node) Translated(dx, dy float64) Node {
	n.Transform.TranslateX += dx
	n.Transform.TranslateY += dy
	return n
}

// Scaled multiplies n's scale by s.
func (n Node) Scaled(s float64) Node {
	n.Transform.Scale *= s
	return n
}

// Faded multiplies n's opacity by o.
func (n Node) Faded(o float64) Node {
	n.Transform.Opacity *= o
	return n
}

// WithTransform composes t on top of n's own transform.
func (n Node) WithTransform(t Transform) Node {
	n.Transform = n.Transform.Then(t)
	return n
}

func (n Node) Rounded(r float64) Node {
	n.Radius = r
	return n
}

func (n Node) Bordered(width float64, c Color) Node {
	n.Border = width
	n.BorderColor = c
	return n
}

func (n Node) Blurred(r float64) Node {
	n.Blur = r
	return n
}

// Walk visits n and its descendants depth-first until fn returns false.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for i := range n.Children {
		if !n.Children[i].Walk(fn) {
			return false
		}
	}
	return true
}

// Find returns the first node with the given name, or nil.
func (n *Node) Find(name string) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if c.Name == name {
			found = c
			return false
		}
		return true
	})
	return found
}

// Count returns the number of nodes of kind k in the tree.
func (n *Node) Count(k Kind) int {
	count := 0
	n.Walk(func(c *Node) bool {
		if c.Kind == k {
			count++
		}
		return true
	})
	return count
}
