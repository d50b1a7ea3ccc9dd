package ui2d

import (
	"fmt"
	"strings"
)

// TextScale is the glyph scale used by widgets.
const TextScale = float32(2.0)

const (
	titleBarH = float32(28)
	padding   = float32(8)
)

// Context is the main UI context that manages rendering and input.
type Context struct {
	renderer *Renderer
	input    *InputState

	// Active/hot widget tracking for interaction
	hotWidget    string
	activeWidget string

	// Current window being drawn
	currentWindow *WindowState

	// Layout state
	cursorX float32
	cursorY float32
	rowH    float32
}

// WindowState holds state for a UI window.
type WindowState struct {
	ID   string
	X, Y float32
	W, H float32
}

// NewContext creates a new UI context backed by a GL renderer.
func NewContext(width, height int) (*Context, error) {
	r, err := New(width, height)
	if err != nil {
		return nil, fmt.Errorf("create renderer: %w", err)
	}
	return newContext(r), nil
}

// NewHeadlessContext creates a UI context that records draw lists only.
func NewHeadlessContext(width, height int) *Context {
	return newContext(NewHeadless(width, height))
}

func newContext(r *Renderer) *Context {
	return &Context{
		renderer: r,
		input:    &InputState{},
	}
}

// Close releases resources.
func (c *Context) Close() {
	if c.renderer != nil {
		c.renderer.Close()
	}
}

// Renderer returns the underlying renderer.
func (c *Context) Renderer() *Renderer {
	return c.renderer
}

// Resize updates the screen size.
func (c *Context) Resize(width, height int) {
	c.renderer.Resize(width, height)
}

// Input returns the input state for modification.
func (c *Context) Input() *InputState {
	return c.input
}

// Begin starts a new UI frame.
func (c *Context) Begin() {
	c.input.Update()
	c.renderer.Begin()
	c.hotWidget = ""
}

// End finishes the UI frame.
func (c *Context) End() {
	c.renderer.End()
	c.input.EndFrame()
}

// WantsPointer reports whether the pointer is over a window drawn this
// frame or a widget is being pressed.
func (c *Context) WantsPointer() bool {
	return c.hotWidget != "" || c.activeWidget != ""
}

// BeginWindow starts a new window with a title bar.
func (c *Context) BeginWindow(id string, x, y, w, h float32, title string) {
	ws := &WindowState{ID: id, X: x, Y: y, W: w, H: h}
	c.currentWindow = ws

	if c.input.IsMouseInRect(x, y, w, h) {
		c.hotWidget = id
	}

	c.renderer.DrawPanel(x, y, w, h, ColorPanelBg, ColorPanelBorder)
	c.renderer.DrawRect(x+1, y+1, w-2, titleBarH-1, ColorButtonNormal)

	_, textH := c.renderer.MeasureText(title, TextScale)
	c.renderer.DrawText(x+padding, y+(titleBarH-textH)/2, title, TextScale, ColorHighlight)

	c.cursorX = x + padding
	c.cursorY = y + titleBarH + padding
	c.rowH = 0
}

// EndWindow ends the current window.
func (c *Context) EndWindow() {
	c.currentWindow = nil
}

// Row starts a new row with the given height.
func (c *Context) Row(height float32) {
	if c.currentWindow == nil {
		return
	}
	c.cursorX = c.currentWindow.X + padding
	c.cursorY += c.rowH + 4
	c.rowH = height
}

// Button draws a button and returns true if clicked.
func (c *Context) Button(id string, width float32, label string) bool {
	if c.currentWindow == nil {
		return false
	}

	x := c.cursorX
	y := c.cursorY
	h := c.rowH
	if h == 0 {
		h = 28
	}
	if width == 0 {
		width = c.currentWindow.W - padding*2
	}

	fullID := c.currentWindow.ID + "_" + id
	rect := Rect{x, y, width, h}

	// Click on press for responsiveness
	hovered := rect.Contains(c.input.MouseX, c.input.MouseY)
	clicked := false
	if hovered {
		c.hotWidget = fullID
		if c.input.MouseLeftPressed || c.input.MouseLeftClicked {
			c.activeWidget = fullID
			c.input.MouseLeftClicked = false
			clicked = true
		}
	}

	if c.activeWidget == fullID && !c.input.MouseLeftDown {
		c.activeWidget = ""
	}

	color := ColorButtonNormal
	if c.activeWidget == fullID {
		color = ColorButtonActive
	} else if hovered {
		color = ColorButtonHover
	}

	c.renderer.DrawRect(x, y, width, h, color)
	c.renderer.DrawRectOutline(x, y, width, h, 1, ColorPanelBorder)

	textW, textH := c.renderer.MeasureText(label, TextScale)
	c.renderer.DrawText(x+(width-textW)/2, y+(h-textH)/2, label, TextScale, ColorText)

	c.cursorX += width + 4
	return clicked
}

// Label draws a text label.
func (c *Context) Label(text string) {
	c.LabelColored(text, ColorText)
}

// LabelColored draws a text label with a specific color.
func (c *Context) LabelColored(text string, color Color) {
	if c.currentWindow == nil {
		return
	}
	c.renderer.DrawText(c.cursorX, c.cursorY, text, TextScale, color)

	w, _ := c.renderer.MeasureText(text, TextScale)
	c.cursorX += w + 4
}

// LabelCentered draws centered text.
func (c *Context) LabelCentered(text string) {
	if c.currentWindow == nil {
		return
	}

	textW, _ := c.renderer.MeasureText(text, TextScale)
	contentW := c.currentWindow.W - padding*2
	x := c.currentWindow.X + padding + (contentW-textW)/2
	if x < c.currentWindow.X+padding {
		x = c.currentWindow.X + padding
	}
	c.renderer.DrawText(x, c.cursorY, text, TextScale, ColorText)
}

// LabelWrapped draws text word-wrapped to the window's content width and
// returns the number of lines drawn. Each line occupies its own row.
func (c *Context) LabelWrapped(text string, color Color) int {
	if c.currentWindow == nil {
		return 0
	}
	gw, gh := c.renderer.Font().GlyphSize()
	maxCols := int((c.currentWindow.W - padding*2) / (float32(gw) * TextScale))
	lines := Wrap(text, maxCols)
	for _, line := range lines {
		c.Row(float32(gh) * TextScale)
		c.LabelColored(line, color)
	}
	return len(lines)
}

// Spacer adds vertical space.
func (c *Context) Spacer(height float32) {
	c.cursorY += height
}

// Separator draws a horizontal separator line.
func (c *Context) Separator() {
	if c.currentWindow == nil {
		return
	}
	c.cursorY += c.rowH + 4
	c.rowH = 0
	x := c.currentWindow.X + padding
	w := c.currentWindow.W - padding*2
	c.renderer.DrawRect(x, c.cursorY, w, 1, ColorPanelBorder)
	c.cursorY += padding
	c.cursorX = x
}

// GetScreenSize returns the current screen dimensions.
func (c *Context) GetScreenSize() (float32, float32) {
	w, h := c.renderer.GetScreenSize()
	return float32(w), float32(h)
}

// Wrap splits text into lines of at most cols characters, breaking at
// spaces. Explicit newlines are kept; words longer than cols are split.
func Wrap(text string, cols int) []string {
	if cols < 1 {
		cols = 1
	}
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := ""
		for _, w := range words {
			for len(w) > cols {
				if line != "" {
					lines = append(lines, line)
					line = ""
				}
				lines = append(lines, w[:cols])
				w = w[cols:]
			}
			switch {
			case line == "":
				line = w
			case len(line)+1+len(w) <= cols:
				line += " " + w
			default:
				lines = append(lines, line)
				line = w
			}
		}
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// Rect is a simple rectangle struct.
type Rect struct {
	X, Y, W, H float32
}

// Contains checks if a point is inside the rectangle.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}
