package panel

import (
	"github.com/Faultbox/armillary/internal/engine/ui2d"
)

// View draws the open panel with ui2d.
type View struct {
	manager *Manager
	ctx     *ui2d.Context

	// Width is the panel width in pixels, clamped to the viewport.
	Width float32
}

// NewView creates a panel view.
func NewView(m *Manager, ctx *ui2d.Context) *View {
	return &View{manager: m, ctx: ctx, Width: 560}
}

// Render draws the open panel centered in the viewport. The Close button
// and the Escape key close it. Returns true when a panel was drawn.
func (v *View) Render() bool {
	id := v.manager.Current()
	if id == "" {
		return false
	}
	content, _ := v.manager.Content(id)

	if v.ctx.Input().KeyEscape {
		v.manager.Close(id)
		return false
	}

	screenW, screenH := v.ctx.GetScreenSize()
	w := v.Width
	if w > screenW-40 {
		w = screenW - 40
	}

	_, gh := v.ctx.Renderer().Font().GlyphSize()
	lineH := float32(gh) * ui2d.TextScale
	lines := 0
	for _, para := range content.Body {
		lines += len(ui2d.Wrap(para, v.columns(w))) + 1
	}
	h := 28 + 16 + float32(lines)*(lineH+4) + 60
	if h > screenH-40 {
		h = screenH - 40
	}
	x := (screenW - w) / 2
	y := (screenH - h) / 2

	v.ctx.BeginWindow("panel_"+id, x, y, w, h, content.Heading)
	for _, para := range content.Body {
		v.ctx.LabelWrapped(para, ui2d.ColorText)
		v.ctx.Spacer(lineH / 2)
	}
	v.ctx.Separator()
	v.ctx.Row(32)
	closed := v.ctx.Button("close", 120, "Close")
	v.ctx.EndWindow()

	if closed {
		v.manager.Close(id)
	}
	return true
}

func (v *View) columns(w float32) int {
	gw, _ := v.ctx.Renderer().Font().GlyphSize()
	return int((w - 16) / (float32(gw) * ui2d.TextScale))
}
