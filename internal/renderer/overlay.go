package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/colon-crab-colon/game/internal/gui"
)

const (
	overlayFontSize   = 12
	overlayLineHeight = overlayFontSize + 4
	overlayPadding    = 6
	overlayMargin     = 10
)

var panelBackground = rl.NewColor(0, 0, 0, 200)

// drawPanels paints the overlay blocks produced by the gui layer: each panel
// is a dark rectangle of text lines anchored to a screen corner.
func drawPanels(cmds gui.Commands) {
	screenW := int32(rl.GetScreenWidth())
	screenH := int32(rl.GetScreenHeight())

	for _, p := range cmds.Panels {
		if len(p.Lines) == 0 {
			continue
		}
		var maxW int32
		for _, line := range p.Lines {
			if w := rl.MeasureText(line, overlayFontSize); w > maxW {
				maxW = w
			}
		}
		w := maxW + 2*overlayPadding
		h := int32(len(p.Lines))*overlayLineHeight + 2*overlayPadding

		var x, y int32
		switch p.Anchor {
		case gui.AnchorTopLeft:
			x, y = overlayMargin, overlayMargin
		case gui.AnchorTopRight:
			x, y = screenW-w-overlayMargin, overlayMargin
		case gui.AnchorBottomLeft:
			x, y = overlayMargin, screenH-h-overlayMargin
		}

		rl.DrawRectangle(x, y, w, h, panelBackground)
		for i, line := range p.Lines {
			rl.DrawText(line, x+overlayPadding, y+overlayPadding+int32(i)*overlayLineHeight,
				overlayFontSize, rl.White)
		}
	}
}
