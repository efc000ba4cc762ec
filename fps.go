package glide

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsOverlay shows FPS, TPS and the registered ticker count in the top-left
// corner, refreshed every half second. A static page should read 0 tickers.
type fpsOverlay struct {
	img   *ebiten.Image
	since float64
	dirty bool
	text  string
}

func newFPSOverlay() *fpsOverlay {
	// 120x48 fits three lines of debug font.
	return &fpsOverlay{img: ebiten.NewImage(120, 48), dirty: true}
}

func (o *fpsOverlay) update(dt float64, tickers int) {
	o.since += dt
	if o.since < 0.5 && !o.dirty {
		return
	}
	o.since = 0
	o.dirty = true
	o.text = fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nTickers: %d", ebiten.ActualFPS(), ebiten.ActualTPS(), tickers)
}

func (o *fpsOverlay) draw(screen *ebiten.Image) {
	if o.dirty {
		o.img.Clear()
		o.img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(o.img, o.text)
		o.dirty = false
	}
	screen.DrawImage(o.img, nil)
}
