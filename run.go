package glide

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures a windowed run of a Stage.
type RunConfig struct {
	Title         string
	Width, Height int
	ShowFPS       bool

	// Input polls Ebitengine for events. Nil creates one whose scroll range
	// is the surface layout's document height.
	Input *EbitenInput

	// ExitWhenDone stops the run once an attached TestRunner has finished.
	ExitWhenDone bool
}

// Run opens a window and drives stage until the window closes. The stage
// must have been created with an *EbitenSurface.
func Run(stage *Stage, cfg RunConfig) error {
	surface, ok := stage.ctx.Surface.(*EbitenSurface)
	if !ok {
		return fmt.Errorf("run: stage surface is %T, want *glide.EbitenSurface", stage.ctx.Surface)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("run: invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	in := cfg.Input
	if in == nil {
		in = NewEbitenInput()
	}
	if in.MaxScroll == nil && surface.layout != nil {
		layout := surface.layout
		in.MaxScroll = func() float64 {
			_, h := stage.ctx.Size()
			return max(0, layout.DocumentHeight()-h)
		}
	}
	surface.SetCursorGeometry(stage.ctx.Config.Cursor.CornerSize, stage.ctx.Config.Cursor.BorderWidth)

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(stage.ctx.Config.TPS)

	g := &game{stage: stage, surface: surface, input: in, cfg: cfg}
	if cfg.ShowFPS {
		g.fps = newFPSOverlay()
	}
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

// game adapts a Stage to ebiten.Game.
type game struct {
	stage   *Stage
	surface *EbitenSurface
	input   *EbitenInput
	cfg     RunConfig
	fps     *fpsOverlay
}

func (g *game) Update() error {
	dt := 1 / float64(ebiten.TPS())
	g.input.Poll(g.stage)
	g.stage.Update(dt)
	if g.fps != nil {
		g.fps.update(dt, g.stage.ctx.Scheduler.Active())
	}
	if g.cfg.ExitWhenDone && g.stage.runner != nil && g.stage.runner.Done() {
		return ebiten.Termination
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.stage.Draw()
	g.surface.Draw(screen, g.stage.ctx.Scroll.Y)
	if g.fps != nil {
		g.fps.draw(screen)
	}
	g.stage.flushScreenshots(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.input.Resize(g.stage, outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
