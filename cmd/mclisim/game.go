package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"mcli"
	"mcli/internal/device"
	"mcli/internal/fbdisplay"
	"mcli/transport/displayterm"
)

type game struct {
	fb   *fbdisplay.Display
	port *displayterm.Port
	eng  *mcli.Engine[device.Device]

	fbImg *ebiten.Image
	pix   []byte
	chars []rune
}

func (g *game) Update() error {
	g.chars = ebiten.AppendInputChars(g.chars[:0])
	for _, r := range g.chars {
		if r > 0 && r < 0x80 {
			g.port.FeedByte(byte(r))
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.port.FeedByte('\r')
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		g.port.FeedByte(0x7f)
	}

	g.eng.ProcessInput()
	g.port.Flush()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.fbImg == nil {
		g.fbImg = ebiten.NewImage(g.fb.Width(), g.fb.Height())
		g.pix = make([]byte, g.fb.Width()*g.fb.Height()*4)
	}

	g.fb.RenderRGBA(g.pix)
	g.fbImg.ReplacePixels(g.pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.fb.Width(), g.fb.Height()
}
