// mclisim runs the console against a simulated pixel display in a
// desktop window, the same rendering path a handheld build uses, so
// display-side behavior can be exercised without hardware.
package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"mcli"
	"mcli/internal/buildinfo"
	"mcli/internal/device"
	"mcli/internal/fbdisplay"
	"mcli/transport/displayterm"
)

func main() {
	width := flag.Int("width", 320, "display width in pixels")
	height := flag.Int("height", 240, "display height in pixels")
	flag.Parse()

	fb := fbdisplay.New(*width, *height)
	port := displayterm.New(fb, displayterm.Config{})
	dev := device.New(port)
	eng := mcli.New(port, dev, device.Commands())

	g := &game{fb: fb, port: port, eng: eng}
	ebiten.SetWindowTitle("mcli (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(fb.Width()*2, fb.Height()*2)
	ebiten.SetTPS(60)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
