// Package fbdisplay provides an in-memory RGB565 display that the
// console can draw on through tinyterm, with ILI9341-style vertical
// scrolling. Window hosts render it each frame; tests inspect it
// directly.
package fbdisplay

import (
	"image/color"
	"sync"

	"tinygo.org/x/drivers"
)

// Display is a memory framebuffer in RGB565, two bytes per pixel,
// little endian. Methods are safe for concurrent use: the console
// draws from the poll loop while the frame loop snapshots pixels.
type Display struct {
	mu     sync.Mutex
	width  int
	height int
	stride int
	scroll int
	buf    []byte
}

// New returns a cleared width x height display.
func New(width, height int) *Display {
	d := &Display{
		width:  width,
		height: height,
		stride: width * 2,
	}
	d.buf = make([]byte, d.stride*height)
	return d
}

// Width reports the display width in pixels.
func (d *Display) Width() int { return d.width }

// Height reports the display height in pixels.
func (d *Display) Height() int { return d.height }

// Size reports the display dimensions.
func (d *Display) Size() (x, y int16) {
	return int16(d.width), int16(d.height)
}

// SetPixel writes one pixel. Out-of-bounds coordinates are ignored.
func (d *Display) SetPixel(x, y int16, c color.RGBA) {
	ix := int(x)
	iy := int(y)
	if ix < 0 || ix >= d.width || iy < 0 || iy >= d.height {
		return
	}

	pixel := rgb565From888(c.R, c.G, c.B)
	d.mu.Lock()
	off := iy*d.stride + ix*2
	d.buf[off] = byte(pixel)
	d.buf[off+1] = byte(pixel >> 8)
	d.mu.Unlock()
}

// Display is a no-op; the buffer is always current.
func (d *Display) Display() error { return nil }

// FillRectangle fills the rectangle, clamped to the display, with c.
func (d *Display) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	x0 := clampInt(int(x), 0, d.width)
	y0 := clampInt(int(y), 0, d.height)
	x1 := clampInt(int(x)+int(width), 0, d.width)
	y1 := clampInt(int(y)+int(height), 0, d.height)
	if x0 >= x1 || y0 >= y1 {
		return nil
	}

	pixel := rgb565From888(c.R, c.G, c.B)
	lo := byte(pixel)
	hi := byte(pixel >> 8)

	d.mu.Lock()
	for py := y0; py < y1; py++ {
		row := py * d.stride
		for px := x0; px < x1; px++ {
			off := row + px*2
			d.buf[off] = lo
			d.buf[off+1] = hi
		}
	}
	d.mu.Unlock()
	return nil
}

// SetScroll sets the vertical scroll start: the memory row mapped to
// the top of the visible area.
func (d *Display) SetScroll(line int16) {
	n := int(line)
	if d.height > 0 {
		n %= d.height
		if n < 0 {
			n += d.height
		}
	}
	d.mu.Lock()
	d.scroll = n
	d.mu.Unlock()
}

// SetRotation is accepted and ignored; the buffer layout is fixed.
func (d *Display) SetRotation(rotation drivers.Rotation) error {
	_ = rotation
	return nil
}

// PixelRGB565 reports the stored pixel at x, y in memory coordinates,
// before scroll is applied. Out-of-bounds coordinates report 0.
func (d *Display) PixelRGB565(x, y int) uint16 {
	if x < 0 || x >= d.width || y < 0 || y >= d.height {
		return 0
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	off := y*d.stride + x*2
	return uint16(d.buf[off]) | uint16(d.buf[off+1])<<8
}

// RenderRGBA converts the visible area, scroll applied, into dst as
// 8-bit RGBA, four bytes per pixel in row-major order. dst must hold
// width*height*4 bytes.
func (d *Display) RenderRGBA(dst []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for y := 0; y < d.height; y++ {
		src := ((y + d.scroll) % d.height) * d.stride
		for x := 0; x < d.width; x++ {
			off := src + x*2
			r, g, b := rgb888From565(uint16(d.buf[off]) | uint16(d.buf[off+1])<<8)
			j := (y*d.width + x) * 4
			dst[j+0] = r
			dst[j+1] = g
			dst[j+2] = b
			dst[j+3] = 0xFF
		}
	}
}

func rgb565From888(r, g, b uint8) uint16 {
	rr := uint16(r>>3) & 0x1F
	gg := uint16(g>>2) & 0x3F
	bb := uint16(b>>3) & 0x1F
	return (rr << 11) | (gg << 5) | bb
}

func rgb888From565(p uint16) (r, g, b uint8) {
	rr := (p >> 11) & 0x1F
	gg := (p >> 5) & 0x3F
	bb := p & 0x1F

	r = uint8((rr * 255) / 31)
	g = uint8((gg * 255) / 63)
	b = uint8((bb * 255) / 31)
	return r, g, b
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
