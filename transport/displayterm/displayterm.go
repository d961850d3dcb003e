// Package displayterm renders the console on a pixel display through
// tinyterm, for hosts whose "serial port" is a screen plus a keyboard.
// The host queues keystrokes with Feed, polls the engine as usual, and
// calls Flush once per frame to push drawn changes to the display.
package displayterm

import (
	"errors"
	"image/color"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
	"tinygo.org/x/tinyterm"

	"mcli"
)

// ErrNoData reports an empty input queue.
var ErrNoData = errors.New("displayterm: no input queued")

// Config parameterizes the rendered terminal.
type Config struct {
	// Font used for glyph rendering; nil selects proggy.TinySZ8pt7b.
	Font *tinyfont.Font

	// FontHeight and FontOffset are the line height and baseline
	// offset in pixels; zero selects values matching the default font.
	FontHeight int16
	FontOffset int16
}

var black = color.RGBA{A: 255}

// Port drives a tinyterm console as an engine port. It is not safe
// for concurrent use; feed keystrokes and poll from the same loop.
type Port struct {
	display tinyterm.Displayer
	term    *tinyterm.Terminal
	cfg     tinyterm.Config
	rx      ring
	dirty   bool
}

var (
	_ mcli.Port       = (*Port)(nil)
	_ mcli.BulkWriter = (*Port)(nil)
	_ mcli.Terminal   = (*Port)(nil)
	_ mcli.Flusher    = (*Port)(nil)
)

// New builds a Port drawing on display.
func New(display tinyterm.Displayer, cfg Config) *Port {
	font := cfg.Font
	if font == nil {
		font = &proggy.TinySZ8pt7b
	}
	fontHeight := cfg.FontHeight
	if fontHeight == 0 {
		fontHeight = 10
	}
	fontOffset := cfg.FontOffset
	if fontOffset == 0 {
		fontOffset = 6
	}

	p := &Port{
		display: display,
		cfg: tinyterm.Config{
			Font:       font,
			FontHeight: fontHeight,
			FontOffset: fontOffset,
		},
	}
	p.reset()
	return p
}

// reset blanks the display and starts a fresh terminal at the top.
func (p *Port) reset() {
	w, h := p.display.Size()
	_ = p.display.FillRectangle(0, 0, w, h, black)
	p.term = tinyterm.NewTerminal(p.display)
	p.term.Configure(&p.cfg)
	p.dirty = true
}

// Feed queues input bytes for the engine. Bytes beyond the queue
// capacity are dropped, like a UART FIFO overrun.
func (p *Port) Feed(data []byte) {
	for _, b := range data {
		p.rx.push(b)
	}
}

// FeedByte queues one input byte, reporting false on overrun.
func (p *Port) FeedByte(b byte) bool { return p.rx.push(b) }

// Buffered reports how many fed bytes await the engine.
func (p *Port) Buffered() int { return p.rx.len() }

// ReadByte pops one queued input byte.
func (p *Port) ReadByte() (byte, error) {
	b, ok := p.rx.pop()
	if !ok {
		return 0, ErrNoData
	}
	return b, nil
}

// WriteByte draws one output byte.
func (p *Port) WriteByte(b byte) error {
	var buf [1]byte
	buf[0] = b
	_, _ = p.term.Write(buf[:])
	p.dirty = true
	return nil
}

// WriteBytes draws a run of output bytes.
func (p *Port) WriteBytes(data []byte) {
	if len(data) == 0 {
		return
	}
	_, _ = p.term.Write(data)
	p.dirty = true
}

// SendPrompt draws the prompt, ANSI attributes included.
func (p *Port) SendPrompt(prompt string) {
	p.WriteBytes([]byte(prompt))
}

// SendBackspace erases the cell left of the cursor. tinyterm does not
// interpret 0x08, so this backs up with CSI D, overwrites with a
// space, and backs up again.
func (p *Port) SendBackspace() {
	p.WriteBytes([]byte("\x1b[D \x1b[D"))
}

// ClearScreen blanks the display and homes the cursor.
func (p *Port) ClearScreen() { p.reset() }

// Flush refreshes the display when something was drawn since the last
// call. Hosts call it once per frame.
func (p *Port) Flush() {
	if !p.dirty {
		return
	}
	p.display.Display()
	p.dirty = false
}
