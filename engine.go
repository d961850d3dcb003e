package mcli

// Handler runs one parsed command. Handlers receive the argument
// vector by value and the application context the engine was built
// with; they report their own failures through the session's Port.
type Handler[T any] func(args Args, ctx *T)

// Command binds a name to a handler in the engine's static table.
type Command[T any] struct {
	Name string // matched case-sensitively; first match wins
	Run  Handler[T]
	Help string // one line, shown by the built-in help command
}

// readChunk bounds how many bytes one ProcessInput call drains.
const readChunk = 32

// Engine drives one command-line session over a Port.
//
// One engine serves one logical input stream. A command table is never
// mutated by the engine and may be shared read-only between engines,
// each owning its own Port and session state.
type Engine[T any] struct {
	port     Port
	ctx      *T
	commands []Command[T]
	prompt   string

	buf        [CmdBufSize]byte
	pos        int
	lastByte   byte
	promptSent bool
}

// New builds an engine over port with the given context and command
// table. The table is borrowed, not copied, and must not change after
// construction. Duplicate names are the caller's problem: lookup is a
// linear first-match scan, and the built-in "help" cannot be shadowed.
func New[T any](port Port, ctx *T, commands []Command[T]) *Engine[T] {
	return &Engine[T]{
		port:     port,
		ctx:      ctx,
		commands: commands,
		prompt:   DefaultPrompt,
	}
}

// SetPrompt replaces the prompt sent before each input line.
func (e *Engine[T]) SetPrompt(prompt string) { e.prompt = prompt }

// ProcessInput sends the prompt when one is owed, drains the bytes the
// transport has ready, and feeds them through the line editor. When a
// line has been completed its command is dispatched before returning,
// at most one per call. The call never blocks: with nothing pending it
// performs no I/O beyond the prompt and returns.
func (e *Engine[T]) ProcessInput() {
	if !e.promptSent {
		SendPrompt(e.port, e.prompt)
		e.promptSent = true
	}

	args := e.readInput()
	if args.argc == 0 {
		return
	}
	if !e.dispatch(args) {
		Print(e.port, `Command "`)
		Print(e.port, args.Arg(0))
		Println(e.port, `" not found. Type 'help' for available commands.`)
	}
	e.promptSent = false
}

// ExecuteCommand tokenizes and dispatches one complete line, bypassing
// the byte-level editor. It reports whether a command ran and prints
// nothing on a miss, so scripted callers choose their own diagnostics.
func (e *Engine[T]) ExecuteCommand(line string) bool {
	return e.dispatch(ParseLine(line))
}

// PrintHelp lists the built-in help entry and every table command,
// left-padded to the longest registered name.
func (e *Engine[T]) PrintHelp() {
	width := len("help")
	for i := range e.commands {
		if n := len(e.commands[i].Name); n > width {
			width = n
		}
	}

	Println(e.port, "")
	Println(e.port, "Available commands:")
	Printf(e.port, "  %-*s -- %s\r\n", width, "help", "Show available commands")
	if len(e.commands) == 0 {
		Println(e.port, "  (No additional commands registered)")
	} else {
		for i := range e.commands {
			Printf(e.port, "  %-*s -- %s\r\n", width, e.commands[i].Name, e.commands[i].Help)
		}
	}
	Println(e.port, "")
}

// ResetSession discards any partially entered line and re-arms the
// prompt. Hosts call it when the transport hands over a new peer so
// one client's half-typed input never leaks into the next session.
func (e *Engine[T]) ResetSession() {
	e.buf = [CmdBufSize]byte{}
	e.pos = 0
	e.lastByte = 0
	e.promptSent = false
}

// readInput drains one bounded chunk from the port and runs the line
// editor over it, returning the parsed vector as soon as a line
// commits. At most one line is produced per call.
func (e *Engine[T]) readInput() Args {
	var chunk [readChunk]byte
	n := ReadBytes(e.port, chunk[:])

	for i := 0; i < n; i++ {
		c := chunk[i]
		prev := e.lastByte
		e.lastByte = c

		switch {
		case c == 8 || c == 127:
			if e.pos > 0 {
				e.pos--
				e.buf[e.pos] = 0
				SendBackspace(e.port)
			}

		case c == '\r' || c == '\n':
			if c == '\n' && prev == '\r' {
				// Second half of a CRLF pair.
				continue
			}
			Println(e.port, "")
			if e.pos > 0 {
				args := ParseLine(string(e.buf[:e.pos]))
				e.buf = [CmdBufSize]byte{}
				e.pos = 0
				return args
			}
			e.promptSent = false

		default:
			if e.pos < CmdBufSize-1 {
				_ = e.port.WriteByte(c)
				e.buf[e.pos] = c
				e.pos++
			}
		}
	}
	return Args{}
}

// dispatch intercepts the reserved help command, then scans the table.
func (e *Engine[T]) dispatch(args Args) bool {
	if args.argc == 0 {
		return false
	}
	name := args.Arg(0)
	if name == "help" {
		e.PrintHelp()
		return true
	}
	for i := range e.commands {
		if e.commands[i].Name == name {
			e.commands[i].Run(args, e.ctx)
			return true
		}
	}
	return false
}
