package keypad

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bond-kaneko/calcusmart/calculator"
	"github.com/bond-kaneko/calcusmart/history"
	"github.com/bond-kaneko/calcusmart/theme"
	"github.com/gosuri/uilive"
	"github.com/mattn/go-isatty"
)

const displayWidth = 28

// eraseEcho moves the cursor up over the line the terminal echoed and clears it
const eraseEcho = "\x1b[1A\x1b[2K"

// Frame is everything shown on screen after an event
type Frame struct {
	Theme       theme.Mode
	State       calculator.State
	ShowMemory  bool
	ShowHistory bool
	History     []history.Entry
	Message     string
}

type palette struct {
	title, pending, value, accent, reset string
}

var palettes = map[theme.Mode]palette{
	theme.Light: {
		title:   "\x1b[1;34m",
		pending: "\x1b[90m",
		value:   "\x1b[1;30m",
		accent:  "\x1b[35m",
		reset:   "\x1b[0m",
	},
	theme.Dark: {
		title:   "\x1b[1;36m",
		pending: "\x1b[37m",
		value:   "\x1b[1;97m",
		accent:  "\x1b[95m",
		reset:   "\x1b[0m",
	},
}

// Display draws frames to a terminal, redrawing in place when the output is a TTY
type Display struct {
	out         io.Writer
	writer      *uilive.Writer
	color       bool
	historyRows int
}

// NewDisplay creates a display writing to out, listing at most historyRows calculations
func NewDisplay(out io.Writer, historyRows int) *Display {
	if f, ok := out.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return newLiveDisplay(f, historyRows)
	}
	return &Display{out: out, historyRows: historyRows}
}

func newLiveDisplay(out io.Writer, historyRows int) *Display {
	writer := uilive.New()
	writer.Out = out
	writer.RefreshInterval = time.Millisecond * 100
	writer.Start()

	return &Display{out: out, writer: writer, color: true, historyRows: historyRows}
}

// Show draws a frame
func (d *Display) Show(f Frame) {
	if d.writer == nil {
		d.render(d.out, f)
		fmt.Fprintln(d.out)
		return
	}
	// One write per frame, so a refresh tick never flushes half a frame
	var buf bytes.Buffer
	d.render(&buf, f)
	d.writer.Write(buf.Bytes())
	d.writer.Flush()
}

// InputEchoed tells a live display that the terminal echoed one input line
// below the last frame. uilive clears upwards from the cursor, so the echoed
// line has to go before the next frame is drawn.
func (d *Display) InputEchoed() {
	if d.writer == nil {
		return
	}
	fmt.Fprint(d.out, eraseEcho)
}

// Bypass returns a writer for lines printed above a live frame, or nil when
// the display is not live
func (d *Display) Bypass() io.Writer {
	if d.writer == nil {
		return nil
	}
	return d.writer.Bypass()
}

// Close stops live redrawing
func (d *Display) Close() {
	if d.writer != nil {
		d.writer.Stop()
	}
}

func (d *Display) render(w io.Writer, f Frame) {
	var p palette
	if d.color {
		p = palettes[f.Theme]
	}

	fmt.Fprintf(w, "%sCalcuSmart%s [%s]\n", p.title, p.reset, f.Theme)
	fmt.Fprintf(w, "%s%*s%s\n", p.pending, displayWidth, f.State.Pending, p.reset)
	fmt.Fprintf(w, "%s%*s%s\n", p.value, displayWidth, f.State.Display, p.reset)

	if f.ShowMemory {
		fmt.Fprintf(w, "%sMemory: %s%s\n", p.accent, calculator.FormatNumber(f.State.Memory), p.reset)
	}
	if f.Message != "" {
		fmt.Fprintf(w, "%s\n", f.Message)
	}

	if !f.ShowHistory {
		return
	}
	fmt.Fprintln(w, "History")
	if len(f.History) == 0 {
		fmt.Fprintln(w, "  No calculations yet")
		return
	}
	rows := f.History
	if d.historyRows > 0 && len(rows) > d.historyRows {
		rows = rows[:d.historyRows]
	}
	for _, entry := range rows {
		fmt.Fprintf(w, "  %s\n", entry)
	}
}
