package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"portast/internal/diag"
	"portast/internal/source"
)

type palette struct {
	err, warn, info, note, dim, caret func(a ...interface{}) string
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) func(a ...interface{}) string {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c.SprintFunc()
	}
	return palette{
		err:   mk(color.FgRed, color.Bold),
		warn:  mk(color.FgYellow, color.Bold),
		info:  mk(color.FgCyan),
		note:  mk(color.FgBlue),
		dim:   mk(color.Faint),
		caret: mk(color.FgGreen, color.Bold),
	}
}

func (p palette) severity(sev diag.Severity) string {
	switch sev {
	case diag.SevError:
		return p.err(sev.String())
	case diag.SevWarning:
		return p.warn(sev.String())
	default:
		return p.info(sev.String())
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes с аналогичным форматом.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		if _, err := fmt.Fprintf(w, "%s: %s %s: %s\n",
			formatLocation(d.Primary, fs, opts.PathMode), pal.severity(d.Severity), d.Code.ID(), d.Message); err != nil {
			return err
		}
		if opts.Context {
			if err := writeContext(w, fs, d.Primary, pal); err != nil {
				return err
			}
		}
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			if _, err := fmt.Fprintf(w, "  %s: %s: %s\n", pal.note("note"), formatLocation(n.Span, fs, opts.PathMode), n.Msg); err != nil {
				return err
			}
		}
	}
	return nil
}

func formatLocation(sp source.Span, fs *source.FileSet, mode PathMode) string {
	name := sp.Filename.String()
	if path, ok := sp.Filename.LocalPath(); ok {
		baseDir := ""
		if fs != nil {
			baseDir = fs.BaseDir()
		}
		name = source.FormatPath(path, mode.String(), baseDir)
	}
	if sp.Lo.Line == 0 {
		return name
	}
	return fmt.Sprintf("%s:%d:%d", name, sp.Lo.Line, sp.Lo.Col+1)
}

// writeContext печатает строку Lo.Line и подчёркивает колонки спана.
// Если файл недоступен, ничего не печатает.
func writeContext(w io.Writer, fs *source.FileSet, sp source.Span, pal palette) error {
	if fs == nil || sp.Lo.Line == 0 {
		return nil
	}
	path, ok := sp.Filename.LocalPath()
	if !ok {
		return nil
	}
	f, err := fs.Open(path)
	if err != nil || f.LineCount() < sp.Lo.Line {
		return nil
	}
	line := f.GetLine(sp.Lo.Line)
	// колонки спана считают символы, каретка ставится по ширине на экране
	runes := []rune(line)
	lo := min(int(sp.Lo.Col), len(runes))
	hi := len(runes)
	if sp.Hi.Line == sp.Lo.Line && int(sp.Hi.Col) < hi {
		hi = int(sp.Hi.Col)
	}
	pad := runewidth.StringWidth(string(runes[:lo]))
	width := 1
	if hi > lo {
		width = max(runewidth.StringWidth(string(runes[lo:hi])), 1)
	}
	gutter := fmt.Sprintf("%5d | ", sp.Lo.Line)
	if _, err := fmt.Fprintf(w, "%s%s\n", pal.dim(gutter), line); err != nil {
		return err
	}
	margin := strings.Repeat(" ", len(gutter)-2)
	_, err = fmt.Fprintf(w, "%s%s%s%s\n", pal.dim(margin+"| "), strings.Repeat(" ", pad), pal.caret("^"), pal.caret(strings.Repeat("~", width-1)))
	return err
}
