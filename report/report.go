// Package report renders the result of a run for humans.
package report

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/taigrr/colorhash"

	"github.com/dendrascience/wordclass/aggregate"
	"github.com/dendrascience/wordclass/charclass"
	"github.com/dendrascience/wordclass/pipeline"
)

// Column order of the class table.
var columns = []charclass.Class{
	charclass.A, charclass.E, charclass.I, charclass.O, charclass.U, charclass.Y, charclass.SoftC,
}

// Options controls rendering.
type Options struct {
	// Color enables ANSI styling. See ColorEnabled for a sensible default.
	Color bool

	// Workers adds one termination line per worker.
	Workers bool
}

// ColorEnabled reports whether f is a terminal and NO_COLOR is unset.
func ColorEnabled(f *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Printer writes reports to one writer.
type Printer struct {
	w    io.Writer
	opts Options

	name   lipgloss.Style
	label  lipgloss.Style
	muted  lipgloss.Style
	header lipgloss.Style
	cell   lipgloss.Style
	border lipgloss.Style
}

// NewPrinter returns a Printer writing to w.
func NewPrinter(w io.Writer, opts Options) *Printer {
	r := lipgloss.NewRenderer(w)
	if opts.Color {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Printer{
		w:      w,
		opts:   opts,
		name:   r.NewStyle().Bold(true),
		label:  r.NewStyle().Bold(true),
		muted:  r.NewStyle().Foreground(lipgloss.Color("241")),
		header: r.NewStyle().Bold(true).Padding(0, 1).Align(lipgloss.Right),
		cell:   r.NewStyle().Padding(0, 1).Align(lipgloss.Right),
		border: r.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// FileColor returns the stable 256-color palette entry for name. The same
// name always gets the same color, on every run.
func FileColor(name string) lipgloss.Color {
	h := int(colorhash.HashString(name) % 256)
	if h < 0 {
		h = -h
	}
	return lipgloss.Color(strconv.Itoa(h))
}

// Print writes one block per file, the optional worker lines and the
// elapsed time.
func (p *Printer) Print(res pipeline.Result) error {
	for _, f := range res.Files {
		if err := p.printFile(f); err != nil {
			return err
		}
	}

	if p.opts.Workers {
		fmt.Fprintln(p.w)
		for _, w := range res.Workers {
			fmt.Fprintf(p.w, "worker %d terminated: %d chunks, %d bytes, %d words\n",
				w.ID, w.Chunks, w.Bytes, w.Words)
		}
	}

	_, err := fmt.Fprintf(p.w, "\n%s %.6f s\n", p.label.Render("Elapsed time ="), res.Elapsed.Seconds())
	return err
}

func (p *Printer) printFile(f aggregate.FileStats) error {
	title := p.name.Foreground(FileColor(f.Name)).Render(f.Name)
	if f.Skipped {
		_, err := fmt.Fprintf(p.w, "\nFile name: %s %s\n", title, p.muted.Render(fmt.Sprintf("(skipped: %v)", f.Err)))
		return err
	}

	headers := make([]string, len(columns))
	row := make([]string, len(columns))
	for i, cl := range columns {
		headers[i] = cl.String()
		row[i] = strconv.Itoa(f.Counts.Class(cl))
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(p.border).
		Headers(headers...).
		Row(row...).
		StyleFunc(func(r, _ int) lipgloss.Style {
			if r == table.HeaderRow {
				return p.header
			}
			return p.cell
		})

	_, err := fmt.Fprintf(p.w, "\nFile name: %s\n%s %d\nNumber of words with an\n%s\n",
		title, p.label.Render("Total number of words ="), f.Counts.Words, t.String())
	return err
}
