package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/revelaction/tdsent/target"
)

const Defaultformat = "all"

var (
	Red     = "\033[1;31m"
	Green   = "\033[1;32m"
	Yellow  = "\033[0;33m"
	Magenta = "\033[1;35m"
	Teal    = "\033[1;36m"
	Gray    = "\033[0;37m"
	Off     = "\033[0m"
)

func SupportedFormats() []string {
	return []string{"all", "target", "aggr"}
}

// Renderer writes targets to an output.
type Renderer interface {
	Render(targets []target.Target)
}

// TermRenderer prints targets to a terminal.
type TermRenderer struct {
	W io.Writer

	HasColor bool

	// HasPrefix prefixes each line with the target id.
	HasPrefix bool

	// Format determines the output per target.
	//
	// all: the full text, with the resolved spans highlighted.
	// target: only the surface and its sentiment.
	// aggr: a sentiment distribution over all targets.
	Format string
}

var _ Renderer = (*TermRenderer)(nil)

func NewTermRenderer(w io.Writer) *TermRenderer {
	return &TermRenderer{W: w, HasColor: true, HasPrefix: true, Format: Defaultformat}
}

// NextFormat cycles to the next supported format.
func (r *TermRenderer) NextFormat() {
	formats := SupportedFormats()
	for i, f := range formats {
		if f == r.Format {
			r.Format = formats[(i+1)%len(formats)]
			return
		}
	}
	r.Format = Defaultformat
}

func (r *TermRenderer) Render(targets []target.Target) {
	if r.Format == "aggr" {
		r.aggregate(targets)
		return
	}

	for _, t := range targets {
		prefix := ""
		if r.HasPrefix {
			prefix = fmt.Sprintf("[%s] ", t.ID)
		}

		var text string
		switch r.Format {
		case "target":
			text = r.colored(t.Surface, r.sentimentColor(t.Sentiment))
		default:
			text = r.highlighted(t)
		}

		label := r.colored(fmt.Sprintf("(%+d)", t.Sentiment), r.sentimentColor(t.Sentiment))
		fmt.Fprintf(r.W, "%s%s %s\n", prefix, label, strings.ReplaceAll(text, "\n", " "))
	}
}

// highlighted returns the target text with every resolved span wrapped in
// the sentiment color. Overlapping candidate spans are highlighted once.
func (r *TermRenderer) highlighted(t target.Target) string {
	if !r.HasColor || len(t.Spans) == 0 {
		return t.Text
	}

	spans := make([]target.Span, len(t.Spans))
	copy(spans, t.Spans)
	sort.Slice(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })

	color := r.sentimentColor(t.Sentiment)
	runes := []rune(t.Text)

	var b strings.Builder
	pos := 0
	for _, s := range spans {
		if s.Start < pos || s.End > len(runes) {
			continue
		}
		b.WriteString(string(runes[pos:s.Start]))
		b.WriteString(color)
		b.WriteString(string(runes[s.Start:s.End]))
		b.WriteString(Off)
		pos = s.End
	}
	b.WriteString(string(runes[pos:]))

	return b.String()
}

func (r *TermRenderer) aggregate(targets []target.Target) {
	dis := map[int]int{}
	for _, t := range targets {
		dis[t.Sentiment]++
	}

	sentiments := make([]int, 0, len(dis))
	for s := range dis {
		sentiments = append(sentiments, s)
	}
	sort.Ints(sentiments)

	for _, s := range sentiments {
		label := r.colored(fmt.Sprintf("%+d", s), r.sentimentColor(s))
		fmt.Fprintf(r.W, "%s %d\n", label, dis[s])
	}
}

func (r *TermRenderer) colored(text, color string) string {
	if !r.HasColor {
		return text
	}
	return color + text + Off
}

func (r *TermRenderer) sentimentColor(sentiment int) string {
	switch {
	case sentiment < -1:
		return Magenta
	case sentiment == -1:
		return Red
	case sentiment == 0:
		return Gray
	case sentiment == 1:
		return Green
	default:
		return Teal
	}
}
