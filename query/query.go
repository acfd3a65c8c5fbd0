package query

import (
	"fmt"
	"strings"

	"github.com/revelaction/tdsent/render"
	"github.com/revelaction/tdsent/target"

	"github.com/c-bata/go-prompt"
)

const completionThreshold = 2

// sentimentFilters maps the ":" commands of the prompt to sentiment labels.
var sentimentFilters = map[string]int{
	":conflict": -2,
	":neg":      -1,
	":neu":      0,
	":pos":      1,
}

// Handler is an interactive prompt over a parsed collection. Free text
// filters targets by surface substring; ":pos", ":neg", ":neu" and
// ":conflict" filter by sentiment.
type Handler struct {
	Collection *target.Collection
	Renderer   *render.TermRenderer
}

func NewHandler(c *target.Collection, r *render.TermRenderer) *Handler {
	return &Handler{
		Collection: c,
		Renderer:   r,
	}
}

func (h *Handler) Run() error {

	fmt.Println("🔑 Ctrl+F: next Format, quit to exit")
	surfaces := h.Collection.Surfaces()

	// initialize prompt history
	history := []string{}

	for {

		in := prompt.Input("      🎯 ", h.completer(surfaces),
			prompt.OptionTitle("tdsent query"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionMaxSuggestion(12),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionHistory(history),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlF,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.NextFormat()
					fmt.Println("Format set to: " + h.Renderer.Format)
				}}),
		)

		if in == "quit" {
			return nil
		}

		in = strings.TrimSpace(in)
		if in == "" {
			continue
		}

		history = append(history, in)

		h.Renderer.Render(h.filter(in))
	}
}

// filter selects the targets matching the prompt input.
func (h *Handler) filter(in string) []target.Target {
	if sentiment, ok := sentimentFilters[in]; ok {
		var matched []target.Target
		for _, t := range h.Collection.Targets() {
			if t.Sentiment == sentiment {
				matched = append(matched, t)
			}
		}
		return matched
	}

	inLow := strings.ToLower(in)
	var matched []target.Target
	for _, t := range h.Collection.Targets() {
		if strings.Contains(strings.ToLower(t.Surface), inLow) {
			matched = append(matched, t)
		}
	}
	return matched
}

func (h *Handler) completer(surfaces []string) prompt.Completer {
	return func(d prompt.Document) []prompt.Suggest {
		word := d.GetWordBeforeCursor()

		if strings.HasPrefix(word, ":") {
			suggestions := []prompt.Suggest{}
			for filter := range sentimentFilters {
				suggestions = append(suggestions, prompt.Suggest{Text: filter})
			}
			return prompt.FilterHasPrefix(suggestions, word, true)
		}

		if len(word) < completionThreshold {
			return nil
		}

		suggestions := []prompt.Suggest{}
		for _, surface := range surfaces {
			suggestions = append(suggestions, prompt.Suggest{Text: surface})
		}

		return prompt.FilterContains(suggestions, word, true)
	}
}
