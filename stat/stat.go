package stat

import (
	"github.com/revelaction/tdsent/target"
)

type Handler struct {
	stats Stats
}

type Stats struct {
	NumTargets   int
	NumSentences int

	// MultiSpan is the number of targets with more than one candidate span.
	MultiSpan int

	// Unresolved is the number of targets without any resolved span.
	Unresolved int

	SentimentDis map[int]int

	TargetsPerSentenceMean int
}

func (h *Handler) Get() Stats {
	return h.stats
}

func NewHandler() *Handler {
	stats := Stats{SentimentDis: map[int]int{}}
	return &Handler{
		stats: stats,
	}
}

func (h *Handler) Aggregate(c *target.Collection) {
	h.stats.NumTargets += c.Len()
	h.stats.NumSentences += c.Sentences()

	for _, t := range c.Targets() {
		h.stats.SentimentDis[t.Sentiment]++

		switch {
		case len(t.Spans) == 0:
			h.stats.Unresolved++
		case len(t.Spans) > 1:
			h.stats.MultiSpan++
		}
	}

	if h.stats.NumSentences > 0 {
		h.stats.TargetsPerSentenceMean = h.stats.NumTargets / h.stats.NumSentences
	}
}
