package main

import (
	"fmt"
	"sort"

	"github.com/revelaction/tdsent/stat"

	"github.com/urfave/cli/v2"
)

func statCommand() *cli.Command {
	return &cli.Command{
		Name:      "stat",
		Usage:     "print statistics for a parsed corpus",
		ArgsUsage: "<path>",
		Flags:     corpusFlags(),
		Action: func(ctx *cli.Context) error {
			collections, err := parseCorpus(ctx)
			if err != nil {
				return err
			}

			for _, p := range collections {
				h := stat.NewHandler()
				h.Aggregate(p.c)
				stats := h.Get()

				fmt.Fprintf(ctx.App.Writer, "%s\n", p.name)
				fmt.Fprintf(ctx.App.Writer, "  targets:              %d\n", stats.NumTargets)
				fmt.Fprintf(ctx.App.Writer, "  sentences:            %d\n", stats.NumSentences)
				fmt.Fprintf(ctx.App.Writer, "  targets per sentence: %d\n", stats.TargetsPerSentenceMean)
				fmt.Fprintf(ctx.App.Writer, "  multi-span targets:   %d\n", stats.MultiSpan)
				fmt.Fprintf(ctx.App.Writer, "  unresolved targets:   %d\n", stats.Unresolved)

				sentiments := make([]int, 0, len(stats.SentimentDis))
				for s := range stats.SentimentDis {
					sentiments = append(sentiments, s)
				}
				sort.Ints(sentiments)
				for _, s := range sentiments {
					fmt.Fprintf(ctx.App.Writer, "  sentiment %+d:         %d\n", s, stats.SentimentDis[s])
				}
			}

			return nil
		},
	}
}
