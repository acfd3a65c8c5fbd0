// Package corpus parses annotated sentiment corpora into target collections.
// Three formats are supported: the Dong 3-line-cycle plain text format, the
// SemEval aspect-term XML format, and the multi-file JSON election corpus.
package corpus

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/revelaction/tdsent/span"
	"github.com/revelaction/tdsent/target"
)

// dongState is the position within the fixed 3-line record cycle.
type dongState int

const (
	awaitText dongState = iota
	awaitTarget
	awaitSentiment
)

// Dong parses a file where every group of 3 consecutive lines encodes
// (text, target, sentiment). Text and target are lowercased; spans are
// recomputed by exact search; the target id is the collection size at
// insertion time. A line count that is not a multiple of 3 means the cycle
// state is corrupt and the whole file is rejected.
func Dong(path string) (*target.Collection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	collection, err := target.NewCollection()
	if err != nil {
		return nil, err
	}

	state := awaitText
	var text, surface string

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		value := strings.TrimSpace(scanner.Text())

		switch state {
		case awaitText:
			text = strings.ToLower(value)
			state = awaitTarget

		case awaitTarget:
			surface = strings.ToLower(value)
			state = awaitSentiment

		case awaitSentiment:
			sentiment, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: sentiment is not an integer: %q", path, line, value)
			}
			if sentiment < -1 || sentiment > 1 {
				return nil, fmt.Errorf("%s:%d: sentiment must be one of [-1 0 1], not %d", path, line, sentiment)
			}

			spans := span.Exact(text, surface)
			id := strconv.Itoa(collection.Len())
			t, err := target.New(id, "", text, surface, sentiment, spans)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %w", path, line, err)
			}
			if err := collection.Add(t); err != nil {
				return nil, fmt.Errorf("%s:%d: %w", path, line, err)
			}

			state = awaitText
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if state != awaitText {
		return nil, fmt.Errorf("%s: truncated record: %d lines is not a multiple of 3", path, line)
	}

	return collection, nil
}
