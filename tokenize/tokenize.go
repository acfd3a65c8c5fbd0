// Package tokenize provides interchangeable tokenizer adapters. The corpus
// parsers never depend on this package; downstream consumers pick whichever
// implementation fits their pipeline and depend only on the Tokenizer
// interface.
package tokenize

import "strings"

// Tokenizer turns a text into an ordered sequence of token strings.
type Tokenizer interface {
	Tokenize(text string) ([]string, error)
}

// Whitespace tokenizes on whitespace.
type Whitespace struct{}

var _ Tokenizer = Whitespace{}

func (Whitespace) Tokenize(text string) ([]string, error) {
	return strings.Fields(text), nil
}
