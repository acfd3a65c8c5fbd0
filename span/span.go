// Package span locates target mentions inside a text as character offset
// pairs. Each corpus format gets the cheapest strategy its error profile
// needs: exact recomputation for formats without offsets, small shift
// correction for formats with slightly wrong offsets, and fuzzy pattern
// matching for user-added annotations with no offsets at all.
package span

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/revelaction/tdsent/target"
)

// MismatchError reports that a surface string could not be located in a
// text. It carries the full diagnostic context so parsers can surface
// annotation errors instead of silently dropping data.
type MismatchError struct {

	// Surface is the target string that was searched for.
	Surface string

	// Text is the full text that was searched.
	Text string

	// Offset is the hint offset that failed to match, or -1 when no hint
	// was involved.
	Offset int
}

func (e *MismatchError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("offset %d does not match target %q in text %q", e.Offset, e.Surface, e.Text)
	}
	return fmt.Sprintf("cannot locate target %q in text %q", e.Surface, e.Text)
}

// Exact returns all occurrences of surface in text, case-insensitively, in
// left-to-right order. If surface contains internal whitespace the
// whitespace-stripped concatenation is searched as well, and its matches are
// appended after the literal ones. No occurrence is not an error: the empty
// result is valid output.
func Exact(text, surface string) []target.Span {
	textLow := strings.ToLower(text)
	surfaceLow := strings.ToLower(surface)

	spans := findAll(textLow, surfaceLow)

	fields := strings.Fields(surfaceLow)
	if len(fields) > 1 {
		spans = append(spans, findAll(textLow, strings.Join(fields, ""))...)
	}

	return spans
}

// findAll returns the non-overlapping occurrences of pat in text as rune
// offset spans.
func findAll(text, pat string) []target.Span {
	if pat == "" {
		return nil
	}

	t := []rune(text)
	p := []rune(pat)

	var spans []target.Span
	for i := 0; i+len(p) <= len(t); {
		if runesEqual(t[i:i+len(p)], p) {
			spans = append(spans, target.Span{Start: i, End: i + len(p)})
			i += len(p)
			continue
		}
		i++
	}
	return spans
}

func runesEqual(a, b []rune) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Shift resolves a span from a hint offset that may be off by one character.
// It tries offset, offset-1 and offset+1 in that order and accepts the first
// for which the substring of length len(surface) case-insensitively equals
// surface. All three failing is a *MismatchError: the hint is too wrong to
// trust, and guessing further would hide an upstream data problem.
func Shift(text, surface string, offset int) (target.Span, error) {
	runes := []rune(text)
	length := len([]rune(surface))
	surfaceLow := strings.ToLower(surface)

	for _, shift := range []int{0, -1, 1} {
		start := offset + shift
		end := start + length
		if start < 0 || end > len(runes) {
			continue
		}

		if strings.ToLower(string(runes[start:end])) == surfaceLow {
			return target.Span{Start: start, End: end}, nil
		}
	}

	return target.Span{}, &MismatchError{Surface: surface, Text: text, Offset: offset}
}

// Fuzzy resolves a span for a surface with no positional hint. It derives an
// ordered list of patterns from the surface, most permissive first, and
// stops at the first pattern with exactly one match in the text. A pattern
// with several matches is ambiguous and is rejected in favor of the next,
// stricter one. Exhausting all patterns is a *MismatchError; callers decide
// whether the record is an expected omission.
func Fuzzy(text, surface string) (target.Span, error) {
	textLow := strings.ToLower(text)
	surfaceLow := strings.ToLower(surface)
	lit := regexp.QuoteMeta(surfaceLow)

	// The non-word boundary variants anchor the surface against partial-word
	// hits; the stripped variants recover surfaces that the source system
	// stored with extra spacing. The surface itself is always matched as a
	// literal via a capture group so the reported span never includes the
	// boundary character.
	patterns := []string{
		"(" + lit + ")",
		`[^\w](` + lit + ")",
		`[^\w](` + lit + `)[^\w]`,
		"(" + lit + `)[^\w]`,
		"(" + regexp.QuoteMeta(strings.ReplaceAll(surfaceLow, " ", "")) + ")",
		"(" + regexp.QuoteMeta(strings.ReplaceAll(surfaceLow, " '", "")) + ")",
	}

	for _, pat := range patterns {
		re, err := regexp.Compile(pat)
		if err != nil {
			return target.Span{}, fmt.Errorf("fuzzy pattern %q: %w", pat, err)
		}

		matches := re.FindAllStringSubmatchIndex(textLow, -1)
		if len(matches) != 1 {
			continue
		}

		// Byte offsets of the capture group, converted to rune offsets.
		start := len([]rune(textLow[:matches[0][2]]))
		end := start + len([]rune(textLow[matches[0][2]:matches[0][3]]))
		return target.Span{Start: start, End: end}, nil
	}

	return target.Span{}, &MismatchError{Surface: surface, Text: text, Offset: -1}
}
