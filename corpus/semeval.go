package corpus

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/revelaction/tdsent/target"
)

// polarityMap converts the SemEval polarity attribute to an int label.
var polarityMap = map[string]int{
	"conflict": -2,
	"negative": -1,
	"neutral":  0,
	"positive": 1,
}

type semevalSentence struct {
	ID          string              `xml:"id,attr"`
	Text        *semevalText        `xml:"text"`
	AspectTerms *semevalAspectTerms `xml:"aspectTerms"`
}

type semevalText struct {
	Value string `xml:",chardata"`
}

type semevalAspectTerms struct {
	Terms []semevalAspectTerm `xml:"aspectTerm"`
}

type semevalAspectTerm struct {
	Term     string `xml:"term,attr"`
	Polarity string `xml:"polarity,attr"`
	From     int    `xml:"from,attr"`
	To       int    `xml:"to,attr"`
}

// Semeval parses a SemEval aspect-term XML file. The root element must be
// named "sentences". Sentences without an aspectTerms child yield no
// targets; sentences with aspect terms but no text child are malformed
// because the spans cannot be validated without the text. Spans come
// directly from the from/to attributes, which are position-correct in this
// format.
func Semeval(path string) (*target.Collection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := xml.NewDecoder(f)

	root, err := rootElement(dec)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if root.Name.Local != "sentences" {
		return nil, fmt.Errorf("%s: root element must be sentences, not %s", path, root.Name.Local)
	}

	collection, err := target.NewCollection()
	if err != nil {
		return nil, err
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "sentence" {
			continue
		}

		var sentence semevalSentence
		if err := dec.DecodeElement(&sentence, &start); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		if sentence.AspectTerms == nil {
			continue
		}
		if sentence.Text == nil {
			return nil, fmt.Errorf("%s: sentence %s has aspect terms but no text", path, sentence.ID)
		}

		for index, term := range sentence.AspectTerms.Terms {
			sentiment, ok := polarityMap[term.Polarity]
			if !ok {
				return nil, fmt.Errorf("%s: sentence %s: unknown polarity %q", path, sentence.ID, term.Polarity)
			}

			id := sentence.ID + strconv.Itoa(index)
			spans := []target.Span{{Start: term.From, End: term.To}}
			t, err := target.New(id, sentence.ID, sentence.Text.Value, term.Term, sentiment, spans)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}

			if err := collection.Add(t); err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
		}
	}

	return collection, nil
}

// rootElement advances the decoder to the document's root start element.
func rootElement(dec *xml.Decoder) (xml.StartElement, error) {
	for {
		tok, err := dec.Token()
		if err != nil {
			return xml.StartElement{}, err
		}
		if start, ok := tok.(xml.StartElement); ok {
			return start, nil
		}
	}
}
