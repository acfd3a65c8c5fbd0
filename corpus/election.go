package corpus

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/revelaction/tdsent/span"
	"github.com/revelaction/tdsent/target"
)

// SentimentDoesNotApply is the label of election records annotated
// "doesnotapply". They are dropped unless Options.IncludeDNR is set.
const SentimentDoesNotApply = 2

// electionSentiments converts the election annotation labels to int labels.
var electionSentiments = map[string]int{
	"negative":     -1,
	"neutral":      0,
	"positive":     1,
	"doesnotapply": SentimentDoesNotApply,
}

// knownUnresolvable lists (tweet id, surface) pairs whose user-added
// annotations are known in advance not to resolve against the tweet text.
// They are skipped instead of failing the parse. An empty surface matches
// every surface of that tweet. This is domain data, not logic: extend the
// table, not the parser, when the corpus grows new unresolvable records.
var knownUnresolvable = map[string]string{
	"81211671026352128": "",
	"78689580104290305": "",
	"81209490499960832": "",
	"75270720671973376": "kippers",
	"65855178264686592": "tax",
}

// idFilePrefix is the numeric prefix the corpus prepends to every record
// filename. The record id is the filename with this prefix stripped.
const idFilePrefix = "5"

// Options configures the election corpus parser.
type Options struct {

	// IncludeDNR keeps records annotated "doesnotapply".
	IncludeDNR bool

	// IncludeAdditional also parses the user-added annotations, resolving
	// their spans by fuzzy matching.
	IncludeAdditional bool

	// Progress, if set, is called once per record file loaded.
	Progress func(done, total int, name string)
}

type electionTweet struct {
	Content  string           `json:"content"`
	Entities []electionEntity `json:"entities"`
}

type electionEntity struct {
	ID     int    `json:"id"`
	Entity string `json:"entity"`
	Offset int    `json:"offset"`
}

type electionAnnotation struct {
	Items map[string]string `json:"items"`

	// AdditionalItems is a mapping from surface to label in most records,
	// but some records store it as a list. Kept raw and inspected later.
	AdditionalItems json.RawMessage `json:"additional_items"`
}

// Election parses the multi-file JSON election corpus rooted at dir: a
// tweets/ and an annotations/ folder of JSON-per-record files, plus
// train_id.txt and test_id.txt listing the record ids of each split. It
// returns one collection per split, in split-file order. An id listed in a
// split file but missing from either folder is a hard error.
func Election(dir string, opts Options) (train, test *target.Collection, err error) {
	tweets := map[string]electionTweet{}
	annotations := map[string]electionAnnotation{}

	total, err := countRecordFiles(dir)
	if err != nil {
		return nil, nil, err
	}

	done := 0
	progress := func(name string) {
		done++
		if opts.Progress != nil {
			opts.Progress(done, total, name)
		}
	}

	err = loadRecords(filepath.Join(dir, "tweets"), progress, func(id string, raw []byte) error {
		var tweet electionTweet
		if err := json.Unmarshal(raw, &tweet); err != nil {
			return fmt.Errorf("tweet %s: %w", id, err)
		}
		tweets[id] = tweet
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	err = loadRecords(filepath.Join(dir, "annotations"), progress, func(id string, raw []byte) error {
		var anno electionAnnotation
		if err := json.Unmarshal(raw, &anno); err != nil {
			return fmt.Errorf("annotation %s: %w", id, err)
		}
		annotations[id] = anno
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	train, err = electionSplit(filepath.Join(dir, "train_id.txt"), tweets, annotations, opts)
	if err != nil {
		return nil, nil, err
	}

	test, err = electionSplit(filepath.Join(dir, "test_id.txt"), tweets, annotations, opts)
	if err != nil {
		return nil, nil, err
	}

	return train, test, nil
}

// electionSplit builds the collection for one split id file.
func electionSplit(idFile string, tweets map[string]electionTweet, annotations map[string]electionAnnotation, opts Options) (*target.Collection, error) {
	f, err := os.Open(idFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	collection, err := target.NewCollection()
	if err != nil {
		return nil, err
	}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		id := strings.TrimSpace(scanner.Text())
		if id == "" {
			continue
		}

		tweet, ok := tweets[id]
		if !ok {
			return nil, fmt.Errorf("%s: no tweet record for id %s", idFile, id)
		}
		anno, ok := annotations[id]
		if !ok {
			return nil, fmt.Errorf("%s: no annotation record for id %s", idFile, id)
		}

		targets, err := parseTweet(id, tweet, anno, opts)
		if err != nil {
			return nil, err
		}
		for _, t := range targets {
			if err := collection.Add(t); err != nil {
				return nil, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", idFile, err)
	}

	return collection, nil
}

// parseTweet emits targets for the auto-detected entities of one tweet and,
// when configured, for the user-added annotations. Every target record is
// built independently: nothing carries over between entities.
func parseTweet(tweetID string, tweet electionTweet, anno electionAnnotation, opts Options) ([]target.Target, error) {
	var targets []target.Target

	// Additional entities get ids one past the largest auto-detected id.
	maxEntityID := 0

	for _, entity := range tweet.Entities {
		if entity.ID > maxEntityID {
			maxEntityID = entity.ID
		}
		entityID := strconv.Itoa(entity.ID)

		s, err := span.Shift(tweet.Content, entity.Entity, entity.Offset)
		if err != nil {
			return nil, fmt.Errorf("tweet %s entity %s: %w", tweetID, entityID, err)
		}

		label, ok := anno.Items[entityID]
		if !ok {
			return nil, fmt.Errorf("tweet %s: no annotation item for entity %s", tweetID, entityID)
		}
		sentiment, ok := electionSentiments[label]
		if !ok {
			return nil, fmt.Errorf("tweet %s entity %s: unknown sentiment label %q", tweetID, entityID, label)
		}
		if sentiment == SentimentDoesNotApply && !opts.IncludeDNR {
			continue
		}

		t, err := target.New(tweetID+"#"+entityID, tweetID, tweet.Content, entity.Entity, sentiment, []target.Span{s})
		if err != nil {
			return nil, fmt.Errorf("tweet %s: %w", tweetID, err)
		}
		targets = append(targets, t)
	}

	if !opts.IncludeAdditional {
		return targets, nil
	}

	// Only records storing additional_items as a mapping take part in this
	// step; other shapes are skipped.
	additional, ok := decodeAdditional(anno.AdditionalItems)
	if !ok {
		return targets, nil
	}

	for _, item := range additional {
		s, err := span.Fuzzy(tweet.Content, item.Surface)
		if err != nil {
			var mismatch *span.MismatchError
			if errors.As(err, &mismatch) && allowUnresolvable(tweetID, item.Surface) {
				continue
			}
			return nil, fmt.Errorf("tweet %s: additional entity: %w", tweetID, err)
		}

		sentiment, ok := electionSentiments[item.Label]
		if !ok {
			return nil, fmt.Errorf("tweet %s: additional entity %q: unknown sentiment label %q", tweetID, item.Surface, item.Label)
		}

		maxEntityID++
		t, err := target.New(tweetID+"#"+strconv.Itoa(maxEntityID), tweetID, tweet.Content, item.Surface, sentiment, []target.Span{s})
		if err != nil {
			return nil, fmt.Errorf("tweet %s: %w", tweetID, err)
		}
		targets = append(targets, t)
	}

	return targets, nil
}

// allowUnresolvable reports whether the (tweet id, surface) pair is in the
// known-unresolvable table.
func allowUnresolvable(tweetID, surface string) bool {
	allowed, ok := knownUnresolvable[tweetID]
	if !ok {
		return false
	}
	return allowed == "" || allowed == surface
}

type additionalItem struct {
	Surface string
	Label   string
}

// decodeAdditional decodes additional_items when it is a JSON object of
// string labels, preserving the source key order so derived entity ids are
// deterministic. The second return value is false for any other shape.
func decodeAdditional(raw json.RawMessage) ([]additionalItem, bool) {
	if len(raw) == 0 {
		return nil, false
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, false
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, false
	}

	var items []additionalItem
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, false
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, false
		}

		var label string
		if err := dec.Decode(&label); err != nil {
			return nil, false
		}

		items = append(items, additionalItem{Surface: key, Label: label})
	}

	return items, true
}

// loadRecords reads every .json file of dir and hands the raw content to
// record, keyed by the filename without extension and without the fixed
// numeric prefix.
func loadRecords(dir string, progress func(name string), record func(id string, raw []byte) error) error {
	files, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, file := range files {
		if filepath.Ext(file.Name()) != ".json" {
			continue
		}

		raw, err := os.ReadFile(filepath.Join(dir, file.Name()))
		if err != nil {
			return err
		}

		id := strings.TrimSuffix(file.Name(), ".json")
		id = strings.TrimPrefix(id, idFilePrefix)

		if err := record(id, raw); err != nil {
			return err
		}
		progress(file.Name())
	}

	return nil
}

// countRecordFiles counts the .json files of both record folders, for
// progress reporting.
func countRecordFiles(dir string) (int, error) {
	total := 0
	for _, sub := range []string{"tweets", "annotations"} {
		files, err := os.ReadDir(filepath.Join(dir, sub))
		if err != nil {
			return 0, err
		}
		for _, file := range files {
			if filepath.Ext(file.Name()) == ".json" {
				total++
			}
		}
	}
	return total, nil
}
