package tokenize

import "regexp"

// tweetRE matches, in priority order: URLs, @mentions and #hashtags,
// common sideways emoticons, words with inner apostrophes or hyphens, and
// any remaining non-space symbol.
var tweetRE = regexp.MustCompile(`https?://[^\s]+|[@#]\w+|[:;=8][-o*']?[)\](\[dDpP/\\|]|\w+(?:['-]\w+)*|[^\s\w]`)

// Tweet is a Twitter-aware tokenizer: it keeps mentions, hashtags, URLs and
// emoticons as single tokens instead of splitting them on punctuation.
type Tweet struct{}

var _ Tokenizer = Tweet{}

func (Tweet) Tokenize(text string) ([]string, error) {
	return tweetRE.FindAllString(text, -1), nil
}
