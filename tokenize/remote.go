package tokenize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// Remote tokenizes by calling an external tokenization service over HTTP.
// The service receives {"text": ...} and answers {"tokens": [...]}. It is
// isolated behind the Tokenizer interface so pipelines can swap it for a
// local implementation, or stub it in tests, without touching callers.
type Remote struct {
	URL string

	// Client defaults to http.DefaultClient.
	Client *http.Client
}

var _ Tokenizer = (*Remote)(nil)

type remoteRequest struct {
	Text string `json:"text"`
}

type remoteResponse struct {
	Tokens []string `json:"tokens"`
}

func (r *Remote) Tokenize(text string) ([]string, error) {
	body, err := json.Marshal(remoteRequest{Text: text})
	if err != nil {
		return nil, err
	}

	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Post(r.URL, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("tokenizer service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tokenizer service: unexpected status %s", resp.Status)
	}

	var decoded remoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("tokenizer service: %w", err)
	}

	return decoded.Tokens, nil
}
