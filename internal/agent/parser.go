package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"market-service/internal/models"
)

// ErrUnavailable means no extractor endpoint is configured.
var ErrUnavailable = errors.New("agent parser unavailable")

// Parser turns unstructured listing text (e.g. a pasted WhatsApp message)
// into a partial listing. The extraction itself is an external concern;
// this package only carries text out and a partial listing back.
type Parser interface {
	Parse(ctx context.Context, text string) (models.ListingInput, error)
}

// HTTPParser posts the text to an extractor endpoint that answers with
// partial listing JSON.
type HTTPParser struct {
	endpoint string
	client   *http.Client
}

// NewParser builds an HTTPParser, or a disabled parser when the endpoint is
// empty.
func NewParser(endpoint string) Parser {
	if endpoint == "" {
		return disabledParser{}
	}
	return &HTTPParser{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

type parseRequest struct {
	Text string `json:"text"`
}

// Parse sends the text to the extractor and decodes the partial listing.
func (p *HTTPParser) Parse(ctx context.Context, text string) (models.ListingInput, error) {
	body, err := json.Marshal(parseRequest{Text: text})
	if err != nil {
		return models.ListingInput{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return models.ListingInput{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return models.ListingInput{}, fmt.Errorf("call extractor: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.ListingInput{}, fmt.Errorf("extractor returned status %d", resp.StatusCode)
	}

	var input models.ListingInput
	if err := json.NewDecoder(resp.Body).Decode(&input); err != nil {
		return models.ListingInput{}, fmt.Errorf("decode extractor response: %w", err)
	}
	return input, nil
}

type disabledParser struct{}

func (disabledParser) Parse(ctx context.Context, text string) (models.ListingInput, error) {
	return models.ListingInput{}, ErrUnavailable
}
