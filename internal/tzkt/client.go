// Package tzkt implements a client for the TzKT blockchain indexer API.
// It fetches account metadata and balances for Tezos addresses.
package tzkt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/edgard/tezbot/internal/apperr"
	"github.com/edgard/tezbot/internal/config"
)

// MetadataField is one key/value pair of an account's metadata. The value
// shape is controlled entirely by the indexer: string, number or object.
type MetadataField struct {
	Key   string
	Value any
}

// Client talks to the TzKT API. A single attempt is made per call; the
// injected timeout bounds each request.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// New creates a TzKT client.
func New(cfg config.TzktConfig, timeout time.Duration, log *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log.With("component", "tzkt"),
	}
}

// AccountMetadata returns the metadata fields of an account in the order the
// indexer document lists them. An unknown address yields an API format error:
// the indexer responds with an empty or non-object body in that case.
func (c *Client) AccountMetadata(ctx context.Context, address string) ([]MetadataField, error) {
	body, err := c.get(ctx, fmt.Sprintf("/v1/accounts/%s/metadata", url.PathEscape(address)))
	if err != nil {
		return nil, err
	}

	fields, err := decodeOrderedObject(body)
	if err != nil {
		return nil, apperr.NewAPIFormatError("account metadata is not a JSON object", err)
	}

	c.log.DebugContext(ctx, "Fetched account metadata", "address", address, "fields", len(fields))
	return fields, nil
}

// Balance returns the account balance in mutez (micro-units of XTZ).
func (c *Client) Balance(ctx context.Context, address string) (int64, error) {
	body, err := c.get(ctx, fmt.Sprintf("/v1/accounts/%s/balance", url.PathEscape(address)))
	if err != nil {
		return 0, err
	}

	var balance int64
	if err := json.Unmarshal(body, &balance); err != nil {
		return 0, apperr.NewAPIFormatError("account balance is not an integer", err)
	}

	c.log.DebugContext(ctx, "Fetched account balance", "address", address, "mutez", balance)
	return balance, nil
}

// get performs a single GET request and returns the raw body.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("tzkt: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperr.NewNetworkError("tzkt request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperr.NewAPIFormatError(fmt.Sprintf("tzkt returned status %d", resp.StatusCode), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.NewNetworkError("tzkt response read failed", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, apperr.NewAPIFormatError("tzkt returned an empty body", nil)
	}

	return body, nil
}

// decodeOrderedObject walks the top-level JSON object with the token API so
// the document's key order survives the decode. Numbers stay json.Number to
// keep their literal representation when rendered.
func decodeOrderedObject(body []byte) ([]MetadataField, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	var fields []MetadataField
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", keyTok)
		}

		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}

		fields = append(fields, MetadataField{Key: key, Value: value})
	}

	return fields, nil
}
