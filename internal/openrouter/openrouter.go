package openrouter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/truefrontier/openrouter-launch/internal/cache"
	"github.com/truefrontier/openrouter-launch/internal/catalog"
	"github.com/truefrontier/openrouter-launch/internal/httpclient"
)

const (
	// DefaultBaseURL is the OpenRouter REST API root.
	DefaultBaseURL = "https://openrouter.ai/api/v1"

	// KeyPrefix starts every OpenRouter API key.
	KeyPrefix = "sk-or-"

	freeSuffix = ":free"
	perMillion = 1_000_000
)

var (
	// ErrInvalidKey is returned when OpenRouter rejects an API key.
	ErrInvalidKey = errors.New("invalid API key")

	// ErrNoModels is returned when a models response has no usable entries.
	ErrNoModels = errors.New("no usable models in response")
)

// Client talks to the OpenRouter API.
type Client struct {
	baseURL   string
	modelsURL string
	http      *httpclient.Client
}

// New creates a client. An empty baseURL means DefaultBaseURL; an empty
// modelsURL means baseURL + "/models".
func New(baseURL, modelsURL string, client *httpclient.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")
	if modelsURL == "" {
		modelsURL = baseURL + "/models"
	}
	if client == nil {
		client = httpclient.New()
	}
	return &Client{baseURL: baseURL, modelsURL: modelsURL, http: client}
}

// /models response types.
type modelsResponse struct {
	Data []json.RawMessage `json:"data"`
}

type apiModel struct {
	ID      string   `json:"id"`
	Pricing *pricing `json:"pricing"`
}

type pricing struct {
	Prompt     price `json:"prompt"`
	Completion price `json:"completion"`
}

// price holds a per-token price. The API sends strings; numbers are
// accepted too. Any other JSON value decodes as empty, which drops the entry
// instead of the whole response.
type price string

func (p *price) UnmarshalJSON(data []byte) error {
	*p = ""
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*p = price(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*p = price(n.String())
	}
	return nil
}

// FetchModels downloads the model list and returns it as sorted cache lines
// (identifier|inputPrice|outputPrice, prices per million tokens). Free-tier
// variants and entries without full pricing are dropped. The request is made
// once and is not authenticated.
func (c *Client) FetchModels(ctx context.Context) ([]string, error) {
	resp, err := c.http.Get(ctx, c.modelsURL, map[string]string{"Accept": "application/json"})
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching models: unexpected status %d", resp.StatusCode)
	}

	lines, err := ParseModels(resp.Body)
	if err != nil {
		return nil, err
	}

	slog.Debug("openrouter models fetched", "url", c.modelsURL, "models", len(lines))
	return lines, nil
}

// ParseModels converts a /models payload into sorted cache lines.
func ParseModels(body []byte) ([]string, error) {
	var mr modelsResponse
	if err := json.Unmarshal(body, &mr); err != nil {
		return nil, fmt.Errorf("parsing models response: %w", err)
	}
	if mr.Data == nil {
		return nil, fmt.Errorf("parsing models response: missing data list")
	}

	lines := make([]string, 0, len(mr.Data))
	for _, raw := range mr.Data {
		var am apiModel
		if err := json.Unmarshal(raw, &am); err != nil {
			slog.Debug("skipping malformed model entry", "error", err)
			continue
		}
		m, ok := toModel(am)
		if !ok {
			continue
		}
		lines = append(lines, cache.FormatLine(m))
	}
	if len(lines) == 0 {
		return nil, ErrNoModels
	}

	sort.Strings(lines)
	return lines, nil
}

func toModel(am apiModel) (catalog.Model, bool) {
	if am.ID == "" || am.Pricing == nil || am.Pricing.Prompt == "" || am.Pricing.Completion == "" {
		return catalog.Model{}, false
	}
	if strings.HasSuffix(am.ID, freeSuffix) {
		return catalog.Model{}, false
	}
	in, ok := perMillionPrice(am.Pricing.Prompt)
	if !ok {
		return catalog.Model{}, false
	}
	out, ok := perMillionPrice(am.Pricing.Completion)
	if !ok {
		return catalog.Model{}, false
	}
	return catalog.Model{ID: am.ID, InputPrice: in, OutputPrice: out}, true
}

// perMillionPrice converts a per-token price. Negative prices mark dynamic
// routers such as openrouter/auto and are rejected.
func perMillionPrice(p price) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(string(p)), 64)
	if err != nil {
		return 0, false
	}
	v *= perMillion
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return v, true
}

// ValidKeyFormat reports whether key looks like an OpenRouter API key.
func ValidKeyFormat(key string) bool {
	return strings.HasPrefix(key, KeyPrefix)
}

// ValidateKey checks key against the /auth/key endpoint.
func (c *Client) ValidateKey(ctx context.Context, key string) error {
	headers := map[string]string{
		"Authorization": "Bearer " + key,
	}

	resp, err := c.http.Get(ctx, c.baseURL+"/auth/key", headers)
	if err != nil {
		var se *httpclient.StatusError
		if errors.As(err, &se) {
			if se.StatusCode == http.StatusUnauthorized {
				return ErrInvalidKey
			}
			return fmt.Errorf("unexpected response from OpenRouter (HTTP %d)", se.StatusCode)
		}
		return fmt.Errorf("could not connect to OpenRouter API: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected response from OpenRouter (HTTP %d)", resp.StatusCode)
	}
	return nil
}
