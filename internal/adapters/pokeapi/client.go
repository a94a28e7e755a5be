package pokeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/pokedex-cli/internal/domain"
	"github.com/bnema/pokedex-cli/internal/ports"
)

const (
	DefaultBaseURL = "https://pokeapi.co/api/v2"
	DefaultTimeout = 10 * time.Second

	maxResponseBytes = 8 << 20
	userAgent        = "pdx/pokeapi"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

var _ ports.PokemonAPI = (*Client)(nil)

type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout bounds every individual request. Non-positive values keep the default.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		timeout:    DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) GetPokemon(ctx context.Context, ref string) (ports.PokemonRecord, error) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	if ref == "" {
		return ports.PokemonRecord{}, fmt.Errorf("%w: empty reference", domain.ErrPokemonNotFound)
	}

	var payload pokemonPayload
	if err := c.getJSON(ctx, c.baseURL+"/pokemon/"+url.PathEscape(ref), &payload); err != nil {
		return ports.PokemonRecord{}, fmt.Errorf("get pokemon %q: %w", ref, err)
	}
	if payload.ID <= 0 || payload.Name == "" {
		return ports.PokemonRecord{}, fmt.Errorf("get pokemon %q: %w", ref, domain.ErrPokemonNotFound)
	}

	sprites, err := decodeSprites(payload.Sprites)
	if err != nil {
		return ports.PokemonRecord{}, fmt.Errorf("get pokemon %q: decode sprites: %w", ref, err)
	}

	return payload.toRecord(sprites), nil
}

func (c *Client) ListPokemon(ctx context.Context, limit, offset int) (ports.IndexPage, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))

	page, err := c.getIndexPage(ctx, c.baseURL+"/pokemon/?"+q.Encode())
	if err != nil {
		return ports.IndexPage{}, fmt.Errorf("list pokemon limit=%d offset=%d: %w", limit, offset, err)
	}

	return page, nil
}

func (c *Client) GetIndexPage(ctx context.Context, pageURL string) (ports.IndexPage, error) {
	page, err := c.getIndexPage(ctx, pageURL)
	if err != nil {
		return ports.IndexPage{}, fmt.Errorf("get index page: %w", err)
	}

	return page, nil
}

func (c *Client) GetDamageRelations(ctx context.Context, typeURL string) (domain.DamageRelations, error) {
	var payload typePayload
	if err := c.getJSON(ctx, typeURL, &payload); err != nil {
		return domain.DamageRelations{}, fmt.Errorf("get damage relations %s: %w", typeURL, err)
	}

	return payload.DamageRelations, nil
}

func (c *Client) GetSpecies(ctx context.Context, id int) (ports.SpeciesRecord, error) {
	var payload speciesPayload
	if err := c.getJSON(ctx, fmt.Sprintf("%s/pokemon-species/%d/", c.baseURL, id), &payload); err != nil {
		return ports.SpeciesRecord{}, fmt.Errorf("get species %d: %w", id, err)
	}

	entries := make([]ports.FlavorTextEntry, 0, len(payload.FlavorTextEntries))
	for _, entry := range payload.FlavorTextEntries {
		entries = append(entries, ports.FlavorTextEntry{
			Text:     entry.FlavorText,
			Language: entry.Language.Name,
		})
	}

	return ports.SpeciesRecord{FlavorTextEntries: entries}, nil
}

func (c *Client) getIndexPage(ctx context.Context, pageURL string) (ports.IndexPage, error) {
	var payload indexPayload
	if err := c.getJSON(ctx, pageURL, &payload); err != nil {
		return ports.IndexPage{}, err
	}

	page := ports.IndexPage{
		Count:   payload.Count,
		Results: payload.Results,
	}
	if payload.Next != nil {
		page.Next = *payload.Next
	}
	if payload.Previous != nil {
		page.Previous = *payload.Previous
	}
	if page.Results == nil {
		page.Results = []domain.PokemonSummary{}
	}

	return page, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	request.Header.Set("Accept", "application/json")
	request.Header.Set("User-Agent", userAgent)

	response, err := c.httpClient.Do(request)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: timed out after %s", domain.ErrUpstream, c.timeout)
		}
		return fmt.Errorf("%w: perform request: %v", domain.ErrUpstream, err)
	}
	defer func() { _ = response.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: read response: %v", domain.ErrUpstream, err)
	}

	if response.StatusCode == http.StatusNotFound {
		return domain.ErrPokemonNotFound
	}
	if response.StatusCode < 200 || response.StatusCode > 299 {
		return fmt.Errorf("%w: status %d: %s", domain.ErrUpstream, response.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decode payload: %v", domain.ErrUpstream, err)
	}

	return nil
}

// decodeSprites walks the sprites object in document order so the string-valued
// fields keep their upstream ordering.
func decodeSprites(raw json.RawMessage) ([]ports.SpriteField, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("sprites must be an object, got %v", tok)
	}

	fields := make([]ports.SpriteField, 0, 10)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected sprite key %v", keyTok)
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("sprite %q: %w", key, err)
		}

		field := ports.SpriteField{Key: key}
		if len(value) > 0 && value[0] == '"' {
			if err := json.Unmarshal(value, &field.Value); err != nil {
				return nil, fmt.Errorf("sprite %q: %w", key, err)
			}
			field.IsString = true
		}
		fields = append(fields, field)
	}

	return fields, nil
}
