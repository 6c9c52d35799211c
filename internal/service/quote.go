package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"pushup-club/internal/logger"
	"pushup-club/internal/model"
)

const quoteTTL = 60 * time.Second

var ErrNoKey = errors.New("no api key configured")

// FinnhubClient fetches quotes from the finnhub /quote endpoint.
type FinnhubClient struct {
	baseURL string
	client  *http.Client
}

func NewFinnhubClient(baseURL string) *FinnhubClient {
	return &FinnhubClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

func (c *FinnhubClient) Quote(ctx context.Context, symbol, key string) (model.Quote, error) {
	if key == "" {
		return model.Quote{}, ErrNoKey
	}

	u := fmt.Sprintf("%s/quote?symbol=%s&token=%s",
		c.baseURL, url.QueryEscape(symbol), url.QueryEscape(key))
	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return model.Quote{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return model.Quote{}, fmt.Errorf("quote call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		data, _ := io.ReadAll(resp.Body)
		return model.Quote{}, fmt.Errorf("quote status %d: %s", resp.StatusCode, data)
	}

	var raw struct {
		C  float64 `json:"c"`
		D  float64 `json:"d"`
		Dp float64 `json:"dp"`
		Pc float64 `json:"pc"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return model.Quote{}, fmt.Errorf("decode quote: %w", err)
	}
	// finnhub answers all-zero for unknown symbols
	if raw.C == 0 && raw.Pc == 0 {
		return model.Quote{}, fmt.Errorf("no quote data for %s", symbol)
	}

	return model.Quote{
		Symbol:        symbol,
		Current:       raw.C,
		Change:        raw.D,
		PercentChange: raw.Dp,
		PreviousClose: raw.Pc,
	}, nil
}

type quoteEntry struct {
	quote model.Quote
	at    time.Time
}

// QuoteCache caches quotes per symbol for 60 seconds. A failed refresh falls
// back to the stale entry; only a symbol that has never been fetched surfaces
// the error.
type QuoteCache struct {
	mu      sync.Mutex
	entries map[string]quoteEntry
	client  *FinnhubClient
	keys    *KeyChain
	now     func() time.Time
}

func NewQuoteCache(client *FinnhubClient, keys *KeyChain) *QuoteCache {
	return &QuoteCache{
		entries: make(map[string]quoteEntry),
		client:  client,
		keys:    keys,
		now:     time.Now,
	}
}

func (q *QuoteCache) Get(ctx context.Context, symbol string) (model.Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	q.mu.Lock()
	entry, cached := q.entries[symbol]
	q.mu.Unlock()
	if cached && q.now().Sub(entry.at) < quoteTTL {
		return entry.quote, nil
	}

	key, _ := q.keys.Resolve()
	quote, err := q.client.Quote(ctx, symbol, key)
	if err != nil {
		if cached {
			logger.Warn("quote refresh failed, serving stale", "symbol", symbol, "err", err)
			return entry.quote, nil
		}
		return model.Quote{}, err
	}

	q.mu.Lock()
	q.entries[symbol] = quoteEntry{quote: quote, at: q.now()}
	q.mu.Unlock()
	return quote, nil
}
