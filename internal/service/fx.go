package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"pushup-club/internal/logger"
)

const fxTTL = 300 * time.Second

// FXClient fetches the USD->KRW rate from the open exchange-rate API.
type FXClient struct {
	baseURL string
	client  *http.Client
}

func NewFXClient(baseURL string) *FXClient {
	return &FXClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

func (c *FXClient) USDKRW(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/latest/USD", nil)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fx call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		data, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("fx status %d: %s", resp.StatusCode, data)
	}

	var raw struct {
		Result string             `json:"result"`
		Rates  map[string]float64 `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return 0, fmt.Errorf("decode fx: %w", err)
	}
	rate, ok := raw.Rates["KRW"]
	if raw.Result != "success" || !ok || rate <= 0 {
		return 0, fmt.Errorf("fx result %q has no KRW rate", raw.Result)
	}
	return rate, nil
}

// FXCache holds a single USD->KRW entry for 5 minutes. A failed refresh falls
// back to the stale rate; the configured fallback rate is used only when no
// rate was ever fetched.
type FXCache struct {
	mu       sync.Mutex
	rate     float64
	at       time.Time
	client   *FXClient
	fallback float64
	now      func() time.Time
}

func NewFXCache(client *FXClient, fallback float64) *FXCache {
	return &FXCache{client: client, fallback: fallback, now: time.Now}
}

func (f *FXCache) Rate(ctx context.Context) float64 {
	f.mu.Lock()
	rate, at := f.rate, f.at
	f.mu.Unlock()
	if rate > 0 && f.now().Sub(at) < fxTTL {
		return rate
	}

	fresh, err := f.client.USDKRW(ctx)
	if err != nil {
		if rate > 0 {
			logger.Warn("fx refresh failed, serving stale", "err", err)
			return rate
		}
		logger.Warn("fx unavailable, using fallback rate", "rate", f.fallback, "err", err)
		return f.fallback
	}

	f.mu.Lock()
	f.rate, f.at = fresh, f.now()
	f.mu.Unlock()
	return fresh
}
