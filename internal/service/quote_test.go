package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticKey string

func (s staticKey) Lookup() (string, string) { return string(s), "test" }

func newQuoteServer(calls *atomic.Int32, body string, status int) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
}

func TestQuoteCacheHitWithinTTL(t *testing.T) {
	var calls atomic.Int32
	srv := newQuoteServer(&calls, `{"c":123.45,"d":1.5,"dp":1.23,"pc":121.95}`, 200)
	defer srv.Close()

	cache := NewQuoteCache(NewFinnhubClient(srv.URL), NewKeyChain(staticKey("k")))

	q1, err := cache.Get(context.Background(), "aapl")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", q1.Symbol)
	assert.Equal(t, 123.45, q1.Current)
	assert.Equal(t, 121.95, q1.PreviousClose)

	q2, err := cache.Get(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, q1, q2)
	assert.Equal(t, int32(1), calls.Load())
}

func TestQuoteCacheRefreshAfterTTL(t *testing.T) {
	var calls atomic.Int32
	srv := newQuoteServer(&calls, `{"c":123.45,"d":1.5,"dp":1.23,"pc":121.95}`, 200)
	defer srv.Close()

	cache := NewQuoteCache(NewFinnhubClient(srv.URL), NewKeyChain(staticKey("k")))
	base := time.Now()
	cache.now = func() time.Time { return base }

	_, err := cache.Get(context.Background(), "AAPL")
	require.NoError(t, err)

	cache.now = func() time.Time { return base.Add(61 * time.Second) }
	_, err = cache.Get(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestQuoteCacheStaleFallback(t *testing.T) {
	var calls atomic.Int32
	srv := newQuoteServer(&calls, `{"c":123.45,"d":1.5,"dp":1.23,"pc":121.95}`, 200)

	cache := NewQuoteCache(NewFinnhubClient(srv.URL), NewKeyChain(staticKey("k")))
	base := time.Now()
	cache.now = func() time.Time { return base }

	q1, err := cache.Get(context.Background(), "AAPL")
	require.NoError(t, err)

	srv.Close() // provider goes dark
	cache.now = func() time.Time { return base.Add(2 * time.Minute) }

	q2, err := cache.Get(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, q1, q2)
}

func TestQuoteNeverFetchedFails(t *testing.T) {
	var calls atomic.Int32
	srv := newQuoteServer(&calls, `oops`, 500)
	defer srv.Close()

	cache := NewQuoteCache(NewFinnhubClient(srv.URL), NewKeyChain(staticKey("k")))
	_, err := cache.Get(context.Background(), "AAPL")
	assert.Error(t, err)
}

func TestQuoteUnknownSymbol(t *testing.T) {
	var calls atomic.Int32
	srv := newQuoteServer(&calls, `{"c":0,"d":0,"dp":0,"pc":0}`, 200)
	defer srv.Close()

	client := NewFinnhubClient(srv.URL)
	_, err := client.Quote(context.Background(), "NOPE", "k")
	assert.ErrorContains(t, err, "no quote data")
}

func TestQuoteWithoutKey(t *testing.T) {
	client := NewFinnhubClient("http://localhost:0")
	_, err := client.Quote(context.Background(), "AAPL", "")
	assert.ErrorIs(t, err, ErrNoKey)
}
