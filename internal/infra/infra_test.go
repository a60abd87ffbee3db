package infra

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheExpiry(t *testing.T) {
	c := NewCache[map[string]string](time.Minute)
	now := time.Date(2024, 11, 14, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Set("tickers", map[string]string{"320193": "AAPL"})
	got, ok := c.Get("tickers")
	require.True(t, ok)
	assert.Equal(t, "AAPL", got["320193"])

	now = now.Add(2 * time.Minute)
	_, ok = c.Get("tickers")
	assert.False(t, ok, "entry should expire after the TTL")
}

func TestRateLimiterHonoursContext(t *testing.T) {
	rl := NewRateLimiter(1, time.Hour)
	require.NoError(t, rl.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := rl.Wait(ctx)
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "got %v", err)
}

func TestPerSecondAllowsBurst(t *testing.T) {
	rl := PerSecond(5)
	start := time.Now()
	for i := 0; i < 5; i++ {
		require.NoError(t, rl.Wait(context.Background()))
	}
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestDoGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "NJ Trades Test" {
			w.WriteHeader(http.StatusForbidden)
			io.WriteString(w, "missing user agent")
			return
		}
		io.WriteString(w, "ok")
	}))
	defer srv.Close()

	body, status, err := DoGet(context.Background(), srv.Client(), srv.URL, map[string]string{"User-Agent": "NJ Trades Test"})
	require.NoError(t, err)
	defer body.Close()
	data, _ := io.ReadAll(body)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", string(data))

	_, status, err = DoGet(context.Background(), srv.Client(), srv.URL, nil)
	var httpErr *ErrHTTP
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "missing user agent", httpErr.Body)
}
