package edgar

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jaideeprtx/nj-trades/pkg/utils"
)

const tickersCacheKey = "company_tickers"

// tickerEntry is a row from company_tickers.json: {"0": {cik_str, ticker, title}, ...}
type tickerEntry struct {
	CIK    flexInt `json:"cik_str"`
	Ticker string  `json:"ticker"`
	Title  string  `json:"title"`
}

// TickerIndex maps padded issuer CIKs to their primary ticker.
type TickerIndex map[string]string

// Lookup resolves an issuer CIK. ok is false when EDGAR lists no ticker for
// the CIK. A nil index resolves nothing.
func (ix TickerIndex) Lookup(cik string) (ticker string, ok bool) {
	ticker, ok = ix[utils.PadCIK(cik)]
	return ticker, ok
}

// Tickers returns the CIK to ticker index from company_tickers.json. The
// index is cached for the configured TTL.
func (c *Client) Tickers(ctx context.Context) (TickerIndex, error) {
	if m, ok := c.tickers.Get(tickersCacheKey); ok {
		return m, nil
	}

	var raw map[string]tickerEntry
	if err := c.getJSON(ctx, c.cfg.TickersURL, &raw); err != nil {
		return nil, fmt.Errorf("fetch company tickers: %w", err)
	}

	// The file is ordered by market value, so the first ticker seen for a CIK
	// is its primary listing.
	keys := make([]int, 0, len(raw))
	for k := range raw {
		if n, err := strconv.Atoi(k); err == nil {
			keys = append(keys, n)
		}
	}
	sort.Ints(keys)

	m := make(TickerIndex, len(raw))
	for _, k := range keys {
		e := raw[strconv.Itoa(k)]
		cik := utils.PadCIK(strconv.FormatInt(int64(e.CIK), 10))
		if _, seen := m[cik]; !seen && e.Ticker != "" {
			m[cik] = strings.ToUpper(e.Ticker)
		}
	}
	c.tickers.Set(tickersCacheKey, m)
	return m, nil
}
