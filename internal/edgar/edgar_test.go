package edgar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaideeprtx/nj-trades/internal/config"
)

const testUserAgent = "NJ Trades Test admin@example.com"

const submissionsJSON = `{
  "cik": "1067983",
  "name": "BERKSHIRE HATHAWAY INC",
  "tickers": ["BRK-B", "BRK-A"],
  "filings": {"recent": {
    "accessionNumber": ["0000950123-24-011775", "0000950170-24-012345", "0000950123-24-008740"],
    "filingDate": ["2024-11-14", "2024-11-04", "2024-08-14"],
    "reportDate": ["2024-09-30", "2024-09-30", "2024-06-30"],
    "form": ["13F-HR", "10-Q", "13F-HR"],
    "primaryDocument": ["xslForm13F_X02/primary_doc.xml", "brka-20240930.htm", "primary_doc.xml"]
  }}
}`

const infoTableJSONBody = `{"data": [
  {"nameOfIssuer": "APPLE INC", "cusip": "037833100", "value": "69900000", "shrsOrPrnAmt": {"sshPrnamt": 300000000}},
  {"ISSUER_NAME": "BANK AMER CORP", "CUSIP": "060505104", "VALUE": 31700000, "SHARES": "797,683,307"}
]}`

const infoTableXMLBody = `<?xml version="1.0" encoding="UTF-8"?>
<informationTable xmlns="http://www.sec.gov/edgar/document/thirteenf/informationtable">
  <infoTable>
    <nameOfIssuer>COCA COLA CO</nameOfIssuer>
    <cusip>191216100</cusip>
    <value>28664000</value>
    <shrsOrPrnAmt><sshPrnamt>400000000</sshPrnamt><sshPrnamtType>SH</sshPrnamtType></shrsOrPrnAmt>
  </infoTable>
</informationTable>`

const form4Atom = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
<title>Latest Filings</title>
<updated>2024-11-14T16:10:00-05:00</updated>
<entry>
<title>4 - APPLE INC (0000320193) (Issuer)</title>
<link rel="alternate" type="text/html" href="https://www.sec.gov/Archives/edgar/data/320193/000032019324000123-index.htm"/>
<summary type="html"> &lt;b&gt;Filed:&lt;/b&gt; 2024-11-14 &lt;b&gt;AccNo:&lt;/b&gt; 0000320193-24-000123</summary>
<updated>2024-11-14T16:05:12-05:00</updated>
<id>urn:tag:sec.gov,2008:accession-number=0000320193-24-000123</id>
</entry>
</feed>`

const tickersJSON = `{
  "0": {"cik_str": 320193, "ticker": "AAPL", "title": "Apple Inc."},
  "1": {"cik_str": 1067983, "ticker": "BRK-B", "title": "BERKSHIRE HATHAWAY INC"},
  "2": {"cik_str": 1067983, "ticker": "BRK-A", "title": "BERKSHIRE HATHAWAY INC"}
}`

type fakeEDGAR struct {
	*httptest.Server
	tickerHits atomic.Int32
}

func newFakeEDGAR(t *testing.T) *fakeEDGAR {
	t.Helper()
	f := &fakeEDGAR{}
	mux := http.NewServeMux()
	serve := func(body, contentType string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("User-Agent") != testUserAgent {
				http.Error(w, "undeclared automated tool", http.StatusForbidden)
				return
			}
			w.Header().Set("Content-Type", contentType)
			fmt.Fprint(w, body)
		}
	}
	mux.HandleFunc("/submissions/CIK0001067983.json", serve(submissionsJSON, "application/json"))
	mux.HandleFunc("/archives/1067983/000095012324011775/infotable.json", serve(infoTableJSONBody, "application/json"))
	// the August filing only has the XML rendering
	mux.HandleFunc("/archives/1067983/000095012324008740/index.json",
		serve(`{"directory": {"item": [{"name": "primary_doc.xml"}, {"name": "46994.xml"}, {"name": "0000950123-24-008740-index.htm"}]}}`, "application/json"))
	mux.HandleFunc("/archives/1067983/000095012324008740/46994.xml", serve(infoTableXMLBody, "application/xml"))
	mux.HandleFunc("/feed", serve(form4Atom, "application/atom+xml"))
	mux.HandleFunc("/tickers", func(w http.ResponseWriter, r *http.Request) {
		f.tickerHits.Add(1)
		serve(tickersJSON, "application/json")(w, r)
	})
	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Close)
	return f
}

func (f *fakeEDGAR) client(ua string) *Client {
	return New(config.SECConfig{
		UserAgent:      ua,
		DataURL:        f.URL,
		ArchivesURL:    f.URL + "/archives",
		Form4FeedURL:   f.URL + "/feed",
		TickersURL:     f.URL + "/tickers",
		RateLimit:      100,
		Timeout:        5 * time.Second,
		TickerCacheTTL: time.Hour,
	})
}

func TestLatestFiling(t *testing.T) {
	c := newFakeEDGAR(t).client(testUserAgent)

	sub, f, err := c.LatestFiling(context.Background(), "1067983", Form13FHR)
	require.NoError(t, err)
	assert.Equal(t, "BERKSHIRE HATHAWAY INC", sub.Name)
	assert.Equal(t, "0000950123-24-011775", f.AccessionNumber)
	assert.Equal(t, "000095012324011775", f.AccessionPath())
	assert.Equal(t, "2024-11-14", f.FilingDate)

	_, _, err = c.LatestFiling(context.Background(), "1067983", "13F-NT")
	assert.ErrorIs(t, err, ErrNoFiling)
}

func TestSubmissionsRequiresUserAgent(t *testing.T) {
	c := newFakeEDGAR(t).client("")
	_, err := c.Submissions(context.Background(), "1067983")
	require.Error(t, err)
	assert.False(t, IsNotFound(err))
}

func TestSubmissionsUnknownCIK(t *testing.T) {
	c := newFakeEDGAR(t).client(testUserAgent)
	_, err := c.Submissions(context.Background(), "42")
	assert.True(t, IsNotFound(err), "got %v", err)
}

func TestInfoTableJSON(t *testing.T) {
	c := newFakeEDGAR(t).client(testUserAgent)

	rows, err := c.InfoTable(context.Background(), "0001067983", Filing{AccessionNumber: "0000950123-24-011775"})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, InfoTableRow{NameOfIssuer: "APPLE INC", CUSIP: "037833100", Value: 69900000, Shares: 300000000}, rows[0])
	assert.Equal(t, InfoTableRow{NameOfIssuer: "BANK AMER CORP", CUSIP: "060505104", Value: 31700000, Shares: 797683307}, rows[1])
}

func TestInfoTableFallsBackToXML(t *testing.T) {
	c := newFakeEDGAR(t).client(testUserAgent)

	rows, err := c.InfoTable(context.Background(), "1067983", Filing{
		AccessionNumber: "0000950123-24-008740",
		PrimaryDocument: "primary_doc.xml",
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "COCA COLA CO", rows[0].NameOfIssuer)
	assert.Equal(t, "191216100", rows[0].CUSIP)
	assert.EqualValues(t, 28664000, rows[0].Value)
	assert.EqualValues(t, 400000000, rows[0].Shares)
}

func TestParseInfoTableXMLSkipsUnparsableRows(t *testing.T) {
	raw := `<informationTable>
  <infoTable><nameOfIssuer>GOOD</nameOfIssuer><cusip>191216100</cusip><value>1,000</value><shrsOrPrnAmt><sshPrnamt>10</sshPrnamt></shrsOrPrnAmt></infoTable>
  <infoTable><nameOfIssuer>BAD VALUE</nameOfIssuer><cusip>037833100</cusip><value>n/a</value><shrsOrPrnAmt><sshPrnamt>10</sshPrnamt></shrsOrPrnAmt></infoTable>
  <infoTable><nameOfIssuer>BAD SHARES</nameOfIssuer><cusip>060505104</cusip><value>5</value><shrsOrPrnAmt><sshPrnamt>ten</sshPrnamt></shrsOrPrnAmt></infoTable>
</informationTable>`
	rows, err := ParseInfoTableXML([]byte(raw))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, InfoTableRow{NameOfIssuer: "GOOD", CUSIP: "191216100", Value: 1000, Shares: 10}, rows[0])
}

func TestParseInfoTableXMLMalformed(t *testing.T) {
	_, err := ParseInfoTableXML([]byte("<informationTable><infoTable>"))
	assert.Error(t, err)
}

func TestCurrentForm4(t *testing.T) {
	c := newFakeEDGAR(t).client(testUserAgent)

	entries, err := c.CurrentForm4(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	e := entries[0]
	assert.Equal(t, "4 - APPLE INC (0000320193) (Issuer)", e.Title)
	assert.Equal(t, "Filed: 2024-11-14 AccNo: 0000320193-24-000123", e.Summary)
	assert.Contains(t, e.Link, "000032019324000123-index.htm")
	assert.Equal(t, "2024-11-14T21:05:12Z", e.Updated.UTC().Format(time.RFC3339))
}

func TestTickersIsCached(t *testing.T) {
	f := newFakeEDGAR(t)
	c := f.client(testUserAgent)
	ctx := context.Background()

	ix, err := c.Tickers(ctx)
	require.NoError(t, err)
	ticker, ok := ix.Lookup("1067983")
	require.True(t, ok)
	assert.Equal(t, "BRK-B", ticker, "first listing wins")

	ix, err = c.Tickers(ctx)
	require.NoError(t, err)
	ticker, ok = ix.Lookup("0000320193")
	assert.True(t, ok)
	assert.Equal(t, "AAPL", ticker)

	_, ok = ix.Lookup("1")
	assert.False(t, ok)

	assert.EqualValues(t, 1, f.tickerHits.Load())
}

func TestNilTickerIndexResolvesNothing(t *testing.T) {
	var ix TickerIndex
	_, ok := ix.Lookup("320193")
	assert.False(t, ok)
}

func TestFlexInt(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{`123`, 123},
		{`"1,234"`, 1234},
		{`"12.0"`, 12},
		{`null`, 0},
		{`""`, 0},
	}
	for _, tt := range tests {
		var f flexInt
		require.NoError(t, f.UnmarshalJSON([]byte(tt.in)), tt.in)
		assert.EqualValues(t, tt.want, f, tt.in)
	}

	var f flexInt
	assert.Error(t, f.UnmarshalJSON([]byte(`"abc"`)))
}

func TestRateLimitHonoursCancelledContext(t *testing.T) {
	c := newFakeEDGAR(t).client(testUserAgent)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// drain the bucket so the next call has to wait
	for i := 0; i < 100; i++ {
		_ = c.limiter.Wait(context.Background())
	}
	_, err := c.Submissions(ctx, "1067983")
	assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
}
