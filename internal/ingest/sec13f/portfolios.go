package sec13f

import (
	"maps"
	"slices"
)

// DemoHolding is one position of a sample portfolio.
type DemoHolding struct {
	Ticker  string
	Company string
	Shares  int64
	Value   int64 // whole dollars
}

// DemoPortfolio is an institution with illustrative holdings.
type DemoPortfolio struct {
	CIK      string
	Name     string
	Holdings []DemoHolding
}

// Sample portfolios are stored as of this quarter and filing date.
const (
	DemoQuarter    = "2024-Q3"
	DemoFilingDate = "2024-11-14"
)

// Fixtures is the reference data the 13F adapter and the sample seed work
// from.
type Fixtures struct {
	Portfolios   []DemoPortfolio   // tracked institutions and their sample holdings
	CUSIPTickers map[string]string // CUSIP to ticker for common large caps
}

// DefaultFixtures returns a fresh copy of the bundled fixtures.
func DefaultFixtures() Fixtures {
	return Fixtures{
		Portfolios:   copyPortfolios(defaultPortfolios),
		CUSIPTickers: maps.Clone(defaultCUSIPTickers),
	}
}

func copyPortfolios(src []DemoPortfolio) []DemoPortfolio {
	out := make([]DemoPortfolio, len(src))
	for i, p := range src {
		out[i] = p
		out[i].Holdings = slices.Clone(p.Holdings)
	}
	return out
}

var defaultPortfolios = []DemoPortfolio{
	{
		CIK:      "0001067983",
		Name:     "Berkshire Hathaway",
		Holdings: []DemoHolding{
			{"AAPL", "Apple Inc", 915560382, 157400000000},
			{"BAC", "Bank of America", 1032852006, 33800000000},
			{"AXP", "American Express", 151610700, 28400000000},
			{"KO", "Coca-Cola Co", 400000000, 25200000000},
			{"CVX", "Chevron Corp", 118610534, 19200000000},
			{"OXY", "Occidental Petroleum", 248018128, 14900000000},
		},
	},
	{
		CIK:      "0001350694",
		Name:     "Bridgewater Associates",
		Holdings: []DemoHolding{
			{"SPY", "SPDR S&P 500 ETF", 23500000, 11200000000},
			{"VWO", "Vanguard Emerging Markets", 145000000, 6300000000},
			{"IEMG", "iShares Emerging Markets", 98000000, 4900000000},
			{"GLD", "SPDR Gold Trust", 18000000, 3600000000},
			{"PG", "Procter & Gamble", 15000000, 2500000000},
		},
	},
	{
		CIK:      "0001423053",
		Name:     "Citadel Advisors",
		Holdings: []DemoHolding{
			{"NVDA", "NVIDIA Corporation", 8500000, 4200000000},
			{"META", "Meta Platforms", 5200000, 2900000000},
			{"TSLA", "Tesla Inc", 7800000, 1950000000},
			{"AMZN", "Amazon.com", 9500000, 1800000000},
			{"GOOGL", "Alphabet Inc", 11000000, 1650000000},
			{"MSFT", "Microsoft Corp", 4100000, 1600000000},
		},
	},
	{
		CIK:      "0001037389",
		Name:     "Renaissance Technologies",
		Holdings: []DemoHolding{
			{"NVDA", "NVIDIA Corporation", 2800000, 1400000000},
			{"NOVO", "Novo Nordisk", 9500000, 1100000000},
			{"META", "Meta Platforms", 1800000, 1000000000},
			{"AAPL", "Apple Inc", 4200000, 950000000},
			{"V", "Visa Inc", 3100000, 850000000},
		},
	},
	{
		CIK:      "0001336528",
		Name:     "Pershing Square Capital",
		Holdings: []DemoHolding{
			{"GOOG", "Alphabet Inc Class C", 6800000, 1020000000},
			{"HLT", "Hilton Worldwide", 7200000, 1500000000},
			{"CMG", "Chipotle Mexican Grill", 320000, 980000000},
			{"LOW", "Lowes Companies", 3800000, 950000000},
			{"QSR", "Restaurant Brands Intl", 12000000, 850000000},
		},
	},
	{
		CIK:      "0001061768",
		Name:     "Soros Fund Management",
		Holdings: []DemoHolding{
			{"RIVN", "Rivian Automotive", 28000000, 420000000},
			{"SPOT", "Spotify Technology", 950000, 285000000},
			{"SHOP", "Shopify Inc", 2800000, 250000000},
			{"SE", "Sea Limited", 3500000, 210000000},
		},
	},
	{
		CIK:      "0001364940",
		Name:     "BlackRock Inc",
		Holdings: []DemoHolding{
			{"AAPL", "Apple Inc", 1100000000, 189000000000},
			{"MSFT", "Microsoft Corp", 750000000, 290000000000},
			{"AMZN", "Amazon.com", 180000000, 34000000000},
			{"NVDA", "NVIDIA Corporation", 95000000, 47000000000},
			{"META", "Meta Platforms", 42000000, 23000000000},
		},
	},
	{
		CIK:      "0001166559",
		Name:     "Vanguard Group",
		Holdings: []DemoHolding{
			{"AAPL", "Apple Inc", 1350000000, 232000000000},
			{"MSFT", "Microsoft Corp", 880000000, 340000000000},
			{"GOOGL", "Alphabet Inc", 160000000, 24000000000},
			{"AMZN", "Amazon.com", 210000000, 40000000000},
			{"TSLA", "Tesla Inc", 125000000, 31000000000},
		},
	},
	{
		CIK:      "0001535392",
		Name:     "Point72 Asset Management",
		Holdings: []DemoHolding{
			{"MSFT", "Microsoft Corp", 2100000, 810000000},
			{"NVDA", "NVIDIA Corporation", 1500000, 750000000},
			{"AMZN", "Amazon.com", 3200000, 610000000},
			{"GOOGL", "Alphabet Inc", 3800000, 570000000},
			{"META", "Meta Platforms", 850000, 475000000},
		},
	},
	{
		CIK:      "0001167483",
		Name:     "D.E. Shaw & Co",
		Holdings: []DemoHolding{
			{"NVDA", "NVIDIA Corporation", 3200000, 1600000000},
			{"MSFT", "Microsoft Corp", 3500000, 1350000000},
			{"META", "Meta Platforms", 2100000, 1170000000},
			{"GOOGL", "Alphabet Inc", 6500000, 975000000},
			{"AMZN", "Amazon.com", 4800000, 915000000},
		},
	},
	{
		CIK:      "0001364742",
		Name:     "Two Sigma Investments",
		Holdings: []DemoHolding{
			{"AAPL", "Apple Inc", 4500000, 775000000},
			{"AMZN", "Amazon.com", 3800000, 725000000},
			{"MSFT", "Microsoft Corp", 1800000, 695000000},
			{"NVDA", "NVIDIA Corporation", 1200000, 600000000},
			{"META", "Meta Platforms", 950000, 530000000},
		},
	},
	{
		CIK:      "0001061219",
		Name:     "ARK Investment Management",
		Holdings: []DemoHolding{
			{"TSLA", "Tesla Inc", 12500000, 3100000000},
			{"COIN", "Coinbase Global", 8500000, 2100000000},
			{"ROKU", "Roku Inc", 11000000, 1050000000},
			{"SQ", "Block Inc", 9200000, 760000000},
			{"PATH", "UiPath Inc", 32000000, 450000000},
			{"RBLX", "Roblox Corp", 8500000, 380000000},
		},
	},
}

var defaultCUSIPTickers = map[string]string{
	"037833100": "AAPL",
	"594918104": "MSFT",
	"02079K305": "GOOGL",
	"02079K107": "GOOG",
	"30303M102": "META",
	"023135106": "AMZN",
	"67066G104": "NVDA",
	"88160R101": "TSLA",
	"084670702": "BRK.B",
	"46625H100": "JPM",
	"92826C839": "V",
	"254687106": "DIS",
	"478160104": "JNJ",
	"742718109": "PG",
	"931142103": "WMT",
}
