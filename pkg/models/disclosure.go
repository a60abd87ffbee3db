package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Chamber of Congress a member sits in.
type Chamber string

const (
	ChamberHouse  Chamber = "House"
	ChamberSenate Chamber = "Senate"
)

// Party affiliation as reported on the disclosure.
type Party string

const (
	PartyDemocrat   Party = "D"
	PartyRepublican Party = "R"
)

// Congress transaction types.
const (
	CongressPurchase = "Purchase"
	CongressSale     = "Sale"
)

// Form-4 transaction codes.
const (
	InsiderPurchase = "P"
	InsiderSale     = "S"
)

// Institution is a 13F filer identified by its SEC CIK.
type Institution struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CIK       string    `gorm:"column:cik;size:10;uniqueIndex;not null" json:"cik"` // zero padded to 10 digits
	Name      string    `gorm:"not null" json:"name"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Institution) TableName() string { return "institutions" }

// Holding is one line of an institution's 13F information table for a quarter.
type Holding struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	InstitutionID   uint        `gorm:"not null;uniqueIndex:idx_holding_key,priority:1" json:"institution_id"`
	Institution     Institution `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	InstitutionName string      `gorm:"->;-:migration" json:"institution_name,omitempty"`
	Ticker          *string     `json:"ticker"`
	CUSIP           string      `gorm:"column:cusip;not null;uniqueIndex:idx_holding_key,priority:2" json:"cusip"`
	CompanyName     string      `json:"company_name"`
	Shares          int64       `json:"shares"`
	Value           int64       `json:"value"`                                                              // whole dollars
	Quarter         string      `gorm:"not null;uniqueIndex:idx_holding_key,priority:3;index" json:"quarter"` // e.g. "2024-Q3"
	FilingDate      string      `json:"filing_date"`
}

func (Holding) TableName() string { return "holdings" }

// CongressTrade is a periodic transaction report filed under the STOCK Act.
type CongressTrade struct {
	ID               uint    `gorm:"primaryKey" json:"id"`
	Member           string  `gorm:"not null;index" json:"member"`
	Chamber          Chamber `json:"chamber"`
	Party            Party   `json:"party"`
	State            string  `json:"state"`
	Ticker           *string `gorm:"index" json:"ticker"`
	AssetDescription string  `json:"asset_description"`
	TransactionType  string  `json:"transaction_type"`
	AmountRange      string  `json:"amount_range"` // bucketed, e.g. "$1,001 - $15,000"
	TransactionDate  string  `gorm:"index" json:"transaction_date"`
	DisclosureDate   string  `json:"disclosure_date"`
}

func (CongressTrade) TableName() string { return "congress_trades" }

// TickerOrEmpty returns the ticker or "" when unresolved.
func (t CongressTrade) TickerOrEmpty() string {
	if t.Ticker == nil {
		return ""
	}
	return *t.Ticker
}

func init() {
	// prices and totals are JSON numbers, as the dashboard charts them
	decimal.MarshalJSONWithoutQuotes = true
}

// InsiderTrade is a transaction reported on an SEC Form 4.
type InsiderTrade struct {
	ID              uint                `gorm:"primaryKey" json:"id"`
	Ticker          string              `gorm:"not null;index" json:"ticker"`
	CompanyName     string              `json:"company_name"`
	InsiderName     string              `json:"insider_name"`
	InsiderTitle    string              `json:"insider_title"`
	TransactionType string              `json:"transaction_type"`
	Shares          int64               `json:"shares"`
	PricePerShare   decimal.NullDecimal `gorm:"type:numeric" json:"price_per_share"`
	TotalValue      decimal.NullDecimal `gorm:"type:numeric" json:"total_value"`
	TransactionDate string              `json:"transaction_date"`
	FilingDate      string              `gorm:"index" json:"filing_date"`
	FilingURL       string              `json:"filing_url"`
}

func (InsiderTrade) TableName() string { return "insider_trades" }

// Stats is the one-row dashboard summary.
type Stats struct {
	InstitutionCount   int64 `json:"institution_count"`
	HoldingCount       int64 `json:"holding_count"`
	CongressTradeCount int64 `json:"congress_trade_count"`
	InsiderTradeCount  int64 `json:"insider_trade_count"`
}

// MemberActivity is a congress member with the number of trades on file.
type MemberActivity struct {
	Member     string  `json:"member"`
	Chamber    Chamber `json:"chamber"`
	Party      Party   `json:"party"`
	State      string  `json:"state"`
	TradeCount int64   `json:"trade_count"`
}

// TrendingTicker aggregates recent mentions of a ticker across sources.
type TrendingTicker struct {
	Ticker        string   `json:"ticker"`
	Sources       []string `json:"sources"`
	TotalMentions int64    `json:"totalMentions"`
}

// SearchHit is one row of a cross-source search.
type SearchHit struct {
	Type   string `json:"type"`
	Ticker string `json:"ticker"`
	Name   string `json:"name"`
	Source string `json:"source"`
	Value  string `json:"value"`
	Date   string `json:"date"`
}

// SearchResults groups search hits by source.
type SearchResults struct {
	Holdings []SearchHit `json:"holdings"`
	Congress []SearchHit `json:"congress"`
	Insider  []SearchHit `json:"insider"`
}

// InstitutionDetail is an institution with its latest quarter of holdings.
type InstitutionDetail struct {
	Institution
	Holdings []Holding `json:"holdings"`
}

// MemberValue is the estimated net dollar range traded by a member.
type MemberValue struct {
	Member     string `json:"member"`
	TotalMin   int64  `json:"totalMin"`
	TotalMax   int64  `json:"totalMax"`
	TradeCount int    `json:"tradeCount"`
}
