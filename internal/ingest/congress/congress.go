// Package congress ingests congressional periodic transaction reports. The
// trades are generated from a fixture dataset; real House/Senate scraping is
// out of scope.
package congress

import (
	"context"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jaideeprtx/nj-trades/internal/ingest"
	"github.com/jaideeprtx/nj-trades/pkg/models"
	"github.com/jaideeprtx/nj-trades/pkg/utils"
)

// Store is the write side the adapter needs.
type Store interface {
	InsertCongressTrade(ctx context.Context, t *models.CongressTrade) (bool, error)
}

// Options controls trade generation.
type Options struct {
	RandomTrades int   // generated on top of the notable trades
	WindowDays   int   // transaction dates fall within this many days before now
	Seed         int64 // 0 picks a time-based seed
	Now          func() time.Time
}

// Adapter loads a fixed set of generated trades. The set is built once at
// construction, so repeated fetches only report rows the store has not seen.
type Adapter struct {
	store  Store
	trades []models.CongressTrade
	log    *zap.Logger
}

var _ ingest.Adapter = (*Adapter)(nil)

// New builds the adapter and generates its trades from ds.
func New(store Store, ds Dataset, opts Options, log *zap.Logger) *Adapter {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	seed := opts.Seed
	if seed == 0 {
		seed = opts.Now().UnixNano()
	}
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1|1))
	return &Adapter{
		store:  store,
		trades: Generate(ds, rng, opts.Now(), opts.RandomTrades, opts.WindowDays),
		log:    log.With(zap.String("source", string(ingest.SourceCongress))),
	}
}

func (a *Adapter) Source() ingest.Source { return ingest.SourceCongress }

// Fetch writes every candidate and returns the newly stored ones.
func (a *Adapter) Fetch(ctx context.Context) (ingest.Result, error) {
	res := ingest.Result{Source: ingest.SourceCongress, Fetched: len(a.trades)}
	created := make([]models.CongressTrade, 0)

	var attempted, failures int
	var lastErr error
	for i := range a.trades {
		trade := a.trades[i]
		if err := Validate(&trade); err != nil {
			a.log.Debug("dropping congress trade", zap.String("member", trade.Member), zap.Error(err))
			res.Dropped++
			continue
		}
		attempted++
		ok, err := a.store.InsertCongressTrade(ctx, &trade)
		if err != nil {
			a.log.Warn("storing congress trade", zap.String("member", trade.Member), zap.Error(err))
			failures++
			lastErr = err
			continue
		}
		if ok {
			created = append(created, trade)
		}
	}

	res.Created = len(created)
	res.Records = created
	a.log.Info("loaded congress trades", zap.Int("candidates", res.Fetched), zap.Int("new", res.Created))

	if attempted > 0 && failures == attempted {
		return res, ingest.Unavailable(ingest.SourceCongress, lastErr)
	}
	return res, nil
}

// Generate returns the notable trades followed by n random trades with
// transaction dates in the last windowDays days and disclosure 15-44 days
// after the transaction.
func Generate(ds Dataset, rng *rand.Rand, now time.Time, n, windowDays int) []models.CongressTrade {
	trades := make([]models.CongressTrade, 0, len(ds.Notable)+n)
	for _, nt := range ds.Notable {
		trades = append(trades, models.CongressTrade{
			Member:           nt.Member.Name,
			Chamber:          nt.Member.Chamber,
			Party:            nt.Member.Party,
			State:            nt.Member.State,
			Ticker:           utils.StringPtr(nt.Ticker),
			AssetDescription: nt.Asset,
			TransactionType:  nt.TransactionType,
			AmountRange:      nt.AmountRange,
			TransactionDate:  nt.TransactionDate,
			DisclosureDate:   nt.DisclosureDate,
		})
	}
	if len(ds.Members) == 0 || len(ds.Stocks) == 0 || len(ds.AmountRanges) == 0 || windowDays <= 0 {
		return trades
	}

	today := now.UTC()
	for i := 0; i < n; i++ {
		m := ds.Members[rng.IntN(len(ds.Members))]
		s := ds.Stocks[rng.IntN(len(ds.Stocks))]
		txType := models.CongressSale
		if rng.Float64() > 0.45 {
			txType = models.CongressPurchase
		}
		amount := ds.AmountRanges[rng.IntN(len(ds.AmountRanges))]
		txDate := today.AddDate(0, 0, -rng.IntN(windowDays))
		disclosed := txDate.AddDate(0, 0, 15+rng.IntN(30))

		trades = append(trades, models.CongressTrade{
			Member:           m.Name,
			Chamber:          m.Chamber,
			Party:            m.Party,
			State:            m.State,
			Ticker:           utils.StringPtr(s.Ticker),
			AssetDescription: s.Name,
			TransactionType:  txType,
			AmountRange:      amount,
			TransactionDate:  utils.FormatDate(txDate),
			DisclosureDate:   utils.FormatDate(disclosed),
		})
	}
	return trades
}

// Validate checks the fields a stored congress trade must carry.
func Validate(t *models.CongressTrade) error {
	ticker := utils.NormalizeTicker(t.TickerOrEmpty())
	switch {
	case strings.TrimSpace(t.Member) == "":
		return fmt.Errorf("missing member")
	case ticker == "":
		return fmt.Errorf("missing ticker")
	case t.TransactionType != models.CongressPurchase && t.TransactionType != models.CongressSale:
		return fmt.Errorf("invalid transaction type %q", t.TransactionType)
	}
	if _, err := time.Parse(utils.DateLayout, t.TransactionDate); err != nil {
		return fmt.Errorf("invalid transaction date: %w", err)
	}
	if _, err := time.Parse(utils.DateLayout, t.DisclosureDate); err != nil {
		return fmt.Errorf("invalid disclosure date: %w", err)
	}
	t.Ticker = &ticker
	return nil
}

var amountRangeRe = regexp.MustCompile(`\$?([\d,]+)\s*-\s*\$?([\d,]+)`)

// ParseAmountRange extracts the bounds of a bucket such as
// "$1,001 - $15,000". ok is false when the text has no range.
func ParseAmountRange(s string) (min, max int64, ok bool) {
	m := amountRangeRe.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, false
	}
	lo, err1 := strconv.ParseInt(strings.ReplaceAll(m[1], ",", ""), 10, 64)
	hi, err2 := strconv.ParseInt(strings.ReplaceAll(m[2], ",", ""), 10, 64)
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return lo, hi, true
}

// MemberValue estimates the net dollar range a member traded. Purchases add
// their bucket, sales subtract it. Unparseable buckets count as zero.
func MemberValue(member string, trades []models.CongressTrade) models.MemberValue {
	v := models.MemberValue{Member: member, TradeCount: len(trades)}
	for _, t := range trades {
		lo, hi, _ := ParseAmountRange(t.AmountRange)
		if t.TransactionType == models.CongressPurchase {
			v.TotalMin += lo
			v.TotalMax += hi
		} else {
			v.TotalMin -= hi
			v.TotalMax -= lo
		}
	}
	return v
}
