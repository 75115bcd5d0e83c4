// Package ratefeed polls CoinGecko and publishes fresh rate snapshots for
// every tradeable pair. The published rate already carries the exchange's
// profit margin, so the quote engine never needs to know about it.
package ratefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/olegmos-dev/crypto_exchange_app/internal/core/ports/services"
	"github.com/olegmos-dev/crypto_exchange_app/internal/platform/metrics"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
)

const sourceName = "coingecko"

// crossRateScale is the precision of a computed cross rate before the margin
// is applied.
const crossRateScale = 18

var oneHundred = decimal.NewFromInt(100)

// Instrument maps a registry currency code onto the CoinGecko asset and the
// fiat leg its price is quoted in.
type Instrument struct {
	CurrencyCode string
	AssetID      string // CoinGecko asset id, e.g. "bitcoin"
	VsCurrency   string // fiat leg the asset is priced in, e.g. "usd"
	// Fiat marks registry codes that ARE the fiat leg (e.g. a RUB payout
	// rail): their USD price is derived from the tether cross instead of a
	// direct listing.
	Fiat bool
}

// DefaultInstruments covers the launch set: TRC20 tether, bitcoin and the RUB
// card payout rail.
func DefaultInstruments() []Instrument {
	return []Instrument{
		{CurrencyCode: "USDT_TRC20", AssetID: "tether", VsCurrency: "usd"},
		{CurrencyCode: "BTC", AssetID: "bitcoin", VsCurrency: "usd"},
		{CurrencyCode: "RUB_TBANK", AssetID: "tether", VsCurrency: "rub", Fiat: true},
	}
}

// Config tunes one Feed.
type Config struct {
	BaseURL        string
	Interval       time.Duration
	RequestTimeout time.Duration
	ProfitPercent  decimal.Decimal // margin subtracted from every published rate
	Instruments    []Instrument
}

// Feed is the background rate poller.
type Feed struct {
	rateService services.RateSvcFacade
	metrics     *metrics.ExchangeMetrics
	logger      *slog.Logger

	client      *http.Client
	limiter     *rate.Limiter
	baseURL     string
	interval    time.Duration
	profit      decimal.Decimal
	instruments []Instrument
}

// New creates a Feed. The outbound limiter stays well inside CoinGecko's free
// tier regardless of how short the refresh interval is configured.
func New(rateService services.RateSvcFacade, m *metrics.ExchangeMetrics, logger *slog.Logger, cfg Config) *Feed {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 10 * time.Second
	}
	if len(cfg.Instruments) == 0 {
		cfg.Instruments = DefaultInstruments()
	}

	return &Feed{
		rateService: rateService,
		metrics:     m,
		logger:      logger,
		client:      &http.Client{Timeout: cfg.RequestTimeout},
		limiter:     rate.NewLimiter(rate.Every(6*time.Second), 1),
		baseURL:     cfg.BaseURL,
		interval:    cfg.Interval,
		profit:      cfg.ProfitPercent,
		instruments: cfg.Instruments,
	}
}

// Run polls until the context is cancelled. The first refresh happens
// immediately so the service does not start with an empty rate table.
func (f *Feed) Run(ctx context.Context) {
	if err := f.RefreshOnce(ctx); err != nil {
		f.logger.Error("Initial rate refresh failed", slog.String("error", err.Error()))
	}

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			f.logger.Info("Rate feed stopped")
			return
		case <-ticker.C:
			if err := f.RefreshOnce(ctx); err != nil {
				f.logger.Error("Rate refresh failed", slog.String("error", err.Error()))
			}
		}
	}
}

// RefreshOnce fetches current prices and publishes a snapshot for every
// ordered pair of configured instruments.
func (f *Feed) RefreshOnce(ctx context.Context) error {
	start := time.Now()

	prices, err := f.fetchPrices(ctx)
	if err != nil {
		return err
	}

	priceUSD, err := resolveUSDPrices(f.instruments, prices)
	if err != nil {
		return err
	}

	// Margin applies per direction, so a round trip through any pair always
	// costs the client twice the margin.
	margin := decimal.NewFromInt(1).Sub(f.profit.Div(oneHundred))

	var published int
	for _, from := range f.instruments {
		for _, to := range f.instruments {
			if from.CurrencyCode == to.CurrencyCode {
				continue
			}
			cross := priceUSD[from.CurrencyCode].DivRound(priceUSD[to.CurrencyCode], crossRateScale)
			marked := cross.Mul(margin)

			if _, err := f.rateService.UpsertExchangeRate(ctx, from.CurrencyCode, to.CurrencyCode, marked, sourceName); err != nil {
				f.logger.Warn("Failed to publish rate",
					slog.String("from", from.CurrencyCode),
					slog.String("to", to.CurrencyCode),
					slog.String("error", err.Error()),
				)
				continue
			}
			f.metrics.RecordRateFeedUpdate(sourceName)
			published++
		}
	}

	f.metrics.RecordRateFeedCycle(time.Since(start).Seconds())
	f.logger.Info("Rate refresh completed",
		slog.Int("published", published),
		slog.Duration("elapsed", time.Since(start)),
	)
	return nil
}

// fetchPrices calls CoinGecko's simple/price endpoint for all assets and fiat
// legs in one request.
func (f *Feed) fetchPrices(ctx context.Context) (map[string]map[string]decimal.Decimal, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	ids := url.Values{}
	assetSet := map[string]bool{}
	vsSet := map[string]bool{}
	var assets, vs []string
	for _, inst := range f.instruments {
		if !assetSet[inst.AssetID] {
			assetSet[inst.AssetID] = true
			assets = append(assets, inst.AssetID)
		}
		if !vsSet[inst.VsCurrency] {
			vsSet[inst.VsCurrency] = true
			vs = append(vs, inst.VsCurrency)
		}
	}
	ids.Set("ids", strings.Join(assets, ","))
	ids.Set("vs_currencies", strings.Join(vs, ","))

	endpoint := f.baseURL + "/simple/price?" + ids.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build price request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("price request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("price request returned status %d", resp.StatusCode)
	}

	var prices map[string]map[string]decimal.Decimal
	if err := json.NewDecoder(resp.Body).Decode(&prices); err != nil {
		return nil, fmt.Errorf("failed to decode price response: %w", err)
	}
	return prices, nil
}

// resolveUSDPrices normalizes every instrument onto a USD price so cross
// rates are a single division. A fiat instrument priced as asset-vs-fiat
// yields price(fiat in USD) = price(asset in USD) / price(asset in fiat).
func resolveUSDPrices(instruments []Instrument, prices map[string]map[string]decimal.Decimal) (map[string]decimal.Decimal, error) {
	priceUSD := make(map[string]decimal.Decimal, len(instruments))
	for _, inst := range instruments {
		asset, ok := prices[inst.AssetID]
		if !ok {
			return nil, fmt.Errorf("price response is missing asset %s", inst.AssetID)
		}

		if !inst.Fiat {
			usd, ok := asset["usd"]
			if !ok || usd.LessThanOrEqual(decimal.Zero) {
				return nil, fmt.Errorf("price response has no usable usd price for %s", inst.AssetID)
			}
			priceUSD[inst.CurrencyCode] = usd
			continue
		}

		usd, okUSD := asset["usd"]
		fiat, okFiat := asset[inst.VsCurrency]
		if !okUSD || !okFiat || fiat.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("price response has no usable %s price for %s", inst.VsCurrency, inst.AssetID)
		}
		priceUSD[inst.CurrencyCode] = usd.DivRound(fiat, crossRateScale)
	}
	return priceUSD, nil
}
