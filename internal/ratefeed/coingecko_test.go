package ratefeed

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/olegmos-dev/crypto_exchange_app/internal/core/domain"
	"github.com/olegmos-dev/crypto_exchange_app/internal/platform/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRateService struct {
	mock.Mock
}

func (m *MockRateService) GetExchangeRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCode, toCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockRateService) ListExchangeRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

func (m *MockRateService) UpsertExchangeRate(ctx context.Context, fromCode, toCode string, rate decimal.Decimal, source string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCode, toCode, rate, source)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestFeed(t *testing.T, baseURL string, rateSvc *MockRateService, profit decimal.Decimal) *Feed {
	t.Helper()
	return New(rateSvc, metrics.NewExchangeMetrics(prometheus.NewRegistry()), discardLogger(), Config{
		BaseURL:       baseURL,
		ProfitPercent: profit,
	})
}

func equalsDecimal(expected string) interface{} {
	want := decimal.RequireFromString(expected)
	return mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(want)
	})
}

func TestRefreshOnce_PublishesAllPairsWithMargin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/simple/price", r.URL.Path)
		assert.Contains(t, r.URL.Query().Get("ids"), "tether")
		assert.Contains(t, r.URL.Query().Get("ids"), "bitcoin")
		assert.Contains(t, r.URL.Query().Get("vs_currencies"), "usd")
		assert.Contains(t, r.URL.Query().Get("vs_currencies"), "rub")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"tether":  {"usd": 1.0, "rub": 80.0},
			"bitcoin": {"usd": 64000.0, "rub": 5120000.0}
		}`))
	}))
	defer server.Close()

	rateSvc := new(MockRateService)
	// price(USDT)=1, price(BTC)=64000, price(RUB_TBANK)=1/80; margin 0.98.
	rateSvc.On("UpsertExchangeRate", mock.Anything, "USDT_TRC20", "BTC", equalsDecimal("0.0000153125"), "coingecko").
		Return(&domain.ExchangeRate{}, nil).Once()
	rateSvc.On("UpsertExchangeRate", mock.Anything, "BTC", "USDT_TRC20", equalsDecimal("62720"), "coingecko").
		Return(&domain.ExchangeRate{}, nil).Once()
	rateSvc.On("UpsertExchangeRate", mock.Anything, "USDT_TRC20", "RUB_TBANK", equalsDecimal("78.4"), "coingecko").
		Return(&domain.ExchangeRate{}, nil).Once()
	rateSvc.On("UpsertExchangeRate", mock.Anything, "RUB_TBANK", "USDT_TRC20", equalsDecimal("0.01225"), "coingecko").
		Return(&domain.ExchangeRate{}, nil).Once()
	rateSvc.On("UpsertExchangeRate", mock.Anything, "BTC", "RUB_TBANK", equalsDecimal("5017600"), "coingecko").
		Return(&domain.ExchangeRate{}, nil).Once()
	rateSvc.On("UpsertExchangeRate", mock.Anything, "RUB_TBANK", "BTC", mock.AnythingOfType("decimal.Decimal"), "coingecko").
		Return(&domain.ExchangeRate{}, nil).Once()

	feed := newTestFeed(t, server.URL, rateSvc, decimal.NewFromInt(2))
	require.NoError(t, feed.RefreshOnce(context.Background()))
	rateSvc.AssertExpectations(t)
}

func TestRefreshOnce_ZeroProfitKeepsRawCross(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"tether": {"usd": 1.0}, "bitcoin": {"usd": 50000.0}}`))
	}))
	defer server.Close()

	rateSvc := new(MockRateService)
	rateSvc.On("UpsertExchangeRate", mock.Anything, "USDT_TRC20", "BTC", equalsDecimal("0.00002"), "coingecko").
		Return(&domain.ExchangeRate{}, nil).Once()
	rateSvc.On("UpsertExchangeRate", mock.Anything, "BTC", "USDT_TRC20", equalsDecimal("50000"), "coingecko").
		Return(&domain.ExchangeRate{}, nil).Once()

	feed := New(rateSvc, metrics.NewExchangeMetrics(prometheus.NewRegistry()), discardLogger(), Config{
		BaseURL: server.URL,
		Instruments: []Instrument{
			{CurrencyCode: "USDT_TRC20", AssetID: "tether", VsCurrency: "usd"},
			{CurrencyCode: "BTC", AssetID: "bitcoin", VsCurrency: "usd"},
		},
	})
	require.NoError(t, feed.RefreshOnce(context.Background()))
	rateSvc.AssertExpectations(t)
}

func TestRefreshOnce_UpstreamErrorIsReturned(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	rateSvc := new(MockRateService)
	feed := newTestFeed(t, server.URL, rateSvc, decimal.NewFromInt(2))

	err := feed.RefreshOnce(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	rateSvc.AssertNotCalled(t, "UpsertExchangeRate")
}

func TestRefreshOnce_MissingAssetIsRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"tether": {"usd": 1.0, "rub": 80.0}}`))
	}))
	defer server.Close()

	rateSvc := new(MockRateService)
	feed := newTestFeed(t, server.URL, rateSvc, decimal.NewFromInt(2))

	err := feed.RefreshOnce(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bitcoin")
	rateSvc.AssertNotCalled(t, "UpsertExchangeRate")
}

func TestResolveUSDPrices_FiatCross(t *testing.T) {
	prices := map[string]map[string]decimal.Decimal{
		"tether": {
			"usd": decimal.NewFromInt(1),
			"rub": decimal.NewFromInt(80),
		},
	}
	priceUSD, err := resolveUSDPrices([]Instrument{
		{CurrencyCode: "RUB_TBANK", AssetID: "tether", VsCurrency: "rub", Fiat: true},
	}, prices)
	require.NoError(t, err)
	assert.True(t, priceUSD["RUB_TBANK"].Equal(decimal.RequireFromString("0.0125")))
}
