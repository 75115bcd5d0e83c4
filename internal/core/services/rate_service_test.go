package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/olegmos-dev/crypto_exchange_app/internal/apperrors"
	"github.com/olegmos-dev/crypto_exchange_app/internal/core/domain"
	portssvc "github.com/olegmos-dev/crypto_exchange_app/internal/core/ports/services"
	"github.com/olegmos-dev/crypto_exchange_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type RateServiceTestSuite struct {
	suite.Suite
	mockRateRepo     *MockExchangeRateRepository
	mockCurrencyRepo *MockCurrencyRepository
	service          portssvc.RateSvcFacade
	now              time.Time
}

func (suite *RateServiceTestSuite) SetupTest() {
	suite.mockRateRepo = new(MockExchangeRateRepository)
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	suite.now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return suite.now }
	currencyService := services.NewCurrencyService(suite.mockCurrencyRepo, clock)
	suite.service = services.NewRateService(suite.mockRateRepo, currencyService, 5*time.Minute, clock)
}

func (suite *RateServiceTestSuite) TestGetExchangeRate_DirectHit() {
	ctx := context.Background()
	expected := &domain.ExchangeRate{
		FromCurrencyCode: "USDT_TRC20",
		ToCurrencyCode:   "BTC",
		Rate:             decimal.RequireFromString("0.000016"),
		FetchedAt:        suite.now,
	}
	suite.mockRateRepo.On("FindExchangeRate", ctx, "USDT_TRC20", "BTC").Return(expected, nil).Once()

	rate, err := suite.service.GetExchangeRate(ctx, "USDT_TRC20", "BTC")

	suite.Require().NoError(err)
	suite.Equal(expected, rate)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestGetExchangeRate_ReverseFallback() {
	ctx := context.Background()
	reverse := &domain.ExchangeRate{
		FromCurrencyCode: "BTC",
		ToCurrencyCode:   "USDT_TRC20",
		Rate:             decimal.RequireFromString("62500"),
		ReverseRate:      decimal.RequireFromString("0.000016"),
		FetchedAt:        suite.now,
	}
	suite.mockRateRepo.On("FindExchangeRate", ctx, "USDT_TRC20", "BTC").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRateRepo.On("FindExchangeRate", ctx, "BTC", "USDT_TRC20").Return(reverse, nil).Once()

	rate, err := suite.service.GetExchangeRate(ctx, "USDT_TRC20", "BTC")

	suite.Require().NoError(err)
	suite.Equal("USDT_TRC20", rate.FromCurrencyCode)
	suite.Equal("BTC", rate.ToCurrencyCode)
	suite.True(rate.Rate.Equal(decimal.RequireFromString("0.000016")))
	suite.Nil(rate.MinAmount, "pair overrides must not survive the direction flip")
	suite.Nil(rate.MaxAmount)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestGetExchangeRate_NoneAvailable() {
	ctx := context.Background()
	suite.mockRateRepo.On("FindExchangeRate", ctx, "USDT_TRC20", "BTC").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRateRepo.On("FindExchangeRate", ctx, "BTC", "USDT_TRC20").Return(nil, apperrors.ErrNotFound).Once()

	rate, err := suite.service.GetExchangeRate(ctx, "USDT_TRC20", "BTC")

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrNoRateAvailable)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestGetExchangeRate_StaleSnapshot() {
	ctx := context.Background()
	stale := &domain.ExchangeRate{
		FromCurrencyCode: "USDT_TRC20",
		ToCurrencyCode:   "BTC",
		Rate:             decimal.RequireFromString("0.000016"),
		FetchedAt:        suite.now.Add(-10 * time.Minute),
	}
	suite.mockRateRepo.On("FindExchangeRate", ctx, "USDT_TRC20", "BTC").Return(stale, nil).Once()

	rate, err := suite.service.GetExchangeRate(ctx, "USDT_TRC20", "BTC")

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrNoRateAvailable)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestGetExchangeRate_StorageErrorMapped() {
	ctx := context.Background()
	suite.mockRateRepo.On("FindExchangeRate", ctx, "USDT_TRC20", "BTC").Return(nil, context.DeadlineExceeded).Once()

	rate, err := suite.service.GetExchangeRate(ctx, "USDT_TRC20", "BTC")

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrNoRateAvailable)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestUpsertExchangeRate_Success() {
	ctx := context.Background()
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "USDT_TRC20").Return(&domain.Currency{Code: "USDT_TRC20", IsActive: true}, nil).Once()
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "BTC").Return(&domain.Currency{Code: "BTC", IsActive: true}, nil).Once()
	suite.mockRateRepo.On("UpsertExchangeRate", ctx, mock.MatchedBy(func(r domain.ExchangeRate) bool {
		return r.FromCurrencyCode == "USDT_TRC20" &&
			r.ToCurrencyCode == "BTC" &&
			r.IsActive &&
			r.FetchedAt.Equal(suite.now) &&
			r.RateID != ""
	})).Return(nil).Once()

	rate, err := suite.service.UpsertExchangeRate(ctx, "USDT_TRC20", "BTC", decimal.RequireFromString("0.000016"), "coingecko")

	suite.Require().NoError(err)
	suite.Require().NotNil(rate)
	// 1 / 0.000016 = 62500
	suite.True(rate.ReverseRate.Equal(decimal.RequireFromString("62500")), "got reverse rate %s", rate.ReverseRate)
	suite.mockRateRepo.AssertExpectations(suite.T())
	suite.mockCurrencyRepo.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestUpsertExchangeRate_NonPositiveRate() {
	ctx := context.Background()

	rate, err := suite.service.UpsertExchangeRate(ctx, "USDT_TRC20", "BTC", decimal.Zero, "manual")

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "UpsertExchangeRate")
}

func (suite *RateServiceTestSuite) TestUpsertExchangeRate_SamePair() {
	ctx := context.Background()

	rate, err := suite.service.UpsertExchangeRate(ctx, "BTC", "BTC", decimal.NewFromInt(1), "manual")

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *RateServiceTestSuite) TestUpsertExchangeRate_UnknownCurrency() {
	ctx := context.Background()
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "DOGE").Return(nil, apperrors.ErrNotFound).Once()

	rate, err := suite.service.UpsertExchangeRate(ctx, "DOGE", "BTC", decimal.NewFromInt(1), "manual")

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrUnknownCurrency)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "UpsertExchangeRate")
}

func TestRateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RateServiceTestSuite))
}
