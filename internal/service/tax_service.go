package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/BrandonWrob/ExtendedManager/internal/repositories"
	"github.com/BrandonWrob/ExtendedManager/models"
	"github.com/BrandonWrob/ExtendedManager/pkg/logger"
)

type TaxServiceInterface interface {
	GetTaxRate(ctx context.Context) (*models.TaxRate, error)
	SetTaxRate(ctx context.Context, rate decimal.Decimal) (*models.TaxRate, error)
	CalcTax(ctx context.Context, preTax decimal.Decimal) (decimal.Decimal, error)
}

type TaxService struct {
	store  repositories.Store
	logger *logger.Logger
}

func NewTaxService(store repositories.Store, logger *logger.Logger) *TaxService {
	return &TaxService{
		store:  store,
		logger: logger.WithComponent("tax_service"),
	}
}

// GetTaxRate returns the current rate, storing the default on first use.
func (s *TaxService) GetTaxRate(ctx context.Context) (*models.TaxRate, error) {
	var rate *models.TaxRate
	err := s.store.WithinTransaction(ctx, func(repos repositories.Repositories) error {
		var err error
		rate, err = repos.Taxes.GetOrCreate(ctx, models.DefaultTaxRate)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rate, nil
}

func (s *TaxService) SetTaxRate(ctx context.Context, rate decimal.Decimal) (*models.TaxRate, error) {
	log := s.logger.ForContext(ctx)
	if rate.IsNegative() {
		log.Warn("Rejected negative tax rate", "rate", rate)
		return nil, fmt.Errorf("%w: tax rate cannot be negative", ErrInvalidConfiguration)
	}

	saved := &models.TaxRate{ID: models.TaxRateID, Rate: rate}
	err := s.store.WithinTransaction(ctx, func(repos repositories.Repositories) error {
		return repos.Taxes.Save(ctx, saved)
	})
	if err != nil {
		log.Error("Failed to save tax rate", "error", err)
		return nil, err
	}

	log.Info("Tax rate updated", "rate", rate)
	return saved, nil
}

// CalcTax returns preTax times the current rate, rounded to cents.
func (s *TaxService) CalcTax(ctx context.Context, preTax decimal.Decimal) (decimal.Decimal, error) {
	rate, err := s.GetTaxRate(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return preTax.Mul(rate.Rate).Round(2), nil
}
