package repositories

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/BrandonWrob/ExtendedManager/models"
	"github.com/BrandonWrob/ExtendedManager/pkg/logger"
)

type TaxRepository struct {
	q      querier
	logger *logger.Logger
}

func NewTaxRepository(q querier, log *logger.Logger) *TaxRepository {
	return &TaxRepository{q: q, logger: log}
}

func (r *TaxRepository) GetOrCreate(ctx context.Context, defaultRate decimal.Decimal) (*models.TaxRate, error) {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO tax_rates (id, rate) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`,
		models.TaxRateID, defaultRate,
	)
	if err != nil {
		r.logger.Error("Failed to create tax rate", "error", err)
		return nil, fmt.Errorf("failed to create tax rate: %w", err)
	}

	rate := &models.TaxRate{}
	err = r.q.QueryRowContext(ctx, `SELECT id, rate FROM tax_rates WHERE id = $1 FOR UPDATE`, models.TaxRateID).
		Scan(&rate.ID, &rate.Rate)
	if err != nil {
		return nil, fmt.Errorf("failed to read tax rate: %w", err)
	}
	return rate, nil
}

func (r *TaxRepository) Save(ctx context.Context, rate *models.TaxRate) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO tax_rates (id, rate) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET rate = EXCLUDED.rate
	`, models.TaxRateID, rate.Rate)
	if err != nil {
		r.logger.Error("Failed to save tax rate", "error", err)
		return fmt.Errorf("failed to save tax rate: %w", err)
	}
	rate.ID = models.TaxRateID
	return nil
}
