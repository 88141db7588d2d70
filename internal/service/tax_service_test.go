package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrandonWrob/ExtendedManager/models"
	"github.com/BrandonWrob/ExtendedManager/pkg/logger"
)

func TestGetTaxRateDefaultsOnFirstUse(t *testing.T) {
	svc := NewTaxService(newTestStore(t), logger.Discard())

	rate, err := svc.GetTaxRate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.TaxRateID, rate.ID)
	assert.True(t, rate.Rate.Equal(decimal.RequireFromString("0.02")), rate.Rate.String())
}

func TestSetTaxRate(t *testing.T) {
	ctx := context.Background()
	svc := NewTaxService(newTestStore(t), logger.Discard())

	_, err := svc.SetTaxRate(ctx, decimal.RequireFromString("0.08"))
	require.NoError(t, err)

	rate, err := svc.GetTaxRate(ctx)
	require.NoError(t, err)
	assert.Equal(t, "0.08", rate.Rate.String())

	_, err = svc.SetTaxRate(ctx, decimal.RequireFromString("-0.01"))
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	rate, err = svc.GetTaxRate(ctx)
	require.NoError(t, err)
	assert.Equal(t, "0.08", rate.Rate.String())

	_, err = svc.SetTaxRate(ctx, decimal.Zero)
	assert.NoError(t, err)
}

func TestCalcTax(t *testing.T) {
	ctx := context.Background()
	svc := NewTaxService(newTestStore(t), logger.Discard())

	tax, err := svc.CalcTax(ctx, decimal.NewFromInt(500))
	require.NoError(t, err)
	assert.Equal(t, "10.00", tax.StringFixed(2))

	_, err = svc.SetTaxRate(ctx, decimal.RequireFromString("0.0725"))
	require.NoError(t, err)

	tax, err = svc.CalcTax(ctx, decimal.NewFromInt(150))
	require.NoError(t, err)
	assert.Equal(t, "10.88", tax.StringFixed(2))
}
