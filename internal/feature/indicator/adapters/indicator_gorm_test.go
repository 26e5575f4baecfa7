package adapters

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	shared "indicator_backend/internal/domain/entity"
	"indicator_backend/internal/feature/indicator/domain/entity"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&IndicatorModel{}), "failed to migrate table")
	return db
}

func stock(symbol, name, exchange string) entity.Indicator {
	return entity.Indicator{Symbol: symbol, IndicatorType: shared.IndicatorTypeStocks, Name: name, Exchange: exchange, Currency: "USD", Country: "United States"}
}

func findBySymbol(t *testing.T, db *gorm.DB, typ shared.IndicatorType, symbol, exchange string) IndicatorModel {
	t.Helper()
	var m IndicatorModel
	require.NoError(t, db.Where("indicator_type = ? AND symbol = ? AND exchange = ?", string(typ), symbol, exchange).First(&m).Error)
	return m
}

// TestIndicatorGorm_UpsertBatch は再同期で既存行のidが保たれ、説明列だけが更新されることを検証します。
func TestIndicatorGorm_UpsertBatch(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewIndicatorRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.UpsertBatch(ctx, []entity.Indicator{
		stock("AAPL", "Apple", "NASDAQ"),
		stock("MSFT", "Microsoft", "NASDAQ"),
		stock("AAPL", "Apple", "NASDAQ"),
	}))
	first := findBySymbol(t, db, shared.IndicatorTypeStocks, "AAPL", "NASDAQ")

	require.NoError(t, repo.UpsertBatch(ctx, []entity.Indicator{
		stock("AAPL", "Apple Inc", "NASDAQ"),
		stock("AAPL", "Apple Inc", "BMV"),
	}))

	var count int64
	require.NoError(t, db.Model(&IndicatorModel{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)

	again := findBySymbol(t, db, shared.IndicatorTypeStocks, "AAPL", "NASDAQ")
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, "Apple Inc", again.Name)

	assert.NoError(t, repo.UpsertBatch(ctx, nil))
}

func TestIndicatorGorm_FindByID(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewIndicatorRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.UpsertBatch(ctx, []entity.Indicator{stock("AAPL", "Apple Inc", "NASDAQ")}))
	row := findBySymbol(t, db, shared.IndicatorTypeStocks, "AAPL", "NASDAQ")

	got, err := repo.FindByID(ctx, row.ID, shared.IndicatorTypeStocks)
	require.NoError(t, err)
	assert.Equal(t, "AAPL", got.Symbol)
	assert.Equal(t, "United States", got.Country)

	_, err = repo.FindByID(ctx, row.ID, shared.IndicatorTypeETF)
	assert.ErrorIs(t, err, shared.ErrIndicatorNotFound)

	_, err = repo.FindByID(ctx, uuid.New(), shared.IndicatorTypeStocks)
	assert.ErrorIs(t, err, shared.ErrIndicatorNotFound)
}

func TestIndicatorGorm_ListAndSearch(t *testing.T) {
	t.Parallel()

	repo := NewIndicatorRepository(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.UpsertBatch(ctx, []entity.Indicator{
		stock("MSFT", "Microsoft", "NASDAQ"),
		stock("AAPL", "Apple Inc", "NASDAQ"),
		stock("AMZN", "Amazon", "NASDAQ"),
		{Symbol: "AAPL_ETF", IndicatorType: shared.IndicatorTypeETF, Name: "Apple tracker", Exchange: "NYSE"},
	}))

	page, err := repo.List(ctx, shared.IndicatorTypeStocks, 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "AAPL", page[0].Symbol)
	assert.Equal(t, "AMZN", page[1].Symbol)

	page, err = repo.List(ctx, shared.IndicatorTypeStocks, 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "MSFT", page[0].Symbol)

	found, err := repo.SearchBySymbol(ctx, "aa", 10)
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "AAPL", found[0].Symbol)
	assert.Equal(t, shared.IndicatorTypeETF, found[1].IndicatorType)

	found, err = repo.SearchBySymbol(ctx, "AAPL_", 10)
	require.NoError(t, err)
	require.Len(t, found, 1, "underscore is matched literally")
	assert.Equal(t, "AAPL_ETF", found[0].Symbol)
}
