package storage

import "github.com/username/alphatrade/backend/src/models"

// SeedAssets is the documented default portfolio returned when a namespace
// has no stored state yet. Fresh slices are returned on every call so callers
// can mutate the result freely.
func SeedAssets() []models.Asset {
	return []models.Asset{
		{ID: "1", Symbol: "AAPL", Name: "Apple Inc.", Quantity: 50, AvgCost: 150.00, CurrentPrice: 175.50, Type: models.AssetTypeStock},
		{ID: "2", Symbol: "TSLA", Name: "Tesla Inc.", Quantity: 20, AvgCost: 200.00, CurrentPrice: 195.20, Type: models.AssetTypeStock},
		{ID: "3", Symbol: models.CashSymbol, Name: "Cash Balance", Quantity: 10000, AvgCost: 1, CurrentPrice: 1, Type: models.AssetTypeCash},
	}
}

// SeedTransactions is the default history matching SeedAssets, newest first.
func SeedTransactions() []models.Transaction {
	return []models.Transaction{
		{ID: "t2", Date: "2023-11-15", Symbol: "TSLA", Side: models.TradeSideBuy, Price: 200.00, Quantity: 20, Total: 4000},
		{ID: "t1", Date: "2023-10-01", Symbol: "AAPL", Side: models.TradeSideBuy, Price: 150.00, Quantity: 50, Total: 7500},
	}
}
