package models

// AssetType classifies a holding. It does not change accounting rules except
// that the cash asset survives a quantity of zero.
type AssetType string

const (
	AssetTypeStock  AssetType = "STOCK"
	AssetTypeCash   AssetType = "CASH"
	AssetTypeCrypto AssetType = "CRYPTO"
)

// CashSymbol is the reserved symbol of the single settlement-balance asset.
const CashSymbol = "USD"

// Asset represents one holding record in a portfolio.
type Asset struct {
	ID           string    `json:"id"`
	Symbol       string    `json:"symbol"` // uppercase ticker, unique per portfolio
	Name         string    `json:"name"`
	Quantity     float64   `json:"quantity"` // shares/units held, may be fractional
	AvgCost      float64   `json:"avgCost"`  // weighted-average cost per unit; 1.0 for cash
	CurrentPrice float64   `json:"currentPrice"`
	Type         AssetType `json:"type"`
}

// IsCash reports whether the asset is the settlement balance.
func (a Asset) IsCash() bool {
	return a.Type == AssetTypeCash
}
