// Package models defines data structures for Advisor
package models

import "github.com/shopspring/decimal"

func init() {
	// Holdings and flux figures serialize as JSON numbers, matching the API
	// the web clients already consume.
	decimal.MarshalJSONWithoutQuotes = true
}

// DefaultAccount is the account assigned to holdings and recommendations
// that carry no explicit account designation.
const DefaultAccount = "Default"

// Asset type classifications normalized from the market-data provider.
const (
	AssetTypeStock      = "Stock"
	AssetTypeETF        = "ETF"
	AssetTypeMutualFund = "Mutual Fund"
	AssetTypeCrypto     = "Crypto"
	AssetTypeIndex      = "Index"
	AssetTypeCurrency   = "Currency"
)

// Holding represents one portfolio position as submitted by the user.
// Shares, Value and CurrentPrice are nil when not supplied; enrichment
// fills whichever side can be derived from a live price.
type Holding struct {
	Symbol       string           `json:"symbol"`
	Shares       *decimal.Decimal `json:"shares,omitempty"`
	Value        *decimal.Decimal `json:"value,omitempty"`
	CurrentPrice *decimal.Decimal `json:"current_price,omitempty"`
	Type         string           `json:"type,omitempty"`
	Account      string           `json:"account,omitempty"`
}

// AccountOrDefault returns the holding's account, defaulting to "Default".
func (h Holding) AccountOrDefault() string {
	if h.Account == "" {
		return DefaultAccount
	}
	return h.Account
}

// ResolvedValue returns the holding's dollar value, or zero when unknown.
func (h Holding) ResolvedValue() decimal.Decimal {
	if h.Value != nil {
		return *h.Value
	}
	return decimal.Zero
}

// TickerInfo is the market-data lookup result for one symbol.
type TickerInfo struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
	Type   string  `json:"type"`
	Name   string  `json:"name,omitempty"`
}
