package models

// AccountFlux summarizes inter-account transfers derived from MOVE
// recommendations. When transfers span multiple distinct account pairs the
// pair collapses to "Various"/"Various" with the summed amount.
type AccountFlux struct {
	Amount      float64 `json:"amount"`
	FromAccount string  `json:"from_account"`
	ToAccount   string  `json:"to_account"`
}

// VariousAccounts is the collapsed label used when MOVE recommendations
// span more than one (source, target) account pair.
const VariousAccounts = "Various"

// UnknownAccount is the source label used when a MOVE's ticker has no
// holding outside the target account.
const UnknownAccount = "Unknown"

// AssetFlux is the aggregate cash-movement summary for a batch of
// recommendations. Derived fresh on every request; never persisted.
type AssetFlux struct {
	NetBuys        float64      `json:"net_buys"`
	NetSells       float64      `json:"net_sells"`
	NetCashFlux    float64      `json:"net_cash_flux"`
	NetAccountFlux *AccountFlux `json:"net_account_flux,omitempty"`
	Error          string       `json:"error,omitempty"`
}
