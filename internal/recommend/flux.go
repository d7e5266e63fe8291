package recommend

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/bobmcallan/advisor/internal/models"
)

// ComputeAssetFlux derives the aggregate cash-movement summary from a batch
// of account recommendations. BUY and SELL amounts accumulate into net
// buys/sells; MOVE amounts accumulate per (source, target) account pair,
// with the source inferred as the first account holding the ticker that
// differs from the move's target. The account flux is reported only when
// the portfolio itself spans more than one account; multiple transfer pairs
// collapse to a single "Various"/"Various" total.
//
// Aggregation never fails the request: an unexpected panic degrades to a
// zeroed summary carrying the error message.
func ComputeAssetFlux(recs []models.Recommendation, holdings []models.Holding) (flux models.AssetFlux) {
	defer func() {
		if r := recover(); r != nil {
			flux = models.AssetFlux{Error: fmt.Sprintf("asset flux aggregation failed: %v", r)}
		}
	}()

	symbolAccounts := make(map[string][]string, len(holdings))
	accountSet := make(map[string]struct{})
	for _, h := range holdings {
		account := h.AccountOrDefault()
		accountSet[account] = struct{}{}
		if !containsString(symbolAccounts[h.Symbol], account) {
			symbolAccounts[h.Symbol] = append(symbolAccounts[h.Symbol], account)
		}
	}

	var netBuys, netSells decimal.Decimal
	moveTotals := make(map[[2]string]decimal.Decimal)
	var moveOrder [][2]string

	for _, rec := range recs {
		amount := rec.Amount.Coerce()

		switch rec.Action {
		case models.ActionBuy:
			netBuys = netBuys.Add(amount)
		case models.ActionSell:
			netSells = netSells.Add(amount)
		case models.ActionMove:
			target := rec.Account
			if target == "" {
				target = models.DefaultAccount
			}
			source := models.UnknownAccount
			for _, account := range symbolAccounts[rec.Ticker] {
				if account != target {
					source = account
					break
				}
			}

			key := [2]string{source, target}
			if _, seen := moveTotals[key]; !seen {
				moveOrder = append(moveOrder, key)
			}
			moveTotals[key] = moveTotals[key].Add(amount)
		}
	}

	flux = models.AssetFlux{
		NetBuys:     netBuys.InexactFloat64(),
		NetSells:    netSells.InexactFloat64(),
		NetCashFlux: netSells.Sub(netBuys).Round(2).InexactFloat64(),
	}

	if len(accountSet) > 1 && len(moveTotals) > 0 {
		if len(moveTotals) == 1 {
			pair := moveOrder[0]
			flux.NetAccountFlux = &models.AccountFlux{
				Amount:      moveTotals[pair].Round(2).InexactFloat64(),
				FromAccount: pair[0],
				ToAccount:   pair[1],
			}
		} else {
			var total decimal.Decimal
			for _, amount := range moveTotals {
				total = total.Add(amount)
			}
			flux.NetAccountFlux = &models.AccountFlux{
				Amount:      total.Round(2).InexactFloat64(),
				FromAccount: models.VariousAccounts,
				ToAccount:   models.VariousAccounts,
			}
		}
	}

	return flux
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
