package recommend

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/bobmcallan/advisor/internal/models"
)

// ApplyMoveValidation clamps MOVE amounts to the value actually held.
// Holdings sharing a symbol are summed across accounts; a MOVE for a ticker
// with no position is forced to zero, and a MOVE exceeding the held value is
// reduced to it. Both adjustments prepend an [ADJUSTED] note to the
// comments. Records with any other action pass through untouched; the
// action match is exact-case.
func ApplyMoveValidation(recs []models.Recommendation, holdings []models.Holding) []models.Recommendation {
	held := make(map[string]decimal.Decimal, len(holdings))
	for _, h := range holdings {
		held[h.Symbol] = held[h.Symbol].Add(h.ResolvedValue())
	}

	out := make([]models.Recommendation, len(recs))
	for i, rec := range recs {
		if rec.Action != models.ActionMove {
			out[i] = rec
			continue
		}

		amount := rec.Amount.Coerce()
		maxAllowed := held[rec.Ticker]

		switch {
		case maxAllowed.Sign() <= 0:
			rec.Amount = models.IntegerAmount(0)
			rec.Comments = fmt.Sprintf("[ADJUSTED] No existing position in %s; amount set to 0. %s", rec.Ticker, rec.Comments)
		case amount.GreaterThan(maxAllowed):
			rec.Amount = models.NumericAmount(maxAllowed)
			rec.Comments = fmt.Sprintf("[ADJUSTED] Move amount reduced to current holding ($%s). %s", maxAllowed.String(), rec.Comments)
		}

		out[i] = rec
	}

	return out
}
