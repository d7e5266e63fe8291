package recommend

import "github.com/bobmcallan/advisor/internal/models"

// GroupByAccount projects recommendations into per-account groups, ordered
// by each account's first appearance. Pure presentation shaping; the
// records themselves are unchanged.
func GroupByAccount(recs []models.Recommendation) []models.AccountGroup {
	index := make(map[string]int)
	var groups []models.AccountGroup

	for _, rec := range recs {
		account := rec.Account
		if account == "" {
			account = models.DefaultAccount
		}

		i, seen := index[account]
		if !seen {
			i = len(groups)
			index[account] = i
			groups = append(groups, models.AccountGroup{Account: account})
		}
		groups[i].Recommendations = append(groups[i].Recommendations, rec)
	}

	return groups
}
