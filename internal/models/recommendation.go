package models

// Recommendation actions as emitted by the LLM. Action values are carried
// through uninterpreted; only HOLD and MOVE are checked anywhere, and those
// checks are exact-case.
const (
	ActionBuy     = "BUY"
	ActionSell    = "SELL"
	ActionHold    = "HOLD"
	ActionMove    = "MOVE"
	ActionUnknown = "UNKNOWN"
)

// Sentinel tickers produced when parsing fails.
const (
	TickerParseError  = "PARSE_ERROR"  // one malformed dashed line
	TickerRawResponse = "RAW_RESPONSE" // no recommendations extracted at all
)

// Recommendation is one parsed unit of LLM output: a single dashed line.
// The same shape serves both account recommendations and recurring monthly
// investment lines; they differ only in which section they were parsed from.
type Recommendation struct {
	Ticker   string `json:"ticker"`
	Action   string `json:"action"`
	Amount   Amount `json:"amount"`
	Account  string `json:"account"`
	Comments string `json:"comments"`
}

// AccountGroup is the presentation projection of recommendations keyed by
// account, preserving the order in which accounts first appear.
type AccountGroup struct {
	Account         string           `json:"account"`
	Recommendations []Recommendation `json:"recommendations"`
}
