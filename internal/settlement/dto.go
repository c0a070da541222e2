package settlement

// CreateSettlementRequest records a direct payment between two group
// members: FromUserID paid ToUserID the given amount, in the ledger
// currency.
type CreateSettlementRequest struct {
	GroupID    string  `json:"group_id"`
	FromUserID string  `json:"from_user_id"`
	ToUserID   string  `json:"to_user_id"`
	Amount     float64 `json:"amount"`
}
