package dto

// RedeemRequest 兑换码请求
type RedeemRequest struct {
	Code  string `json:"code" binding:"required"`
	Email string `json:"email" binding:"required"`
}

// RedeemResult 兑换结果
type RedeemResult struct {
	ExpiresAt       string `json:"expiresAt"`
	SessionsPerWeek int    `json:"sessionsPerWeek"`
	AlreadyRedeemed bool   `json:"alreadyRedeemed,omitempty"`
}
