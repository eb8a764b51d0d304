package dto

// CanStartResult 权益判定结果
type CanStartResult struct {
	Allowed           bool   `json:"allowed"`
	Reason            string `json:"reason"`
	EntitlementStatus string `json:"entitlementStatus"` // free/trial/pro_monthly/pro_season/promo/none
}
