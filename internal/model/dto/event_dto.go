package dto

// WaitlistRequest 等待名单登记请求
type WaitlistRequest struct {
	Email string `json:"email" binding:"required"`
}

// UserEventRequest 登录态埋点请求
type UserEventRequest struct {
	EventType  string                 `json:"event_type" binding:"required"`
	EventProps map[string]interface{} `json:"event_props,omitempty"`
}

// ReportEventRequest 匿名周报埋点请求
type ReportEventRequest struct {
	EventType string                 `json:"eventType" binding:"required"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
}

// FeedbackRequest 周报反馈请求
type FeedbackRequest struct {
	FeedbackChoice string                 `json:"feedbackChoice" binding:"required"`
	FeedbackOther  string                 `json:"feedbackOther,omitempty"`
	ReportContext  map[string]interface{} `json:"reportContext,omitempty"`
}
