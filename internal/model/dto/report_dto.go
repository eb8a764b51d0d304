package dto

// SubmitReportRequest 周报提交请求
type SubmitReportRequest struct {
	Email         string  `json:"email" binding:"required,email"`
	MatchDay      string  `json:"matchDay" binding:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	TrainingDays  *int    `json:"trainingDays" binding:"required,min=0,max=7"`
	LegsStatus    string  `json:"legsStatus" binding:"required,oneof=Fresh Medium Heavy Tweaky"`
	TeammateCode  *string `json:"teammateCode,omitempty"`
	EmailReminder *bool   `json:"emailReminder,omitempty"`
}

// ReportResult 周报处理结果。Limited 为真表示命中限频。
type ReportResult struct {
	Source            string   `json:"source"` // public, teammate
	FollowupScheduled bool     `json:"followupScheduled"`
	StatusLine        string   `json:"statusLine,omitempty"`
	PlanBullets       []string `json:"planBullets,omitempty"`
	MatchDayCue       string   `json:"matchDayCue,omitempty"`

	Limited       bool   `json:"-"`
	DaysRemaining int    `json:"-"`
	LimitMessage  string `json:"-"`
}
