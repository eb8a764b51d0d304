package service

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/elmparc/plan_go_server/internal/model"
	"github.com/elmparc/plan_go_server/internal/repository"
)

var ErrInvalidFeedbackChoice = errors.New("Invalid feedback choice.")

// 反馈选项（固定列表，自由文本只在 Other 下保留）
var allowedFeedbackChoices = []string{
	"Clear and actionable — I can follow this",
	"Too generic — needs more personalization",
	"Too hard — volume/intensity feels high",
	"Too easy — needs more challenge",
	"Confusing — I'm not sure what to do first",
	"Missing context — didn't match my match day / fatigue",
	"Other",
}

const (
	maxFeedbackOtherLen   = 240
	maxReportContextBytes = 2048
)

type FeedbackService struct {
	feedbackRepo *repository.FeedbackRepository
}

func NewFeedbackService(feedbackRepo *repository.FeedbackRepository) *FeedbackService {
	return &FeedbackService{feedbackRepo: feedbackRepo}
}

// Submit 记录一条周报反馈
func (s *FeedbackService) Submit(choice, other string, reportContext map[string]interface{}) error {
	choice = strings.TrimSpace(choice)
	if !validFeedbackChoice(choice) {
		return ErrInvalidFeedbackChoice
	}

	var otherText *string
	if choice == "Other" {
		trimmed := strings.TrimSpace(other)
		if len(trimmed) > maxFeedbackOtherLen {
			trimmed = trimmed[:maxFeedbackOtherLen]
		}
		if trimmed != "" {
			otherText = &trimmed
		}
	}

	if reportContext != nil {
		serialized, err := json.Marshal(reportContext)
		if err != nil || len(serialized) >= maxReportContextBytes {
			reportContext = nil
		}
	}

	return s.feedbackRepo.Create(&model.ReportFeedback{
		FeedbackChoice: choice,
		FeedbackOther:  otherText,
		ReportContext:  reportContext,
	})
}

func validFeedbackChoice(choice string) bool {
	for _, c := range allowedFeedbackChoices {
		if c == choice {
			return true
		}
	}
	return false
}
