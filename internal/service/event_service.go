package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/elmparc/plan_go_server/internal/model"
	"github.com/elmparc/plan_go_server/internal/pkg/pubsub"
	"github.com/elmparc/plan_go_server/internal/repository"
)

var (
	ErrEventTypeRequired = errors.New("event_type is required.")
	ErrEventPropsTooBig  = errors.New("event_props too large.")
	ErrInvalidEventType  = errors.New("Invalid event type.")
	ErrDuplicateEvent    = errors.New("Duplicate event.")
)

// 匿名周报埋点的事件白名单
var allowedReportEvents = map[string]bool{
	"report_generated": true,
	"mode_overridden":  true,
}

const maxEventPropsBytes = 4096

type EventService struct {
	eventRepo *repository.EventRepository
	publisher *pubsub.Publisher
}

func NewEventService(eventRepo *repository.EventRepository, publisher *pubsub.Publisher) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		publisher: publisher,
	}
}

// LogUserEvent 登录态埋点。入库是权威路径，Redis 广播尽力而为。
func (s *EventService) LogUserEvent(userID int64, eventType string, props map[string]interface{}) error {
	eventType = strings.TrimSpace(eventType)
	if eventType == "" {
		return ErrEventTypeRequired
	}

	if props != nil {
		serialized, err := json.Marshal(props)
		if err != nil || len(serialized) >= maxEventPropsBytes {
			return ErrEventPropsTooBig
		}
	} else {
		props = map[string]interface{}{}
	}

	event := &model.ReportEvent{
		UserID:     &userID,
		EventType:  eventType,
		EventProps: props,
	}
	if err := s.eventRepo.Create(event); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEvent
		}
		return err
	}

	s.broadcast(&userID, eventType, props)
	return nil
}

// LogReportEvent 匿名周报埋点，只接受白名单事件；超限 payload 丢弃不报错
func (s *EventService) LogReportEvent(eventType string, payload map[string]interface{}) error {
	eventType = strings.TrimSpace(eventType)
	if !allowedReportEvents[eventType] {
		return ErrInvalidEventType
	}

	if payload != nil {
		serialized, err := json.Marshal(payload)
		if err != nil || len(serialized) >= maxEventPropsBytes {
			payload = nil
		}
	}

	event := &model.ReportEvent{
		EventType:  eventType,
		EventProps: payload,
	}
	if err := s.eventRepo.Create(event); err != nil {
		return err
	}

	s.broadcast(nil, eventType, payload)
	return nil
}

func (s *EventService) broadcast(userID *int64, eventType string, props map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := s.publisher.PublishEvent(ctx, &pubsub.EventMessage{
			UserID:     userID,
			EventType:  eventType,
			EventProps: props,
		}); err != nil {
			log.Printf("Event broadcast failed: %v", err)
		}
	}()
}
