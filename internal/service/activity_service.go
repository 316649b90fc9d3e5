package service

import (
	"context"

	"talk-rag-be/internal/pkg/logger"
	"talk-rag-be/internal/websocket"
	"talk-rag-be/pkg/events"
	pktNats "talk-rag-be/pkg/nats"
)

type IActivityService interface {
	Start() error
}

// activityService bridges the NATS event stream onto the websocket activity
// feed so connected observers see session lifecycle and chat activity live.
type activityService struct {
	subscriber *pktNats.Subscriber
	hub        *websocket.Hub
	logger     logger.ILogger
}

func NewActivityService(subscriber *pktNats.Subscriber, hub *websocket.Hub, log logger.ILogger) IActivityService {
	return &activityService{
		subscriber: subscriber,
		hub:        hub,
		logger:     log,
	}
}

func (s *activityService) Start() error {
	return s.subscriber.Subscribe("events.>", "activity-feed", func(ctx context.Context, event events.Event) error {
		s.hub.Broadcast(event.EventType(), event.Payload())
		return nil
	})
}
