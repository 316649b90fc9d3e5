package service

import (
	"context"
	"encoding/json"
	"log"

	"talk-rag-be/internal/dto"
	"talk-rag-be/internal/entity"
	"talk-rag-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishChatAuditMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal audit message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	audit := entity.ChatAudit{
		Id:         uuid.New(),
		SessionKey: payload.SessionKey,
		BotId:      payload.BotId,
		Behavior:   payload.Behavior,
		Message:    payload.Message,
		Response:   payload.Response,
	}

	if err := uow.ChatAuditRepository().Create(ctx, &audit); err != nil {
		log.Printf("[ERROR] Failed to persist chat audit for session %s: %v", payload.SessionKey, err)
		msg.Nack() // Nack for retriable errors
		return
	}

	msg.Ack()
}
