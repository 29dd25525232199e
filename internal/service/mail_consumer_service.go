package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"travelmate-be/internal/dto"
	"travelmate-be/internal/pkg/logger"
	"travelmate-be/internal/pkg/mailer"
)

type IMailConsumerService interface {
	Consume(ctx context.Context) error
}

type mailConsumerService struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	emailService mailer.IEmailService
	log          logger.ILogger
}

func NewMailConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	emailService mailer.IEmailService,
	log logger.ILogger,
) IMailConsumerService {
	return &mailConsumerService{
		pubSub:       pubSub,
		topicName:    topicName,
		emailService: emailService,
		log:          log,
	}
}

func (cs *mailConsumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			var payload dto.PublishOtpEmailMessage
			if err := json.Unmarshal(msg.Payload, &payload); err != nil {
				cs.log.Error("mail_consumer", "failed to unmarshal otp email message", map[string]interface{}{
					"error": err.Error(),
				})
				// Ack malformed messages to prevent infinite retry
				msg.Ack()
				continue
			}

			if err := cs.emailService.SendOTP(payload.Email, payload.Otp); err != nil {
				// The code stays valid server side, the user can hit resend.
				cs.log.Error("mail_consumer", "failed to send otp email", map[string]interface{}{
					"email": payload.Email,
					"error": err.Error(),
				})
			} else {
				cs.log.Info("mail_consumer", "otp email sent", map[string]interface{}{
					"email": payload.Email,
				})
			}
			msg.Ack()
		}
	}()

	return nil
}
