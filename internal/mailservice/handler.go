package mailservice

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"golang.org/x/exp/rand"

	"github.com/sushihentaime/blogsphere/internal/common"
)

func NewMailService(mb common.MessageConsumer, host, username, password, sender string, port int, frontendURL string, logger *slog.Logger) *MailService {
	ctx, cancel := context.WithCancel(context.Background())
	return &MailService{
		mb:          mb,
		m:           NewMailer(host, port, username, password, sender, NewTemplate()),
		logger:      logger,
		frontendURL: frontendURL,
		sleep:       time.Sleep,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// SendWelcomeEmail consumes user.registered events and mails each new user until Close is called.
func (s *MailService) SendWelcomeEmail() {
	msgs, err := s.mb.Consume(common.UserRegisteredKey, common.UserExchange, common.UserRegisteredQueue)
	if err != nil {
		s.logger.Error("could not consume message", slog.String("error", err.Error()))
		return
	}

	go func() {
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				s.handle(msg)

			case <-s.ctx.Done():
				s.logger.Info("stopping SendWelcomeEmail due to context cancellation")
				return
			}
		}
	}()
}

// handle delivers one welcome email. The message is acked even when every attempt fails
// so a broken mailbox cannot block the queue.
func (s *MailService) handle(msg amqp.Delivery) {
	var event common.UserRegisteredEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		s.logger.Error("could not unmarshal message", slog.String("error", err.Error()))
		msg.Ack(false)
		return
	}

	data := welcomeData{
		Name:     event.Name,
		LoginURL: strings.TrimRight(s.frontendURL, "/") + "/login",
	}

	// using exponential backoff with jitter
	for attempt := 0; attempt < maxRetries; attempt++ {
		err := s.m.send(event.Email, data, welcomeTemplate)
		if err == nil {
			s.logger.Info("welcome email sent", slog.String("email", event.Email))
			msg.Ack(false)
			return
		}

		delay := time.Duration(rand.Int63n(int64(baseDelay) << uint(attempt)))
		s.logger.Info("delaying welcome email", slog.String("email", event.Email), slog.Int("attempt", attempt), slog.Duration("delay", delay), slog.String("error", err.Error()))
		s.sleep(delay)
	}

	s.logger.Error("could not send welcome email", slog.String("email", event.Email))
	msg.Ack(false)
}

func (s *MailService) Close() {
	s.cancel()
}
