package rabbitmq

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/swasthya-health/appointment-slots-service/internal/config"
	"github.com/swasthya-health/appointment-slots-service/internal/core/ports/in"
	"github.com/swasthya-health/appointment-slots-service/internal/core/ports/out"
)

// CacheHitListener consumes booking/schedule/leave change events from other
// Swasthya services and drops the affected day-slot cache entries. The
// resolver recomputes on the next read; no entity state is mirrored here.
type CacheHitListener struct {
	conn       *amqp.Connection
	channel    *amqp.Channel
	useCase    in.SlotResolverUseCase
	cfg        *config.Config
	logger     out.LoggerPort
	consumerWg sync.WaitGroup
}

type CacheHitResourceType string

const (
	CacheHitResourceTypeAppointment CacheHitResourceType = "appointment"
	CacheHitResourceTypeSchedule    CacheHitResourceType = "doctorschedule"
	CacheHitResourceTypeLeave       CacheHitResourceType = "doctorleave"
)

type CacheMessageRoutingKey struct {
	Source       string
	Receiver     string
	ResourceType CacheHitResourceType
	Event        string
	Action       string
}

func NewCacheHitListener(useCase in.SlotResolverUseCase, cfg *config.Config, logger out.LoggerPort) (*CacheHitListener, error) {
	if !cfg.RabbitMQ.Enabled {
		logger.Info("rabbitmq.disabled", out.LogFields{
			"message": "RabbitMQ is disabled, listener will not be started",
		})
		return nil, nil
	}

	conn, err := amqp.Dial(cfg.RabbitMQ.AmqpURI)
	if err != nil {
		logger.Error("rabbitmq.connect.failed", out.LogFields{
			"error": err.Error(),
			"url":   cfg.RabbitMQ.AmqpURI,
		})
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		logger.Error("rabbitmq.channel.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	return &CacheHitListener{
		conn:    conn,
		channel: channel,
		useCase: useCase,
		cfg:     cfg,
		logger:  logger,
	}, nil
}

func (l *CacheHitListener) Start(ctx context.Context) error {
	queues := []struct {
		name    string
		bind    string
		handler func(ctx context.Context, msg amqp.Delivery) error
	}{
		{l.cfg.RabbitMQ.AppointmentQueueName, l.cfg.RabbitMQ.AppointmentQueueBind, l.processAppointmentMessage},
		{l.cfg.RabbitMQ.ScheduleQueueName, l.cfg.RabbitMQ.ScheduleQueueBind, l.processScheduleMessage},
		{l.cfg.RabbitMQ.LeaveQueueName, l.cfg.RabbitMQ.LeaveQueueBind, l.processLeaveMessage},
	}

	for _, q := range queues {
		if err := l.startQueue(ctx, q.name, q.bind, q.handler); err != nil {
			return err
		}
		l.logger.Info("rabbitmq.queue.started", out.LogFields{
			"queue": q.name,
			"bind":  q.bind,
		})
	}

	return nil
}

func (l *CacheHitListener) startQueue(ctx context.Context, queueName, bindingKey string, handler func(ctx context.Context, msg amqp.Delivery) error) error {
	exchangeName := l.cfg.RabbitMQ.Exchange

	var err error
	for attempts := 0; attempts < 3; attempts++ {
		err = l.channel.ExchangeDeclare(
			exchangeName,
			"topic",
			true,  // durable
			false, // auto-delete
			false, // internal
			false, // no-wait
			nil,
		)
		if err == nil {
			break
		}
		l.logger.Warn("rabbitmq.exchange_declare.retry", out.LogFields{
			"exchange": exchangeName,
			"attempt":  attempts + 1,
			"error":    err.Error(),
		})
		time.Sleep(500 * time.Millisecond)
	}
	if err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", exchangeName, err)
	}

	queue, err := l.channel.QueueDeclare(
		queueName,
		true,  // durable
		true,  // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", queueName, err)
	}

	if err := l.channel.QueueBind(queue.Name, bindingKey, exchangeName, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue %s: %w", queue.Name, err)
	}

	consumerID := fmt.Sprintf("consumer-%s-%d", queue.Name, time.Now().UnixNano())
	msgs, err := l.channel.Consume(
		queue.Name,
		consumerID,
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to consume from queue %s: %w", queue.Name, err)
	}

	l.consumerWg.Add(1)
	go func() {
		defer l.consumerWg.Done()

		for {
			select {
			case <-ctx.Done():
				l.logger.Info("rabbitmq.consumer.stopping", out.LogFields{
					"queue":      queue.Name,
					"consumerID": consumerID,
				})
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				if err := handler(ctx, msg); err != nil {
					l.logger.Warn("rabbitmq.message.failed", out.LogFields{
						"queue": queue.Name,
						"error": err.Error(),
					})
					msg.Nack(false, true) // requeue
					continue
				}
				msg.Ack(false)
			}
		}
	}()

	return nil
}

func (l *CacheHitListener) Stop() error {
	if l == nil || l.channel == nil {
		return nil
	}

	if err := l.channel.Close(); err != nil {
		return err
	}
	if err := l.conn.Close(); err != nil {
		return err
	}

	l.consumerWg.Wait()
	return nil
}

// Example routing keys:
// swasthya.slots-svc.appointment.created.store
// swasthya.slots-svc.doctorschedule.updated.invalidate
// swasthya.slots-svc.doctorleave.created.invalidate
func parseCacheMessageRoutingKey(msg amqp.Delivery) (CacheMessageRoutingKey, error) {
	parts := strings.Split(msg.RoutingKey, ".")
	if len(parts) < 5 {
		return CacheMessageRoutingKey{}, fmt.Errorf("invalid routing key: %s", msg.RoutingKey)
	}

	return CacheMessageRoutingKey{
		Source:       parts[0],
		Receiver:     parts[1],
		ResourceType: CacheHitResourceType(parts[2]),
		Event:        parts[3],
		Action:       parts[4],
	}, nil
}
