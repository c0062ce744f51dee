package rabbitmq

import (
	"encoding/json"
	"fmt"

	"github.com/magabrotheeeer/appointment-scheduler/internal/models"
	"github.com/streadway/amqp"
)

// NotificationExchange имя обменника уведомлений.
const NotificationExchange = "notifications"

// SlotChangePublisher публикует сообщения об изменении занятости слотов.
type SlotChangePublisher struct {
	ch *amqp.Channel
}

// NewSlotChangePublisher создает новый экземпляр SlotChangePublisher.
func NewSlotChangePublisher(ch *amqp.Channel) *SlotChangePublisher {
	return &SlotChangePublisher{ch: ch}
}

// PublishSlotChange отправляет сообщение об изменении занятости слотов
// специалиста в обменник уведомлений.
func (p *SlotChangePublisher) PublishSlotChange(change models.SlotChange) error {
	return PublishMessage(p.ch, NotificationExchange, SlotChangeRoutingKey, change)
}

// PublishMessage публикует сообщение в RabbitMQ.
func PublishMessage(ch *amqp.Channel, exchange string, routingkey string, message any) error {
	const op = "rabbitmq.PublishMessage"
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = ch.Publish(
		exchange,
		routingkey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
