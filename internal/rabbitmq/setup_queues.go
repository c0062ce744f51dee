package rabbitmq

// QueueConfig описывает очередь и ее ключ маршрутизации.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// SlotChangeRoutingKey ключ маршрутизации сообщений об изменении занятости
// слотов специалиста.
const SlotChangeRoutingKey = "slots.changed"

// GetNotificationQueues возвращает очереди обменника notifications.
func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "notifications.slots", RoutingKey: SlotChangeRoutingKey},
	}
}
