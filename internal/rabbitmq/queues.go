package rabbitmq

const (
	// MembershipExpiringQueue очередь писем об окончании абонемента.
	MembershipExpiringQueue = "membership_expiring_queue"
	// MembershipExpiringKey ключ маршрутизации событий об окончании абонемента.
	MembershipExpiringKey = "membership.expiring"
)

// QueueConfig очередь и ключ, которым она привязана к обменнику.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetNotificationQueues очереди, которые объявляют scheduler и sender.
func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: MembershipExpiringQueue, RoutingKey: MembershipExpiringKey},
	}
}
