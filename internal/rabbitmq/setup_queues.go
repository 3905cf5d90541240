package rabbitmq

type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

func GetRegistrationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "registrations.submitted", RoutingKey: "registration.submitted"},
		// при необходимости дополнительные очереди для других воркеров
	}
}
