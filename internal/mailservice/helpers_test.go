package mailservice

import amqp "github.com/rabbitmq/amqp091-go"

func amqpDelivery(body string) amqp.Delivery {
	return amqp.Delivery{Body: []byte(body)}
}
