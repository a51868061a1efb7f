package queue

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/tutorhub/booking-service/internal/usecase"
)

// NotificationSender is what the worker calls per consumed message.
// Today that is the SMTP ops mailer.
type NotificationSender interface {
	SendLeadAlert(n usecase.LeadNotification) error
}

// Worker consumes lead notifications off the queue and emails the ops
// inbox. It runs outside the webhook request path: a dead mailer slows
// nothing down and failed sends go to the DLQ.
type Worker struct {
	Ch     *amqp.Channel
	Sender NotificationSender
}

func NewWorker(ch *amqp.Channel, sender NotificationSender) *Worker {
	return &Worker{Ch: ch, Sender: sender}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Ch.Consume(queueName, "", false, false, false, false, nil)
	if err != nil {
		log.Printf("[worker] consume failed: %v", err)
		return
	}

	log.Printf("[worker] consuming %s", queueName)
	for msg := range msgs {
		w.handle(msg)
	}
	log.Printf("[worker] channel closed, stopping")
}

func (w *Worker) handle(msg amqp.Delivery) {
	var n usecase.LeadNotification
	if err := json.Unmarshal(msg.Body, &n); err != nil {
		log.Printf("[worker] bad notification payload, dead-lettering: %v", err)
		msg.Nack(false, false)
		return
	}

	if err := w.Sender.SendLeadAlert(n); err != nil {
		log.Printf("[worker] lead alert for family %s failed, dead-lettering: %v", n.FamilyID, err)
		msg.Nack(false, false)
		return
	}

	msg.Ack(false)
}
