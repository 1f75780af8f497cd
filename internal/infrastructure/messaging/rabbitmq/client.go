package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/streadway/amqp"

	"github.com/ahbm/hospital-backend/internal/domain/ports"
)

// EmailQueue é a fila durável de e-mails transacionais
const EmailQueue = "email_queue"

// Client mantém a conexão e o canal com o RabbitMQ
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	mu      sync.Mutex // amqp.Channel não é seguro para publicação concorrente
	log     ports.Logger
}

// NewClient conecta ao broker e declara a fila de e-mails
func NewClient(url string, log ports.Logger) (*Client, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := declareEmailQueue(ch); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	log.Info("rabbitmq connected", "queue", EmailQueue)

	return &Client{conn: conn, channel: ch, log: log}, nil
}

func declareEmailQueue(ch *amqp.Channel) error {
	_, err := ch.QueueDeclare(
		EmailQueue, // name
		true,       // durable
		false,      // delete when unused
		false,      // exclusive
		false,      // no-wait
		nil,        // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare %s: %w", EmailQueue, err)
	}
	return nil
}

// Close fecha canal e conexão
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	return errors.Join(errs...)
}

// mailJob é o envelope publicado na fila
type mailJob struct {
	Kind          string                    `json:"kind"`
	PasswordReset *ports.PasswordResetEmail `json:"password_reset,omitempty"`
}

const jobPasswordReset = "password_reset"

// SendPasswordReset enfileira o e-mail; a entrega fica a cargo do worker
func (c *Client) SendPasswordReset(ctx context.Context, msg ports.PasswordResetEmail) error {
	body, err := json.Marshal(mailJob{Kind: jobPasswordReset, PasswordReset: &msg})
	if err != nil {
		return fmt.Errorf("failed to marshal mail job: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	err = c.channel.Publish(
		"",         // default exchange
		EmailQueue, // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish mail job: %w", err)
	}

	return nil
}

// ConsumeEmails entrega cada mensagem da fila com o mailer informado até ctx terminar.
// Mensagens malformadas são descartadas; falhas de entrega voltam para a fila uma vez.
func (c *Client) ConsumeEmails(ctx context.Context, mailer ports.Mailer) error {
	if err := c.channel.Qos(1, 0, false); err != nil {
		return fmt.Errorf("failed to set qos: %w", err)
	}

	msgs, err := c.channel.Consume(
		EmailQueue, // queue
		"",         // consumer tag
		false,      // auto-ack
		false,      // exclusive
		false,      // no-local
		false,      // no-wait
		nil,        // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return errors.New("rabbitmq delivery channel closed")
			}
			HandleDelivery(ctx, d, mailer, c.log)
		}
	}
}

// HandleDelivery processa uma mensagem e faz ack/nack conforme o resultado
func HandleDelivery(ctx context.Context, d amqp.Delivery, mailer ports.Mailer, log ports.Logger) {
	var job mailJob
	if err := json.Unmarshal(d.Body, &job); err != nil || job.Kind != jobPasswordReset || job.PasswordReset == nil {
		log.Error("discarding malformed mail job", "error", err, "kind", job.Kind)
		_ = d.Reject(false)
		return
	}

	if err := mailer.SendPasswordReset(ctx, *job.PasswordReset); err != nil {
		log.Error("mail delivery failed", "error", err, "redelivered", d.Redelivered)
		_ = d.Nack(false, !d.Redelivered)
		return
	}

	_ = d.Ack(false)
}
