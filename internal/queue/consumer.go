package queue

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// StartBookingConsumer connects to RabbitMQ, declares the booking
// queues (durable) and starts consuming messages from both. Each
// message is appended to logs/booking.log in a single-line,
// human-friendly format. The function runs a reconnect loop with
// exponential backoff and is expected to be launched in its own
// goroutine from main; it keeps running and rejects messages it
// cannot process so the server continues operating.
func StartBookingConsumer() {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(brokerURL())
		if err != nil {
			log.Printf("booking-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeLoop(conn); err != nil {
			log.Printf("booking-consumer: consume loop ended: %v; reconnecting", err)
		}
		_ = conn.Close()
		time.Sleep(2 * time.Second)
	}
}

func consumeLoop(conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Printf("booking-consumer: set QoS failed: %v", err)
	}

	var wg sync.WaitGroup
	for _, name := range []string{BookingCreatedQueue, BookingStatusChangedQueue} {
		if _, err := ch.QueueDeclare(name, true, false, false, false, nil); err != nil {
			return fmt.Errorf("queue declare %s: %w", name, err)
		}
		msgs, err := ch.Consume(name, "", false, false, false, false, nil)
		if err != nil {
			return fmt.Errorf("queue consume %s: %w", name, err)
		}
		wg.Add(1)
		go func(queueName string, deliveries <-chan amqp.Delivery) {
			defer wg.Done()
			for d := range deliveries {
				if err := handleMessage(queueName, d.Body); err != nil {
					log.Printf("booking-consumer: handle message failed: %v", err)
					_ = d.Nack(false, false)
					continue
				}
				_ = d.Ack(false)
			}
		}(name, msgs)
	}
	// Both delivery channels close when the connection drops; the
	// caller then reconnects.
	wg.Wait()
	return fmt.Errorf("delivery channels closed")
}

func handleMessage(queueName string, body []byte) error {
	var line string
	switch queueName {
	case BookingCreatedQueue:
		var ev BookingCreatedEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return fmt.Errorf("unmarshal created event: %w", err)
		}
		line = fmt.Sprintf("%s CREATED booking=%d room=%d guest=%d stay=%s..%s guests=%d total_cents=%d status=%s",
			time.Now().UTC().Format(time.RFC3339), ev.BookingID, ev.RoomID, ev.GuestID,
			ev.CheckIn, ev.CheckOut, ev.Guests, ev.TotalCents, ev.Status)
	case BookingStatusChangedQueue:
		var ev BookingStatusChangedEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return fmt.Errorf("unmarshal status event: %w", err)
		}
		line = fmt.Sprintf("%s STATUS booking=%d room=%d guest=%d %s->%s",
			time.Now().UTC().Format(time.RFC3339), ev.BookingID, ev.RoomID, ev.GuestID, ev.From, ev.To)
	default:
		return fmt.Errorf("unknown queue %q", queueName)
	}
	return appendLog(line)
}

func appendLog(line string) error {
	if err := os.MkdirAll("logs", 0o755); err != nil {
		return fmt.Errorf("create logs dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join("logs", "booking.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open booking.log: %w", err)
	}
	defer f.Close()
	if _, err := fmt.Fprintln(f, line); err != nil {
		return fmt.Errorf("write booking.log: %w", err)
	}
	return nil
}
