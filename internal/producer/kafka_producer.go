package producer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

type ClickMessage struct {
	ClickID   string    `json:"click_id"`
	LinkID    string    `json:"link_id"`
	ShortCode string    `json:"short_code"`
	IP        string    `json:"ip"`
	Referer   string    `json:"referer"`
	ClickedAt time.Time `json:"clicked_at"`
}

func PublishClick(brokers []string, topic string, msg ClickMessage) error {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
	}
	defer w.Close()

	value, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return w.WriteMessages(ctx, kafka.Message{Value: value})
}
