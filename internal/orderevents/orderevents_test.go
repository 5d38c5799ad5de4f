package orderevents

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopswift/internal/domain"
)

type recordingChannel struct {
	published []amqp.Publishing
	keys      []string
	err       error
	closed    bool
}

func (c *recordingChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if c.err != nil {
		return c.err
	}
	c.keys = append(c.keys, exchange+"/"+key)
	c.published = append(c.published, msg)
	return nil
}

func (c *recordingChannel) Close() error {
	c.closed = true
	return nil
}

func confirmation() domain.Confirmation {
	return domain.Confirmation{
		OrderNumber: "ORD-ABC123",
		ItemCount:   3,
		Total:       decimal.RequireFromString("289.97"),
		Items: []domain.CartItem{
			{Product: domain.Product{ID: "1", Name: "Headphones", Price: decimal.RequireFromString("129.99")}, Quantity: 1},
			{Product: domain.Product{ID: "4", Name: "Bottle", Price: decimal.RequireFromString("79.99")}, Quantity: 2},
		},
		PlacedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestFromConfirmation(t *testing.T) {
	ev := FromConfirmation(confirmation(), "a@b.com", &domain.User{ID: "2"})
	assert.Equal(t, "ORD-ABC123", ev.OrderNumber)
	assert.Equal(t, "2", ev.UserID)
	require.Len(t, ev.Lines, 2)
	assert.Equal(t, "4", ev.Lines[1].ProductID)
	assert.Equal(t, "Bottle", ev.Lines[1].Name)
	assert.Equal(t, 2, ev.Lines[1].Quantity)
	assert.True(t, decimal.RequireFromString("79.99").Equal(ev.Lines[1].UnitPrice))

	guest := FromConfirmation(confirmation(), "a@b.com", nil)
	assert.Empty(t, guest.UserID)
}

func TestAMQPPublisher_Publish(t *testing.T) {
	ch := &recordingChannel{}
	p := newAMQPPublisher(ch, DefaultQueue, nil)

	require.NoError(t, p.Publish(context.Background(), FromConfirmation(confirmation(), "a@b.com", nil)))
	require.Len(t, ch.published, 1)
	assert.Equal(t, "/orders", ch.keys[0])

	msg := ch.published[0]
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, "ORD-ABC123", msg.MessageId)

	var body map[string]any
	require.NoError(t, json.Unmarshal(msg.Body, &body))
	assert.Equal(t, "289.97", body["total"])
	assert.Equal(t, "a@b.com", body["email"])
	assert.NotContains(t, string(msg.Body), "cardNumber")

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestAMQPPublisher_PublishError(t *testing.T) {
	p := newAMQPPublisher(&recordingChannel{err: errors.New("channel closed")}, DefaultQueue, nil)
	err := p.Publish(context.Background(), FromConfirmation(confirmation(), "", nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ORD-ABC123")
}

func TestNop(t *testing.T) {
	var p Publisher = Nop{}
	assert.NoError(t, p.Publish(context.Background(), OrderPlaced{}))
	assert.NoError(t, p.Close())
}
