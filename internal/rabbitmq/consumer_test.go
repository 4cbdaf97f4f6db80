package rabbitmq

import (
	"errors"
	"fmt"
	"testing"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
)

type ackRecorder struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (a *ackRecorder) Ack(_ uint64, _ bool) error {
	a.acked = true
	return nil
}

func (a *ackRecorder) Nack(_ uint64, _ bool, requeue bool) error {
	a.nacked = true
	a.requeue = requeue
	return nil
}

func (a *ackRecorder) Reject(_ uint64, requeue bool) error {
	a.nacked = true
	a.requeue = requeue
	return nil
}

func TestHandleDelivery(t *testing.T) {
	tests := []struct {
		name        string
		handlerErr  error
		wantAck     bool
		wantNack    bool
		wantRequeue bool
	}{
		{name: "успешная обработка подтверждается", wantAck: true},
		{name: "временная ошибка возвращает в очередь", handlerErr: errors.New("smtp unavailable"), wantNack: true, wantRequeue: true},
		{name: "нечитаемое сообщение отбрасывается", handlerErr: fmt.Errorf("bad body: %w", ErrDiscard), wantNack: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &ackRecorder{}
			d := amqp.Delivery{Acknowledger: rec, Body: []byte(`{}`)}

			handleDelivery(newNoopLogger(), d, func(_ []byte) error { return tt.handlerErr })

			assert.Equal(t, tt.wantAck, rec.acked)
			assert.Equal(t, tt.wantNack, rec.nacked)
			assert.Equal(t, tt.wantRequeue, rec.requeue)
		})
	}
}
