package rabbitmq

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type PublisherMock struct {
	mock.Mock
}

func (m *PublisherMock) Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	args := m.Called(exchange, key, mandatory, immediate, msg)
	return args.Error(0)
}

func TestPublishMessage(t *testing.T) {
	type payload struct {
		Email string `json:"email"`
	}

	tests := []struct {
		name       string
		message    any
		publishErr error
		wantErr    bool
		wantCalled bool
	}{
		{
			name:       "успешная публикация",
			message:    payload{Email: "a@example.com"},
			wantCalled: true,
		},
		{
			name:       "ошибка брокера",
			message:    payload{Email: "a@example.com"},
			publishErr: errors.New("channel closed"),
			wantErr:    true,
			wantCalled: true,
		},
		{
			name:    "несериализуемое сообщение",
			message: make(chan int),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pub := new(PublisherMock)
			if tt.wantCalled {
				pub.On("Publish", Exchange, MembershipExpiringKey, false, false, mock.MatchedBy(func(msg amqp.Publishing) bool {
					var got payload
					return msg.ContentType == "application/json" &&
						msg.DeliveryMode == amqp.Persistent &&
						json.Unmarshal(msg.Body, &got) == nil &&
						got.Email == "a@example.com"
				})).Return(tt.publishErr)
			}

			err := PublishMessage(pub, Exchange, MembershipExpiringKey, tt.message)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "rabbitmq.PublishMessage")
			} else {
				require.NoError(t, err)
			}
			pub.AssertExpectations(t)
		})
	}
}
