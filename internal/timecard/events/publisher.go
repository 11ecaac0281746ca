// Package events wires the timecard service to its event exchange.
package events

import (
	"github.com/hourbook/hourbook-backend/pkg/logger"
	"github.com/hourbook/hourbook-backend/pkg/messaging"
)

// TimecardEventPublisher publishes timecard events to the timecard exchange
type TimecardEventPublisher struct {
	*messaging.Publisher
}

// NewTimecardEventPublisher creates a publisher bound to the timecard
// events exchange
func NewTimecardEventPublisher(rmq *messaging.RabbitMQ, log *logger.Logger) (*TimecardEventPublisher, error) {
	publisher, err := messaging.NewPublisher(rmq, messaging.ExchangeTimecardEvents, "timecard-service", log)
	if err != nil {
		return nil, err
	}

	return &TimecardEventPublisher{Publisher: publisher}, nil
}
