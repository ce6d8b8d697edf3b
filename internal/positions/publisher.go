package positions

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/richxcame/transitops/pkg/logger"
	"go.uber.org/zap"
)

var (
	positionsPublished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vehicle_positions_published_total",
		Help: "Position samples published to NATS",
	})
	positionsPublishErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vehicle_positions_publish_errors_total",
		Help: "Position samples that failed to publish to NATS",
	})
)

// NATSPublisher publishes position samples on positions.<vehicle_id>
type NATSPublisher struct {
	nc *nats.Conn
}

// NewNATSPublisher connects to NATS with reconnect logging
func NewNATSPublisher(url string) (*NATSPublisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("transitops-fares"),
		nats.DisconnectHandler(func(_ *nats.Conn) {
			logger.Warn("nats disconnected")
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			logger.Info("nats reconnected")
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			logger.Warn("nats connection closed")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}
	return &NATSPublisher{nc: nc}, nil
}

// Close drains pending messages before closing the connection
func (p *NATSPublisher) Close() {
	if p.nc != nil {
		p.nc.Drain()
		p.nc.Close()
	}
}

// PublishPosition sends one sample. Callers treat failures as non-fatal.
func (p *NATSPublisher) PublishPosition(pos *VehiclePosition) error {
	subject := fmt.Sprintf("positions.%s", pos.VehicleID)
	b, err := json.Marshal(pos)
	if err != nil {
		positionsPublishErrors.Inc()
		return fmt.Errorf("failed to marshal position: %w", err)
	}
	if err := p.nc.Publish(subject, b); err != nil {
		positionsPublishErrors.Inc()
		logger.Warn("failed to publish position",
			zap.String("subject", subject),
			zap.Error(err),
		)
		return err
	}
	positionsPublished.Inc()
	return nil
}

// NoopPublisher is used when NATS is disabled
type NoopPublisher struct{}

func (NoopPublisher) PublishPosition(*VehiclePosition) error { return nil }
