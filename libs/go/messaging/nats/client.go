package messaging

import (
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

const (
	connectionTimeout = 5 * time.Second
	reconnectWait     = 1 * time.Second
	maxReconnects     = 10
	drainTimeout      = 10 * time.Second
)

// Connect dials NATS with reconnect handling and logs connection state changes.
func Connect(url, name string, logger *zap.Logger) (*nats.Conn, error) {
	opts := []nats.Option{
		nats.Name(name),
		nats.Timeout(connectionTimeout),
		nats.ReconnectWait(reconnectWait),
		nats.MaxReconnects(maxReconnects),
		nats.DrainTimeout(drainTimeout),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("nats disconnected", zap.Error(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("nats reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ErrorHandler(func(_ *nats.Conn, sub *nats.Subscription, err error) {
			subject := ""
			if sub != nil {
				subject = sub.Subject
			}
			logger.Error("nats async error", zap.String("subject", subject), zap.Error(err))
		}),
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, err
	}

	logger.Info("connected to nats", zap.String("url", nc.ConnectedUrl()))
	return nc, nil
}

// Close drains the connection so in-flight publishes are flushed.
func Close(nc *nats.Conn, logger *zap.Logger) {
	if nc == nil || nc.IsClosed() {
		return
	}
	if err := nc.Drain(); err != nil {
		logger.Warn("nats drain failed", zap.Error(err))
		nc.Close()
		return
	}
	logger.Info("nats connection drained")
}
