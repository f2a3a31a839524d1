package sync

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go"
)

// PeerPublisher is the local-network leg of the broadcaster: a best-effort
// push to whatever peer terminals are listening on the venue subjects.
type PeerPublisher interface {
	Publish(ctx context.Context, subject string, msg []byte) error
	Close() error
}

type NATSPeer struct {
	conn *nats.Conn
}

func NewNATSPeer(url string) (*NATSPeer, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSPeer{conn: conn}, nil
}

func (p *NATSPeer) Publish(ctx context.Context, subject string, msg []byte) error {
	return p.conn.Publish(subject, msg)
}

func (p *NATSPeer) Close() error {
	p.conn.Close()
	return nil
}
