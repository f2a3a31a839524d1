package queue

import (
	"context"
)

type Broker interface {
	Publish(ctx context.Context, queueName string, message []byte) error
	Subscribe(ctx context.Context, queueName string, handler MessageHandler) error
	Close() error
}

type MessageHandler func(ctx context.Context, message []byte) error

const (
	// QueueKOTBroadcast is the cloud-relay path for new kitchen tickets.
	QueueKOTBroadcast = "kot-broadcast"
	// QueueSalesExport carries settled sale records off the terminal.
	QueueSalesExport = "sales-export"
	// QueueKDSStatus carries kitchen-display status reports back in.
	QueueKDSStatus = "kds-status"
	// QueueStockAlerts carries out-of-stock events from the kitchen.
	QueueStockAlerts = "stock-alerts"

	QueueKDSStatusDLQ   = "kds-status-dlq"
	QueueStockAlertsDLQ = "stock-alerts-dlq"
)
