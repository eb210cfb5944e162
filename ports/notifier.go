package ports

import (
	"context"

	"pulseboard/models"
)

// Notifier delivers alerts to stakeholders over an external channel.
// Dispatch is fire-and-forget: failures are logged by the caller and never
// block or roll back alert persistence.
type Notifier interface {
	Notify(ctx context.Context, alert *models.Alert) error
}
