package worker

import (
	"github.com/spec-kit/companion-service/internal/service"
)

// Subscriber registers its event handlers with the dispatcher.
type Subscriber interface {
	RegisterHandlers()
}

// StartEventWorkers registers every non-nil subscriber.
func StartEventWorkers(subscribers ...Subscriber) {
	for _, s := range subscribers {
		if s == nil {
			continue
		}
		s.RegisterHandlers()
	}
}

var (
	_ Subscriber = (*service.PurchaseService)(nil)
	_ Subscriber = (*service.AuditService)(nil)
)
