package adapter

import "github.com/property-ledger/backend/internal/domain/entity"

// BatchObserver is notified when a sweep finishes.
type BatchObserver interface {
	ObserveBatch(result *entity.BatchResult)
}
