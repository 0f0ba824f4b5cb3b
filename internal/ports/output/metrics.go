package output

import (
	"time"

	"bannerbot/internal/domain/entities"
)

// Metrics receives counters from the application layer.
type Metrics interface {
	AlertDispatched(kind entities.AlertKind)
	AlertFailed(kind entities.AlertKind)
	CycleCompleted(d time.Duration)
	ContentEdited(section entities.Section)
}

// NopMetrics discards everything.
type NopMetrics struct{}

func (NopMetrics) AlertDispatched(entities.AlertKind) {}
func (NopMetrics) AlertFailed(entities.AlertKind)     {}
func (NopMetrics) CycleCompleted(time.Duration)       {}
func (NopMetrics) ContentEdited(entities.Section)     {}
