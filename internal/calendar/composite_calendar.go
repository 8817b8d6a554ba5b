package calendar

import (
	"fmt"

	"go.uber.org/zap"
)

// CompositeCalendar implements Calendar as a union of sources
// Primary: ComputedCalendar (statutory rules)
// Overlays: FileCalendar (local extra holidays)
type CompositeCalendar struct {
	primary  Calendar
	overlays []Calendar
	logger   *zap.Logger
}

// NewCompositeCalendar creates a new CompositeCalendar
func NewCompositeCalendar(primary Calendar, logger *zap.Logger, overlays ...Calendar) *CompositeCalendar {
	return &CompositeCalendar{
		primary:  primary,
		overlays: overlays,
		logger:   logger,
	}
}

// Holidays returns primary holidays followed by every overlay's holidays
func (cc *CompositeCalendar) Holidays(year int) []Holiday {
	holidays := cc.primary.Holidays(year)
	for _, overlay := range cc.overlays {
		holidays = append(holidays, overlay.Holidays(year)...)
	}
	return holidays
}

// LoadOverlays loads every overlay that is a FileCalendar
func (cc *CompositeCalendar) LoadOverlays() error {
	for _, overlay := range cc.overlays {
		fc, ok := overlay.(*FileCalendar)
		if !ok {
			continue
		}
		if err := fc.Load(); err != nil {
			return fmt.Errorf("failed to load holiday overlay: %w", err)
		}
		cc.logger.Info("Holiday overlay loaded", zap.String("file", fc.filePath))
	}
	return nil
}
