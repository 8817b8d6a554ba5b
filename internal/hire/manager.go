package hire

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/username/plant-hire-calculator/internal/billing"
	"github.com/username/plant-hire-calculator/internal/calendar"
	"github.com/username/plant-hire-calculator/pkg/dateutil"
	"go.uber.org/zap"
)

var (
	ErrEquipmentNotFound = errors.New("equipment not found")
	ErrInvalidEquipment  = errors.New("invalid equipment")
	ErrUnknownPreset     = errors.New("unknown preset")
	ErrInvalidMonth      = errors.New("invalid month")
)

// Preset is a named equipment type with its usual weekday rate
type Preset struct {
	Name string  `json:"name" mapstructure:"name"`
	Rate float64 `json:"rate" mapstructure:"rate"`
}

// DefaultPresets are used when no presets are configured
var DefaultPresets = []Preset{
	{Name: "Dropside", Rate: 5200},
	{Name: "ADT", Rate: 6800},
	{Name: "FEL", Rate: 5485},
	{Name: "Bulldozzer", Rate: 7314},
	{Name: "Skid Steer", Rate: 2800},
	{Name: "Concrete Cutter", Rate: 478.26},
}

// Manager owns the hire session: the viewed month and the equipment collection.
// Items are handed out as copies and every update replaces an item's whole value.
type Manager struct {
	mu       sync.RWMutex
	year     int
	month    time.Month
	items    []billing.Equipment
	presets  []Preset
	calendar calendar.Calendar
	store    *SessionStore
	logger   *zap.Logger
}

// NewManager creates a session viewing the current month.
// An empty stateFile disables persistence; a nil calendar uses the statutory rules.
func NewManager(stateFile string, cal calendar.Calendar, logger *zap.Logger) *Manager {
	if cal == nil {
		cal = calendar.NewComputedCalendar()
	}

	year, month := dateutil.CurrentMonth()

	m := &Manager{
		year:     year,
		month:    month,
		items:    []billing.Equipment{},
		presets:  append([]Preset(nil), DefaultPresets...),
		calendar: cal,
		logger:   logger,
	}
	if stateFile != "" {
		m.store = NewSessionStore(stateFile, logger)
	}
	return m
}

// SetPresets replaces the preset list; an empty list keeps the defaults
func (m *Manager) SetPresets(presets []Preset) {
	if len(presets) == 0 {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.presets = append([]Preset(nil), presets...)
}

// Presets returns the configured presets
func (m *Manager) Presets() []Preset {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Preset(nil), m.presets...)
}

// Month returns the viewed month
func (m *Manager) Month() (int, time.Month) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.year, m.month
}

// SetMonth changes the viewed month
func (m *Manager) SetMonth(year int, month time.Month) error {
	if year < 1 || month < time.January || month > time.December {
		return fmt.Errorf("%w: %d-%02d", ErrInvalidMonth, year, int(month))
	}

	m.mu.Lock()
	m.year, m.month = year, month
	m.mu.Unlock()

	m.logger.Debug("Viewed month changed", zap.String("month", dateutil.FormatMonth(year, month)))
	return nil
}

// NextMonth moves the viewed month forward by one
func (m *Manager) NextMonth() (int, time.Month) {
	return m.shiftMonth(1)
}

// PrevMonth moves the viewed month back by one
func (m *Manager) PrevMonth() (int, time.Month) {
	return m.shiftMonth(-1)
}

func (m *Manager) shiftMonth(n int) (int, time.Month) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.year, m.month = dateutil.AddMonths(m.year, m.month, n)
	return m.year, m.month
}

// Equipment returns copies of every item in insertion order
func (m *Manager) Equipment() []billing.Equipment {
	m.mu.RLock()
	defer m.mu.RUnlock()

	items := make([]billing.Equipment, len(m.items))
	for i, item := range m.items {
		items[i] = item.Clone()
	}
	return items
}

// Get returns a copy of the item with the given id
func (m *Manager) Get(id string) (billing.Equipment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := m.indexOf(id)
	if i < 0 {
		return billing.Equipment{}, fmt.Errorf("%w: %s", ErrEquipmentNotFound, id)
	}
	return m.items[i].Clone(), nil
}

// AddEquipment adds an item with rates derived from baseRate.
// baseRate may be a number or a numeric string; anything else counts as 0.
func (m *Manager) AddEquipment(name string, baseRate any) (billing.Equipment, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return billing.Equipment{}, fmt.Errorf("%w: name is required", ErrInvalidEquipment)
	}

	item := billing.NewEquipment(name, billing.ParseAmount(baseRate))

	m.mu.Lock()
	m.items = append(m.items, item)
	m.mu.Unlock()

	m.logger.Info("Equipment added",
		zap.String("id", item.ID),
		zap.String("name", item.Name),
		zap.Float64("weekday_rate", item.Rates.Weekday))

	return item.Clone(), nil
}

// AddPreset adds an item from a preset, matched case-insensitively
func (m *Manager) AddPreset(name string) (billing.Equipment, error) {
	for _, preset := range m.Presets() {
		if strings.EqualFold(preset.Name, strings.TrimSpace(name)) {
			return m.AddEquipment(preset.Name, preset.Rate)
		}
	}
	return billing.Equipment{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
}

// RemoveEquipment deletes the item with the given id
func (m *Manager) RemoveEquipment(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrEquipmentNotFound, id)
	}

	removed := m.items[i]
	m.items = append(m.items[:i:i], m.items[i+1:]...)

	m.logger.Info("Equipment removed",
		zap.String("id", removed.ID),
		zap.String("name", removed.Name))
	return nil
}

// UpdateIdleDays replaces the item's idle-day set
func (m *Manager) UpdateIdleDays(id string, idle billing.DateSet) (billing.Equipment, error) {
	return m.update(id, func(item billing.Equipment) billing.Equipment {
		item.IdleDays = idle.Clone()
		return item
	})
}

// UpdateRates overrides the item's rates; invalid amounts become 0
func (m *Manager) UpdateRates(id string, rates billing.Rates) (billing.Equipment, error) {
	return m.update(id, func(item billing.Equipment) billing.Equipment {
		item.Rates = rates.Sanitize()
		return item
	})
}

// ResetRates re-derives Saturday and Sunday rates from the current weekday rate
func (m *Manager) ResetRates(id string) (billing.Equipment, error) {
	return m.update(id, func(item billing.Equipment) billing.Equipment {
		item.Rates = billing.DeriveRates(item.Rates.Weekday)
		return item
	})
}

// ToggleIdleDate flips a single date in the item's idle set
func (m *Manager) ToggleIdleDate(id string, date time.Time) (billing.Equipment, error) {
	return m.update(id, func(item billing.Equipment) billing.Equipment {
		item.IdleDays = billing.ToggleDate(item.IdleDays, date)
		return item
	})
}

// ToggleIdleWeekday marks every such weekday of the viewed month idle,
// or clears them all when they are already idle.
func (m *Manager) ToggleIdleWeekday(id string, weekday time.Weekday) (billing.Equipment, error) {
	return m.update(id, func(item billing.Equipment) billing.Equipment {
		item.IdleDays = billing.ToggleWeekday(item.IdleDays, m.year, m.month, weekday)
		return item
	})
}

// ToggleIdleHolidays marks the viewed month's public holidays idle,
// or clears them all when they are already idle.
func (m *Manager) ToggleIdleHolidays(id string) (billing.Equipment, error) {
	return m.update(id, func(item billing.Equipment) billing.Equipment {
		holidays := calendar.HolidaysIn(m.calendar, m.year, m.month)
		item.IdleDays = billing.ToggleDates(item.IdleDays, holidays)
		return item
	})
}

// update applies fn to a copy of the item and stores the result in its place.
// fn runs with the write lock held.
func (m *Manager) update(id string, fn func(billing.Equipment) billing.Equipment) (billing.Equipment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return billing.Equipment{}, fmt.Errorf("%w: %s", ErrEquipmentNotFound, id)
	}

	updated := fn(m.items[i].Clone())
	m.items[i] = updated
	return updated.Clone(), nil
}

func (m *Manager) indexOf(id string) int {
	for i, item := range m.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// MonthInfo returns the per-day classification of the viewed month
func (m *Manager) MonthInfo() *calendar.MonthInfo {
	year, month := m.Month()
	return calendar.MonthInfoFor(m.calendar, year, month)
}

// Invoice bills one item for the viewed month
func (m *Manager) Invoice(id string) (billing.Invoice, error) {
	m.mu.RLock()
	year, month := m.year, m.month
	i := m.indexOf(id)
	var item billing.Equipment
	if i >= 0 {
		item = m.items[i].Clone()
	}
	m.mu.RUnlock()

	if i < 0 {
		return billing.Invoice{}, fmt.Errorf("%w: %s", ErrEquipmentNotFound, id)
	}
	return billing.BuildInvoiceWith(item, year, month, calendar.HolidaySetFor(m.calendar, year)), nil
}

// Invoices bills every item for the viewed month
func (m *Manager) Invoices() []billing.Invoice {
	_, _, invoices := m.MonthInvoices()
	return invoices
}

// MonthInvoices bills every item and returns the month they were billed for.
// Month and items are read under one lock, so a concurrent month change
// cannot split the label from the invoices.
func (m *Manager) MonthInvoices() (int, time.Month, []billing.Invoice) {
	m.mu.RLock()
	year, month := m.year, m.month
	items := make([]billing.Equipment, len(m.items))
	for i, item := range m.items {
		items[i] = item.Clone()
	}
	m.mu.RUnlock()

	return year, month, billing.BuildInvoices(items, year, month, calendar.HolidaySetFor(m.calendar, year))
}

// GrandTotal sums the per-item invoice totals of the viewed month
func (m *Manager) GrandTotal() float64 {
	return billing.GrandTotal(m.Invoices()...)
}

// SessionFile returns the session file path, or "" when persistence is off
func (m *Manager) SessionFile() string {
	if m.store == nil {
		return ""
	}
	return m.store.Path()
}

// Load restores the session from the session file
func (m *Manager) Load() error {
	if m.store == nil {
		return nil
	}

	state, err := m.store.Load()
	if err != nil {
		return err
	}

	year, month := m.Month()
	if state.Month != "" {
		year, month, err = dateutil.ParseMonth(state.Month)
		if err != nil {
			return fmt.Errorf("failed to parse session month: %w", err)
		}
	}

	items := make([]billing.Equipment, 0, len(state.Equipment))
	for _, item := range state.Equipment {
		if item.ID == "" || strings.TrimSpace(item.Name) == "" {
			m.logger.Warn("Skipping invalid equipment in session",
				zap.String("id", item.ID),
				zap.String("name", item.Name))
			continue
		}
		item.Rates = item.Rates.Sanitize()
		item.IdleDays = item.IdleDays.Clone()
		items = append(items, item)
	}

	m.mu.Lock()
	m.year, m.month = year, month
	m.items = items
	m.mu.Unlock()

	return nil
}

// Save writes the session to the session file
func (m *Manager) Save() error {
	if m.store == nil {
		return nil
	}

	year, month := m.Month()
	state := &SessionState{
		Month:     dateutil.FormatMonth(year, month),
		Equipment: m.Equipment(),
	}
	return m.store.Save(state)
}
