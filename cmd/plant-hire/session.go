package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/username/plant-hire-calculator/internal/billing"
	"github.com/username/plant-hire-calculator/internal/calendar"
	"github.com/username/plant-hire-calculator/internal/hire"
	"go.uber.org/zap"
)

// initializeCalendar builds the statutory calendar plus the optional extra-holidays file
func initializeCalendar() (calendar.Calendar, error) {
	primary := calendar.NewComputedCalendar()
	if cfg.Calendar.ExtraHolidaysFile == "" {
		return primary, nil
	}

	logger.Info("Using extra holidays file", zap.String("file", cfg.Calendar.ExtraHolidaysFile))
	fc := calendar.NewFileCalendar(cfg.Calendar.ExtraHolidaysFile, logger)
	composite := calendar.NewCompositeCalendar(primary, logger, fc)
	if err := composite.LoadOverlays(); err != nil {
		return nil, err
	}
	return composite, nil
}

// initializeManager opens the hire session named by the configuration
func initializeManager() (*hire.Manager, calendar.Calendar, error) {
	cal, err := initializeCalendar()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize calendar: %w", err)
	}

	manager := hire.NewManager(cfg.State.SessionFile, cal, logger)

	presets := make([]hire.Preset, 0, len(cfg.Presets))
	for _, p := range cfg.Presets {
		presets = append(presets, hire.Preset{Name: p.Name, Rate: p.Rate})
	}
	manager.SetPresets(presets)

	if err := manager.Load(); err != nil {
		return nil, nil, fmt.Errorf("failed to load session: %w", err)
	}
	logger.Debug("Session opened", zap.String("file", manager.SessionFile()))

	return manager, cal, nil
}

// resolveEquipment finds an item by exact id, unique id prefix or unique name
func resolveEquipment(manager *hire.Manager, ref string) (billing.Equipment, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return billing.Equipment{}, fmt.Errorf("%w: empty reference", hire.ErrEquipmentNotFound)
	}

	if item, err := manager.Get(ref); err == nil {
		return item, nil
	}

	var matches []billing.Equipment
	for _, item := range manager.Equipment() {
		if strings.HasPrefix(item.ID, ref) || strings.EqualFold(item.Name, ref) {
			matches = append(matches, item)
		}
	}

	switch len(matches) {
	case 0:
		return billing.Equipment{}, fmt.Errorf("%w: %s", hire.ErrEquipmentNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		names := make([]string, len(matches))
		for i, m := range matches {
			names[i] = fmt.Sprintf("%s (%s)", m.Name, shortID(m.ID))
		}
		sort.Strings(names)
		return billing.Equipment{}, fmt.Errorf("%q is ambiguous: %s", ref, strings.Join(names, ", "))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
