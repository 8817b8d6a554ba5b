package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/plant-hire-calculator/internal/hire"
	"github.com/username/plant-hire-calculator/pkg/dateutil"
	"go.uber.org/zap"
)

func TestParseIdleDates(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []time.Time
		wantErr bool
	}{
		{"Day numbers", []string{"1", "15"}, []time.Time{
			dateutil.Date(2024, time.February, 1),
			dateutil.Date(2024, time.February, 15),
		}, false},
		{"Leap day", []string{"29"}, []time.Time{dateutil.Date(2024, time.February, 29)}, false},
		{"Full date", []string{"2024-03-15"}, []time.Time{dateutil.Date(2024, time.March, 15)}, false},
		{"Day outside month", []string{"30"}, nil, true},
		{"Zero", []string{"0"}, nil, true},
		{"Garbage", []string{"soon"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseIdleDates(tt.args, 2024, time.February)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Len(t, got, len(tt.want))
			for i := range got {
				assert.True(t, got[i].Equal(tt.want[i]), "date %d = %v, want %v", i, got[i], tt.want[i])
			}
		})
	}
}

func TestResolveEquipment(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	manager := hire.NewManager(filepath.Join(t.TempDir(), "session.json"), nil, logger)

	excavator, err := manager.AddEquipment("Excavator", 2500)
	require.NoError(t, err)
	_, err = manager.AddEquipment("Roller", 900)
	require.NoError(t, err)

	got, err := resolveEquipment(manager, excavator.ID)
	require.NoError(t, err)
	assert.Equal(t, excavator.ID, got.ID)

	got, err = resolveEquipment(manager, excavator.ID[:8])
	require.NoError(t, err)
	assert.Equal(t, excavator.ID, got.ID)

	got, err = resolveEquipment(manager, "excavator")
	require.NoError(t, err)
	assert.Equal(t, excavator.ID, got.ID)

	_, err = resolveEquipment(manager, "crane")
	assert.ErrorIs(t, err, hire.ErrEquipmentNotFound)

	_, err = resolveEquipment(manager, "ex")
	assert.Error(t, err, "a prefix shared by no id must not match by name")
}

func TestResolveEquipment_EmptyRef(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	manager := hire.NewManager("", nil, logger)

	_, err := manager.AddEquipment("Excavator", 2500)
	require.NoError(t, err)

	for _, ref := range []string{"", "   "} {
		_, err := resolveEquipment(manager, ref)
		assert.ErrorIs(t, err, hire.ErrEquipmentNotFound, "ref %q", ref)
	}
}

func TestPrintInvoice(t *testing.T) {
	var buf bytes.Buffer
	out = &buf
	defer func() { out = os.Stdout }()

	logger, _ := zap.NewDevelopment()
	manager := hire.NewManager("", nil, logger)
	require.NoError(t, manager.SetMonth(2023, time.November))
	_, err := manager.AddEquipment("Skid Steer", 100)
	require.NoError(t, err)

	require.NoError(t, printAllInvoices(manager))

	text := buf.String()
	assert.Contains(t, text, "Gold Tier (10% discount)")
	assert.Contains(t, text, "SUNDAYS & PUBLIC HOLIDAYS")
	assert.Contains(t, text, "5, 12, 19, 26")
	assert.Contains(t, text, "Total: R2 763.00")
	assert.Contains(t, text, "Grand total 2023-11: R2 763.00")
}

func TestPrintAllInvoices_Empty(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	manager := hire.NewManager("", nil, logger)

	assert.Error(t, printAllInvoices(manager))
}
