package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReserveRestore(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		unit := &Equipment{ID: 1, InWarehouse: true, Reserved: false}

		Reserve(unit)
		assert.False(t, unit.InWarehouse)
		assert.True(t, unit.Reserved)
		assert.False(t, unit.Available())

		Restore(unit)
		assert.True(t, unit.InWarehouse)
		assert.False(t, unit.Reserved)
		assert.True(t, unit.Available())
	})

	t.Run("ReserveIsIdempotent", func(t *testing.T) {
		unit := &Equipment{ID: 1, InWarehouse: true}
		Reserve(unit)
		once := *unit
		Reserve(unit)
		assert.Equal(t, once, *unit)
	})

	t.Run("RestoreIsIdempotent", func(t *testing.T) {
		unit := &Equipment{ID: 1, InWarehouse: false, Reserved: true}
		Restore(unit)
		once := *unit
		Restore(unit)
		assert.Equal(t, once, *unit)
	})

	t.Run("NilUnitIsNoOp", func(t *testing.T) {
		assert.NotPanics(t, func() {
			Reserve(nil)
			Restore(nil)
		})
	})
}

func TestParseEquipmentType(t *testing.T) {
	parsed, err := ParseEquipmentType("  sNoWbOaRd ")
	assert.NoError(t, err)
	assert.Equal(t, EquipmentTypeSnowboard, parsed)

	_, err = ParseEquipmentType("sled")
	assert.Error(t, err)
}

func TestParseSize(t *testing.T) {
	parsed, err := ParseSize("MEDIUM")
	assert.NoError(t, err)
	assert.Equal(t, SizeMedium, parsed)

	_, err = ParseSize("xxl")
	assert.Error(t, err)
}
