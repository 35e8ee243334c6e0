package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type EquipmentType string

const (
	EquipmentTypeSkis      EquipmentType = "Skis"
	EquipmentTypeSnowboard EquipmentType = "Snowboard"
	EquipmentTypeHelmet    EquipmentType = "Helmet"
	EquipmentTypeGloves    EquipmentType = "Gloves"
	EquipmentTypePoles     EquipmentType = "Poles"
	EquipmentTypeGoggles   EquipmentType = "Goggles"
)

type Size string

const (
	SizeSmall     Size = "Small"
	SizeMedium    Size = "Medium"
	SizeLarge     Size = "Large"
	SizeUniversal Size = "Universal"
)

var equipmentTypes = map[string]EquipmentType{
	"skis":      EquipmentTypeSkis,
	"snowboard": EquipmentTypeSnowboard,
	"helmet":    EquipmentTypeHelmet,
	"gloves":    EquipmentTypeGloves,
	"poles":     EquipmentTypePoles,
	"goggles":   EquipmentTypeGoggles,
}

var sizes = map[string]Size{
	"small":     SizeSmall,
	"medium":    SizeMedium,
	"large":     SizeLarge,
	"universal": SizeUniversal,
}

// ParseEquipmentType matches a free-text label case-insensitively.
func ParseEquipmentType(s string) (EquipmentType, error) {
	t, ok := equipmentTypes[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("unknown equipment type: %q", s)
	}
	return t, nil
}

// ParseSize matches a free-text label case-insensitively.
func ParseSize(s string) (Size, error) {
	sz, ok := sizes[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("unknown size: %q", s)
	}
	return sz, nil
}

// Equipment is one physical rentable unit. InWarehouse and Reserved are only
// ever flipped together through Reserve and Restore, which keeps the
// "issued implies reserved" invariant from drifting.
type Equipment struct {
	ID           int32           `json:"id"`
	Type         EquipmentType   `json:"type"`
	Size         Size            `json:"size"`
	Price        decimal.Decimal `json:"price"`
	InWarehouse  bool            `json:"in_warehouse"`
	Reserved     bool            `json:"reserved"`
	RentalInfoID *int32          `json:"rental_info_id,omitempty"`
}

// Reserve marks the unit as held against an order and taken off the shelf.
// No-op on a nil unit. Calling it twice leaves the unit in the same state.
func Reserve(e *Equipment) {
	if e == nil {
		return
	}
	e.InWarehouse = false
	e.Reserved = true
}

// Restore is the inverse of Reserve: back in the warehouse, free to assign.
func Restore(e *Equipment) {
	if e == nil {
		return
	}
	e.InWarehouse = true
	e.Reserved = false
}

// Available reports whether the unit can be assigned to a new order.
func (e *Equipment) Available() bool {
	return e.InWarehouse && !e.Reserved
}

// AvailabilityGroup is a (type, size) bucket of assignable units.
type AvailabilityGroup struct {
	Type  EquipmentType `json:"type"`
	Size  Size          `json:"size"`
	Count int32         `json:"count"`
}
