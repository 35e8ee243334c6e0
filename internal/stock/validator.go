// Package stock validates that a requested basket can be covered by
// unreserved, in-warehouse equipment. It is read-only: reservation itself
// happens later, when a worker accepts the order.
package stock

import (
	"context"
	"fmt"

	"skirent-backend/internal/domain"
)

// RequestLine is one raw basket line as submitted by a caller. Type and Size
// are free text and validated here; EquipmentIDs are optional specific units
// the caller wants.
type RequestLine struct {
	Type         string  `json:"type"`
	Size         string  `json:"size"`
	Quantity     int32   `json:"quantity"`
	EquipmentIDs []int32 `json:"equipment_ids,omitempty"`
}

// Group is a normalized (type, size) request with summed quantity.
type Group struct {
	Type         domain.EquipmentType
	Size         domain.Size
	Quantity     int32
	EquipmentIDs []int32
}

// InsufficientError reports the first basket group that cannot be covered.
type InsufficientError struct {
	Type      domain.EquipmentType
	Size      domain.Size
	Available int32
	Requested int32
}

func (e *InsufficientError) Error() string {
	return fmt.Sprintf("not enough %s %s in stock: available %d, requested %d",
		e.Type, e.Size, e.Available, e.Requested)
}

// AvailabilityCounter is the slice of the equipment repository the validator
// needs.
type AvailabilityCounter interface {
	CountAvailable(ctx context.Context, t domain.EquipmentType, s domain.Size) (int32, error)
}

// Normalize parses and groups request lines by (type, size), summing
// quantities. Lines with non-positive quantity are dropped; an unknown type
// or size fails the whole request.
func Normalize(lines []RequestLine) ([]Group, error) {
	var groups []Group
	index := map[string]int{}

	for _, l := range lines {
		if l.Quantity <= 0 {
			continue
		}
		t, err := domain.ParseEquipmentType(l.Type)
		if err != nil {
			return nil, err
		}
		s, err := domain.ParseSize(l.Size)
		if err != nil {
			return nil, err
		}

		key := string(t) + "/" + string(s)
		if i, ok := index[key]; ok {
			groups[i].Quantity += l.Quantity
			groups[i].EquipmentIDs = append(groups[i].EquipmentIDs, l.EquipmentIDs...)
			continue
		}
		index[key] = len(groups)
		groups = append(groups, Group{
			Type:         t,
			Size:         s,
			Quantity:     l.Quantity,
			EquipmentIDs: append([]int32(nil), l.EquipmentIDs...),
		})
	}
	return groups, nil
}

// Validate checks each group against current availability and fails fast on
// the first group that cannot be covered. A multi-group request therefore
// reports only its first failure.
func Validate(ctx context.Context, counter AvailabilityCounter, groups []Group) error {
	for _, g := range groups {
		available, err := counter.CountAvailable(ctx, g.Type, g.Size)
		if err != nil {
			return fmt.Errorf("count available %s %s: %w", g.Type, g.Size, err)
		}
		if g.Quantity > available {
			return &InsufficientError{
				Type:      g.Type,
				Size:      g.Size,
				Available: available,
				Requested: g.Quantity,
			}
		}
	}
	return nil
}
