package canvas

import (
	"encoding/json"
	"fmt"
)

// ParseDesign decodes and validates a designer document submitted over the
// wire. Structural problems (missing identifiers, duplicate sides, unknown
// object kinds) are rejected here so everything downstream can operate on
// a fully-typed document; per-object metadata gaps such as a missing print
// method are legal and degrade inside the pricing engine instead.
func ParseDesign(data []byte) (Design, error) {
	var design Design
	if err := json.Unmarshal(data, &design); err != nil {
		return Design{}, fmt.Errorf("decode design: %w", err)
	}
	if err := design.Validate(); err != nil {
		return Design{}, err
	}
	return design, nil
}

// Validate checks the structural invariants of a design document.
func (d Design) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("design id is required")
	}
	if len(d.Sides) == 0 {
		return fmt.Errorf("design %s has no sides", d.ID)
	}

	seenSides := make(map[string]bool, len(d.Sides))
	for _, side := range d.Sides {
		if side.ID == "" {
			return fmt.Errorf("design %s: side id is required", d.ID)
		}
		if seenSides[side.ID] {
			return fmt.Errorf("design %s: duplicate side %q", d.ID, side.ID)
		}
		seenSides[side.ID] = true

		seenObjects := make(map[string]bool, len(side.Objects))
		for _, obj := range side.Objects {
			if obj.ID == "" {
				return fmt.Errorf("design %s side %s: object id is required", d.ID, side.ID)
			}
			if seenObjects[obj.ID] {
				return fmt.Errorf("design %s side %s: duplicate object %q", d.ID, side.ID, obj.ID)
			}
			seenObjects[obj.ID] = true

			switch obj.Kind {
			case KindImage, KindText, KindShape:
			default:
				return fmt.Errorf("design %s side %s object %s: unknown kind %q",
					d.ID, side.ID, obj.ID, obj.Kind)
			}
		}
	}
	return nil
}
