// Package prototypes declares the prototype-information collaborator consumed
// by the compatibility resolver and the sync engine. The host supplies an
// implementation; Table is a static implementation for tests and demos.
package prototypes

// RotationMode is a closed classification of how an entity's shape interacts
// with direction matching
type RotationMode uint8

const (
	// RotationExact requires the stored direction to match exactly
	RotationExact RotationMode = iota
	// RotationAny ignores direction entirely (square, symmetric shapes)
	RotationAny
	// RotationFlippable matches the stored direction or its opposite,
	// unless the direction is diagonal
	RotationFlippable
)

func (m RotationMode) String() string {
	switch m {
	case RotationExact:
		return "exact"
	case RotationAny:
		return "any-direction"
	case RotationFlippable:
		return "flippable"
	}
	return "unknown"
}

// InfoProvider resolves prototype names to matching and pairing metadata.
// Classify returns the compatibility class an entity name belongs to, so a
// world observation can match a stored entity across upgrades.
type InfoProvider interface {
	Classify(name string) string
	PasteRotatable(name string) RotationMode
	// IsMultiPort reports whether the entity tracks cable connections per
	// port (switch-like nodes) instead of one shared connection point.
	IsMultiPort(name string) bool
	// PairSpan returns the maximum partner distance for paired directional
	// segments, or 0 when the entity does not pair.
	PairSpan(name string) int
}

// Info is the static metadata for one prototype name
type Info struct {
	Category  string
	Rotation  RotationMode
	MultiPort bool
	PairSpan  int
}

// Table is a static InfoProvider keyed by prototype name
type Table map[string]Info

// Classify returns the configured category, defaulting to the name itself so
// unlisted prototypes only ever match exactly
func (t Table) Classify(name string) string {
	if info, ok := t[name]; ok && info.Category != "" {
		return info.Category
	}
	return name
}

// PasteRotatable returns the configured rotation mode
func (t Table) PasteRotatable(name string) RotationMode {
	return t[name].Rotation
}

// IsMultiPort returns the configured multi-port flag
func (t Table) IsMultiPort(name string) bool {
	return t[name].MultiPort
}

// PairSpan returns the configured pairing distance
func (t Table) PairSpan(name string) int {
	return t[name].PairSpan
}
