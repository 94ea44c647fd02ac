package entity

import "reflect"

// Value is a full property snapshot for one entity at one stage. Keys are
// property names; entries are plain data (strings, numbers, bools) or nested
// Values.
type Value map[string]any

// Diff is a sparse delta between two Values. An entry may be the Unset
// sentinel, meaning the property is removed entirely from that stage onward.
// Unset is a dedicated tag type so "removed" stays distinguishable from a
// property that legitimately holds a zero or empty value.
type Diff map[string]any

type unsetTag struct{}

// Unset marks a property as removed in a Diff
var Unset = unsetTag{}

func (unsetTag) String() string {
	return "<unset>"
}

// MarshalJSON encodes the sentinel as a recognizable marker object.
// Snapshot payloads are advisory; the in-memory form is authoritative.
func (unsetTag) MarshalJSON() ([]byte, error) {
	return []byte(`{"__unset__":true}`), nil
}

// IsUnset reports whether a diff entry is the Unset sentinel
func IsUnset(prop any) bool {
	_, ok := prop.(unsetTag)
	return ok
}

// Clone returns a copy of the value with nested Values copied as well
func (v Value) Clone() Value {
	if v == nil {
		return nil
	}
	out := make(Value, len(v))
	for key, prop := range v {
		out[key] = cloneProp(prop)
	}
	return out
}

func cloneProp(prop any) any {
	if nested, ok := prop.(Value); ok {
		return nested.Clone()
	}
	return prop
}

// Equal reports whether two values hold the same properties. Nil and empty
// snapshots compare equal.
func (v Value) Equal(other Value) bool {
	if len(v) == 0 && len(other) == 0 {
		return true
	}
	return reflect.DeepEqual(v, other)
}

// Clone returns a copy of the diff
func (d Diff) Clone() Diff {
	if d == nil {
		return nil
	}
	out := make(Diff, len(d))
	for key, prop := range d {
		out[key] = cloneProp(prop)
	}
	return out
}

// ComputeDiff returns the delta that turns oldValue into newValue, or nil
// when the two are equal. Properties present in oldValue but absent from
// newValue are recorded as Unset.
func ComputeDiff(oldValue, newValue Value) Diff {
	var diff Diff
	for key, newProp := range newValue {
		oldProp, ok := oldValue[key]
		if !ok || !reflect.DeepEqual(oldProp, newProp) {
			if diff == nil {
				diff = Diff{}
			}
			diff[key] = cloneProp(newProp)
		}
	}
	for key := range oldValue {
		if _, ok := newValue[key]; !ok {
			if diff == nil {
				diff = Diff{}
			}
			diff[key] = Unset
		}
	}
	return diff
}

// ApplyDiff applies diff to value in place and returns the result. A nil
// value is allocated on demand so the caller can layer onto an empty base.
func ApplyDiff(value Value, diff Diff) Value {
	for key, prop := range diff {
		if IsUnset(prop) {
			delete(value, key)
			continue
		}
		if value == nil {
			value = Value{}
		}
		value[key] = cloneProp(prop)
	}
	return value
}

// MergeDiff layers later over earlier: entries from later win. The result is
// a fresh diff; nil is returned when both inputs are empty.
func MergeDiff(earlier, later Diff) Diff {
	if len(earlier) == 0 && len(later) == 0 {
		return nil
	}
	out := make(Diff, len(earlier)+len(later))
	for key, prop := range earlier {
		out[key] = cloneProp(prop)
	}
	for key, prop := range later {
		out[key] = cloneProp(prop)
	}
	return out
}
