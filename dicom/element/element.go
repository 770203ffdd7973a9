// Package element provides DICOM data element structures and operations.
//
// A DICOM Data Element consists of a tag, VR (Value Representation), and value.
// This implementation follows pydicom's DataElement design adapted for Go idioms.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.1
package element

import (
	"fmt"
	"strings"

	"github.com/cairnmed/dicom/dicom/tag"
	"github.com/cairnmed/dicom/dicom/value"
	"github.com/cairnmed/dicom/dicom/vr"
)

// Element represents a DICOM data element.
//
// A Data Element is composed of:
//   - Tag: Unique identifier (group, element)
//   - VR: Value Representation (data type)
//   - Value: The actual data
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.1
// An Element is a tagged union over three storage kinds, matching the
// original format's lazy byte-view / owned-buffer / child-container
// model: a primitive Element carries a value.Value (itself either a
// borrowed byte view or an owned, decoded buffer depending on the VR);
// a Sequence of Items (SQ) Element instead carries a slice of child
// Items, each a nested container of further Elements.
type Element struct {
	tag   tag.Tag
	vr    vr.VR
	value value.Value
	items []*Item
}

// NewElement creates a new DICOM data element.
//
// Parameters:
//   - t: DICOM tag (group, element)
//   - v: Value Representation
//   - val: Element value (must match VR type)
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.1
func NewElement(t tag.Tag, v vr.VR, val value.Value) (*Element, error) {
	if v == vr.SequenceOfItems {
		return nil, fmt.Errorf("use NewSequenceElement for Sequence of Items elements")
	}

	if val == nil {
		return nil, fmt.Errorf("value cannot be nil")
	}

	// Verify VR matches the value's VR
	if val.VR() != v {
		return nil, fmt.Errorf("value VR %s does not match element VR %s", val.VR().String(), v.String())
	}

	return &Element{
		tag:   t,
		vr:    v,
		value: val,
	}, nil
}

// NewSequenceElement creates a Sequence of Items (SQ) element from its
// already-parsed child items. items may be nil (an empty sequence).
func NewSequenceElement(t tag.Tag, items []*Item) *Element {
	return &Element{
		tag:   t,
		vr:    vr.SequenceOfItems,
		items: items,
	}
}

// IsSequence reports whether this element is a Sequence of Items (SQ),
// i.e. holds child Items rather than a value.Value.
func (e *Element) IsSequence() bool {
	return e.vr == vr.SequenceOfItems
}

// Items returns the element's child items. It is nil/empty for
// non-sequence elements or empty sequences.
func (e *Element) Items() []*Item {
	return e.items
}

// Tag returns the DICOM tag of this element.
// Similar to pydicom's DataElement.tag property.
func (e *Element) Tag() tag.Tag {
	return e.tag
}

// VR returns the Value Representation of this element.
// Similar to pydicom's DataElement.VR property.
func (e *Element) VR() vr.VR {
	return e.vr
}

// Value returns the value of this element. It is nil for Sequence of
// Items (SQ) elements; use Items() instead.
// Similar to pydicom's DataElement.value property.
func (e *Element) Value() value.Value {
	return e.value
}

// Name returns the human-readable name of this element from the DICOM dictionary.
// Returns an empty string if the tag is not found (e.g., private tags).
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part06.html#chapter_6
func (e *Element) Name() string {
	info, err := tag.Find(e.tag)
	if err != nil {
		return "" // Unknown or private tag
	}
	return info.Name
}

// Keyword returns the keyword identifier of this element from the DICOM dictionary.
// Returns an empty string if the tag is not found (e.g., private tags).
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part06.html#chapter_6
func (e *Element) Keyword() string {
	info, err := tag.Find(e.tag)
	if err != nil {
		return "" // Unknown or private tag
	}
	return info.Keyword
}

// ValueMultiplicity returns the Value Multiplicity (number of values) as a string.
//
// For multivalued elements (like arrays), this returns the count.
// For single-valued elements, this returns "1".
// For empty elements, this returns "0".
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_6.4
func (e *Element) ValueMultiplicity() string {
	if e.IsSequence() {
		return fmt.Sprintf("%d", len(e.items))
	}

	// Count values based on type
	switch v := e.value.(type) {
	case *value.StringValue:
		return fmt.Sprintf("%d", len(v.Strings()))
	case *value.IntValue:
		return fmt.Sprintf("%d", len(v.Ints()))
	case *value.FloatValue:
		return fmt.Sprintf("%d", len(v.Floats()))
	case *value.BytesValue:
		// Bytes are typically treated as a single value
		if len(v.Bytes()) == 0 {
			return "0"
		}
		return "1"
	default:
		return "1"
	}
}

// String returns a human-readable string representation of the element.
//
// Format: (GGGG,EEEE) VR [Name] = value
// Example: (0010,0010) PN [Patient's Name] = Doe^John
//
// For unknown tags, the name is omitted.
// Long values may be truncated for readability.
func (e *Element) String() string {
	var sb strings.Builder

	// Tag: (GGGG,EEEE)
	sb.WriteString(e.tag.String())
	sb.WriteString(" ")

	// VR
	sb.WriteString(e.vr.String())
	sb.WriteString(" ")

	// Name from a dictionary (if available)
	name := e.Name()
	if name != "" {
		sb.WriteString("[")
		sb.WriteString(name)
		sb.WriteString("] ")
	}

	// Value
	sb.WriteString("= ")

	if e.IsSequence() {
		sb.WriteString(fmt.Sprintf("Sequence of %d item(s)", len(e.items)))
		return sb.String()
	}

	valueStr := e.value.String()

	// Truncate very long values for display
	const maxValueLen = 80
	if len(valueStr) > maxValueLen {
		valueStr = valueStr[:maxValueLen] + "..."
	}

	sb.WriteString(valueStr)

	return sb.String()
}

// SetValue updates the value of this element.
//
// The new value must have the same VR as the element.
// Returns an error if the VR doesn't match or if the value is nil.
//
// Example:
//
//	elem, _ := ds.Get(tag.PatientName)
//	newValue, _ := value.NewStringValue(vr.PersonName, []string{"Smith^Jane"})
//	if err := elem.SetValue(newValue); err != nil {
//	    log.Fatal(err)
//	}
func (e *Element) SetValue(val value.Value) error {
	if e.IsSequence() {
		return fmt.Errorf("cannot set a scalar value on a Sequence of Items element")
	}

	if val == nil {
		return fmt.Errorf("value cannot be nil")
	}

	// Verify VR matches the value's VR
	if val.VR() != e.vr {
		return fmt.Errorf("value VR %s does not match element VR %s", val.VR().String(), e.vr.String())
	}

	e.value = val
	return nil
}

// Clone returns a copy of the element. Scalar elements share their
// underlying value.Value (treated as immutable once attached); sequence
// elements deep-copy their items and children recursively.
func (e *Element) Clone() *Element {
	if e.IsSequence() {
		items := make([]*Item, len(e.items))
		for i, it := range e.items {
			items[i] = it.Clone()
		}
		return NewSequenceElement(e.tag, items)
	}
	return &Element{tag: e.tag, vr: e.vr, value: e.value}
}

// Equals returns true if this element equals another element.
//
// Elements are equal if they have the same tag, VR, and value.
func (e *Element) Equals(other *Element) bool {
	if other == nil {
		return false
	}

	// Compare tags
	if !e.tag.Equals(other.tag) {
		return false
	}

	// Compare VRs
	if e.vr != other.vr {
		return false
	}

	if e.IsSequence() {
		if len(e.items) != len(other.items) {
			return false
		}
		for i, item := range e.items {
			otherElems := other.items[i].Elements()
			elems := item.Elements()
			if len(elems) != len(otherElems) {
				return false
			}
			for j, el := range elems {
				if !el.Equals(otherElems[j]) {
					return false
				}
			}
		}
		return true
	}

	// Compare values using Value.Equals()
	return e.value.Equals(other.value)
}
