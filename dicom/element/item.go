package element

import (
	"fmt"

	"github.com/cairnmed/dicom/dicom/tag"
)

// Item is one item of a Sequence of Items (SQ) value: an ordered, nested
// collection of Elements parsed from its own sub-stream (which may itself
// have had undefined length, terminated by an Item Delimitation Item).
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.5
type Item struct {
	elements []*Element
	index    map[tag.Tag]int
}

// NewItem creates an empty sequence item.
func NewItem() *Item {
	return &Item{index: make(map[tag.Tag]int)}
}

// Add appends e to the item, replacing any existing element with the same
// tag in place (matching DataSet's last-write-wins semantics).
func (it *Item) Add(e *Element) error {
	if e == nil {
		return fmt.Errorf("cannot add nil element to item")
	}
	if idx, ok := it.index[e.tag]; ok {
		it.elements[idx] = e
		return nil
	}
	it.index[e.tag] = len(it.elements)
	it.elements = append(it.elements, e)
	return nil
}

// Get returns the element for t, if present.
func (it *Item) Get(t tag.Tag) (*Element, bool) {
	idx, ok := it.index[t]
	if !ok {
		return nil, false
	}
	return it.elements[idx], true
}

// Elements returns the item's elements in encounter order.
func (it *Item) Elements() []*Element {
	out := make([]*Element, len(it.elements))
	copy(out, it.elements)
	return out
}

// Len returns the number of elements in the item.
func (it *Item) Len() int {
	return len(it.elements)
}

// Clone returns a deep copy of the item: every child element is cloned
// recursively, so nested sequences are copied independently of the
// original tree.
func (it *Item) Clone() *Item {
	clone := NewItem()
	for _, el := range it.elements {
		_ = clone.Add(el.Clone())
	}
	return clone
}
