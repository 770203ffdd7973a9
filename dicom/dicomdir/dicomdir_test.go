package dicomdir_test

import (
	"testing"

	"github.com/cairnmed/dicom/dicom"
	"github.com/cairnmed/dicom/dicom/dicomdir"
	"github.com/cairnmed/dicom/dicom/element"
	"github.com/cairnmed/dicom/dicom/tag"
	"github.com/cairnmed/dicom/dicom/value"
	"github.com/cairnmed/dicom/dicom/vr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	tagDirectoryRecordType = tag.New(0x0004, 0x1430)
	tagPatientID           = tag.New(0x0010, 0x0020)
	tagStudyInstanceUID    = tag.New(0x0020, 0x000D)
	tagReferencedFileID    = tag.New(0x0004, 0x1500)
)

func newRecordItem(t *testing.T, recordType string, extra ...*element.Element) *element.Item {
	t.Helper()
	item := element.NewItem()

	val, err := value.NewStringValue(vr.CodeString, []string{recordType})
	require.NoError(t, err)
	typeElem, err := element.NewElement(tagDirectoryRecordType, vr.CodeString, val)
	require.NoError(t, err)
	require.NoError(t, item.Add(typeElem))

	for _, e := range extra {
		require.NoError(t, item.Add(e))
	}
	return item
}

func stringElement(t *testing.T, tg tag.Tag, v vr.VR, s string) *element.Element {
	t.Helper()
	val, err := value.NewStringValue(v, []string{s})
	require.NoError(t, err)
	elem, err := element.NewElement(tg, v, val)
	require.NoError(t, err)
	return elem
}

func TestBuild_PatientStudySeriesImageHierarchy(t *testing.T) {
	ds := dicom.NewDataSet()

	items := []*element.Item{
		newRecordItem(t, "PATIENT", stringElement(t, tagPatientID, vr.LongString, "PAT1")),
		newRecordItem(t, "STUDY", stringElement(t, tagStudyInstanceUID, vr.UniqueIdentifier, "1.2.3")),
		newRecordItem(t, "SERIES"),
		newRecordItem(t, "IMAGE", stringElement(t, tagReferencedFileID, vr.CodeString, "IMG001")),
		newRecordItem(t, "IMAGE", stringElement(t, tagReferencedFileID, vr.CodeString, "IMG002")),
	}

	seq := element.NewSequenceElement(tag.New(0x0004, 0x1220), items)
	require.NoError(t, ds.Add(seq))

	tree, err := dicomdir.Build(ds)
	require.NoError(t, err)
	require.Len(t, tree.Roots, 1)

	patient := tree.Roots[0]
	assert.Equal(t, dicomdir.RecordPatient, patient.Type)
	assert.Equal(t, "PAT1", patient.String(tagPatientID))
	require.Len(t, patient.Children, 1)

	study := patient.Children[0]
	assert.Equal(t, dicomdir.RecordStudy, study.Type)
	assert.Equal(t, "1.2.3", study.String(tagStudyInstanceUID))
	require.Len(t, study.Children, 1)

	series := study.Children[0]
	assert.Equal(t, dicomdir.RecordSeries, series.Type)
	require.Len(t, series.Children, 2)

	assert.Equal(t, "IMG001", series.Children[0].String(tagReferencedFileID))
	assert.Equal(t, "IMG002", series.Children[1].String(tagReferencedFileID))
}

func TestBuild_MultiplePatients(t *testing.T) {
	ds := dicom.NewDataSet()

	items := []*element.Item{
		newRecordItem(t, "PATIENT", stringElement(t, tagPatientID, vr.LongString, "A")),
		newRecordItem(t, "PATIENT", stringElement(t, tagPatientID, vr.LongString, "B")),
	}
	seq := element.NewSequenceElement(tag.New(0x0004, 0x1220), items)
	require.NoError(t, ds.Add(seq))

	tree, err := dicomdir.Build(ds)
	require.NoError(t, err)
	require.Len(t, tree.Roots, 2)
	assert.Equal(t, "A", tree.Roots[0].String(tagPatientID))
	assert.Equal(t, "B", tree.Roots[1].String(tagPatientID))
}

func TestBuild_UnknownRecordTypeAttachesAsLeaf(t *testing.T) {
	ds := dicom.NewDataSet()

	items := []*element.Item{
		newRecordItem(t, "PATIENT"),
		newRecordItem(t, "PRIVATE"),
	}
	seq := element.NewSequenceElement(tag.New(0x0004, 0x1220), items)
	require.NoError(t, ds.Add(seq))

	tree, err := dicomdir.Build(ds)
	require.NoError(t, err)
	require.Len(t, tree.Roots, 1)
	require.Len(t, tree.Roots[0].Children, 1)
	assert.Equal(t, dicomdir.RecordType("PRIVATE"), tree.Roots[0].Children[0].Type)
}

func TestBuild_MissingSequenceErrors(t *testing.T) {
	ds := dicom.NewDataSet()
	_, err := dicomdir.Build(ds)
	assert.Error(t, err)
}

func TestBuild_WalkVisitsInDocumentOrder(t *testing.T) {
	ds := dicom.NewDataSet()
	items := []*element.Item{
		newRecordItem(t, "PATIENT"),
		newRecordItem(t, "STUDY"),
		newRecordItem(t, "SERIES"),
	}
	seq := element.NewSequenceElement(tag.New(0x0004, 0x1220), items)
	require.NoError(t, ds.Add(seq))

	tree, err := dicomdir.Build(ds)
	require.NoError(t, err)

	var visited []dicomdir.RecordType
	tree.Walk(func(r *dicomdir.Record) {
		visited = append(visited, r.Type)
	})
	assert.Equal(t, []dicomdir.RecordType{
		dicomdir.RecordPatient, dicomdir.RecordStudy, dicomdir.RecordSeries,
	}, visited)
}
