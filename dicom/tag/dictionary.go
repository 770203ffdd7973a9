package tag

import (
	"sync"

	"github.com/cairnmed/dicom/dicom/vr"
)

// TagDict is the standard DICOM data element dictionary, keyed by tag.
//
// The production dictionary (DICOM Part 6) enumerates roughly four
// thousand entries and is ordinarily generated offline into a
// compile-time perfect-hash table (see the CHD structure referenced in
// DESIGN.md). No such code-generation tool runs as part of this build, so
// this is a hand-curated map covering the attributes exercised by the
// parser, the pixel pipeline, and the file-meta/patient/study/series
// modules. It is a practical substitute for the generated table, not a
// re-implementation of the full standard dictionary.
var TagDict = map[Tag]Info{
	// File Meta Information (0002,xxxx) — always Explicit VR Little Endian.
	New(0x0002, 0x0000): {Tag: New(0x0002, 0x0000), VRs: []vr.VR{vr.UnsignedLong}, Name: "File Meta Information Group Length", Keyword: "FileMetaInformationGroupLength", VM: "1"},
	New(0x0002, 0x0001): {Tag: New(0x0002, 0x0001), VRs: []vr.VR{vr.OtherByte}, Name: "File Meta Information Version", Keyword: "FileMetaInformationVersion", VM: "1"},
	New(0x0002, 0x0002): {Tag: New(0x0002, 0x0002), VRs: []vr.VR{vr.UniqueIdentifier}, Name: "Media Storage SOP Class UID", Keyword: "MediaStorageSOPClassUID", VM: "1"},
	New(0x0002, 0x0003): {Tag: New(0x0002, 0x0003), VRs: []vr.VR{vr.UniqueIdentifier}, Name: "Media Storage SOP Instance UID", Keyword: "MediaStorageSOPInstanceUID", VM: "1"},
	New(0x0002, 0x0010): {Tag: New(0x0002, 0x0010), VRs: []vr.VR{vr.UniqueIdentifier}, Name: "Transfer Syntax UID", Keyword: "TransferSyntaxUID", VM: "1"},
	New(0x0002, 0x0012): {Tag: New(0x0002, 0x0012), VRs: []vr.VR{vr.UniqueIdentifier}, Name: "Implementation Class UID", Keyword: "ImplementationClassUID", VM: "1"},
	New(0x0002, 0x0013): {Tag: New(0x0002, 0x0013), VRs: []vr.VR{vr.ShortString}, Name: "Implementation Version Name", Keyword: "ImplementationVersionName", VM: "1"},
	New(0x0002, 0x0016): {Tag: New(0x0002, 0x0016), VRs: []vr.VR{vr.ApplicationEntity}, Name: "Source Application Entity Title", Keyword: "SourceApplicationEntityTitle", VM: "1"},

	// Identification / SOP common.
	New(0x0008, 0x0005): {Tag: New(0x0008, 0x0005), VRs: []vr.VR{vr.CodeString}, Name: "Specific Character Set", Keyword: "SpecificCharacterSet", VM: "1-n"},
	New(0x0008, 0x0016): {Tag: New(0x0008, 0x0016), VRs: []vr.VR{vr.UniqueIdentifier}, Name: "SOP Class UID", Keyword: "SOPClassUID", VM: "1"},
	New(0x0008, 0x0018): {Tag: New(0x0008, 0x0018), VRs: []vr.VR{vr.UniqueIdentifier}, Name: "SOP Instance UID", Keyword: "SOPInstanceUID", VM: "1"},
	New(0x0008, 0x0020): {Tag: New(0x0008, 0x0020), VRs: []vr.VR{vr.Date}, Name: "Study Date", Keyword: "StudyDate", VM: "1"},
	New(0x0008, 0x0021): {Tag: New(0x0008, 0x0021), VRs: []vr.VR{vr.Date}, Name: "Series Date", Keyword: "SeriesDate", VM: "1"},
	New(0x0008, 0x0030): {Tag: New(0x0008, 0x0030), VRs: []vr.VR{vr.Time}, Name: "Study Time", Keyword: "StudyTime", VM: "1"},
	New(0x0008, 0x0060): {Tag: New(0x0008, 0x0060), VRs: []vr.VR{vr.CodeString}, Name: "Modality", Keyword: "Modality", VM: "1"},
	New(0x0008, 0x0070): {Tag: New(0x0008, 0x0070), VRs: []vr.VR{vr.LongString}, Name: "Manufacturer", Keyword: "Manufacturer", VM: "1"},
	New(0x0008, 0x1111): {Tag: New(0x0008, 0x1111), VRs: []vr.VR{vr.SequenceOfItems}, Name: "Referenced Performed Procedure Step Sequence", Keyword: "ReferencedPerformedProcedureStepSequence", VM: "1"},

	// Patient module.
	New(0x0010, 0x0010): {Tag: New(0x0010, 0x0010), VRs: []vr.VR{vr.PersonName}, Name: "Patient's Name", Keyword: "PatientName", VM: "1"},
	New(0x0010, 0x0020): {Tag: New(0x0010, 0x0020), VRs: []vr.VR{vr.LongString}, Name: "Patient ID", Keyword: "PatientID", VM: "1"},
	New(0x0010, 0x0030): {Tag: New(0x0010, 0x0030), VRs: []vr.VR{vr.Date}, Name: "Patient's Birth Date", Keyword: "PatientBirthDate", VM: "1"},
	New(0x0010, 0x0040): {Tag: New(0x0010, 0x0040), VRs: []vr.VR{vr.CodeString}, Name: "Patient's Sex", Keyword: "PatientSex", VM: "1"},
	New(0x0010, 0x1010): {Tag: New(0x0010, 0x1010), VRs: []vr.VR{vr.AgeString}, Name: "Patient's Age", Keyword: "PatientAge", VM: "1"},

	// Study / Series.
	New(0x0020, 0x000D): {Tag: New(0x0020, 0x000D), VRs: []vr.VR{vr.UniqueIdentifier}, Name: "Study Instance UID", Keyword: "StudyInstanceUID", VM: "1"},
	New(0x0020, 0x000E): {Tag: New(0x0020, 0x000E), VRs: []vr.VR{vr.UniqueIdentifier}, Name: "Series Instance UID", Keyword: "SeriesInstanceUID", VM: "1"},
	New(0x0020, 0x0013): {Tag: New(0x0020, 0x0013), VRs: []vr.VR{vr.IntegerString}, Name: "Instance Number", Keyword: "InstanceNumber", VM: "1"},
	New(0x0020, 0x0032): {Tag: New(0x0020, 0x0032), VRs: []vr.VR{vr.DecimalString}, Name: "Image Position (Patient)", Keyword: "ImagePositionPatient", VM: "3"},
	New(0x0020, 0x0037): {Tag: New(0x0020, 0x0037), VRs: []vr.VR{vr.DecimalString}, Name: "Image Orientation (Patient)", Keyword: "ImageOrientationPatient", VM: "6"},

	// Image Pixel module.
	New(0x0028, 0x0002): {Tag: New(0x0028, 0x0002), VRs: []vr.VR{vr.UnsignedShort}, Name: "Samples per Pixel", Keyword: "SamplesPerPixel", VM: "1"},
	New(0x0028, 0x0004): {Tag: New(0x0028, 0x0004), VRs: []vr.VR{vr.CodeString}, Name: "Photometric Interpretation", Keyword: "PhotometricInterpretation", VM: "1"},
	New(0x0028, 0x0006): {Tag: New(0x0028, 0x0006), VRs: []vr.VR{vr.UnsignedShort}, Name: "Planar Configuration", Keyword: "PlanarConfiguration", VM: "1"},
	New(0x0028, 0x0008): {Tag: New(0x0028, 0x0008), VRs: []vr.VR{vr.IntegerString}, Name: "Number of Frames", Keyword: "NumberOfFrames", VM: "1"},
	New(0x0028, 0x0010): {Tag: New(0x0028, 0x0010), VRs: []vr.VR{vr.UnsignedShort}, Name: "Rows", Keyword: "Rows", VM: "1"},
	New(0x0028, 0x0011): {Tag: New(0x0028, 0x0011), VRs: []vr.VR{vr.UnsignedShort}, Name: "Columns", Keyword: "Columns", VM: "1"},
	New(0x0028, 0x0100): {Tag: New(0x0028, 0x0100), VRs: []vr.VR{vr.UnsignedShort}, Name: "Bits Allocated", Keyword: "BitsAllocated", VM: "1"},
	New(0x0028, 0x0101): {Tag: New(0x0028, 0x0101), VRs: []vr.VR{vr.UnsignedShort}, Name: "Bits Stored", Keyword: "BitsStored", VM: "1"},
	New(0x0028, 0x0102): {Tag: New(0x0028, 0x0102), VRs: []vr.VR{vr.UnsignedShort}, Name: "High Bit", Keyword: "HighBit", VM: "1"},
	New(0x0028, 0x0103): {Tag: New(0x0028, 0x0103), VRs: []vr.VR{vr.UnsignedShort}, Name: "Pixel Representation", Keyword: "PixelRepresentation", VM: "1"},
	New(0x0028, 0x1050): {Tag: New(0x0028, 0x1050), VRs: []vr.VR{vr.DecimalString}, Name: "Window Center", Keyword: "WindowCenter", VM: "1-n"},
	New(0x0028, 0x1051): {Tag: New(0x0028, 0x1051), VRs: []vr.VR{vr.DecimalString}, Name: "Window Width", Keyword: "WindowWidth", VM: "1-n"},
	New(0x0028, 0x1052): {Tag: New(0x0028, 0x1052), VRs: []vr.VR{vr.DecimalString}, Name: "Rescale Intercept", Keyword: "RescaleIntercept", VM: "1"},
	New(0x0028, 0x1053): {Tag: New(0x0028, 0x1053), VRs: []vr.VR{vr.DecimalString}, Name: "Rescale Slope", Keyword: "RescaleSlope", VM: "1"},
	New(0x0028, 0x1054): {Tag: New(0x0028, 0x1054), VRs: []vr.VR{vr.LongString}, Name: "Rescale Type", Keyword: "RescaleType", VM: "1"},
	New(0x0028, 0x3000): {Tag: New(0x0028, 0x3000), VRs: []vr.VR{vr.SequenceOfItems}, Name: "Modality LUT Sequence", Keyword: "ModalityLUTSequence", VM: "1"},
	New(0x0028, 0x3002): {Tag: New(0x0028, 0x3002), VRs: []vr.VR{vr.UnsignedShort, vr.SignedShort}, Name: "LUT Descriptor", Keyword: "LUTDescriptor", VM: "3"},
	New(0x0028, 0x3003): {Tag: New(0x0028, 0x3003), VRs: []vr.VR{vr.LongString}, Name: "LUT Explanation", Keyword: "LUTExplanation", VM: "1"},
	New(0x0028, 0x3006): {Tag: New(0x0028, 0x3006), VRs: []vr.VR{vr.OtherWord, vr.UnsignedShort}, Name: "LUT Data", Keyword: "LUTData", VM: "1-n"},
	New(0x0028, 0x3010): {Tag: New(0x0028, 0x3010), VRs: []vr.VR{vr.SequenceOfItems}, Name: "VOI LUT Sequence", Keyword: "VOILUTSequence", VM: "1"},

	// Pixel Data and alternates.
	New(0x7FE0, 0x0008): {Tag: New(0x7FE0, 0x0008), VRs: []vr.VR{vr.OtherFloat}, Name: "Float Pixel Data", Keyword: "FloatPixelData", VM: "1"},
	New(0x7FE0, 0x0009): {Tag: New(0x7FE0, 0x0009), VRs: []vr.VR{vr.OtherDouble}, Name: "Double Float Pixel Data", Keyword: "DoubleFloatPixelData", VM: "1"},
	New(0x7FE0, 0x0010): {Tag: New(0x7FE0, 0x0010), VRs: []vr.VR{vr.OtherWord, vr.OtherByte}, Name: "Pixel Data", Keyword: "PixelData", VM: "1"},

	// Item/delimiter pseudo-tags (group FFFE) — used during parsing, not dictionary
	// lookups in the usual sense, but listed so Find never errors on them.
	New(0xFFFE, 0xE000): {Tag: New(0xFFFE, 0xE000), VRs: []vr.VR{vr.Invalid}, Name: "Item", Keyword: "Item", VM: "1"},
	New(0xFFFE, 0xE00D): {Tag: New(0xFFFE, 0xE00D), VRs: []vr.VR{vr.Invalid}, Name: "Item Delimitation Item", Keyword: "ItemDelimitationItem", VM: "1"},
	New(0xFFFE, 0xE0DD): {Tag: New(0xFFFE, 0xE0DD), VRs: []vr.VR{vr.Invalid}, Name: "Sequence Delimitation Item", Keyword: "SequenceDelimitationItem", VM: "1"},

	// Basic Directory IOD (DICOMDIR).
	New(0x0004, 0x1220): {Tag: New(0x0004, 0x1220), VRs: []vr.VR{vr.SequenceOfItems}, Name: "Directory Record Sequence", Keyword: "DirectoryRecordSequence", VM: "1"},
	New(0x0004, 0x1400): {Tag: New(0x0004, 0x1400), VRs: []vr.VR{vr.UnsignedLong}, Name: "Offset of the Next Directory Record", Keyword: "OffsetOfTheNextDirectoryRecord", VM: "1"},
	New(0x0004, 0x1410): {Tag: New(0x0004, 0x1410), VRs: []vr.VR{vr.UnsignedShort}, Name: "Record In-use Flag", Keyword: "RecordInUseFlag", VM: "1"},
	New(0x0004, 0x1420): {Tag: New(0x0004, 0x1420), VRs: []vr.VR{vr.UnsignedLong}, Name: "Offset of Referenced Lower-Level Directory Entity", Keyword: "OffsetOfReferencedLowerLevelDirectoryEntity", VM: "1"},
	New(0x0004, 0x1430): {Tag: New(0x0004, 0x1430), VRs: []vr.VR{vr.CodeString}, Name: "Directory Record Type", Keyword: "DirectoryRecordType", VM: "1"},
	New(0x0004, 0x1500): {Tag: New(0x0004, 0x1500), VRs: []vr.VR{vr.CodeString}, Name: "Referenced File ID", Keyword: "ReferencedFileID", VM: "1-8"},

	// Anonymization-relevant identifying attributes.
	New(0x0008, 0x0090): {Tag: New(0x0008, 0x0090), VRs: []vr.VR{vr.PersonName}, Name: "Referring Physician's Name", Keyword: "ReferringPhysicianName", VM: "1"},
	New(0x0008, 0x0080): {Tag: New(0x0008, 0x0080), VRs: []vr.VR{vr.LongString}, Name: "Institution Name", Keyword: "InstitutionName", VM: "1"},
	New(0x0010, 0x1040): {Tag: New(0x0010, 0x1040), VRs: []vr.VR{vr.LongString}, Name: "Patient's Address", Keyword: "PatientAddress", VM: "1"},
}

// wildcardEntry describes a repeating-group fallback rule: tags matching
// (value, mask) after an exact dictionary miss resolve to Info with the
// actual group/element substituted in.
type wildcardEntry struct {
	mask, value uint32
	info        Info
}

// wildcardTable holds repeating-group ("xx" group) dictionary entries. Kept
// deliberately small (a few dozen entries at most, per DESIGN.md/§9) so a
// linear scan after the exact-match miss is fine.
var wildcardTable = []wildcardEntry{
	// Overlay Data / Overlay module, group 60xx (xx = 00..1E, even).
	{mask: 0xFF00FFFF, value: 0x60000010, info: Info{VRs: []vr.VR{vr.UnsignedShort}, Name: "Overlay Rows", Keyword: "OverlayRows", VM: "1"}},
	{mask: 0xFF00FFFF, value: 0x60000011, info: Info{VRs: []vr.VR{vr.UnsignedShort}, Name: "Overlay Columns", Keyword: "OverlayColumns", VM: "1"}},
	{mask: 0xFF00FFFF, value: 0x60000015, info: Info{VRs: []vr.VR{vr.IntegerString}, Name: "Number of Frames in Overlay", Keyword: "NumberOfFramesInOverlay", VM: "1"}},
	{mask: 0xFF00FFFF, value: 0x60000022, info: Info{VRs: []vr.VR{vr.LongString}, Name: "Overlay Description", Keyword: "OverlayDescription", VM: "1"}},
	{mask: 0xFF00FFFF, value: 0x60000040, info: Info{VRs: []vr.VR{vr.CodeString}, Name: "Overlay Type", Keyword: "OverlayType", VM: "1"}},
	{mask: 0xFF00FFFF, value: 0x60000050, info: Info{VRs: []vr.VR{vr.SignedShort}, Name: "Overlay Origin", Keyword: "OverlayOrigin", VM: "2"}},
	{mask: 0xFF00FFFF, value: 0x60000100, info: Info{VRs: []vr.VR{vr.UnsignedShort}, Name: "Overlay Bits Allocated", Keyword: "OverlayBitsAllocated", VM: "1"}},
	{mask: 0xFF00FFFF, value: 0x60000102, info: Info{VRs: []vr.VR{vr.UnsignedShort}, Name: "Overlay Bit Position", Keyword: "OverlayBitPosition", VM: "1"}},
	{mask: 0xFF00FFFF, value: 0x60003000, info: Info{VRs: []vr.VR{vr.OtherWord, vr.OtherByte}, Name: "Overlay Data", Keyword: "OverlayData", VM: "1"}},

	// Curve Data, group 50xx (retired but still parsed).
	{mask: 0xFF00FFFF, value: 0x50000005, info: Info{VRs: []vr.VR{vr.UnsignedShort}, Name: "Curve Dimensions", Keyword: "CurveDimensions", VM: "1"}},
	{mask: 0xFF00FFFF, value: 0x50000010, info: Info{VRs: []vr.VR{vr.UnsignedShort}, Name: "Number of Points", Keyword: "NumberOfPoints", VM: "1"}},
	{mask: 0xFF00FFFF, value: 0x50003000, info: Info{VRs: []vr.VR{vr.OtherWord, vr.OtherByte}, Name: "Curve Data", Keyword: "CurveData", VM: "1"}},

	// Private creator block reservation, odd groups 00xx1-00xx to 0xFFxx — not
	// resolvable generically; left unhandled (private dictionaries are outside
	// this exercise's scope).
}

func findWildcard(t Tag) (Info, bool) {
	v := t.Uint32()
	for _, e := range wildcardTable {
		if v&e.mask == e.value {
			info := e.info
			info.Tag = t
			return info, true
		}
	}
	return Info{}, false
}

var (
	keywordIdxOnce sync.Once
	keywordIdx     map[string]Info
)

func keywordIndex() map[string]Info {
	keywordIdxOnce.Do(func() {
		keywordIdx = make(map[string]Info, len(TagDict))
		for _, info := range TagDict {
			if info.Keyword != "" {
				keywordIdx[info.Keyword] = info
			}
		}
	})
	return keywordIdx
}
