package uid

import "strings"

// TransferSyntax classifies a transfer syntax UID along the axes the parser
// and pixel pipeline need to make decoding decisions: byte order, VR
// encoding, and (for PixelData) whether the stream carries raw samples, an
// encapsulated bitstream, and if so which codec family.
type TransferSyntax struct {
	UID UID

	BigEndian    bool
	ImplicitVR   bool
	Deflated     bool
	Encapsulated bool

	// Codec is the encapsulated bitstream family, set only when Encapsulated
	// is true. Zero value (CodecNone) means raw/native pixel data.
	Codec Codec
}

// Codec identifies the compression family carried by an encapsulated
// PixelData element.
type Codec int

const (
	CodecNone Codec = iota
	CodecJPEGBaseline
	CodecJPEGExtended
	CodecJPEGLossless
	CodecJPEGLS
	CodecJPEG2000
	CodecHTJ2K
	CodecJPEGXL
	CodecRLE
	CodecMPEG2
	CodecMPEG4AVC
	CodecHEVC
	CodecUnknown
)

// ClassifyTransferSyntax derives a TransferSyntax classification for the
// given UID string. Unknown UIDs are classified as best-effort: Implicit VR
// Little Endian semantics, not encapsulated.
func ClassifyTransferSyntax(s string) TransferSyntax {
	u, err := Parse(s)
	if err != nil {
		u = UID{}
	}
	ts := TransferSyntax{UID: u}

	switch s {
	case ImplicitVRLittleEndian.String(), Papyrus3ImplicitVRLittleEndian.String():
		ts.ImplicitVR = true
		return ts
	case ExplicitVRLittleEndian.String(), EncapsulatedUncompressedExplicitVRLittleEndian.String():
		return ts
	case ExplicitVRBigEndian.String():
		ts.BigEndian = true
		return ts
	case DeflatedExplicitVRLittleEndian.String():
		ts.Deflated = true
		return ts
	}

	codec := codecForUID(s)
	if codec == CodecNone || codec == CodecUnknown {
		// Unrecognized UID: assume native little-endian encoding rather than
		// guessing at a bitstream format we can't decode.
		ts.ImplicitVR = true
		return ts
	}
	ts.Encapsulated = true
	ts.Codec = codec
	return ts
}

func codecForUID(s string) Codec {
	switch s {
	case JPEGBaselineProcess1.String():
		return CodecJPEGBaseline
	case JPEGExtendedProcess2And4.String(), JPEGExtendedProcess3And5.String():
		return CodecJPEGExtended
	case JPEGLosslessNonHierarchicalProcess14.String(),
		JPEGLosslessNonHierarchicalFirstOrderPredictionProcess14SelectionValue1.String():
		return CodecJPEGLossless
	case JPEGLsLosslessImageCompression.String(), JPEGLsLossyNearLosslessImageCompression.String():
		return CodecJPEGLS
	case JPEG2000ImageCompressionLosslessOnly.String(), JPEG2000ImageCompression.String(),
		JPEG2000Part2MultiComponentImageCompressionLosslessOnly.String(),
		JPEG2000Part2MultiComponentImageCompression.String():
		return CodecJPEG2000
	case HighThroughputJPEG2000ImageCompressionLosslessOnly.String(),
		HighThroughputJPEG2000WithRpclOptionsImageCompressionLosslessOnly.String(),
		HighThroughputJPEG2000ImageCompression.String():
		return CodecHTJ2K
	case JPEGXlLossless.String(), JPEGXlJPEGRecompression.String(), JPEGXl.String():
		return CodecJPEGXL
	case RLELossless.String():
		return CodecRLE
	case Mpeg2MainProfileMainLevel.String(), FragmentableMpeg2MainProfileMainLevel.String(),
		Mpeg2MainProfileHighLevel.String(), FragmentableMpeg2MainProfileHighLevel.String():
		return CodecMPEG2
	case HevcH265MainProfileLevel51.String(), HevcH265Main10ProfileLevel51.String():
		return CodecHEVC
	}
	if strings.Contains(s, "1.2.840.10008.1.2.4.10") || strings.Contains(s, "1.2.840.10008.1.2.4.11") {
		return CodecMPEG4AVC
	}
	return CodecUnknown
}
