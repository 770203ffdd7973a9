package pixel

import (
	"fmt"

	jrmjpeg "github.com/jrm-1535/jpeg"
)

// JPEGBaselineDecoder implements JPEG Baseline and Extended Sequential
// decompression using github.com/jrm-1535/jpeg, a pure-Go Huffman JPEG
// codec.
//
// JPEG Baseline and Extended Sequential are specified in:
//   - Transfer Syntax 1.2.840.10008.1.2.4.50: JPEG Baseline (Process 1) - 8-bit lossy
//   - Transfer Syntax 1.2.840.10008.1.2.4.51: JPEG Baseline (Processes 2 & 4) - 8/12-bit lossy
//
// jrm-1535/jpeg only reconstructs 8-bit samples (MakeFrameRawPicture
// rejects extended precision), so Process 4's 12-bit variant is reported
// as unsupported rather than silently truncated.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_8.2.1
type JPEGBaselineDecoder struct {
	transferSyntaxUID string
}

// NewJPEGBaselineDecoder creates a new JPEG Baseline decoder for a specific transfer syntax.
func NewJPEGBaselineDecoder(transferSyntaxUID string) *JPEGBaselineDecoder {
	return &JPEGBaselineDecoder{
		transferSyntaxUID: transferSyntaxUID,
	}
}

// sofMarkerSOF1 is the Start Of Frame marker for Huffman Extended
// Sequential DCT (the DICOM "Process 2 & 4" JPEG coding).
const sofMarkerSOF1 = 0xC1

// sosMarker is the Start Of Scan marker.
const sosMarker = 0xDA

// patchSOF1SpectralSelection scans a JPEG codestream's header segments
// (SOI through the first SOS) for the DICOM Part 5 "JPEG SOF1 Se=0"
// quirk: some legacy producers encode an Extended Sequential (SOF1)
// frame whose Start Of Scan carries Ss=Se=Ah=Al=0, which is only legal
// for progressive/lossless scans. A conformant sequential decoder
// expects Se=0x3F (the full 0..63 spectral range) for a SOF1 scan.
//
// If the pattern is found, it returns a copy of data with the Se byte
// patched to 0x3F; the caller's original slice is never mutated.
// Returns the input unchanged when the quirk is not present.
func patchSOF1SpectralSelection(data []byte) []byte {
	if len(data) < 4 {
		return data
	}

	i := 2 // past SOI (FFD8)
	sawSOF1 := false

	for i+1 < len(data) {
		if data[i] != 0xFF {
			i++
			continue
		}
		// Skip fill bytes (sequences of 0xFF before the marker code).
		j := i
		for j < len(data) && data[j] == 0xFF {
			j++
		}
		if j >= len(data) {
			return data
		}
		marker := data[j]
		i = j + 1

		switch marker {
		case 0x00, 0x01, 0xD8: // stuffed byte, TEM, SOI: no length field
			continue
		case 0xD9: // EOI reached without finding a scan
			return data
		}
		if marker >= 0xD0 && marker <= 0xD7 { // RSTn: no length field
			continue
		}
		if i+2 > len(data) {
			return data
		}
		segLen := int(data[i])<<8 | int(data[i+1])

		if marker == sofMarkerSOF1 {
			sawSOF1 = true
		}

		if marker == sosMarker {
			if !sawSOF1 || i+2 >= len(data) {
				return data
			}
			ns := int(data[i+2])
			ssOffset := i + 3 + ns*2
			seOffset := ssOffset + 1
			ahAlOffset := seOffset + 1
			if ahAlOffset >= len(data) {
				return data
			}
			if data[ssOffset] == 0 && data[seOffset] == 0 && data[ahAlOffset] == 0 {
				patched := make([]byte, len(data))
				copy(patched, data)
				patched[seOffset] = 0x3F
				return patched
			}
			return data
		}

		if segLen < 2 {
			return data
		}
		i += segLen
	}
	return data
}

// padTo8 rounds n up to the next multiple of 8, matching the data-unit
// grid jrm-1535/jpeg pads its raw component planes to.
func padTo8(n int) int {
	return (n + 7) &^ 7
}

// cropPlane removes the data-unit padding MakeFrameRawPicture leaves on
// the right and bottom edges of a component plane, returning a tightly
// packed width*height buffer.
func cropPlane(plane []uint8, width, height int) ([]byte, error) {
	stride := padTo8(width)
	paddedRows := padTo8(height)
	if len(plane) != stride*paddedRows {
		return nil, fmt.Errorf("component plane size %d does not match padded dimensions %dx%d",
			len(plane), stride, paddedRows)
	}

	out := make([]byte, width*height)
	for r := 0; r < height; r++ {
		copy(out[r*width:(r+1)*width], plane[r*stride:r*stride+width])
	}
	return out, nil
}

// convertYCbCrToRGB converts cropped, non-subsampled Y/Cb/Cr planes to
// interleaved RGB bytes using the JPEG (ITU-R BT.601) color conversion.
func convertYCbCrToRGB(y, cb, cr []byte, width, height int) []byte {
	rgb := make([]byte, width*height*3)
	for i := 0; i < width*height; i++ {
		yy := int32(y[i])
		cbv := int32(cb[i]) - 128
		crv := int32(cr[i]) - 128

		r := yy + (91881*crv)>>16
		g := yy - (22554*cbv)>>16 - (46802*crv)>>16
		b := yy + (116130*cbv)>>16

		rgb[i*3] = clampUint8(r)
		rgb[i*3+1] = clampUint8(g)
		rgb[i*3+2] = clampUint8(b)
	}
	return rgb
}

// clampUint8 clamps an int32 value to the uint8 range [0, 255].
func clampUint8(v int32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// Decode decompresses JPEG Baseline / Extended Sequential encoded pixel data.
//
//  1. Applies the SOF1 Se=0x3F patch to a private copy if the quirk pattern is present.
//  2. Parses the codestream with jrm-1535/jpeg.
//  3. Reconstructs raw 8-bit component planes via MakeFrameRawPicture.
//  4. Crops the data-unit padding and, for color images, converts YCbCr to RGB.
func (d *JPEGBaselineDecoder) Decode(encapsulated []byte, info *PixelInfo) ([]byte, error) {
	if len(encapsulated) == 0 {
		return nil, &DecompressionError{
			TransferSyntaxUID: d.transferSyntaxUID,
			Cause:             fmt.Errorf("empty JPEG data"),
		}
	}

	data := patchSOF1SpectralSelection(encapsulated)

	jpg, err := jrmjpeg.Parse(data, &jrmjpeg.Control{TidyUp: true})
	if err != nil {
		return nil, &DecompressionError{
			TransferSyntaxUID: d.transferSyntaxUID,
			Cause:             fmt.Errorf("JPEG parse failed: %w", err),
		}
	}

	finfo, err := jpg.GetFrameInfo(0)
	if err != nil {
		return nil, &DecompressionError{
			TransferSyntaxUID: d.transferSyntaxUID,
			Cause:             fmt.Errorf("JPEG frame info unavailable: %w", err),
		}
	}

	if finfo.SampleSize != 8 {
		return nil, &DecompressionError{
			TransferSyntaxUID: d.transferSyntaxUID,
			Cause:             fmt.Errorf("%d-bit JPEG samples are not supported by jrm-1535/jpeg, only 8-bit", finfo.SampleSize),
		}
	}

	width, height := int(finfo.Width), int(finfo.Height)
	if width != int(info.Columns) || height != int(info.Rows) {
		return nil, &DecompressionError{
			TransferSyntaxUID: d.transferSyntaxUID,
			Cause: fmt.Errorf("image dimensions mismatch: got %dx%d, expected %dx%d",
				width, height, info.Columns, info.Rows),
		}
	}

	planes, err := jpg.MakeFrameRawPicture(0)
	if err != nil {
		return nil, &DecompressionError{
			TransferSyntaxUID: d.transferSyntaxUID,
			Cause:             fmt.Errorf("JPEG decode failed: %w", err),
		}
	}
	if len(planes) != int(info.SamplesPerPixel) {
		return nil, &DecompressionError{
			TransferSyntaxUID: d.transferSyntaxUID,
			Cause: fmt.Errorf("decoded component count %d does not match SamplesPerPixel %d",
				len(planes), info.SamplesPerPixel),
		}
	}

	var pixelData []byte
	switch len(planes) {
	case 1:
		pixelData, err = cropPlane(*planes[0], width, height)
	case 3:
		if len(*planes[0]) != len(*planes[1]) || len(*planes[1]) != len(*planes[2]) {
			err = fmt.Errorf("chroma-subsampled color JPEG is not supported: " +
				"jrm-1535/jpeg's public API does not expose per-component subsampling factors " +
				"(GetFrameInfo's Component.HSF/VSF fields are not populated correctly)")
			break
		}
		var yPlane, cbPlane, crPlane []byte
		if yPlane, err = cropPlane(*planes[0], width, height); err != nil {
			break
		}
		if cbPlane, err = cropPlane(*planes[1], width, height); err != nil {
			break
		}
		if crPlane, err = cropPlane(*planes[2], width, height); err != nil {
			break
		}
		pixelData = convertYCbCrToRGB(yPlane, cbPlane, crPlane, width, height)
	default:
		err = fmt.Errorf("unsupported JPEG component count: %d", len(planes))
	}
	if err != nil {
		return nil, &DecompressionError{
			TransferSyntaxUID: d.transferSyntaxUID,
			Cause:             err,
		}
	}

	expectedSize := CalculateExpectedSize(info)
	if len(pixelData) != expectedSize {
		return nil, &DecompressionError{
			TransferSyntaxUID: d.transferSyntaxUID,
			Cause:             fmt.Errorf("decompressed size mismatch: got %d bytes, expected %d bytes", len(pixelData), expectedSize),
		}
	}

	return pixelData, nil
}

// TransferSyntaxUID returns the transfer syntax UID this decoder handles.
func (d *JPEGBaselineDecoder) TransferSyntaxUID() string {
	return d.transferSyntaxUID
}

func init() {
	// Register JPEG Baseline decoders
	// Transfer Syntax 1.2.840.10008.1.2.4.50: JPEG Baseline (Process 1)
	RegisterDecoder("1.2.840.10008.1.2.4.50", NewJPEGBaselineDecoder("1.2.840.10008.1.2.4.50"))

	// Transfer Syntax 1.2.840.10008.1.2.4.51: JPEG Baseline (Processes 2 & 4)
	RegisterDecoder("1.2.840.10008.1.2.4.51", NewJPEGBaselineDecoder("1.2.840.10008.1.2.4.51"))
}
