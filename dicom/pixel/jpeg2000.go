package pixel

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	jpeg2000 "github.com/mrjoshuak/go-jpeg2000"
)

// JPEG2000Decoder implements JPEG 2000 and High-Throughput JPEG 2000
// (HTJ2K) decompression using github.com/mrjoshuak/go-jpeg2000, a pure-Go
// codestream decoder.
//
// JPEG 2000 is specified in:
//   - Transfer Syntax 1.2.840.10008.1.2.4.90: JPEG 2000 Image Compression (Lossless Only)
//   - Transfer Syntax 1.2.840.10008.1.2.4.91: JPEG 2000 Image Compression (Lossy)
//   - Transfer Syntax 1.2.840.10008.1.2.4.201: High-Throughput JPEG 2000 (HTJ2K) Lossless Only
//   - Transfer Syntax 1.2.840.10008.1.2.4.203: High-Throughput JPEG 2000 (HTJ2K) Lossless/Lossy
//
// go-jpeg2000's Decode auto-detects HTJ2K (FBCS entropy coding) from the
// codestream itself, so isHTJ2K is only used to name the format in error
// messages; it is not passed to the decoder.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_8.2.4
type JPEG2000Decoder struct {
	transferSyntaxUID string
	isHTJ2K           bool
}

// NewJPEG2000Decoder creates a new JPEG 2000 decoder for a specific transfer syntax.
func NewJPEG2000Decoder(transferSyntaxUID string, isHTJ2K bool) *JPEG2000Decoder {
	return &JPEG2000Decoder{
		transferSyntaxUID: transferSyntaxUID,
		isHTJ2K:           isHTJ2K,
	}
}

func (d *JPEG2000Decoder) formatName() string {
	if d.isHTJ2K {
		return "High-Throughput JPEG 2000 (HTJ2K)"
	}
	return "JPEG 2000"
}

// packGrayPlane writes a grayscale image's samples into a tightly packed
// buffer, 1 byte per sample for 8-bit data and 2 little-endian bytes per
// sample otherwise, matching the byte-order convention rle.go uses for
// multi-byte samples.
func packGrayPlane(img image.Image, width, height, bytesPerSample int) []byte {
	out := make([]byte, width*height*bytesPerSample)
	bounds := img.Bounds()
	idx := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g := color.Gray16Model.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.Gray16)
			if bytesPerSample == 1 {
				out[idx] = uint8(g.Y >> 8)
				idx++
			} else {
				out[idx] = uint8(g.Y & 0xFF)
				out[idx+1] = uint8(g.Y >> 8)
				idx += 2
			}
		}
	}
	return out
}

// packColorPlane writes a 3-component color image's samples into an
// interleaved RGB buffer, 1 or 2 bytes per sample per the same
// byte-order convention as packGrayPlane.
func packColorPlane(img image.Image, width, height, bytesPerSample int) []byte {
	out := make([]byte, width*height*3*bytesPerSample)
	bounds := img.Bounds()
	idx := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.RGBA64Model.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.RGBA64)
			samples := [3]uint16{c.R, c.G, c.B}
			for _, s := range samples {
				if bytesPerSample == 1 {
					out[idx] = uint8(s >> 8)
					idx++
				} else {
					out[idx] = uint8(s & 0xFF)
					out[idx+1] = uint8(s >> 8)
					idx += 2
				}
			}
		}
	}
	return out
}

// Decode decompresses JPEG 2000 / HTJ2K encoded pixel data.
func (d *JPEG2000Decoder) Decode(encapsulated []byte, info *PixelInfo) ([]byte, error) {
	if len(encapsulated) == 0 {
		return nil, &DecompressionError{
			TransferSyntaxUID: d.transferSyntaxUID,
			Cause:             fmt.Errorf("empty %s data", d.formatName()),
		}
	}

	img, err := jpeg2000.Decode(bytes.NewReader(encapsulated))
	if err != nil {
		return nil, &DecompressionError{
			TransferSyntaxUID: d.transferSyntaxUID,
			Cause:             fmt.Errorf("%s decode failed: %w", d.formatName(), err),
		}
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width != int(info.Columns) || height != int(info.Rows) {
		return nil, &DecompressionError{
			TransferSyntaxUID: d.transferSyntaxUID,
			Cause: fmt.Errorf("image dimensions mismatch: got %dx%d, expected %dx%d",
				width, height, info.Columns, info.Rows),
		}
	}

	bytesPerSample := (int(info.BitsAllocated) + 7) / 8
	if bytesPerSample != 1 && bytesPerSample != 2 {
		return nil, &DecompressionError{
			TransferSyntaxUID: d.transferSyntaxUID,
			Cause:             fmt.Errorf("unsupported BitsAllocated %d", info.BitsAllocated),
		}
	}

	var pixelData []byte
	switch info.SamplesPerPixel {
	case 1:
		pixelData = packGrayPlane(img, width, height, bytesPerSample)
	case 3:
		pixelData = packColorPlane(img, width, height, bytesPerSample)
	default:
		return nil, &DecompressionError{
			TransferSyntaxUID: d.transferSyntaxUID,
			Cause:             fmt.Errorf("unsupported SamplesPerPixel %d", info.SamplesPerPixel),
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
func (d *JPEG2000Decoder) TransferSyntaxUID() string {
	return d.transferSyntaxUID
}

func init() {
	// Register JPEG 2000 decoders
	// Transfer Syntax 1.2.840.10008.1.2.4.90: JPEG 2000 Lossless Only
	RegisterDecoder("1.2.840.10008.1.2.4.90", NewJPEG2000Decoder("1.2.840.10008.1.2.4.90", false))

	// Transfer Syntax 1.2.840.10008.1.2.4.91: JPEG 2000 Lossy
	RegisterDecoder("1.2.840.10008.1.2.4.91", NewJPEG2000Decoder("1.2.840.10008.1.2.4.91", false))

	// Transfer Syntax 1.2.840.10008.1.2.4.201: HTJ2K Lossless Only
	RegisterDecoder("1.2.840.10008.1.2.4.201", NewJPEG2000Decoder("1.2.840.10008.1.2.4.201", true))

	// Transfer Syntax 1.2.840.10008.1.2.4.203: HTJ2K Lossless/Lossy
	RegisterDecoder("1.2.840.10008.1.2.4.203", NewJPEG2000Decoder("1.2.840.10008.1.2.4.203", true))
}
