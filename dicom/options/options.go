// Package options defines the struct-tag validated option types passed to
// the read and pixel-decode entry points, mirroring the teacher's
// documented-defaults WriteOptions convention (see dicom/writer.go) for
// the read/decode side.
package options

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/cairnmed/dicom/dicom/diag"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// OutputFormat selects the sample width/type decode_into materializes.
type OutputFormat string

const (
	OutputAuto OutputFormat = "auto"
	OutputU8   OutputFormat = "u8"
	OutputI16  OutputFormat = "i16"
	OutputI32  OutputFormat = "i32"
	OutputF32  OutputFormat = "f32"
)

// OutputLayout selects how multi-sample pixels are arranged in the
// destination buffer.
type OutputLayout string

const (
	LayoutInterleaved OutputLayout = "interleaved"
	LayoutPlanar      OutputLayout = "planar"
	LayoutKeepConfig  OutputLayout = "keep_config"
)

// HTJ2KBackend selects among available HTJ2K decode implementations.
type HTJ2KBackend string

const (
	HTJ2KAuto    HTJ2KBackend = "auto"
	HTJ2KBackendA HTJ2KBackend = "backend_a"
	HTJ2KBackendB HTJ2KBackend = "backend_b"
)

// ReadOptions configures DICOM file/byte-stream reading.
type ReadOptions struct {
	// StrictDictionary rejects unknown tags/VRs instead of falling back to
	// UN. Default: false.
	StrictDictionary bool

	// CopyBytes forces ReadBytes to copy the input instead of borrowing it.
	// Default: false (borrow).
	CopyBytes bool

	// MaxElementLength caps any single element's declared length, guarding
	// against corrupt-length denial-of-service. 0 means unlimited.
	MaxElementLength uint32 `validate:"gte=0"`

	// Reporter receives parse-time diagnostics. A nil Reporter falls back
	// to diag.Default().
	Reporter diag.Reporter
}

// DefaultReadOptions returns the documented defaults for ReadOptions.
func DefaultReadOptions() ReadOptions {
	return ReadOptions{
		MaxElementLength: 0,
		Reporter:         diag.Default(),
	}
}

// Validate checks struct-tag constraints and fills in an unset Reporter.
func (o *ReadOptions) Validate() error {
	if o.Reporter == nil {
		o.Reporter = diag.Default()
	}
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("options: invalid ReadOptions: %w", err)
	}
	return nil
}

// DecodeOptions configures DataSet.DecodePixels / DecodeInto.
type DecodeOptions struct {
	OutputFormat OutputFormat `validate:"omitempty,oneof=auto u8 i16 i32 f32"`
	OutputLayout OutputLayout `validate:"omitempty,oneof=interleaved planar keep_config"`

	ApplyRescale bool

	// OutputStride is the destination row stride in bytes. 0 means
	// compute a tight/aligned stride from OutputAlignment.
	OutputStride int `validate:"gte=0"`

	// OutputAlignment is the byte alignment applied when OutputStride is 0.
	OutputAlignment int `validate:"gte=0"`

	// DecoderThreads: 0 = single-threaded, -1 = auto, >0 = fixed pool size.
	DecoderThreads int `validate:"gte=-1"`

	HTJ2KBackend HTJ2KBackend `validate:"omitempty,oneof=auto backend_a backend_b"`

	Reporter diag.Reporter
}

// DefaultDecodeOptions returns the documented defaults for DecodeOptions.
func DefaultDecodeOptions() DecodeOptions {
	return DecodeOptions{
		OutputFormat:    OutputAuto,
		OutputLayout:    LayoutInterleaved,
		ApplyRescale:    true,
		OutputAlignment: 1,
		DecoderThreads:  0,
		HTJ2KBackend:    HTJ2KAuto,
		Reporter:        diag.Default(),
	}
}

// Validate checks struct-tag constraints, fills unset fields with their
// documented default, and reports invalid combinations.
func (o *DecodeOptions) Validate() error {
	if o.OutputFormat == "" {
		o.OutputFormat = OutputAuto
	}
	if o.OutputLayout == "" {
		o.OutputLayout = LayoutInterleaved
	}
	if o.OutputAlignment == 0 {
		o.OutputAlignment = 1
	}
	if o.HTJ2KBackend == "" {
		o.HTJ2KBackend = HTJ2KAuto
	}
	if o.Reporter == nil {
		o.Reporter = diag.Default()
	}
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("options: invalid DecodeOptions: %w", err)
	}
	return nil
}
