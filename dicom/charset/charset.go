// Package charset maps the DICOM SpecificCharacterSet defined terms
// (PS3.3 C.12.1.1.2) to golang.org/x/text decoders, and decodes Code
// Extension-free byte strings (PN/LO/LT/SH/ST/UT and similar text VRs)
// into UTF-8.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part03.html#sect_C.12.1.1.2
package charset

import (
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// CodingSystem holds the decoders for a Person Name's three component
// groups. For VRs other than PN, Ideographic is the only one consulted.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_6.2
type CodingSystem struct {
	Alphabetic  *encoding.Decoder
	Ideographic *encoding.Decoder
	Phonetic    *encoding.Decoder
}

// defaultTermNames maps a DICOM SpecificCharacterSet defined term to the
// golang.org/x/text/encoding/htmlindex registry name. An empty string
// means the term is 7-bit ASCII / UTF-8-compatible and needs no decoder.
var defaultTermNames = map[string]string{
	"":                 "",
	"ISO_IR 6":         "",
	"ISO 2022 IR 6":    "",
	"ISO_IR 13":        "shift_jis",
	"ISO 2022 IR 13":   "shift_jis",
	"ISO_IR 100":       "",
	"ISO 2022 IR 100":  "",
	"ISO_IR 101":       "iso-8859-2",
	"ISO 2022 IR 101":  "iso-8859-2",
	"ISO_IR 109":       "iso-8859-3",
	"ISO 2022 IR 109":  "iso-8859-3",
	"ISO_IR 110":       "iso-8859-4",
	"ISO 2022 IR 110":  "iso-8859-4",
	"ISO_IR 126":       "iso-ir-126",
	"ISO 2022 IR 126":  "iso-ir-126",
	"ISO_IR 127":       "iso-ir-127",
	"ISO 2022 IR 127":  "iso-ir-127",
	"ISO_IR 138":       "iso-ir-138",
	"ISO 2022 IR 138":  "iso-ir-138",
	"ISO_IR 144":       "iso-ir-144",
	"ISO 2022 IR 144":  "iso-ir-144",
	"ISO_IR 148":       "iso-ir-148",
	"ISO 2022 IR 148":  "iso-ir-148",
	"ISO 2022 IR 149":  "euc-kr",
	"ISO_IR 149":       "euc-kr",
	"ISO 2022 IR 159":  "iso-2022-jp",
	"ISO_IR 166":       "iso-ir-166",
	"ISO 2022 IR 166":  "iso-ir-166",
	"ISO 2022 IR 87":   "iso-2022-jp",
	"ISO_IR 192":       "utf-8",
	"GB18030":          "gb18030",
	"GBK":              "gbk",
}

// Resolve builds a CodingSystem from the raw values of a SpecificCharacterSet
// element (VM 1-n; multiple values only apply to VR PN with Code Extensions,
// which this module does not implement — see Non-goals). Unknown terms fall
// back to a nil decoder (treated as UTF-8/ASCII passthrough).
func Resolve(terms []string) (CodingSystem, error) {
	var decoders []*encoding.Decoder
	for _, term := range terms {
		htmlName, ok := defaultTermNames[term]
		if !ok {
			decoders = append(decoders, nil)
			continue
		}
		if htmlName == "" {
			decoders = append(decoders, nil)
			continue
		}
		enc, err := htmlindex.Get(htmlName)
		if err != nil {
			return CodingSystem{}, fmt.Errorf("charset: defined term %q (%s) not registered: %w", term, htmlName, err)
		}
		decoders = append(decoders, enc.NewDecoder())
	}

	switch len(decoders) {
	case 0:
		return CodingSystem{}, nil
	case 1:
		return CodingSystem{Alphabetic: decoders[0], Ideographic: decoders[0], Phonetic: decoders[0]}, nil
	case 2:
		return CodingSystem{Alphabetic: decoders[0], Ideographic: decoders[1], Phonetic: decoders[1]}, nil
	default:
		return CodingSystem{Alphabetic: decoders[0], Ideographic: decoders[1], Phonetic: decoders[2]}, nil
	}
}

// Decode converts raw bytes to a UTF-8 string using the Ideographic
// decoder, which is the one consulted for every VR other than PN. A nil
// decoder (default/unknown charset) returns the bytes as-is, since DICOM's
// default repertoire is 7-bit ASCII, a UTF-8 subset.
func (c CodingSystem) Decode(raw []byte) (string, error) {
	if c.Ideographic == nil {
		return string(raw), nil
	}
	out, err := c.Ideographic.Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("charset: decode: %w", err)
	}
	return string(out), nil
}

// IsKnownTerm reports whether term is a recognized SpecificCharacterSet
// defined term.
func IsKnownTerm(term string) bool {
	_, ok := defaultTermNames[term]
	return ok
}
