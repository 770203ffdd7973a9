package bytestream

import (
	"encoding/binary"
	"math"
)

// Endian helpers decode fixed-width values from a byte slice view, in
// either little- or big-endian order. They operate on views already
// produced by Stream.Read/Peek/Span and perform no bounds checking beyond
// what encoding/binary.ByteOrder does (panics on a too-short slice) —
// callers are expected to have sized the view correctly via the stream.

func Uint16LE(b []byte) uint16 { return binary.LittleEndian.Uint16(b) }
func Uint16BE(b []byte) uint16 { return binary.BigEndian.Uint16(b) }
func Uint32LE(b []byte) uint32 { return binary.LittleEndian.Uint32(b) }
func Uint32BE(b []byte) uint32 { return binary.BigEndian.Uint32(b) }
func Uint64LE(b []byte) uint64 { return binary.LittleEndian.Uint64(b) }
func Uint64BE(b []byte) uint64 { return binary.BigEndian.Uint64(b) }

func Int16LE(b []byte) int16 { return int16(Uint16LE(b)) }
func Int16BE(b []byte) int16 { return int16(Uint16BE(b)) }
func Int32LE(b []byte) int32 { return int32(Uint32LE(b)) }
func Int32BE(b []byte) int32 { return int32(Uint32BE(b)) }
func Int64LE(b []byte) int64 { return int64(Uint64LE(b)) }
func Int64BE(b []byte) int64 { return int64(Uint64BE(b)) }

func Float32LE(b []byte) float32 { return math.Float32frombits(Uint32LE(b)) }
func Float32BE(b []byte) float32 { return math.Float32frombits(Uint32BE(b)) }
func Float64LE(b []byte) float64 { return math.Float64frombits(Uint64LE(b)) }
func Float64BE(b []byte) float64 { return math.Float64frombits(Uint64BE(b)) }

// PutUint16LE/BE and PutUint32LE/BE encode into dst, which must be at
// least 2 (resp. 4) bytes long. Used by the writer path.
func PutUint16LE(dst []byte, v uint16) { binary.LittleEndian.PutUint16(dst, v) }
func PutUint16BE(dst []byte, v uint16) { binary.BigEndian.PutUint16(dst, v) }
func PutUint32LE(dst []byte, v uint32) { binary.LittleEndian.PutUint32(dst, v) }
func PutUint32BE(dst []byte, v uint32) { binary.BigEndian.PutUint32(dst, v) }

// TagLE and TagBE read a (group, element) pair at the front of a 4-byte view.
func TagLE(b []byte) (group, element uint16) {
	return Uint16LE(b[0:2]), Uint16LE(b[2:4])
}

func TagBE(b []byte) (group, element uint16) {
	return Uint16BE(b[0:2]), Uint16BE(b[2:4])
}
