// stand for bytes helper
package bx

import "encoding/binary"

var LE = binary.LittleEndian

// --- LE: read ---
func U16(b []byte) uint16 { return LE.Uint16(b) }
func U32(b []byte) uint32 { return LE.Uint32(b) }

// --- LE: write ---
func PutU16(b []byte, v uint16) { LE.PutUint16(b, v) }
func PutU32(b []byte, v uint32) { LE.PutUint32(b, v) }

// --- LE: append ---
func AppendU16(b []byte, v uint16) []byte { return LE.AppendUint16(b, v) }
func AppendU32(b []byte, v uint32) []byte { return LE.AppendUint32(b, v) }

// --- LE: At (offset) ---
func U16At(b []byte, off int) uint16 { return U16(b[off:]) }
func U32At(b []byte, off int) uint32 { return U32(b[off:]) }
