// Package rowcodec packs a row of canonical field strings into one byte slice.
package rowcodec

import (
	"errors"
	"math"

	"github.com/tuannm99/reflected/internal/alias/bx"
)

// ---- Layout ----
type Column struct {
	Name     string
	Nullable bool
}

type Layout struct {
	Cols []Column
}

func (l Layout) NumCols() int { return len(l.Cols) }

// ---- Errors ----
var (
	ErrSchemaMismatch = errors.New("rowcodec: layout/values mismatch")
	ErrBadBuffer      = errors.New("rowcodec: buffer underflow/overflow")
	ErrVarTooLong     = errors.New("rowcodec: value length exceeds u32")
	ErrNullValue      = errors.New("rowcodec: null in non-nullable column")
)

// ---- Encode(layout, values) -> []byte ----
// Format:
// [ncols: u16] [nullmap: ceil(N/8) bytes, bit=1 => NULL] [col0?] [col1?] ...
// Every present value: u32 length (LE) + UTF-8 bytes
func Encode(l Layout, values []*string) ([]byte, error) {
	nc := l.NumCols()
	if len(values) != nc || nc > math.MaxUint16 {
		return nil, ErrSchemaMismatch
	}

	nbBytes := (nc + 7) / 8
	out := make([]byte, 2+nbBytes, 2+nbBytes+8*nc)
	bx.PutU16(out, uint16(nc))
	nullmap := out[2:]

	for i, col := range l.Cols {
		v := values[i]
		if v == nil {
			if !col.Nullable {
				return nil, ErrNullValue
			}
			nullmap[i/8] |= 1 << (uint(i) & 7)
			continue
		}
		if uint64(len(*v)) > math.MaxUint32 {
			return nil, ErrVarTooLong
		}
		out = bx.AppendU32(out, uint32(len(*v)))
		out = append(out, *v...)
	}
	return out, nil
}

// ---- Decode(layout, buf) -> []*string ----
func Decode(l Layout, buf []byte) ([]*string, error) {
	if len(buf) < 2 {
		return nil, ErrBadBuffer
	}
	nc := l.NumCols()
	if int(bx.U16(buf)) != nc {
		return nil, ErrSchemaMismatch
	}
	nbBytes := (nc + 7) / 8
	if len(buf) < 2+nbBytes {
		return nil, ErrBadBuffer
	}
	nullmap := buf[2 : 2+nbBytes]
	i := 2 + nbBytes

	out := make([]*string, nc)
	for colIdx, col := range l.Cols {
		if (nullmap[colIdx/8]>>(uint(colIdx)&7))&1 == 1 {
			if !col.Nullable {
				return nil, ErrNullValue
			}
			continue
		}
		if i+4 > len(buf) {
			return nil, ErrBadBuffer
		}
		n := int(bx.U32At(buf, i))
		i += 4
		if n < 0 || i+n > len(buf) {
			return nil, ErrBadBuffer
		}
		s := string(buf[i : i+n])
		out[colIdx] = &s
		i += n
	}

	if i != len(buf) {
		return nil, ErrBadBuffer
	}
	return out, nil
}
