package nbt

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// MaxDepth is the deepest list/compound nesting Unmarshal accepts.
const MaxDepth = 512

var (
	ErrEndRoot        = errors.New("nbt: root tag is TAG_End")
	ErrTooDeep        = errors.New("nbt: nesting too deep")
	ErrNegativeLength = errors.New("nbt: negative length")
	ErrEndListLength  = errors.New("nbt: non-empty list of TAG_End")
)

// UnknownTagError is returned for a tag type byte outside the known range.
type UnknownTagError struct {
	Type byte
}

func (e *UnknownTagError) Error() string {
	return fmt.Sprintf("nbt: unknown tag type %d", e.Type)
}

// Unmarshal parses one named tag from data. Bytes after the root tag are ignored.
func Unmarshal(data []byte) (name string, root Tag, err error) {
	d := &decoder{buf: data}
	tagType, err := d.u8()
	if err != nil {
		return "", nil, err
	}
	if tagType == TagEnd {
		return "", nil, ErrEndRoot
	}
	if name, err = d.string(); err != nil {
		return "", nil, err
	}
	root, err = d.payload(tagType, 0)
	if err != nil {
		return "", nil, fmt.Errorf("%s %q: %w", TypeName(tagType), name, err)
	}
	return name, root, nil
}

type decoder struct {
	buf []byte
	off int
}

func (d *decoder) take(n int) ([]byte, error) {
	if n > len(d.buf)-d.off {
		return nil, io.ErrUnexpectedEOF
	}
	b := d.buf[d.off : d.off+n]
	d.off += n
	return b, nil
}

func (d *decoder) u8() (byte, error) {
	b, err := d.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (d *decoder) u16() (uint16, error) {
	b, err := d.take(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (d *decoder) u32() (uint32, error) {
	b, err := d.take(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (d *decoder) u64() (uint64, error) {
	b, err := d.take(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

func (d *decoder) string() (string, error) {
	n, err := d.u16()
	if err != nil {
		return "", err
	}
	b, err := d.take(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// length reads an element count and checks that count elements of the given width can still
// be present in the input.
func (d *decoder) length(width int) (int, error) {
	raw, err := d.u32()
	if err != nil {
		return 0, err
	}
	n := int32(raw)
	if n < 0 {
		return 0, ErrNegativeLength
	}
	if int64(n)*int64(width) > int64(len(d.buf)-d.off) {
		return 0, io.ErrUnexpectedEOF
	}
	return int(n), nil
}

func (d *decoder) payload(tagType byte, depth int) (Tag, error) {
	switch tagType {
	case TagByte:
		v, err := d.u8()
		return Byte(v), err
	case TagShort:
		v, err := d.u16()
		return Short(v), err
	case TagInt:
		v, err := d.u32()
		return Int(v), err
	case TagLong:
		v, err := d.u64()
		return Long(v), err
	case TagFloat:
		v, err := d.u32()
		return Float(math.Float32frombits(v)), err
	case TagDouble:
		v, err := d.u64()
		return Double(math.Float64frombits(v)), err
	case TagString:
		v, err := d.string()
		return String(v), err
	case TagByteArray:
		n, err := d.length(1)
		if err != nil {
			return nil, err
		}
		b, _ := d.take(n)
		return ByteArray(append([]byte(nil), b...)), nil
	case TagIntArray:
		n, err := d.length(4)
		if err != nil {
			return nil, err
		}
		arr := make(IntArray, n)
		for i := range arr {
			v, _ := d.u32()
			arr[i] = int32(v)
		}
		return arr, nil
	case TagLongArray:
		n, err := d.length(8)
		if err != nil {
			return nil, err
		}
		arr := make(LongArray, n)
		for i := range arr {
			v, _ := d.u64()
			arr[i] = int64(v)
		}
		return arr, nil
	case TagList:
		return d.list(depth + 1)
	case TagCompound:
		return d.compound(depth + 1)
	}
	return nil, &UnknownTagError{Type: tagType}
}

func (d *decoder) list(depth int) (Tag, error) {
	if depth > MaxDepth {
		return nil, ErrTooDeep
	}
	elem, err := d.u8()
	if err != nil {
		return nil, err
	}
	if elem > TagLongArray {
		return nil, &UnknownTagError{Type: elem}
	}
	// Every element takes at least one byte except TAG_End, which has no payload.
	width := 1
	if elem == TagEnd {
		width = 0
	}
	n, err := d.length(width)
	if err != nil {
		return nil, err
	}
	l := List{Elem: elem}
	if elem == TagEnd {
		if n != 0 {
			return nil, ErrEndListLength
		}
		return l, nil
	}
	l.Values = make([]Tag, 0, n)
	for i := 0; i < n; i++ {
		v, err := d.payload(elem, depth)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		l.Values = append(l.Values, v)
	}
	return l, nil
}

func (d *decoder) compound(depth int) (Tag, error) {
	if depth > MaxDepth {
		return nil, ErrTooDeep
	}
	c := Compound{}
	for {
		tagType, err := d.u8()
		if err != nil {
			return nil, err
		}
		if tagType == TagEnd {
			return c, nil
		}
		name, err := d.string()
		if err != nil {
			return nil, err
		}
		v, err := d.payload(tagType, depth)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", name, err)
		}
		c = append(c, Field{Name: name, Value: v})
	}
}
