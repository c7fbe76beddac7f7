package nbt

import (
	"errors"
	"io"
	"math"
	"reflect"
	"strings"
)

var tagInterface = reflect.TypeOf((*Tag)(nil)).Elem()

func Marshal(w io.Writer, v interface{}) error {
	return NewEncoder(w).Encode(v)
}

type Encoder struct {
	w io.Writer
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode writes v as a root tag with an empty name. Structs and string-keyed maps become
// compounds; Tag values are written as they are.
func (e *Encoder) Encode(v interface{}) error {
	val := reflect.ValueOf(v)
	return e.marshal(val, "")
}

// EncodeTag writes t as a root tag called name.
func (e *Encoder) EncodeTag(name string, t Tag) error {
	if t == nil {
		return errors.New("nbt: cannot encode nil tag " + name)
	}
	if err := e.writeTag(t.Type(), name); err != nil {
		return err
	}
	return e.writePayload(t)
}

func (e *Encoder) marshal(val reflect.Value, tagName string) error {
	if val.IsValid() && val.Type().Implements(tagInterface) && val.Kind() != reflect.Interface {
		return e.EncodeTag(tagName, val.Interface().(Tag))
	}

	switch vk := val.Kind(); vk {
	default:
		return errors.New("unknown type " + vk.String() + " whilst serializing " + tagName)

	case reflect.Bool:
		if err := e.writeTag(TagByte, tagName); err != nil {
			return err
		}
		var b byte
		if val.Bool() {
			b = 1
		}
		_, err := e.w.Write([]byte{b})
		return err

	case reflect.Int8, reflect.Uint8:
		if err := e.writeTag(TagByte, tagName); err != nil {
			return err
		}
		_, err := e.w.Write([]byte{byte(integer(val))})
		return err

	case reflect.Int16, reflect.Uint16:
		if err := e.writeTag(TagShort, tagName); err != nil {
			return err
		}
		return e.writeInt16(int16(integer(val)))

	case reflect.Int32, reflect.Uint32, reflect.Int:
		if err := e.writeTag(TagInt, tagName); err != nil {
			return err
		}
		return e.writeInt32(int32(integer(val)))

	case reflect.Float32:
		if err := e.writeTag(TagFloat, tagName); err != nil {
			return err
		}
		return e.writeInt32(int32(math.Float32bits(float32(val.Float()))))

	case reflect.Int64, reflect.Uint64:
		if err := e.writeTag(TagLong, tagName); err != nil {
			return err
		}
		return e.writeInt64(integer(val))

	case reflect.Float64:
		if err := e.writeTag(TagDouble, tagName); err != nil {
			return err
		}
		return e.writeInt64(int64(math.Float64bits(val.Float())))

	case reflect.Array, reflect.Slice:
		return e.marshalArray(val, tagName, val.Type().Elem().Kind())

	case reflect.String:
		if err := e.writeTag(TagString, tagName); err != nil {
			return err
		}
		return e.writeString(val.String())

	case reflect.Struct:
		if err := e.writeTag(TagCompound, tagName); err != nil {
			return err
		}
		return e.marshalStruct(val)

	case reflect.Map:
		if val.Type().Key().Kind() != reflect.String {
			return errors.New("unknown key type " + val.Type().String() + " for map")
		}
		if err := e.writeTag(TagCompound, tagName); err != nil {
			return err
		}
		return e.marshalMap(val)

	case reflect.Interface, reflect.Ptr:
		if val.IsNil() {
			return errors.New("nil value whilst serializing " + tagName)
		}
		return e.marshal(val.Elem(), tagName)
	}
}

func integer(val reflect.Value) int64 {
	switch val.Kind() {
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uint:
		return int64(val.Uint())
	}
	return val.Int()
}

func (e *Encoder) marshalArray(val reflect.Value, tagName string, elementKind reflect.Kind) error {
	n := val.Len()
	switch elementKind {
	case reflect.Uint8: // []byte
		if err := e.writeTag(TagByteArray, tagName); err != nil {
			return err
		}
		if err := e.writeInt32(int32(n)); err != nil {
			return err
		}
		b := make([]byte, n)
		for i := range b {
			b[i] = byte(val.Index(i).Uint())
		}
		_, err := e.w.Write(b)
		return err

	case reflect.Int32:
		if err := e.writeTag(TagIntArray, tagName); err != nil {
			return err
		}
		if err := e.writeInt32(int32(n)); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			if err := e.writeInt32(int32(val.Index(i).Int())); err != nil {
				return err
			}
		}
		return nil

	case reflect.Int64, reflect.Uint64:
		if err := e.writeTag(TagLongArray, tagName); err != nil {
			return err
		}
		if err := e.writeInt32(int32(n)); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			if err := e.writeInt64(integer(val.Index(i))); err != nil {
				return err
			}
		}
		return nil

	case reflect.Struct, reflect.Map: // Compounds
		if err := e.writeTag(TagList, tagName); err != nil {
			return err
		}
		if err := e.writeNamelessTag(TagCompound); err != nil {
			return err
		}
		if err := e.writeInt32(int32(n)); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			var err error
			if elementKind == reflect.Struct {
				err = e.marshalStruct(val.Index(i))
			} else {
				err = e.marshalMap(val.Index(i))
			}
			if err != nil {
				return err
			}
		}
		return nil

	case reflect.String:
		if err := e.writeTag(TagList, tagName); err != nil {
			return err
		}
		if err := e.writeNamelessTag(TagString); err != nil {
			return err
		}
		if err := e.writeInt32(int32(n)); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			if err := e.writeString(val.Index(i).String()); err != nil {
				return err
			}
		}
		return nil

	case reflect.Interface:
		if val.Type().Elem() == tagInterface {
			// []Tag is written as a list of whatever the elements are.
			values := make([]Tag, n)
			for i := range values {
				values[i], _ = val.Index(i).Interface().(Tag)
			}
			l := List{Elem: TagEnd, Values: values}
			if n > 0 && values[0] != nil {
				l.Elem = values[0].Type()
			}
			return e.EncodeTag(tagName, l)
		}
		return errors.New("unknown type " + val.Type().String() + " slice")
	}
	return errors.New("unknown type " + val.Type().String() + " slice")
}

func (e *Encoder) marshalStruct(val reflect.Value) error {
	n := val.NumField()
	for i := 0; i < n; i++ {
		f := val.Type().Field(i)
		tag := f.Tag.Get("nbt")
		if (f.PkgPath != "" && !f.Anonymous) || tag == "-" {
			continue // Private field
		}

		name, opts, _ := strings.Cut(tag, ",")
		if opts == "omitempty" && val.Field(i).IsZero() {
			continue
		}
		tagName := f.Name
		if name != "" {
			tagName = name
		}

		if err := e.marshal(val.Field(i), tagName); err != nil {
			return err
		}
	}
	_, err := e.w.Write([]byte{TagEnd})
	return err
}

func (e *Encoder) marshalMap(val reflect.Value) error {
	iter := val.MapRange()
	for iter.Next() {
		if err := e.marshal(iter.Value(), iter.Key().String()); err != nil {
			return err
		}
	}
	_, err := e.w.Write([]byte{TagEnd})
	return err
}

func (e *Encoder) writePayload(t Tag) error {
	switch v := t.(type) {
	case Byte:
		_, err := e.w.Write([]byte{byte(v)})
		return err
	case Short:
		return e.writeInt16(int16(v))
	case Int:
		return e.writeInt32(int32(v))
	case Long:
		return e.writeInt64(int64(v))
	case Float:
		return e.writeInt32(int32(math.Float32bits(float32(v))))
	case Double:
		return e.writeInt64(int64(math.Float64bits(float64(v))))
	case String:
		return e.writeString(string(v))
	case ByteArray:
		if err := e.writeInt32(int32(len(v))); err != nil {
			return err
		}
		_, err := e.w.Write(v)
		return err
	case IntArray:
		if err := e.writeInt32(int32(len(v))); err != nil {
			return err
		}
		for _, x := range v {
			if err := e.writeInt32(x); err != nil {
				return err
			}
		}
		return nil
	case LongArray:
		if err := e.writeInt32(int32(len(v))); err != nil {
			return err
		}
		for _, x := range v {
			if err := e.writeInt64(x); err != nil {
				return err
			}
		}
		return nil
	case List:
		if err := e.writeNamelessTag(v.Elem); err != nil {
			return err
		}
		if err := e.writeInt32(int32(len(v.Values))); err != nil {
			return err
		}
		for _, x := range v.Values {
			if x == nil || x.Type() != v.Elem {
				return errors.New("nbt: mixed types in list of " + TypeName(v.Elem))
			}
			if err := e.writePayload(x); err != nil {
				return err
			}
		}
		return nil
	case Compound:
		for _, f := range v {
			if err := e.EncodeTag(f.Name, f.Value); err != nil {
				return err
			}
		}
		_, err := e.w.Write([]byte{TagEnd})
		return err
	}
	return errors.New("nbt: unsupported tag value")
}

func (e *Encoder) writeTag(tagType byte, tagName string) error {
	if _, err := e.w.Write([]byte{tagType}); err != nil {
		return err
	}
	return e.writeString(tagName)
}

func (e *Encoder) writeNamelessTag(tagType byte) error {
	_, err := e.w.Write([]byte{tagType})
	return err
}

func (e *Encoder) writeString(s string) error {
	if err := e.writeInt16(int16(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(e.w, s)
	return err
}

func (e *Encoder) writeInt16(n int16) error {
	_, err := e.w.Write([]byte{byte(n >> 8), byte(n)})
	return err
}

func (e *Encoder) writeInt32(n int32) error {
	_, err := e.w.Write([]byte{byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n)})
	return err
}

func (e *Encoder) writeInt64(n int64) error {
	_, err := e.w.Write([]byte{
		byte(n >> 56), byte(n >> 48), byte(n >> 40), byte(n >> 32),
		byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n)})
	return err
}
