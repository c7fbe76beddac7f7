package nbt

// Tag type identifiers as they appear on the wire.
const (
	TagEnd byte = iota
	TagByte
	TagShort
	TagInt
	TagLong
	TagFloat
	TagDouble
	TagByteArray
	TagString
	TagList
	TagCompound
	TagIntArray
	TagLongArray
)

// Tag is one node of a decoded NBT tree. The set of implementations is closed; a type switch over
// the types in this file is exhaustive.
type Tag interface {
	Type() byte
	tag()
}

type (
	Byte      int8
	Short     int16
	Int       int32
	Long      int64
	Float     float32
	Double    float64
	ByteArray []byte
	String    string
	IntArray  []int32
	LongArray []int64
)

// List is a homogeneous sequence. Elem is TagEnd for an empty list written without an element type.
type List struct {
	Elem   byte
	Values []Tag
}

// Field is a named entry of a Compound.
type Field struct {
	Name  string
	Value Tag
}

// Compound keeps its fields in wire order.
type Compound []Field

func (Byte) Type() byte      { return TagByte }
func (Short) Type() byte     { return TagShort }
func (Int) Type() byte       { return TagInt }
func (Long) Type() byte      { return TagLong }
func (Float) Type() byte     { return TagFloat }
func (Double) Type() byte    { return TagDouble }
func (ByteArray) Type() byte { return TagByteArray }
func (String) Type() byte    { return TagString }
func (List) Type() byte      { return TagList }
func (Compound) Type() byte  { return TagCompound }
func (IntArray) Type() byte  { return TagIntArray }
func (LongArray) Type() byte { return TagLongArray }

func (Byte) tag()      {}
func (Short) tag()     {}
func (Int) tag()       {}
func (Long) tag()      {}
func (Float) tag()     {}
func (Double) tag()    {}
func (ByteArray) tag() {}
func (String) tag()    {}
func (List) tag()      {}
func (Compound) tag()  {}
func (IntArray) tag()  {}
func (LongArray) tag() {}

// Get returns the first field called name.
func (c Compound) Get(name string) (Tag, bool) {
	for _, f := range c {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// TypeName returns the conventional name of a tag type, e.g. "TAG_Compound".
func TypeName(t byte) string {
	switch t {
	case TagEnd:
		return "TAG_End"
	case TagByte:
		return "TAG_Byte"
	case TagShort:
		return "TAG_Short"
	case TagInt:
		return "TAG_Int"
	case TagLong:
		return "TAG_Long"
	case TagFloat:
		return "TAG_Float"
	case TagDouble:
		return "TAG_Double"
	case TagByteArray:
		return "TAG_Byte_Array"
	case TagString:
		return "TAG_String"
	case TagList:
		return "TAG_List"
	case TagCompound:
		return "TAG_Compound"
	case TagIntArray:
		return "TAG_Int_Array"
	case TagLongArray:
		return "TAG_Long_Array"
	}
	return "TAG_Unknown"
}
