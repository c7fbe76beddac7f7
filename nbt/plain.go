package nbt

// Plain converts a tree into ordinary Go values suitable for encoding/json or yaml: compounds become
// map[string]any, lists become []any, numbers keep their width and arrays stay typed slices.
func Plain(t Tag) any {
	switch v := t.(type) {
	case nil:
		return nil
	case Byte:
		return int8(v)
	case Short:
		return int16(v)
	case Int:
		return int32(v)
	case Long:
		return int64(v)
	case Float:
		return float32(v)
	case Double:
		return float64(v)
	case String:
		return string(v)
	case ByteArray:
		// []byte would be base64'd by encoding/json; numbers are easier to read.
		out := make([]int, len(v))
		for i, b := range v {
			out[i] = int(int8(b))
		}
		return out
	case IntArray:
		return []int32(v)
	case LongArray:
		return []int64(v)
	case List:
		out := make([]any, len(v.Values))
		for i, x := range v.Values {
			out[i] = Plain(x)
		}
		return out
	case Compound:
		out := make(map[string]any, len(v))
		for _, f := range v {
			out[f.Name] = Plain(f.Value)
		}
		return out
	}
	return nil
}
