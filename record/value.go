package record

import "recast/internal/common"

// Kind discriminates the variants a Value can hold.
type Kind int

const (
	KindNil Kind = iota
	KindScalar
	KindRecord
	KindList
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindScalar:
		return "scalar"
	case KindRecord:
		return "record"
	case KindList:
		return "list"
	default:
		return common.UnknownStr
	}
}

// Value is a dynamically typed field value: a scalar, a nested Record, or a
// List. The zero Value is the nil value (field absent / unset).
type Value struct {
	kind   Kind
	scalar any
	record Record
	list   List
}

// List is an ordered sequence of values.
type List []Value

// Nil returns the nil value.
func Nil() Value {
	return Value{}
}

// Scalar wraps a native scalar (string, bool, number, time, ...) as a Value.
// Composite Go values (maps, slices, structs) belong to FromNative instead;
// Scalar stores its argument verbatim.
func Scalar(v any) Value {
	if v == nil {
		return Nil()
	}

	return Value{kind: KindScalar, scalar: v}
}

// String wraps a string scalar.
func String(s string) Value {
	return Scalar(s)
}

// Int wraps an integer scalar.
func Int(i int) Value {
	return Scalar(int64(i))
}

// Float wraps a floating-point scalar.
func Float(f float64) Value {
	return Scalar(f)
}

// Bool wraps a boolean scalar.
func Bool(b bool) Value {
	return Scalar(b)
}

// Of wraps a Record as a Value.
func Of(r Record) Value {
	if r == nil {
		return Nil()
	}

	return Value{kind: KindRecord, record: r}
}

// OfList wraps a List as a Value.
func OfList(l List) Value {
	if l == nil {
		return Nil()
	}

	return Value{kind: KindList, list: l}
}

// Kind reports which variant the value holds.
func (v Value) Kind() Kind { return v.kind }

// IsNil reports whether the value is the nil value.
func (v Value) IsNil() bool { return v.kind == KindNil }

// IsScalar reports whether the value holds a scalar.
func (v Value) IsScalar() bool { return v.kind == KindScalar }

// IsRecord reports whether the value holds a nested record.
func (v Value) IsRecord() bool { return v.kind == KindRecord }

// IsList reports whether the value holds a list.
func (v Value) IsList() bool { return v.kind == KindList }

// Record returns the nested record and true, or nil and false for other kinds.
func (v Value) Record() (Record, bool) {
	if v.kind != KindRecord {
		return nil, false
	}

	return v.record, true
}

// List returns the list and true, or nil and false for other kinds.
func (v Value) List() (List, bool) {
	if v.kind != KindList {
		return nil, false
	}

	return v.list, true
}

// AsString returns the scalar as a string if it is one.
func (v Value) AsString() (string, bool) {
	if v.kind != KindScalar {
		return "", false
	}

	s, ok := v.scalar.(string)

	return s, ok
}

// AsInt returns the scalar as an int64 if it holds any integer type.
func (v Value) AsInt() (int64, bool) {
	if v.kind != KindScalar {
		return 0, false
	}

	switch n := v.scalar.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), true
	}

	return 0, false
}

// AsFloat returns the scalar as a float64 if it holds any numeric type.
func (v Value) AsFloat() (float64, bool) {
	if v.kind != KindScalar {
		return 0, false
	}

	switch n := v.scalar.(type) {
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}

	if i, ok := v.AsInt(); ok {
		return float64(i), true
	}

	return 0, false
}

// AsBool returns the scalar as a bool if it is one.
func (v Value) AsBool() (bool, bool) {
	if v.kind != KindScalar {
		return false, false
	}

	b, ok := v.scalar.(bool)

	return b, ok
}

// Equal reports deep equality. Integer scalars compare across widths; numeric
// scalars of different families (int vs float) compare by float64 value.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case KindNil:
		return true
	case KindScalar:
		return scalarEqual(v.scalar, other.scalar)
	case KindRecord:
		return v.record.Equal(other.record)
	case KindList:
		return v.list.Equal(other.list)
	}

	return false
}

// Clone returns a deep copy. Scalars are copied verbatim; nested records and
// lists are cloned recursively so mutations never alias the original.
func (v Value) Clone() Value {
	switch v.kind {
	case KindRecord:
		return Of(v.record.Clone())
	case KindList:
		return OfList(v.list.Clone())
	default:
		return v
	}
}

// Equal reports element-wise deep equality.
func (l List) Equal(other List) bool {
	if len(l) != len(other) {
		return false
	}

	for i := range l {
		if !l[i].Equal(other[i]) {
			return false
		}
	}

	return true
}

// Clone returns a deep copy of the list.
func (l List) Clone() List {
	if l == nil {
		return nil
	}

	out := make(List, len(l))
	for i := range l {
		out[i] = l[i].Clone()
	}

	return out
}

func scalarEqual(a, b any) bool {
	if a == b {
		return true
	}

	ai, aInt := Scalar(a).AsInt()
	bi, bInt := Scalar(b).AsInt()

	if aInt && bInt {
		return ai == bi
	}

	af, aNum := Scalar(a).AsFloat()
	bf, bNum := Scalar(b).AsFloat()

	if aNum && bNum {
		return af == bf
	}

	return false
}
