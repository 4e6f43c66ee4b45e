package dataset

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Kind enumerates the type of a cell. KindMixed never appears on a
// cell, InferKind reports it for columns that mix kinds.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindInt
	KindFloat
	KindDate
	KindMixed
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindDate:
		return "date"
	case KindMixed:
		return "mixed"
	}
	return "unknown"
}

const DateLayout = "2006-01-02"

// Value is a single immutable cell. The zero value is null.
type Value struct {
	kind Kind
	str  string
	num  int64
	flt  float64
	date time.Time
}

func Null() Value {
	return Value{}
}

func String(s string) Value {
	return Value{kind: KindString, str: s}
}

func Int(n int64) Value {
	return Value{kind: KindInt, num: n}
}

func Float(f float64) Value {
	return Value{kind: KindFloat, flt: f}
}

// Date keeps calendar-day resolution, the time of day is discarded.
func Date(t time.Time) Value {
	return Value{kind: KindDate, date: t.UTC().Truncate(24 * time.Hour)}
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsNull() bool {
	return v.kind == KindNull
}

func (v Value) Str() string {
	return v.str
}

func (v Value) Int64() int64 {
	return v.num
}

func (v Value) Float64() float64 {
	return v.flt
}

func (v Value) Time() time.Time {
	return v.date
}

// AsFloat reports the numeric payload of an int or float cell.
func (v Value) AsFloat() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.num), true
	case KindFloat:
		return v.flt, true
	}
	return 0, false
}

func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindString:
		return v.str == other.str
	case KindInt:
		return v.num == other.num
	case KindFloat:
		return v.flt == other.flt
	case KindDate:
		return v.date.Equal(other.date)
	}
	return false
}

// Compare orders v against other: negative when v sorts first. Null
// sorts after every non-null value, int and float compare by numeric
// payload, otherwise mismatched kinds fall back to kind order so
// sorting a mixed column stays deterministic.
func (v Value) Compare(other Value) int {
	if v.kind == KindNull || other.kind == KindNull {
		switch {
		case v.kind == other.kind:
			return 0
		case v.kind == KindNull:
			return 1
		default:
			return -1
		}
	}
	if v.kind != other.kind {
		lf, lok := v.AsFloat()
		rf, rok := other.AsFloat()
		if lok && rok {
			return cmp.Compare(lf, rf)
		}
		return cmp.Compare(int(v.kind), int(other.kind))
	}
	switch v.kind {
	case KindString:
		return strings.Compare(v.str, other.str)
	case KindInt:
		return cmp.Compare(v.num, other.num)
	case KindFloat:
		return cmp.Compare(v.flt, other.flt)
	case KindDate:
		if v.date.Before(other.date) {
			return -1
		}
		if v.date.After(other.date) {
			return 1
		}
	}
	return 0
}

// Format renders the canonical text form of a value, the form ParseAs
// accepts back. Null renders as the empty string.
func (v Value) Format() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindInt:
		return strconv.FormatInt(v.num, 10)
	case KindFloat:
		return strconv.FormatFloat(v.flt, 'g', -1, 64)
	case KindDate:
		return v.date.Format(DateLayout)
	}
	return ""
}

// ParseAs converts Format() output back into a value of the given
// kind, used when restoring stored cells.
func ParseAs(kind Kind, text string) (Value, error) {
	switch kind {
	case KindNull:
		return Null(), nil
	case KindString:
		return String(text), nil
	case KindInt:
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return Null(), err
		}
		return Int(n), nil
	case KindFloat:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Null(), err
		}
		return Float(f), nil
	case KindDate:
		t, err := time.Parse(DateLayout, text)
		if err != nil {
			return Null(), err
		}
		return Date(t), nil
	}
	return Null(), fmt.Errorf("cannot parse kind: %s", kind)
}
