package value

import (
	"math"
	"strconv"
	"strings"
)

// Stringify returns a deterministic, single-line representation of v for logs and diagnostics.
// Cyclic references are printed as [Circular], abstract values are printed with their own String
// method if they have one.
func Stringify(v Value) string {
	w := &strings.Builder{}
	stringify(w, v, map[*Object]bool{})
	return w.String()
}

func stringify(w *strings.Builder, v Value, visited map[*Object]bool) {
	switch val := v.(type) {
	case nil:
		w.WriteString("<nil>")
	case *Undefined:
		w.WriteString("undefined")
	case *Null:
		w.WriteString("null")
	case *Boolean:
		w.WriteString(strconv.FormatBool(val.value))
	case *Number:
		w.WriteString(FormatNumber(val.value))
	case *String:
		w.WriteString(strconv.Quote(val.value))
	case *Symbol:
		w.WriteString("Symbol(")
		if desc, ok := val.Description(); ok {
			w.WriteString(desc.value)
		}
		w.WriteByte(')')
	case *Function:
		w.WriteString("function(")
		w.WriteString(strings.Join(val.parameters, ", "))
		w.WriteString("){")
		if !val.body.IsEmpty() {
			w.WriteString("...")
		}
		w.WriteByte('}')
	case *Array:
		w.WriteString("Array")
		stringifyProperties(w, &val.Object, visited)
	case *Object:
		stringifyProperties(w, val, visited)
	case interface{ String() string }:
		w.WriteString(val.String())
	default:
		w.WriteString("<abstract>")
	}
}

func stringifyProperties(w *strings.Builder, obj *Object, visited map[*Object]bool) {
	if visited[obj] {
		w.WriteString("[Circular]")
		return
	}
	visited[obj] = true
	defer delete(visited, obj)

	w.WriteByte('{')
	for i, prop := range obj.properties {
		if i != 0 {
			w.WriteString(", ")
		}
		w.WriteString(prop.key.String())
		w.WriteString(": ")
		stringify(w, prop.Value, visited)
	}
	w.WriteByte('}')
}

// FormatNumber formats f the way the scripting language prints numbers in the common cases.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	case f == math.Trunc(f) && math.Abs(f) < 1e21:
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
