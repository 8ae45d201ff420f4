package main

import (
	"encoding/json"
	goast "go/ast"
	"io"
	"reflect"
)

// encodeJSON renders node as an indented JSON tree, tagging every struct
// with the Go type name it came from since the node's own interfaces
// (Word, Command, AndOrList) carry no such tag of their own.
func encodeJSON(w io.Writer, node any) error {
	v, _ := recurse(reflect.ValueOf(node))
	enc := json.NewEncoder(w)
	enc.SetIndent("", "\t")
	return enc.Encode(v)
}

func recurse(val reflect.Value) (any, string) {
	switch val.Kind() {
	case reflect.Ptr:
		elem := val.Elem()
		if !elem.IsValid() {
			return nil, ""
		}
		return recurse(elem)
	case reflect.Interface:
		if val.IsNil() {
			return nil, ""
		}
		v, tname := recurse(val.Elem())
		m, ok := v.(map[string]any)
		if !ok {
			return v, tname
		}
		m["Type"] = tname
		return m, ""
	case reflect.Struct:
		m := make(map[string]any, val.NumField()+1)
		addField := func(name string, v any) {
			switch x := v.(type) {
			case bool:
				if !x {
					return
				}
			case string:
				if x == "" {
					return
				}
			case []any:
				if len(x) == 0 {
					return
				}
			case nil:
				return
			}
			m[name] = v
		}
		typ := val.Type()
		for i := 0; i < val.NumField(); i++ {
			ftyp := typ.Field(i)
			// Range/position fields exist for diagnostics and printer
			// round-tripping, not for the tree shape a consumer wants.
			if ftyp.Type.Name() == "Range" || ftyp.Type.Name() == "Position" {
				continue
			}
			if !goast.IsExported(ftyp.Name) {
				continue
			}
			fval := val.Field(i)
			v, _ := recurse(fval)
			addField(ftyp.Name, v)
		}
		return m, typ.Name()
	case reflect.Slice:
		l := make([]any, val.Len())
		for i := 0; i < val.Len(); i++ {
			l[i], _ = recurse(val.Index(i))
		}
		return l, ""
	default:
		return val.Interface(), ""
	}
}
