package client

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"time"
)

// Params holds optional query parameters. Zero values (nil, "", 0, false,
// zero time, empty slices, nil pointers) are left out of the querystring;
// pass a pointer to send an explicit zero. Values implementing fmt.Stringer
// are sent as their String form. Maps, structs and other kinds with no
// query form are dropped.
type Params map[string]any

// Encode returns the canonical, key-sorted querystring without the leading "?".
func (p Params) Encode() string {
	if len(p) == 0 {
		return ""
	}
	vals := url.Values{}
	for k, v := range p {
		for _, s := range paramStrings(v, false) {
			vals.Add(k, s)
		}
	}
	return vals.Encode()
}

// paramStrings renders v as zero or more query values. deref is true once a
// pointer has been followed, in which case zero scalars are kept.
func paramStrings(v any, deref bool) []string {
	switch x := v.(type) {
	case nil:
		return nil
	case string:
		if x == "" && !deref {
			return nil
		}
		return []string{x}
	case bool:
		if !x && !deref {
			return nil
		}
		return []string{strconv.FormatBool(x)}
	case time.Time:
		if x.IsZero() {
			return nil
		}
		return []string{x.Format(time.DateOnly)}
	case []string:
		out := make([]string, 0, len(x))
		for _, s := range x {
			if s != "" {
				out = append(out, s)
			}
		}
		return out
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		return paramStrings(rv.Elem().Interface(), true)
	}
	if st, ok := v.(fmt.Stringer); ok {
		if rv.IsZero() && !deref {
			return nil
		}
		return []string{st.String()}
	}

	switch rv.Kind() {
	case reflect.Bool:
		if !rv.Bool() && !deref {
			return nil
		}
		return []string{strconv.FormatBool(rv.Bool())}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if rv.Int() == 0 && !deref {
			return nil
		}
		return []string{strconv.FormatInt(rv.Int(), 10)}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if rv.Uint() == 0 && !deref {
			return nil
		}
		return []string{strconv.FormatUint(rv.Uint(), 10)}
	case reflect.Float32, reflect.Float64:
		if rv.Float() == 0 && !deref {
			return nil
		}
		return []string{strconv.FormatFloat(rv.Float(), 'f', -1, 64)}
	case reflect.Slice, reflect.Array:
		var out []string
		for i := 0; i < rv.Len(); i++ {
			out = append(out, paramStrings(rv.Index(i).Interface(), true)...)
		}
		return out
	case reflect.String:
		if rv.String() == "" && !deref {
			return nil
		}
		return []string{rv.String()}
	}
	return nil
}
