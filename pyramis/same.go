package pyramis

import "reflect"

// sameValue reports whether a and b are the very same value: equal for
// comparable types, the same reference for maps, pointers, channels and
// funcs, the same backing array and length for slices.
func sameValue(a, b interface{}) (same bool) {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	var ta, tb = reflect.TypeOf(a), reflect.TypeOf(b)

	if ta != tb {
		return false
	}

	if ta.Comparable() {
		// a comparable struct may still hold an uncomparable value in an
		// interface field, in which case == panics
		defer func() {
			if recover() != nil {
				same = false
			}
		}()

		return a == b
	}

	var va, vb = reflect.ValueOf(a), reflect.ValueOf(b)

	switch ta.Kind() {
	case reflect.Map, reflect.Func:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	}

	return false
}
