package statekit

import "reflect"

// Merge strategies reported to metrics and tracing.
const (
	strategyReplace = "replace"
	strategyMerge   = "merge"
)

// Merge combines an old and new value into the value to store.
//
// If either value is falsy the new value wins unchanged. If both are maps
// of the same type, the result is a fresh map holding the old entries
// overwritten by the new ones. The merge is one level deep only; nested
// values are replaced wholesale. Any other combination replaces the old value.
//
// Merge never fails and never mutates its arguments.
func Merge(old, next any) any {
	merged, _ := mergeWithStrategy(old, next)
	return merged
}

// mergeWithStrategy is Merge plus the strategy label used for observability.
func mergeWithStrategy(old, next any) (any, string) {
	if isFalsy(old) || isFalsy(next) {
		return next, strategyReplace
	}

	ov := reflect.ValueOf(old)
	nv := reflect.ValueOf(next)
	if ov.Kind() != reflect.Map || nv.Kind() != reflect.Map || ov.Type() != nv.Type() {
		return next, strategyReplace
	}

	out := reflect.MakeMapWithSize(ov.Type(), ov.Len()+nv.Len())
	for it := ov.MapRange(); it.Next(); {
		out.SetMapIndex(it.Key(), it.Value())
	}
	for it := nv.MapRange(); it.Next(); {
		out.SetMapIndex(it.Key(), it.Value())
	}
	return out.Interface(), strategyMerge
}

// isFalsy reports whether v is in the falsy set the merge policy treats as
// "nothing to merge with": nil (including typed nils), false, numeric zero,
// and the empty string. Non-nil empty maps and slices are truthy.
func isFalsy(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return !rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() == 0
	case reflect.String:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
