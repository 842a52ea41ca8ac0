package std

import (
	"github.com/flrdv/pycalc/calc/eval"
)

// Iterable is the host type map/filter/reduce/sizeof operate over. List
// (malloc's result) implements it; a host embedder can supply its own
// host values implementing the same interface to make them usable with
// these same functions.
type Iterable interface {
	Items() []eval.Value
}

// List is a generic sequence host value: malloc's result, and map/filter's.
// original_source's malloc returns a plain Python list of zeroed ints;
// map and filter return whatever their builtin produces. This Go port
// uses one concrete sequence type for all three so a calculator program
// can freely pass one into the other.
type List []eval.Value

func (l List) Items() []eval.Value { return l }

// malloc(size) allocates a zero-filled List of the given length
// (original_source/pycalc/std/stdmem.py's mem_alloc; size must be a
// whole number there too, enforced there via float.is_integer()).
func malloc(args []eval.Value) (eval.Value, error) {
	if len(args) != 1 {
		return nil, argErr("malloc expects 1 argument, got %d", len(args))
	}
	n, ok := args[0].(int64)
	if !ok {
		return nil, argErr("malloc() takes only integers")
	}
	if n < 0 {
		return nil, argErr("malloc() size must not be negative")
	}
	buf := make(List, n)
	for i := range buf {
		buf[i] = int64(0)
	}
	return buf, nil
}

// memGet reads mem[offset], returning -1 for an out-of-range offset
// rather than erroring, per stdmem.py's mem_get.
func memGet(args []eval.Value) (eval.Value, error) {
	if len(args) != 2 {
		return nil, argErr("get expects 2 arguments, got %d", len(args))
	}
	mem, ok := args[0].(Iterable)
	if !ok {
		return nil, argErr("get() requires a buffer as its first argument")
	}
	offset, ok := args[1].(int64)
	if !ok {
		return nil, argErr("get() takes only integer offsets")
	}
	items := mem.Items()
	if offset < 0 || int(offset) >= len(items) {
		return int64(-1), nil
	}
	return items[offset], nil
}

// memSet writes value into mem[offset] in place when mem is a List,
// returning 0 on success or -1 when the offset is out of range or the
// value is outside [0,255]. Mirrors stdmem.py's mem_set, treating
// malloc'd buffers as byte buffers the way the original does.
func memSet(args []eval.Value) (eval.Value, error) {
	if len(args) != 3 {
		return nil, argErr("set expects 3 arguments, got %d", len(args))
	}
	mem, ok := args[0].(List)
	if !ok {
		return nil, argErr("set() requires a mutable buffer as its first argument")
	}
	offset, offOK := args[1].(int64)
	value, valOK := args[2].(int64)
	if !offOK || !valOK {
		return nil, argErr("set() takes only integer offsets and values")
	}
	if offset < 0 || int(offset) >= len(mem) || value < 0 || value > 255 {
		return int64(-1), nil
	}
	mem[offset] = value
	return int64(0), nil
}

// sizeOf backs both "sizeof" and "len": an Iterable's length, or a
// string's length (stdlibrary.py wires "sizeof" straight to Python's
// builtin len, which both lists and strings support).
func sizeOf(args []eval.Value) (eval.Value, error) {
	if len(args) != 1 {
		return nil, argErr("sizeof expects 1 argument, got %d", len(args))
	}
	switch v := args[0].(type) {
	case Iterable:
		return int64(len(v.Items())), nil
	case string:
		return int64(len(v)), nil
	default:
		return nil, argErr("sizeof() requires a buffer or string argument")
	}
}

// mapFn applies fn to each element, returning a fresh List (stdlibrary.py
// wires "map" straight to Python's builtin map).
func mapFn(args []eval.Value) (eval.Value, error) {
	if len(args) != 2 {
		return nil, argErr("map expects 2 arguments, got %d", len(args))
	}
	items, err := itemsOf(args[1], "map")
	if err != nil {
		return nil, err
	}
	out := make(List, len(items))
	for i, v := range items {
		r, cerr := eval.Call(args[0], []eval.Value{v})
		if cerr != nil {
			return nil, cerr
		}
		out[i] = r
	}
	return out, nil
}

// filterFn keeps elements for which fn returns a truthy value (builtin
// filter in stdlibrary.py).
func filterFn(args []eval.Value) (eval.Value, error) {
	if len(args) != 2 {
		return nil, argErr("filter expects 2 arguments, got %d", len(args))
	}
	items, err := itemsOf(args[1], "filter")
	if err != nil {
		return nil, err
	}
	var out List
	for _, v := range items {
		r, cerr := eval.Call(args[0], []eval.Value{v})
		if cerr != nil {
			return nil, cerr
		}
		if truthy(r) {
			out = append(out, v)
		}
	}
	return out, nil
}

// reduceFn folds fn(acc, elem) across the iterable (functools.reduce in
// stdlibrary.py). An explicit initial value is optional, as in Python's
// reduce; without one, the first element seeds the accumulator and an
// empty iterable is an arguments-error rather than Python's TypeError.
func reduceFn(args []eval.Value) (eval.Value, error) {
	if len(args) != 2 && len(args) != 3 {
		return nil, argErr("reduce expects 2 or 3 arguments, got %d", len(args))
	}
	items, err := itemsOf(args[1], "reduce")
	if err != nil {
		return nil, err
	}

	var acc eval.Value
	rest := items
	if len(args) == 3 {
		acc = args[2]
	} else {
		if len(items) == 0 {
			return nil, argErr("reduce() of empty sequence with no initial value")
		}
		acc, rest = items[0], items[1:]
	}

	for _, v := range rest {
		r, cerr := eval.Call(args[0], []eval.Value{acc, v})
		if cerr != nil {
			return nil, cerr
		}
		acc = r
	}
	return acc, nil
}

func itemsOf(v eval.Value, fn string) ([]eval.Value, error) {
	it, ok := v.(Iterable)
	if !ok {
		return nil, argErr("%s() requires an iterable as its last argument", fn)
	}
	return it.Items(), nil
}
