package std

import "github.com/flrdv/pycalc/calc/eval"

// ifFn backs both "if" and "cond" (original_source/pycalc/std/stdstatements.py
// lists them as separate names resolving to the same branch behavior).
// Every call argument reaches a host function already evaluated (spec
// §4.9's call-token action pops already-evaluated operands), so a branch
// written as a bare expression — "if(n<=1, 1, n*fact(n-1))" — would
// compute n*fact(n-1) unconditionally, recursing forever. stdstatements.py
// sidesteps exactly this by taking if_cb/else_cb as zero-argument
// Callables it only invokes once it knows which branch won; a branch
// given here as a closure gets the same treatment (invoked only if it's
// the one selected), while a branch given as a plain value — a literal,
// or any already-computed expression — is returned as-is, since forcing
// every literal branch into "()=1" would be needless ceremony for the
// common case. A 2-argument form omits the else branch, returning 0 when
// the condition is false.
func ifFn(args []eval.Value) (eval.Value, error) {
	if len(args) != 2 && len(args) != 3 {
		return nil, argErr("if expects 2 or 3 arguments, got %d", len(args))
	}
	if truthy(args[0]) {
		return resolveBranch(args[1])
	}
	if len(args) == 3 {
		return resolveBranch(args[2])
	}
	return int64(0), nil
}

// resolveBranch invokes v if it's callable (a recursive branch written as
// a zero-arg lambda), otherwise returns it unchanged.
func resolveBranch(v eval.Value) (eval.Value, error) {
	switch v.(type) {
	case eval.GoFunc, *eval.Closure:
		r, err := eval.Call(v, nil)
		if err != nil {
			return nil, err
		}
		return r, nil
	default:
		return v, nil
	}
}

// whileFn repeatedly calls cond and, while it's truthy, body — both of
// which must be zero-argument closures the calling program constructs
// explicitly (e.g. "while(()=n>0, ()=n=n-1)"), so the condition really is
// re-evaluated each iteration despite this evaluator's eager call
// arguments. Mirrors stdstatements.py's while_.
func whileFn(args []eval.Value) (eval.Value, error) {
	if len(args) != 2 {
		return nil, argErr("while expects 2 arguments, got %d", len(args))
	}
	cond, body := args[0], args[1]
	for {
		cv, err := eval.Call(cond, nil)
		if err != nil {
			return nil, err
		}
		if !truthy(cv) {
			break
		}
		if _, err := eval.Call(body, nil); err != nil {
			return nil, err
		}
	}
	return int64(0), nil
}
