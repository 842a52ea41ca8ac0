package eval

import (
	"math"

	"github.com/flrdv/pycalc/calc/token"
)

// applyUnary implements the UN_POS/UN_NEG executors (operator.pos/
// operator.neg in the original's unary_executors table).
func applyUnary(typ token.Type, v Value, pos token.Pos) (Value, *token.CalcError) {
	if i, ok := v.(int64); ok {
		if typ == token.UN_NEG {
			return -i, nil
		}
		return i, nil
	}
	if f, ok := v.(float64); ok {
		if typ == token.UN_NEG {
			return -f, nil
		}
		return f, nil
	}
	return nil, token.NewError(token.ArgumentsError, pos, "unary %s requires a numeric operand", typ)
}

// applyBinary implements the executors table: arithmetic promotes to
// float when either operand already is one, bitwise/shift operators
// require both operands to already be integers, and comparisons fold to
// an int64 0/1 rather than a separate boolean type.
func applyBinary(typ token.Type, left, right Value, pos token.Pos) (Value, *token.CalcError) {
	switch typ {
	case token.OP_ADD:
		if ls, ok := left.(string); ok {
			rs, ok2 := right.(string)
			if !ok2 {
				return nil, token.NewError(token.ArgumentsError, pos, "cannot add a string and a non-string")
			}
			return ls + rs, nil
		}
		return numericBinary(typ, left, right, pos)
	case token.OP_SUB, token.OP_MUL, token.OP_MOD, token.OP_POW:
		return numericBinary(typ, left, right, pos)
	case token.OP_DIV:
		lf, lok := toFloat(left)
		rf, rok := toFloat(right)
		if !lok || !rok {
			return nil, token.NewError(token.ArgumentsError, pos, "/ requires numeric operands")
		}
		if rf == 0 {
			return nil, token.NewError(token.ArgumentsError, pos, "division by zero")
		}
		return lf / rf, nil
	case token.OP_FLOORDIV:
		return floorDiv(left, right, pos)
	case token.OP_LSHIFT, token.OP_RSHIFT, token.OP_BITAND, token.OP_BITOR, token.OP_BITXOR:
		li, lok := left.(int64)
		ri, rok := right.(int64)
		if !lok || !rok {
			return nil, token.NewError(token.ArgumentsError, pos, "%s requires integer operands", typ)
		}
		return intBitwise(typ, li, ri), nil
	case token.OP_EQEQ, token.OP_NOTEQ, token.OP_GT, token.OP_GE, token.OP_LT, token.OP_LE:
		return compare(typ, left, right, pos)
	}
	return nil, token.NewError(token.UnknownToken, pos, "unknown binary operator %s", typ)
}

func numericBinary(typ token.Type, left, right Value, pos token.Pos) (Value, *token.CalcError) {
	if li, liok := left.(int64); liok {
		if ri, riok := right.(int64); riok {
			switch typ {
			case token.OP_ADD:
				return li + ri, nil
			case token.OP_SUB:
				return li - ri, nil
			case token.OP_MUL:
				return li * ri, nil
			case token.OP_MOD:
				if ri == 0 {
					return nil, token.NewError(token.ArgumentsError, pos, "modulo by zero")
				}
				return li % ri, nil
			case token.OP_POW:
				return intPow(li, ri), nil
			}
		}
	}
	lf, lok := toFloat(left)
	rf, rok := toFloat(right)
	if !lok || !rok {
		return nil, token.NewError(token.ArgumentsError, pos, "%s requires numeric operands", typ)
	}
	switch typ {
	case token.OP_ADD:
		return lf + rf, nil
	case token.OP_SUB:
		return lf - rf, nil
	case token.OP_MUL:
		return lf * rf, nil
	case token.OP_MOD:
		return math.Mod(lf, rf), nil
	case token.OP_POW:
		return math.Pow(lf, rf), nil
	}
	return nil, token.NewError(token.UnknownToken, pos, "unreachable operator %s", typ)
}

// intPow mirrors Python's int**int staying an int for a non-negative
// exponent and promoting to float for a negative one.
func intPow(base, exp int64) Value {
	if exp < 0 {
		return math.Pow(float64(base), float64(exp))
	}
	result := int64(1)
	for i := int64(0); i < exp; i++ {
		result *= base
	}
	return result
}

func floorDiv(left, right Value, pos token.Pos) (Value, *token.CalcError) {
	if li, liok := left.(int64); liok {
		if ri, riok := right.(int64); riok {
			if ri == 0 {
				return nil, token.NewError(token.ArgumentsError, pos, "floor division by zero")
			}
			q := li / ri
			if li%ri != 0 && (li < 0) != (ri < 0) {
				q--
			}
			return q, nil
		}
	}
	lf, lok := toFloat(left)
	rf, rok := toFloat(right)
	if !lok || !rok {
		return nil, token.NewError(token.ArgumentsError, pos, "// requires numeric operands")
	}
	if rf == 0 {
		return nil, token.NewError(token.ArgumentsError, pos, "floor division by zero")
	}
	return math.Floor(lf / rf), nil
}

func intBitwise(typ token.Type, l, r int64) Value {
	switch typ {
	case token.OP_LSHIFT:
		return l << uint(r)
	case token.OP_RSHIFT:
		return l >> uint(r)
	case token.OP_BITAND:
		return l & r
	case token.OP_BITOR:
		return l | r
	case token.OP_BITXOR:
		return l ^ r
	}
	return int64(0)
}

func compare(typ token.Type, left, right Value, pos token.Pos) (Value, *token.CalcError) {
	if ls, ok := left.(string); ok {
		rs, ok2 := right.(string)
		if !ok2 {
			return nil, token.NewError(token.ArgumentsError, pos, "cannot compare a string with a non-string")
		}
		return boolToInt(stringCompare(typ, ls, rs)), nil
	}
	lf, lok := toFloat(left)
	rf, rok := toFloat(right)
	if !lok || !rok {
		return nil, token.NewError(token.ArgumentsError, pos, "cannot compare values of these types")
	}
	switch typ {
	case token.OP_EQEQ:
		return boolToInt(lf == rf), nil
	case token.OP_NOTEQ:
		return boolToInt(lf != rf), nil
	case token.OP_GT:
		return boolToInt(lf > rf), nil
	case token.OP_GE:
		return boolToInt(lf >= rf), nil
	case token.OP_LT:
		return boolToInt(lf < rf), nil
	case token.OP_LE:
		return boolToInt(lf <= rf), nil
	}
	return nil, token.NewError(token.UnknownToken, pos, "unknown comparison operator %s", typ)
}

func stringCompare(typ token.Type, l, r string) bool {
	switch typ {
	case token.OP_EQEQ:
		return l == r
	case token.OP_NOTEQ:
		return l != r
	case token.OP_GT:
		return l > r
	case token.OP_GE:
		return l >= r
	case token.OP_LT:
		return l < r
	case token.OP_LE:
		return l <= r
	}
	return false
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func toFloat(v Value) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
