package eval

import (
	"github.com/flrdv/pycalc/calc/token"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type operandStack struct {
	values []Value
	pos    []token.Pos
}

func (s *operandStack) push(v Value, pos token.Pos) {
	s.values = append(s.values, v)
	s.pos = append(s.pos, pos)
}

func (s *operandStack) pop() (Value, token.Pos) {
	n := len(s.values)
	v, pos := s.values[n-1], s.pos[n-1]
	s.values = s.values[:n-1]
	s.pos = s.pos[:n-1]
	return v, pos
}

func (s *operandStack) len() int { return len(s.values) }

// Eval runs a postfix Stack against an operand stack and the given
// namespace stack, returning the value of its last top-level statement
// (spec §4.9). A semicolon pops and discards exactly one value; whatever
// is left after the last one becomes the result once the stream ends.
func Eval(stack token.Stack, namespaces *NamespaceStack) (Value, *token.CalcError) {
	var ops operandStack
	var lastStatement Value

	for _, tok := range stack {
		switch {
		case tok.Kind == token.KindNumber || tok.Kind == token.KindString:
			ops.push(tok.Value, tok.Pos)

		case tok.Type == token.ATTR:
			ops.push(tok.Value, tok.Pos)

		case tok.Kind == token.KindLiteral && tok.Type == token.VAR:
			name, _ := tok.Value.(string)
			v, ok := namespaces.Get(name)
			if !ok {
				return nil, token.NewError(token.NameNotFound, tok.Pos, "name not found: %s", name)
			}
			ops.push(v, tok.Pos)

		case tok.Kind == token.KindLiteral && tok.Type == token.DECLTARGET:
			// Carried as a bare name string; '=' below unpacks it.
			name, _ := tok.Value.(string)
			ops.push(name, tok.Pos)

		case tok.Kind == token.KindUnaryOperator:
			if ops.len() < 1 {
				return nil, token.NewError(token.InvalidSyntax, tok.Pos, "missing operand for %s", tok.Type)
			}
			operand, _ := ops.pop()
			v, err := applyUnary(tok.Type, operand, tok.Pos)
			if err != nil {
				return nil, err
			}
			ops.push(v, tok.Pos)

		case tok.Type == token.OP_SEMICOLON:
			if ops.len() != 1 {
				return nil, token.NewError(token.InvalidSyntax, tok.Pos, "multiple values left in stack")
			}
			v, _ := ops.pop()
			lastStatement = v

		case tok.Type == token.OP_EQ:
			if ops.len() < 2 {
				return nil, token.NewError(token.InvalidSyntax, tok.Pos, "missing operand for =")
			}
			right, _ := ops.pop()
			leftVal, leftPos := ops.pop()
			name, ok := leftVal.(string)
			if !ok {
				return nil, token.NewError(token.InvalidSyntax, leftPos, "cannot assign: left side is not a declaration target")
			}
			namespaces.Set(name, right)
			ops.push(right, tok.Pos)

		case tok.Type == token.OP_DOT:
			if ops.len() < 2 {
				return nil, token.NewError(token.InvalidSyntax, tok.Pos, "missing operand for .")
			}
			attrVal, _ := ops.pop()
			attrName, _ := attrVal.(string)
			left, leftPos := ops.pop()
			host, ok := left.(HostObject)
			if !ok {
				return nil, token.NewError(token.ArgumentsError, leftPos, "value has no attribute %q", attrName)
			}
			v, err := host.Attr(attrName)
			if err != nil {
				return nil, token.NewError(token.ArgumentsError, tok.Pos, "%s", err)
			}
			ops.push(v, tok.Pos)

		case tok.Kind == token.KindOperator:
			if ops.len() < 2 {
				return nil, token.NewError(token.InvalidSyntax, tok.Pos, "missing operand for %s", tok.Type)
			}
			right, _ := ops.pop()
			left, leftPos := ops.pop()
			v, err := applyBinary(tok.Type, left, right, leftPos)
			if err != nil {
				return nil, err
			}
			ops.push(v, tok.Pos)

		case tok.Type == token.FUNCCALL:
			v, err := evalCall(tok, &ops, namespaces)
			if err != nil {
				return nil, err
			}
			ops.push(v, tok.Pos)

		case tok.Type == token.FUNCDEF:
			closure := spawnClosure(tok, namespaces)
			ops.push(closure, tok.Pos)

		default:
			return nil, token.NewError(token.UnknownToken, tok.Pos, "unknown token: %s(%v)", tok.Type, tok.Value)
		}
	}

	switch ops.len() {
	case 0:
		return lastStatement, nil
	case 1:
		v, _ := ops.pop()
		return v, nil
	default:
		_, pos := ops.pop()
		return nil, token.NewError(token.InvalidSyntax, pos, "multiple values left in stack")
	}
}

func evalCall(tok token.Token, ops *operandStack, namespaces *NamespaceStack) (Value, *token.CalcError) {
	desc, _ := tok.Value.(*token.CallDescriptor)
	callee, ok := namespaces.Get(desc.Name)
	if !ok {
		return nil, token.NewError(token.NameNotFound, tok.Pos, "name not found: %s", desc.Name)
	}
	if ops.len() < desc.ArgCount {
		return nil, token.NewError(token.InvalidSyntax, tok.Pos, "missing arguments for call to %s", desc.Name)
	}
	args := make([]Value, desc.ArgCount)
	for i := desc.ArgCount - 1; i >= 0; i-- {
		args[i], _ = ops.pop()
	}

	logrus.WithField("callee", desc.Name).WithField("argc", desc.ArgCount).Trace("evaluator: calling")

	return invoke(callee, args, desc.Name, tok.Pos)
}

func invoke(callee Value, args []Value, name string, pos token.Pos) (Value, *token.CalcError) {
	switch fn := callee.(type) {
	case GoFunc:
		v, err := fn(args)
		if err != nil {
			if cerr, ok := token.AsCalcError(err); ok {
				if !cerr.Pos.IsValid() {
					// A host function has no source position of its own;
					// report its error at the call site.
					withPos := *cerr
					withPos.Pos = pos
					return nil, &withPos
				}
				return nil, cerr
			}
			return nil, token.NewError(token.ExternalFunctionError, pos, "%s: %s", name, errors.Cause(err))
		}
		return v, nil
	case *Closure:
		return invokeClosure(fn, args, pos)
	default:
		return nil, token.NewError(token.ArgumentsError, pos, "%s is not callable", name)
	}
}

func invokeClosure(c *Closure, args []Value, pos token.Pos) (Value, *token.CalcError) {
	if len(c.Params) == 0 && len(args) > 0 {
		return nil, token.NewError(token.ArgumentsError, pos, "%s takes no arguments", c)
	}
	if len(c.Params) != len(args) {
		return nil, token.NewError(token.ArgumentsError, pos, "%s expected %d arguments, got %d", c, len(c.Params), len(args))
	}

	frame := make(Namespace, len(c.Params))
	for i, name := range c.Params {
		frame[name] = args[i]
	}

	// A fresh copy of the captured environment plus a fresh frame per
	// activation: recursive calls never share a frame, and the frame is
	// gone (garbage) the moment this call returns, on every exit path.
	env := c.Env.Copy()
	env.Push(frame)

	return Eval(c.Body, &env)
}

// Call invokes a callable Value (a GoFunc or a *Closure) with already
// evaluated arguments. It's the same dispatch Eval uses for a FUNCCALL
// token, exported so a host function (calc/std's while/map/filter/reduce)
// can invoke a closure passed to it as an argument without reaching into
// the evaluator's internals.
func Call(callee Value, args []Value) (Value, *token.CalcError) {
	return invoke(callee, args, "<callback>", 0)
}

func spawnClosure(tok token.Token, namespaces *NamespaceStack) *Closure {
	def, _ := tok.Value.(*token.FuncDef)
	closure := &Closure{
		Name:   def.Name,
		Params: def.Params,
		Body:   token.Stack(def.Body),
		Env:    namespaces.Copy(),
	}
	if def.Name != "" {
		namespaces.Set(def.Name, closure)
	}
	return closure
}
