package symbolic

import (
	"strings"
)

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// act is the operation to perform when this operator is selected.
	act action
}

// binop gets a binary operator for a token string. If there is no such binary
// operator, then the result has an act of actNone.
func binop(text string) operator {
	switch text {
	case ",":
		return operator{1, false, actComma}
	case ":=":
		return operator{2, true, actDefine}
	case "=":
		return operator{3, false, actEq}
	case "==", "<", "<=", ">", ">=":
		return operator{4, false, cmpop(text)}
	case "+":
		return operator{5, false, actAdd}
	case "-":
		return operator{5, false, actSub}
	case "*", "×":
		return operator{6, false, actMul}
	case "/", "÷":
		return operator{6, false, actDiv}
	case "%":
		return operator{6, false, actMod}
	case "^", "**":
		return operator{9, true, actPow}
	default:
		return operator{}
	}
}

func cmpop(text string) action {
	switch text {
	case "==":
		return actEqual
	case "<":
		return actLess
	case "<=":
		return actLessEq
	case ">":
		return actGreater
	default:
		return actGreaterEq
	}
}

// unop gets a prefix operator for a token string. If there is no such prefix
// operator, then the result has an act of actNone.
func unop(text string) operator {
	switch text {
	case "+":
		return operator{7, true, actPos}
	case "-":
		return operator{7, true, actNeg}
	default:
		return operator{}
	}
}

// postop gets a postfix operator for a token string. If there is no such
// postfix operator, then the result has an act of actNone.
func postop(text string) operator {
	switch text {
	case "!":
		return operator{10, false, actFact}
	case "!!":
		return operator{10, false, actDfact}
	default:
		return operator{}
	}
}

// stepKind is the type of an RPN step.
type stepKind int8

const (
	// stepNum pushes a number.
	stepNum stepKind = iota + 1
	// stepName pushes the value of a name.
	stepName
	// stepScope pushes the value of a bracketed program.
	stepScope
	// stepCall pushes the result of a function applied to its argument
	// program.
	stepCall
	// stepUnary pops one value and pushes the result of an operation on it.
	stepUnary
	// stepBinary pops two values and pushes the result of an operation on
	// them.
	stepBinary
)

type step struct {
	kind stepKind
	text string
	pos  int
	act  action
	// sub is the program index of a scope or call's arguments.
	sub int
}

// rpnScope is a converted scope: its steps in postfix order.
type rpnScope struct {
	open  string
	pos   int
	steps []step
}

// program holds every converted scope. The root is scopes[0], and scope
// indices match those of the tree it was converted from.
type program struct {
	scopes []rpnScope
}

func (p *program) String() string {
	var b strings.Builder
	p.fmt(&b, 0)
	return b.String()
}

func (p *program) fmt(b *strings.Builder, k int) {
	for i, s := range p.scopes[k].steps {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch s.kind {
		case stepScope:
			b.WriteString(p.scopes[s.sub].open)
			p.fmt(b, s.sub)
			b.WriteString(closeFor(p.scopes[s.sub].open))
		case stepCall:
			b.WriteString(s.text)
			b.WriteByte('(')
			p.fmt(b, s.sub)
			b.WriteByte(')')
		case stepUnary:
			if s.act == actNeg || s.act == actPos {
				b.WriteString(s.text + "u")
				continue
			}
			b.WriteString(s.text)
		default:
			b.WriteString(s.text)
		}
	}
}

func closeFor(open string) string {
	if k := strings.Index(OpenBrackets, open); k >= 0 {
		return CloseBrackets[k : k+1]
	}
	return open
}

// convert translates every scope of t to postfix order.
func convert(t *tree) (*program, error) {
	p := &program{scopes: make([]rpnScope, len(t.scopes))}
	for k := range t.scopes {
		s, err := convertScope(&t.scopes[k])
		if err != nil {
			return nil, err
		}
		p.scopes[k] = s
	}
	return p, nil
}

// convertScope runs the shunting-yard algorithm over one scope. Nested scopes
// appear as single operands.
func convertScope(s *scope) (rpnScope, error) {
	r := rpnScope{open: s.open.text, pos: s.open.pos}
	type pending struct {
		operator
		step
	}
	var stack []pending
	// operand is true where the next item must be an operand or a prefix
	// operator.
	operand := true
	for _, it := range s.items {
		switch it.kind {
		case itemNum, itemName, itemScope, itemCall:
			if !operand {
				return r, &MalformedError{Col: it.tok.pos, Text: it.tok.text}
			}
			st := step{text: it.tok.text, pos: it.tok.pos, sub: it.scope}
			switch it.kind {
			case itemNum:
				st.kind = stepNum
			case itemName:
				st.kind = stepName
			case itemScope:
				st.kind = stepScope
			case itemCall:
				st.kind = stepCall
			}
			r.steps = append(r.steps, st)
			operand = false
		case itemOp:
			text := it.tok.text
			st := step{text: text, pos: it.tok.pos}
			if operand {
				op := unop(text)
				if op.act == actNone {
					return r, &OperatorError{Col: it.tok.pos, Operator: text, Unary: true}
				}
				st.kind, st.act = stepUnary, op.act
				stack = append(stack, pending{op, st})
				continue
			}
			if op := postop(text); op.act != actNone {
				st.kind, st.act = stepUnary, op.act
				r.steps = append(r.steps, st)
				continue
			}
			op := binop(text)
			if op.act == actNone {
				return r, &OperatorError{Col: it.tok.pos, Operator: text}
			}
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				if top.prec < op.prec || (top.prec == op.prec && op.right) {
					break
				}
				r.steps = append(r.steps, top.step)
				stack = stack[:len(stack)-1]
			}
			st.kind, st.act = stepBinary, op.act
			stack = append(stack, pending{op, st})
			operand = true
		}
	}
	if operand && len(s.items) > 0 {
		last := s.items[len(s.items)-1]
		return r, &EmptyExpressionError{Col: last.tok.pos, End: last.tok.text}
	}
	for len(stack) > 0 {
		r.steps = append(r.steps, stack[len(stack)-1].step)
		stack = stack[:len(stack)-1]
	}
	return r, nil
}
