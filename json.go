package symplot

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/pkg/errors"
)

// ============================================================
// JSON Serialization
// ============================================================

func (c *Const) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "const", "value": jsonNumber(c.val)}
}

// jsonNumber spells NaN and ±Inf as strings, which encoding/json rejects as
// numbers.
func jsonNumber(v float64) interface{} {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return v
}

func (v *Var) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "var", "name": v.name}
}

func (u *Unary) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "unary", "op": u.op.String(), "arg": u.arg.toJSON()}
}

func (b *Binary) toJSON() map[string]interface{} {
	return map[string]interface{}{
		"type":  "binary",
		"op":    b.op.String(),
		"left":  b.left.toJSON(),
		"right": b.right.toJSON(),
	}
}

// JSONTree returns the generic JSON object form of e.
func JSONTree(e Expr) map[string]interface{} { return e.toJSON() }

func ToJSON(e Expr) (string, error) {
	b, err := json.Marshal(e.toJSON())
	return string(b), err
}

// FromJSON rebuilds an expression from its JSON object form. The tree is
// reconstructed through the operator constructors, so the result is normal
// even if the input was not.
func FromJSON(data map[string]interface{}) (Expr, error) {
	var decodeErr error
	e, err := Guard(func() Expr {
		e, err := fromJSON(data)
		decodeErr = err
		return e
	})
	if err != nil {
		return nil, err
	}
	return e, decodeErr
}

func fromJSON(data map[string]interface{}) (Expr, error) {
	if data == nil {
		return nil, errors.New("expression must be an object")
	}
	typ, ok := data["type"].(string)
	if !ok || typ == "" {
		return nil, errors.New("field 'type' must be a non-empty string")
	}
	sub := func(field string) (Expr, error) {
		m, ok := data[field].(map[string]interface{})
		if !ok {
			return nil, errors.Errorf("%s: %q must be an expression object", typ, field)
		}
		e, err := fromJSON(m)
		return e, errors.Wrapf(err, "%s.%s", typ, field)
	}
	op := func() (Op, error) {
		name, _ := data["op"].(string)
		o, ok := opByName(name)
		if !ok {
			return 0, errors.Errorf("%s: unknown op %q", typ, name)
		}
		return o, nil
	}

	switch typ {
	case "const":
		switch v := data["value"].(type) {
		case float64:
			return C(v), nil
		case string:
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, errors.Wrap(err, "const")
			}
			return C(f), nil
		}
		return nil, errors.New("const: 'value' must be a number")
	case "var":
		name, ok := data["name"].(string)
		if !ok || name == "" {
			return nil, errors.New("var: 'name' must be a non-empty string")
		}
		return V(name), nil
	case "unary":
		o, err := op()
		if err != nil {
			return nil, err
		}
		if !o.IsUnary() {
			return nil, errors.Errorf("unary: %q is a binary operator", o)
		}
		arg, err := sub("arg")
		if err != nil {
			return nil, err
		}
		return unary(o, Simplify(arg)), nil
	case "binary":
		o, err := op()
		if err != nil {
			return nil, err
		}
		if o.IsUnary() {
			return nil, errors.Errorf("binary: %q is a unary operator", o)
		}
		l, err := sub("left")
		if err != nil {
			return nil, err
		}
		r, err := sub("right")
		if err != nil {
			return nil, err
		}
		return binary(o, Simplify(l), Simplify(r)), nil
	}
	return nil, errors.Errorf("unknown expression type %q", typ)
}
