package symplot

import (
	"encoding/json"
	"sort"

	"github.com/pkg/errors"
)

// ============================================================
// MCP Tool Interface
// ============================================================

type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

type ToolResponse struct {
	Result interface{} `json:"result,omitempty"`
	String string      `json:"string,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// toolParams reads typed values out of a request's params. Expressions may
// be given as JSON trees or infix strings, vectors as arrays of expressions
// or as a "(a, b, c)" string.
type toolParams map[string]interface{}

func (p toolParams) expr(key string) (Expr, error) {
	v, ok := p[key]
	if !ok {
		return nil, errors.Errorf("missing param: %s", key)
	}
	switch val := v.(type) {
	case float64:
		return C(val), nil
	case string:
		return Parse(val)
	case map[string]interface{}:
		return FromJSON(val)
	}
	return nil, errors.Errorf("param %s must be a number, expression object or string", key)
}

func (p toolParams) vector(key string) (*Vector, error) {
	v, ok := p[key]
	if !ok {
		return nil, errors.Errorf("missing param: %s", key)
	}
	switch val := v.(type) {
	case string:
		return ParseVector(val)
	case []interface{}:
		elems := make([]Expr, len(val))
		for i, raw := range val {
			e, err := toolParams{"elem": raw}.expr("elem")
			if err != nil {
				return nil, errors.Wrapf(err, "param %s[%d]", key, i)
			}
			elems[i] = e
		}
		return Vec(elems...), nil
	}
	return nil, errors.Errorf("param %s must be an array or string", key)
}

func (p toolParams) str(key string) (string, error) {
	s, ok := p[key].(string)
	if !ok || s == "" {
		return "", errors.Errorf("param %s must be a non-empty string", key)
	}
	return s, nil
}

func (p toolParams) number(key string) (float64, error) {
	f, ok := p[key].(float64)
	if !ok {
		return 0, errors.Errorf("param %s must be a number", key)
	}
	return f, nil
}

func (p toolParams) bindings(key string) (map[string]float64, error) {
	raw, ok := p[key].(map[string]interface{})
	if !ok {
		return nil, errors.Errorf("param %s must be an object of numbers", key)
	}
	out := make(map[string]float64, len(raw))
	for name, v := range raw {
		f, ok := v.(float64)
		if !ok {
			return nil, errors.Errorf("param %s.%s must be a number", key, name)
		}
		out[name] = f
	}
	return out, nil
}

func respond(e Expr) ToolResponse {
	return ToolResponse{Result: e.toJSON(), String: e.String()}
}

func respondVector(v *Vector) ToolResponse {
	elems := make([]map[string]interface{}, v.Dim())
	for i, e := range v.elems {
		elems[i] = e.toJSON()
	}
	return ToolResponse{Result: elems, String: v.String()}
}

func fail(err error) ToolResponse { return ToolResponse{Error: err.Error()} }

type toolHandler func(p toolParams) ToolResponse

var toolHandlers map[string]toolHandler

func init() {
	toolHandlers = map[string]toolHandler{
		"simplify":       toolSimplify,
		"to_string":      toolSimplify,
		"eval":           toolEval,
		"diff":           toolDiff,
		"diffn":          toolDiffN,
		"substitute":     toolSubstitute,
		"free_vars":      toolFreeVars,
		"vector_eval":    toolVectorEval,
		"vector_norm":    toolVectorNorm,
		"vector_diff":    toolVectorDiff,
		"dot":            toolDot,
		"cross":          toolCross,
		"curvature":      toolCurvature,
		"torsion":        toolTorsion,
		"surface_normal": toolSurfaceNormal,
		"tangent_plane":  toolTangentPlane,
		"mcp_spec":       func(toolParams) ToolResponse { return ToolResponse{String: MCPToolSpec()} },
	}
}

// HandleToolCall dispatches a tool request. Failures are reported in
// ToolResponse.Error, never as panics.
func HandleToolCall(req ToolRequest) ToolResponse {
	h, ok := toolHandlers[req.Tool]
	if !ok {
		return ToolResponse{Error: "unknown tool: " + req.Tool}
	}
	return h(toolParams(req.Params))
}

// ToolNames lists the registered tools in sorted order.
func ToolNames() []string {
	names := make([]string, 0, len(toolHandlers))
	for n := range toolHandlers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func toolSimplify(p toolParams) ToolResponse {
	e, err := p.expr("expr")
	if err != nil {
		return fail(err)
	}
	return respond(Simplify(e))
}

func toolEval(p toolParams) ToolResponse {
	e, err := p.expr("expr")
	if err != nil {
		return fail(err)
	}
	at, err := p.bindings("at")
	if err != nil {
		return fail(err)
	}
	v, err := e.Eval(at)
	if err != nil {
		return fail(err)
	}
	return ToolResponse{Result: jsonNumber(v), String: e.String()}
}

func toolDiff(p toolParams) ToolResponse {
	e, err := p.expr("expr")
	if err != nil {
		return fail(err)
	}
	name, err := p.str("var")
	if err != nil {
		return fail(err)
	}
	d, err := e.Diff(name)
	if err != nil {
		return fail(err)
	}
	return respond(d)
}

func toolDiffN(p toolParams) ToolResponse {
	e, err := p.expr("expr")
	if err != nil {
		return fail(err)
	}
	name, err := p.str("var")
	if err != nil {
		return fail(err)
	}
	n, err := p.number("n")
	if err != nil {
		return fail(err)
	}
	if n < 0 || n != float64(int(n)) {
		return fail(errors.New("param n must be a non-negative integer"))
	}
	d, err := DiffN(e, name, int(n))
	if err != nil {
		return fail(err)
	}
	return respond(d)
}

func toolSubstitute(p toolParams) ToolResponse {
	e, err := p.expr("expr")
	if err != nil {
		return fail(err)
	}
	name, err := p.str("var")
	if err != nil {
		return fail(err)
	}
	value, err := p.expr("value")
	if err != nil {
		return fail(err)
	}
	out, err := Subs(e, name, value)
	if err != nil {
		return fail(err)
	}
	return respond(out)
}

func toolFreeVars(p toolParams) ToolResponse {
	e, err := p.expr("expr")
	if err != nil {
		return fail(err)
	}
	vars := e.FreeVars()
	if vars == nil {
		vars = []string{}
	}
	return ToolResponse{Result: map[string]interface{}{"vars": vars, "arity": e.Arity()}, String: e.String()}
}

func toolVectorEval(p toolParams) ToolResponse {
	v, err := p.vector("vector")
	if err != nil {
		return fail(err)
	}
	at, err := p.bindings("at")
	if err != nil {
		return fail(err)
	}
	out, err := v.Eval(at)
	if err != nil {
		return fail(err)
	}
	values := make([]interface{}, len(out))
	for i, x := range out {
		values[i] = jsonNumber(x)
	}
	return ToolResponse{Result: values, String: v.String()}
}

func toolVectorNorm(p toolParams) ToolResponse {
	v, err := p.vector("vector")
	if err != nil {
		return fail(err)
	}
	return respond(v.Norm())
}

func toolVectorDiff(p toolParams) ToolResponse {
	v, err := p.vector("vector")
	if err != nil {
		return fail(err)
	}
	name, err := p.str("var")
	if err != nil {
		return fail(err)
	}
	d, err := v.Diff(name)
	if err != nil {
		return fail(err)
	}
	return respondVector(d)
}

func vectorPair(p toolParams) (*Vector, *Vector, error) {
	a, err := p.vector("a")
	if err != nil {
		return nil, nil, err
	}
	b, err := p.vector("b")
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

func toolDot(p toolParams) ToolResponse {
	a, b, err := vectorPair(p)
	if err != nil {
		return fail(err)
	}
	d, err := a.Dot(b)
	if err != nil {
		return fail(err)
	}
	return respond(d)
}

func toolCross(p toolParams) ToolResponse {
	a, b, err := vectorPair(p)
	if err != nil {
		return fail(err)
	}
	c, err := a.Cross(b)
	if err != nil {
		return fail(err)
	}
	return respondVector(c)
}

func curveParam(p toolParams) (*Curve, error) {
	v, err := p.vector("curve")
	if err != nil {
		return nil, err
	}
	return NewCurve(v)
}

func toolCurvature(p toolParams) ToolResponse {
	c, err := curveParam(p)
	if err != nil {
		return fail(err)
	}
	k, err := c.Curvature()
	if err != nil {
		return fail(err)
	}
	return respond(k)
}

func toolTorsion(p toolParams) ToolResponse {
	c, err := curveParam(p)
	if err != nil {
		return fail(err)
	}
	tau, err := c.Torsion()
	if err != nil {
		return fail(err)
	}
	return respond(tau)
}

func surfaceParam(p toolParams) (*Surface, error) {
	v, err := p.vector("surface")
	if err != nil {
		return nil, err
	}
	return NewSurface(v)
}

func toolSurfaceNormal(p toolParams) ToolResponse {
	s, err := surfaceParam(p)
	if err != nil {
		return fail(err)
	}
	n, err := s.Normal()
	if err != nil {
		return fail(err)
	}
	return respondVector(n)
}

func toolTangentPlane(p toolParams) ToolResponse {
	s, err := surfaceParam(p)
	if err != nil {
		return fail(err)
	}
	u, err := p.number("u")
	if err != nil {
		return fail(err)
	}
	v, err := p.number("v")
	if err != nil {
		return fail(err)
	}
	plane, err := s.TangentPlane(u, v)
	if err != nil {
		return fail(err)
	}
	return respond(plane)
}

// ============================================================
// MCP spec
// ============================================================

func MCPToolSpec() string {
	expr := map[string]string{"expr": "object|string"}
	tools := []map[string]interface{}{
		ts("simplify", "Normalize an expression through the rewrite rules", []string{"expr"}, expr),
		ts("to_string", "Render an expression in infix form", []string{"expr"}, expr),
		ts("eval", "Evaluate at a point. at={name: number}", []string{"expr", "at"}, map[string]string{"expr": "object|string", "at": "object"}),
		ts("diff", "Symbolic derivative d/dvar", []string{"expr", "var"}, map[string]string{"expr": "object|string", "var": "string"}),
		ts("diffn", "nth derivative. Requires n (int)", []string{"expr", "var", "n"}, map[string]string{"expr": "object|string", "var": "string", "n": "integer"}),
		ts("substitute", "Substitute var with value", []string{"expr", "var", "value"}, map[string]string{"expr": "object|string", "var": "string", "value": "object|string"}),
		ts("free_vars", "Free variable names and arity", []string{"expr"}, expr),
		ts("vector_eval", "Evaluate a vector at a point", []string{"vector", "at"}, map[string]string{"vector": "array|string", "at": "object"}),
		ts("vector_norm", "Euclidean norm sqrt(v·v)", []string{"vector"}, map[string]string{"vector": "array|string"}),
		ts("vector_diff", "Component-wise derivative", []string{"vector", "var"}, map[string]string{"vector": "array|string", "var": "string"}),
		ts("dot", "Dot product a·b", []string{"a", "b"}, map[string]string{"a": "array|string", "b": "array|string"}),
		ts("cross", "Cross product a×b of 3-vectors", []string{"a", "b"}, map[string]string{"a": "array|string", "b": "array|string"}),
		ts("curvature", "Curvature of a parametric curve", []string{"curve"}, map[string]string{"curve": "array|string"}),
		ts("torsion", "Torsion of a parametric space curve", []string{"curve"}, map[string]string{"curve": "array|string"}),
		ts("surface_normal", "Normal r_u×r_v of a parametric surface", []string{"surface"}, map[string]string{"surface": "array|string"}),
		ts("tangent_plane", "Implicit tangent plane at (u, v)", []string{"surface", "u", "v"}, map[string]string{"surface": "array|string", "u": "number", "v": "number"}),
		ts("mcp_spec", "Return this tool schema", []string{}, map[string]string{}),
	}
	spec := map[string]interface{}{"tools": tools}
	b, _ := json.MarshalIndent(spec, "", "  ")
	return string(b)
}

func ts(name, description string, required []string, props map[string]string) map[string]interface{} {
	properties := map[string]interface{}{}
	for k, typ := range props {
		properties[k] = map[string]interface{}{"type": typ}
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
