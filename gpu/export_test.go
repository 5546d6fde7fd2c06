package gpu

// NewCommandUnchecked builds a command without NewCommand's validation so
// tests can reach the execute-time error paths.
func NewCommandUnchecked(attrs []AttributeBinding, uniforms []UniformBinding, prim Primitive, count int) *Command {
	return &Command{attrs: attrs, uniforms: uniforms, prim: prim, count: count}
}
