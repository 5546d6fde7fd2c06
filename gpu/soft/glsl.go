package soft

import (
	"fmt"
	"regexp"
	"strings"

	"dash/gpu"
)

type qualifier uint8

const (
	qualAttribute qualifier = iota
	qualUniform
	qualVarying
)

func (q qualifier) String() string {
	switch q {
	case qualAttribute:
		return "attribute"
	case qualUniform:
		return "uniform"
	default:
		return "varying"
	}
}

// decl is one global attribute, uniform or varying declaration.
type decl struct {
	qual qualifier
	typ  string
	name string
	line int
}

// components returns the vector width of a scalar or vector type.
func (d decl) components() int {
	switch d.typ {
	case "float", "int", "bool", "sampler2D", "samplerCube":
		return 1
	case "vec2", "ivec2", "bvec2", "mat2":
		return 2
	case "vec3", "ivec3", "bvec3", "mat3":
		return 3
	default:
		return 4
	}
}

var glslTypes = map[string]bool{
	"float": true, "vec2": true, "vec3": true, "vec4": true,
	"int": true, "ivec2": true, "ivec3": true, "ivec4": true,
	"bool": true, "bvec2": true, "bvec3": true, "bvec4": true,
	"mat2": true, "mat3": true, "mat4": true,
	"sampler2D": true, "samplerCube": true,
}

var (
	declRE = regexp.MustCompile(`^(attribute|uniform|varying)\s+(?:(?:lowp|mediump|highp)\s+)?(\w+)\s+([^;]+)$`)
	mainRE = regexp.MustCompile(`\bvoid\s+main\s*\(\s*(?:void)?\s*\)\s*\{`)
	nameRE = regexp.MustCompile(`^([A-Za-z_]\w*)\s*(?:\[\s*\d+\s*\])?$`)
)

// shaderInfo is the result of compiling one shader.
type shaderInfo struct {
	decls []decl
	log   string
}

func (s shaderInfo) ok() bool { return s.log == "" }

// compileGLSL checks the structure of src and collects its global
// declarations. Failures are reported in a GLSL-style info log.
func compileGLSL(kind gpu.ShaderKind, src string) shaderInfo {
	var errs []string
	fail := func(line int, format string, args ...any) {
		errs = append(errs, fmt.Sprintf("ERROR: 0:%d: %s", line, fmt.Sprintf(format, args...)))
	}

	code := stripComments(src)
	if strings.TrimSpace(code) == "" {
		fail(0, "empty shader")
		return shaderInfo{log: strings.Join(errs, "\n")}
	}

	depth, paren := 0, 0
	line := 1
	var stmt strings.Builder
	stmtLine := 1
	var decls []decl
	seen := map[string]bool{}

	for _, r := range code {
		switch r {
		case '\n':
			line++
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				fail(line, "'}' : unexpected closing brace")
				depth = 0
			}
		case '(':
			paren++
		case ')':
			paren--
			if paren < 0 {
				fail(line, "')' : unexpected closing parenthesis")
				paren = 0
			}
		}

		if depth > 0 || r == '}' {
			stmt.Reset()
			continue
		}
		if r == ';' {
			s := strings.Join(strings.Fields(stmt.String()), " ")
			stmt.Reset()
			d, err := parseDecl(s, stmtLine)
			if err != "" {
				fail(stmtLine, "%s", err)
				continue
			}
			for _, dd := range d {
				if kind == gpu.FragmentShader && dd.qual == qualAttribute {
					fail(dd.line, "'attribute' : supported in vertex shaders only")
					continue
				}
				if seen[dd.name] {
					fail(dd.line, "'%s' : redefinition", dd.name)
					continue
				}
				seen[dd.name] = true
				decls = append(decls, dd)
			}
			continue
		}
		if stmt.Len() == 0 {
			if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
				continue
			}
			stmtLine = line
		}
		stmt.WriteRune(r)
	}

	if depth != 0 {
		fail(line, "'' : unexpected end of file, missing '}'")
	}
	if paren != 0 {
		fail(line, "'' : unbalanced parentheses")
	}
	if !mainRE.MatchString(code) {
		fail(line, "'main' : function not defined")
	}
	return shaderInfo{decls: decls, log: strings.Join(errs, "\n")}
}

// parseDecl parses a top-level statement. Statements that are not storage
// declarations (precision, const, functions) yield nothing.
func parseDecl(s string, line int) ([]decl, string) {
	m := declRE.FindStringSubmatch(s)
	if m == nil {
		for _, q := range []string{"attribute ", "uniform ", "varying "} {
			if strings.HasPrefix(s, q) {
				return nil, fmt.Sprintf("'%s' : syntax error", strings.TrimSpace(q))
			}
		}
		return nil, ""
	}
	var q qualifier
	switch m[1] {
	case "attribute":
		q = qualAttribute
	case "uniform":
		q = qualUniform
	default:
		q = qualVarying
	}
	typ := m[2]
	if !glslTypes[typ] {
		return nil, fmt.Sprintf("'%s' : unknown type", typ)
	}
	if q == qualAttribute && (strings.HasPrefix(typ, "sampler") || strings.HasPrefix(typ, "i") || strings.HasPrefix(typ, "b")) {
		return nil, fmt.Sprintf("'%s' : cannot be an attribute", typ)
	}
	var out []decl
	for _, n := range strings.Split(m[3], ",") {
		nm := nameRE.FindStringSubmatch(strings.TrimSpace(n))
		if nm == nil {
			return nil, fmt.Sprintf("'%s' : syntax error", strings.TrimSpace(n))
		}
		out = append(out, decl{qual: q, typ: typ, name: nm[1], line: line})
	}
	return out, ""
}

// stripComments replaces comments with spaces, keeping line breaks so
// reported line numbers stay correct.
func stripComments(src string) string {
	var b strings.Builder
	b.Grow(len(src))
	for i := 0; i < len(src); i++ {
		if i+1 < len(src) && src[i] == '/' && src[i+1] == '/' {
			for i < len(src) && src[i] != '\n' {
				i++
			}
			if i < len(src) {
				b.WriteByte('\n')
			}
			continue
		}
		if i+1 < len(src) && src[i] == '/' && src[i+1] == '*' {
			i += 2
			for i < len(src) && !(src[i] == '*' && i+1 < len(src) && src[i+1] == '/') {
				if src[i] == '\n' {
					b.WriteByte('\n')
				}
				i++
			}
			i++
			b.WriteByte(' ')
			continue
		}
		b.WriteByte(src[i])
	}
	return b.String()
}
