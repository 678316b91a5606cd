package nfa

import (
	"fmt"
)

// CompilerConfig configures pattern compilation
type CompilerConfig struct {
	// MaxRecursionDepth limits group nesting to prevent stack overflow.
	// Default: 100
	MaxRecursionDepth int
}

// DefaultCompilerConfig returns a compiler configuration with sensible defaults
func DefaultCompilerConfig() CompilerConfig {
	return CompilerConfig{
		MaxRecursionDepth: 100,
	}
}

// Compiler turns patterns into Thompson NFAs by recursive descent over
//
//	EXPR     → DISJUNCT ('|' DISJUNCT)*
//	DISJUNCT → FACTOR*
//	FACTOR   → ATOM ('?' | '*' | '+')?
//	ATOM     → '(' EXPR ')' | literal
//
// Every rune other than the five metacharacters ( ) | ? * + is a literal.
// An empty EXPR or DISJUNCT compiles to the empty language.
// The grammar is unambiguous, so each level is a single linear pass with no
// backtracking.
type Compiler struct {
	config CompilerConfig
	alloc  *Allocator

	pattern string
	runes   []rune
	pos     int
	depth   int
}

// NewCompiler creates a compiler drawing states from alloc
func NewCompiler(alloc *Allocator, config CompilerConfig) *Compiler {
	if config.MaxRecursionDepth == 0 {
		config.MaxRecursionDepth = 100
	}
	return &Compiler{
		config: config,
		alloc:  alloc,
	}
}

// Compile parses pattern and builds its NFA.
// Malformed patterns produce a *SyntaxError.
func (c *Compiler) Compile(pattern string) (*NFA, error) {
	if c.alloc == nil {
		return nil, constructionError(AllocatorMismatch, InvalidState, "nil allocator")
	}
	c.pattern = pattern
	c.runes = []rune(pattern)
	c.pos = 0
	c.depth = 0

	n, err := c.expr()
	if err != nil {
		return nil, err
	}
	// disjunct stops on ')' only inside a group, so the whole input is consumed
	if c.pos != len(c.runes) {
		return nil, c.syntaxError(MalformedAtom, c.pos, "unexpected %q", c.runes[c.pos])
	}
	return n, nil
}

func (c *Compiler) expr() (*NFA, error) {
	n, err := c.disjunct()
	if err != nil {
		return nil, err
	}
	for c.pos < len(c.runes) && c.runes[c.pos] == '|' {
		c.pos++
		next, err := c.disjunct()
		if err != nil {
			return nil, err
		}
		if err := n.Union(next); err != nil {
			return nil, err
		}
	}
	return n, nil
}

func (c *Compiler) disjunct() (*NFA, error) {
	var n *NFA
	for c.pos < len(c.runes) {
		r := c.runes[c.pos]
		if r == '|' {
			break
		}
		if r == ')' {
			if c.depth == 0 {
				return nil, c.syntaxError(UnbalancedParen, c.pos, "unexpected ')'")
			}
			break
		}

		f, err := c.factor()
		if err != nil {
			return nil, err
		}
		if n == nil {
			n = f
			continue
		}
		if err := n.Concat(f); err != nil {
			return nil, err
		}
	}
	if n == nil {
		return FromSymbol(c.alloc, Empty)
	}
	return n, nil
}

func (c *Compiler) factor() (*NFA, error) {
	n, err := c.atom()
	if err != nil {
		return nil, err
	}
	if c.pos >= len(c.runes) || !isQuantifier(c.runes[c.pos]) {
		return n, nil
	}

	q := c.runes[c.pos]
	c.pos++
	if c.pos < len(c.runes) && isQuantifier(c.runes[c.pos]) {
		return nil, c.syntaxError(StackedQuantifier, c.pos, "quantifier %q follows %q", c.runes[c.pos], q)
	}

	switch q {
	case '?':
		err = n.Optional()
	case '*':
		err = n.Kleene(true)
	case '+':
		err = n.Kleene(false)
	}
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (c *Compiler) atom() (*NFA, error) {
	r := c.runes[c.pos]
	switch {
	case isQuantifier(r):
		return nil, c.syntaxError(MissingOperand, c.pos, "nothing to quantify before %q", r)
	case r == '(':
		open := c.pos
		c.depth++
		if c.depth > c.config.MaxRecursionDepth {
			return nil, c.syntaxError(NestingTooDeep, open, "groups nested deeper than %d", c.config.MaxRecursionDepth)
		}
		c.pos++
		n, err := c.expr()
		if err != nil {
			return nil, err
		}
		if c.pos >= len(c.runes) || c.runes[c.pos] != ')' {
			return nil, c.syntaxError(UnbalancedParen, open, "missing ')' for group opened here")
		}
		c.pos++
		c.depth--
		return n, nil
	default:
		c.pos++
		return FromSymbol(c.alloc, Literal(r))
	}
}

func (c *Compiler) syntaxError(kind SyntaxKind, pos int, format string, args ...any) error {
	return &SyntaxError{
		Pattern: c.pattern,
		Pos:     pos,
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

func isQuantifier(r rune) bool {
	return r == '?' || r == '*' || r == '+'
}

// Compile compiles pattern into an NFA using a fresh Allocator.
func Compile(pattern string) (*NFA, error) {
	return CompileWith(NewAllocator(), pattern)
}

// CompileWith compiles pattern drawing state ids from alloc, so the result
// can be combined with other NFAs built from the same allocator.
func CompileWith(alloc *Allocator, pattern string) (*NFA, error) {
	return NewCompiler(alloc, DefaultCompilerConfig()).Compile(pattern)
}

// MustCompile is like Compile but panics if the pattern is malformed.
func MustCompile(pattern string) *NFA {
	n, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return n
}
