package typesystem

import (
	"fmt"
	"strings"
	"unicode"
)

// Parse reconstructs a Type from its String form. It understands every
// shape the analyzer itself produces, so Parse(t.String()) round-trips.
// Nominal names (structs, enums) come back as lookups against the given
// registry; unknown names parse as generic placeholders when lowercase
// and as bare struct references otherwise.
func Parse(s string, reg *Registry) (Type, error) {
	p := &typeParser{input: s, reg: reg}
	t, err := p.parseUnion()
	if err != nil {
		return nil, err
	}
	p.skipSpaces()
	if p.pos != len(p.input) {
		return nil, fmt.Errorf("trailing input in type %q at offset %d", s, p.pos)
	}
	return t, nil
}

type typeParser struct {
	input string
	pos   int
	reg   *Registry
}

func (p *typeParser) skipSpaces() {
	for p.pos < len(p.input) && p.input[p.pos] == ' ' {
		p.pos++
	}
}

func (p *typeParser) peek() byte {
	if p.pos < len(p.input) {
		return p.input[p.pos]
	}
	return 0
}

func (p *typeParser) expect(c byte) error {
	p.skipSpaces()
	if p.peek() != c {
		return fmt.Errorf("expected %q at offset %d in %q", string(c), p.pos, p.input)
	}
	p.pos++
	return nil
}

// parseUnion handles "T | U | V"; a single member collapses.
func (p *typeParser) parseUnion() (Type, error) {
	first, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	members := []Type{first}
	for {
		p.skipSpaces()
		if p.peek() != '|' {
			break
		}
		p.pos++
		next, err := p.parsePostfix()
		if err != nil {
			return nil, err
		}
		members = append(members, next)
	}
	if len(members) == 1 {
		return first, nil
	}
	return NormalizeUnion(members), nil
}

// parsePostfix handles the optional suffix "?" after a base type.
func (p *typeParser) parsePostfix() (Type, error) {
	base, err := p.parseBase()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpaces()
		if p.peek() == '?' {
			p.pos++
			base = TOptional{Inner: base}
			continue
		}
		break
	}
	return base, nil
}

func (p *typeParser) parseBase() (Type, error) {
	p.skipSpaces()
	switch {
	case p.peek() == '[':
		p.pos++
		elem, err := p.parseUnion()
		if err != nil {
			return nil, err
		}
		if err := p.expect(']'); err != nil {
			return nil, err
		}
		return TArray{Elem: elem}, nil

	case p.peek() == '(':
		// Function type: (T1, T2) -> R, possibly variadic "T..."
		p.pos++
		params := []Type{}
		variadic := false
		p.skipSpaces()
		if p.peek() != ')' {
			for {
				if strings.HasPrefix(p.input[p.pos:], "...") {
					p.pos += 3
					variadic = true
					break
				}
				param, err := p.parseUnion()
				if err != nil {
					return nil, err
				}
				if strings.HasPrefix(p.input[p.pos:], "...") {
					p.pos += 3
					variadic = true
				}
				params = append(params, param)
				p.skipSpaces()
				if p.peek() != ',' {
					break
				}
				p.pos++
			}
		}
		if err := p.expect(')'); err != nil {
			return nil, err
		}
		p.skipSpaces()
		if !strings.HasPrefix(p.input[p.pos:], "->") {
			return nil, fmt.Errorf("expected '->' at offset %d in %q", p.pos, p.input)
		}
		p.pos += 2
		ret, err := p.parseUnion()
		if err != nil {
			return nil, err
		}
		return TFunc{Params: params, ReturnType: ret, IsVariadic: variadic}, nil

	default:
		name := p.parseIdent()
		if name == "" {
			return nil, fmt.Errorf("expected type at offset %d in %q", p.pos, p.input)
		}
		return p.parseNamed(name)
	}
}

func (p *typeParser) parseIdent() string {
	start := p.pos
	for p.pos < len(p.input) {
		c := rune(p.input[p.pos])
		if unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_' {
			p.pos++
			continue
		}
		break
	}
	return p.input[start:p.pos]
}

func (p *typeParser) parseNamed(name string) (Type, error) {
	switch name {
	case "Int", "Float", "String", "Bool", "Void", "Char":
		return TPrim{Name: name}, nil
	case "Map":
		if err := p.expect('<'); err != nil {
			return nil, err
		}
		key, err := p.parseUnion()
		if err != nil {
			return nil, err
		}
		if err := p.expect(','); err != nil {
			return nil, err
		}
		value, err := p.parseUnion()
		if err != nil {
			return nil, err
		}
		if err := p.expect('>'); err != nil {
			return nil, err
		}
		return TMap{Key: key, Value: value}, nil
	case "Set":
		if err := p.expect('<'); err != nil {
			return nil, err
		}
		elem, err := p.parseUnion()
		if err != nil {
			return nil, err
		}
		if err := p.expect('>'); err != nil {
			return nil, err
		}
		return TSet{Elem: elem}, nil
	case "Result":
		if err := p.expect('<'); err != nil {
			return nil, err
		}
		ok, err := p.parseUnion()
		if err != nil {
			return nil, err
		}
		if err := p.expect(','); err != nil {
			return nil, err
		}
		errT, err := p.parseUnion()
		if err != nil {
			return nil, err
		}
		if err := p.expect('>'); err != nil {
			return nil, err
		}
		return TResult{Ok: ok, Err: errT}, nil
	default:
		if p.reg != nil {
			if t, found := p.reg.Lookup(name); found {
				return t, nil
			}
		}
		// Lowercase leading letter reads as a type parameter.
		if r := rune(name[0]); unicode.IsLower(r) {
			return TGeneric{Name: name}, nil
		}
		return TStruct{Name: name}, nil
	}
}
