package route

import (
	"fmt"
	"regexp"
	"strings"
)

// SegmentKind classifies one token of a route pattern.
type SegmentKind int

const (
	Literal SegmentKind = iota
	RequiredParam
	OptionalParam
	Flag
)

func (k SegmentKind) String() string {
	switch k {
	case Literal:
		return "literal"
	case RequiredParam:
		return "required"
	case OptionalParam:
		return "optional"
	case Flag:
		return "flag"
	default:
		return "unknown"
	}
}

// Segment is one unit of a parsed pattern. Text is the token as written;
// Name is the parameter name and is empty for literals.
type Segment struct {
	Kind SegmentKind
	Text string
	Name string
}

// IsParam reports whether the segment binds a value.
func (s Segment) IsParam() bool {
	return s.Kind != Literal
}

// ParsePattern splits a pattern on whitespace and classifies each token:
// <x> is required, [x] is optional, --x, --x=... and [--x] are flags,
// anything else is a literal.
func ParsePattern(pattern string) ([]Segment, error) {
	fields := strings.Fields(pattern)
	segments := make([]Segment, 0, len(fields))
	seen := make(map[string]bool)

	for _, tok := range fields {
		seg, err := parseToken(tok)
		if err != nil {
			return nil, err
		}
		if seg.IsParam() {
			if seen[seg.Name] {
				return nil, fmt.Errorf("%w: parameter %q declared twice in %q", ErrInvalidRouteSpec, seg.Name, pattern)
			}
			seen[seg.Name] = true
		}
		segments = append(segments, seg)
	}

	return segments, nil
}

func parseToken(tok string) (Segment, error) {
	switch {
	case isWrapped(tok, '<', '>'):
		name := tok[1 : len(tok)-1]
		if name == "" {
			return Segment{}, fmt.Errorf("%w: empty parameter %q", ErrInvalidRouteSpec, tok)
		}
		return Segment{Kind: RequiredParam, Text: tok, Name: name}, nil

	case isWrapped(tok, '[', ']'):
		inner := tok[1 : len(tok)-1]
		if strings.HasPrefix(inner, "--") {
			name, err := flagName(inner)
			if err != nil {
				return Segment{}, err
			}
			return Segment{Kind: Flag, Text: tok, Name: name}, nil
		}
		if inner == "" {
			return Segment{}, fmt.Errorf("%w: empty parameter %q", ErrInvalidRouteSpec, tok)
		}
		return Segment{Kind: OptionalParam, Text: tok, Name: inner}, nil

	case strings.HasPrefix(tok, "--"):
		name, err := flagName(tok)
		if err != nil {
			return Segment{}, err
		}
		return Segment{Kind: Flag, Text: tok, Name: name}, nil
	}

	return Segment{Kind: Literal, Text: tok}, nil
}

func isWrapped(tok string, open, closing byte) bool {
	return len(tok) >= 2 && tok[0] == open && tok[len(tok)-1] == closing
}

// flagName returns the name of "--name" or "--name=value".
func flagName(tok string) (string, error) {
	name := strings.TrimPrefix(tok, "--")
	if idx := strings.Index(name, "="); idx != -1 {
		name = name[:idx]
	}
	if name == "" {
		return "", fmt.Errorf("%w: empty flag %q", ErrInvalidRouteSpec, tok)
	}
	return name, nil
}

// PrependCommand puts command in front of pattern unless prepend is false or
// the pattern already starts with command followed by whitespace or its end.
func PrependCommand(command, pattern string, prepend bool) string {
	if !prepend {
		return pattern
	}

	re := regexp.MustCompile(`^(?:` + regexp.QuoteMeta(command) + `)(?:\s|$)`)
	if re.MatchString(pattern) {
		return pattern
	}

	if pattern == "" {
		return command
	}
	return command + " " + pattern
}
