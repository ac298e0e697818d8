package ml_parser

import (
	"strings"

	"ngc-lite/packages/compiler/util"
)

// InterpolationConfig represents the configuration for interpolation symbols
type InterpolationConfig struct {
	Start string
	End   string
}

// DefaultInterpolationConfig is the default interpolation configuration
var DefaultInterpolationConfig = &InterpolationConfig{
	Start: "{{",
	End:   "}}",
}

// SplitInterpolation is a text split around its interpolations. Strings
// always has one more element than Expressions.
type SplitInterpolation struct {
	Strings     []string
	Expressions []string
}

// SplitInterpolationText splits text at the interpolation markers. It
// returns nil when the text has no interpolation. Markers inside quoted
// strings of an expression do not end it; an unterminated interpolation is
// kept as text.
func SplitInterpolationText(input string, config *InterpolationConfig, span *util.ParseSourceSpan) (*SplitInterpolation, []*util.ParseError) {
	if config == nil {
		config = DefaultInterpolationConfig
	}
	var errors []*util.ParseError
	split := &SplitInterpolation{}
	var current strings.Builder
	i := 0
	for i < len(input) {
		idx := strings.Index(input[i:], config.Start)
		if idx < 0 {
			break
		}
		exprStart := i + idx + len(config.Start)
		exprEnd := interpolationEnd(input, config.End, exprStart)
		if exprEnd < 0 {
			break
		}
		current.WriteString(input[i : i+idx])
		split.Strings = append(split.Strings, current.String())
		current.Reset()

		expr := input[exprStart:exprEnd]
		if strings.TrimSpace(expr) == "" {
			errors = append(errors, util.NewParseError(span,
				"Blank expressions are not allowed in interpolated strings"))
		}
		split.Expressions = append(split.Expressions, expr)
		i = exprEnd + len(config.End)
	}
	if len(split.Expressions) == 0 {
		return nil, errors
	}
	current.WriteString(input[i:])
	split.Strings = append(split.Strings, current.String())
	return split, errors
}

// interpolationEnd finds the end marker, skipping quoted strings.
func interpolationEnd(input, end string, start int) int {
	var quote byte
	escapes := 0
	for i := start; i < len(input); i++ {
		c := input[i]
		switch {
		case quote == 0 && strings.HasPrefix(input[i:], end):
			return i
		case (c == '\'' || c == '"' || c == '`') && escapes%2 == 0:
			if quote == 0 {
				quote = c
			} else if quote == c {
				quote = 0
			}
		}
		if c == '\\' {
			escapes++
		} else {
			escapes = 0
		}
	}
	return -1
}
