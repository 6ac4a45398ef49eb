package argv

import "strings"

// consumeSpec bundles what one value run needs to know about its option
// and surroundings.
type consumeSpec struct {
	arity     Arity
	greedy    bool
	inline    string
	hasInline bool

	// stop predicates, from the current level's resolver
	negAllowed bool
	negMatch   func(string) bool
}

// consumeValues collects the value run for one option occurrence starting
// at tokens[start]. The inline value, when present, occupies the first
// slot. Returns the values and the index of the first unconsumed token.
func (p *parser) consumeValues(r *resolver, opt *OptionSpec, inline string, hasInline bool, start int) ([]string, int, *ParseError) {
	cs := consumeSpec{
		arity:      opt.arity,
		greedy:     opt.greedy,
		inline:     inline,
		hasInline:  hasInline,
		negAllowed: opt.negativeAllowed(p.cfg),
		negMatch:   opt.negativeMatcher(p.cfg),
	}
	return p.consume(r, cs, p.tokens, start)
}

func (p *parser) consume(r *resolver, cs consumeSpec, tokens []string, start int) ([]string, int, *ParseError) {
	var values []string
	if cs.hasInline {
		values = append(values, cs.inline)
	}
	i := start

	if cs.greedy {
		// Greedy runs take everything through end of input or the
		// trailing separator, regardless of shape.
		for i < len(tokens) && tokens[i] != p.cfg.TrailingSeparator {
			values = append(values, tokens[i])
			i++
		}
	} else {
		for i < len(tokens) {
			if !cs.arity.IsUnbounded() && len(values) >= cs.arity.Max {
				break
			}
			tok := tokens[i]
			if tok == p.cfg.TrailingSeparator {
				break
			}
			if p.stopsRun(r, tok, cs) {
				break
			}
			values = append(values, tok)
			i++
		}
	}

	if len(values) < cs.arity.Min {
		return nil, i, &ParseError{
			Type:  ErrorTypeInsufficientValues,
			Index: min(i, len(tokens)),
		}
	}
	return values, i, nil
}

// stopsRun reports whether tok ends a non-greedy value run: a token that
// resolves to a known option or subcommand stops consumption, unless
// negative numbers are permitted for this parameter and the token matches
// the negative-number pattern.
func (p *parser) stopsRun(r *resolver, tok string, cs consumeSpec) bool {
	if cs.negAllowed && cs.negMatch != nil && cs.negMatch(tok) {
		return false
	}
	if r.knownOptionToken(tok, p.cfg) {
		return true
	}
	return r.knownSubcommandToken(tok, p.cfg)
}

// splitItems applies item-separator splitting to a collected run, honoring
// the escape rune for literal separators. Runs after the full run is
// collected; a zero separator disables splitting.
func splitItems(values []string, sep string, escape rune) []string {
	if sep == "" {
		return values
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, splitEscaped(v, sep, escape)...)
	}
	return out
}

func splitEscaped(s, sep string, escape rune) []string {
	if escape == 0 {
		return strings.Split(s, sep)
	}
	esc := string(escape)
	var parts []string
	var current strings.Builder
	for i := 0; i < len(s); {
		if strings.HasPrefix(s[i:], esc+sep) {
			current.WriteString(sep)
			i += len(esc) + len(sep)
			continue
		}
		if strings.HasPrefix(s[i:], sep) {
			parts = append(parts, current.String())
			current.Reset()
			i += len(sep)
			continue
		}
		current.WriteByte(s[i])
		i++
	}
	parts = append(parts, current.String())
	return parts
}
