package argv

// Option is a parsed option occurrence set: the combined value plus its
// provenance.
type Option struct {
	value       Value
	occurrences []int
	invokedAs   string
	negated     bool
}

// Value returns the combined value.
func (o Option) Value() Value { return o.value }

// Occurrences returns the token indices at which the option was given.
func (o Option) Occurrences() []int { return o.occurrences }

// InvokedAs returns the raw name the last occurrence was typed as.
func (o Option) InvokedAs() string { return o.invokedAs }

// Negated reports whether the last occurrence used a negated form.
func (o Option) Negated() bool { return o.negated }

// Result is the immutable outcome of parsing one command level. Results
// form a tree: each level owns the result of the subcommand it delegated
// to. A Result is never mutated after the parse returns and is safe to
// share by reference.
type Result struct {
	command     string
	invoked     string
	path        []string
	options     map[string]Option
	positionals map[string]Value
	trailing    []string
	sub         *Result
}

// Command returns the canonical name of this command level.
func (r *Result) Command() string { return r.command }

// InvokedAs returns the token that selected this level: the alias or
// abbreviation as typed, or the canonical name at the root.
func (r *Result) InvokedAs() string { return r.invoked }

// Path returns the canonical command names from the root to this level.
func (r *Result) Path() []string { return r.path }

// Sub returns the result of the invoked subcommand, or nil.
func (r *Result) Sub() *Result { return r.sub }

// Trailing returns the tokens that followed the trailing separator,
// verbatim and unparsed.
func (r *Result) Trailing() []string { return r.trailing }

// Option returns the parsed option under its canonical name.
func (r *Result) Option(name string) (Option, bool) {
	opt, ok := r.options[name]
	return opt, ok
}

// Positional returns the grouped positional value under its spec name.
func (r *Result) Positional(name string) (Value, bool) {
	v, ok := r.positionals[name]
	return v, ok
}

// Bool reports whether the named flag was given and is true.
func (r *Result) Bool(name string) bool {
	opt, ok := r.options[name]
	return ok && opt.value.Bool()
}

// Count returns the occurrence count of a Count-mode flag, or 0.
func (r *Result) Count(name string) int {
	opt, ok := r.options[name]
	if !ok {
		return 0
	}
	return opt.value.Count()
}

// String returns the scalar value of the named option.
func (r *Result) String(name string) (string, bool) {
	opt, ok := r.options[name]
	if !ok || opt.value.kind != KindScalar {
		return "", false
	}
	return opt.value.str, true
}

// Strings returns every scalar of the named option, flattened in order.
func (r *Result) Strings(name string) []string {
	opt, ok := r.options[name]
	if !ok {
		return nil
	}
	return opt.value.Flatten()
}
