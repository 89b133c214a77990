package grammar

import "fmt"

// GrammarError is the fatal error kind of grammar preparation and automaton
// construction: undefined references, mixed lexical/syntactic rule trees,
// non-terminating closures. A grammar that produced a GrammarError yields
// no partial output; the only recourse is correcting the grammar.
type GrammarError struct {
	Name string // offending symbol name, if known
	Msg  string
}

func (e *GrammarError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("grammar error at %q: %s", e.Name, e.Msg)
	}
	return "grammar error: " + e.Msg
}

// Errorf creates a GrammarError with a formatted message.
func Errorf(format string, args ...interface{}) *GrammarError {
	return &GrammarError{Msg: fmt.Sprintf(format, args...)}
}

// ErrorfAt creates a GrammarError tied to a named symbol.
func ErrorfAt(name string, format string, args ...interface{}) *GrammarError {
	return &GrammarError{Name: name, Msg: fmt.Sprintf(format, args...)}
}
