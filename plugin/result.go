package plugin

type resultKind int

const (
	resultInvalid resultKind = iota
	resultBool
	resultList
)

// Result is what a check returns: either a boolean verdict or a list of
// messages. The zero value is neither and is treated as a broken plugin.
type Result struct {
	kind resultKind
	ok   bool
	msgs []string
}

// Bool wraps a verdict, false produces one finding with the plugin message.
func Bool(ok bool) Result {
	return Result{kind: resultBool, ok: ok}
}

func Pass() Result { return Bool(true) }
func Fail() Result { return Bool(false) }

// Messages produces one finding per message, none for an empty list.
func Messages(msgs ...string) Result {
	return Result{kind: resultList, msgs: msgs}
}

// Valid reports whether the result has a recognized shape.
func (r Result) Valid() bool {
	return r.kind != resultInvalid
}

// IsList reports whether the result carries messages rather than a verdict.
func (r Result) IsList() bool {
	return r.kind == resultList
}

// OK reports the verdict of a boolean result. List results are OK when
// empty.
func (r Result) OK() bool {
	if r.kind == resultList {
		return len(r.msgs) == 0
	}
	return r.ok
}

// List returns messages of a list result.
func (r Result) List() []string {
	return r.msgs
}
