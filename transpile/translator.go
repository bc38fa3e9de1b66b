package transpile

import (
	"strings"

	"github.com/tliron/commonlog"
)

// EntryPoint is a method to be invoked once all units are loaded.
type EntryPoint struct {
	Owner  string
	Method string
}

func (e EntryPoint) String() string {
	return e.Owner + "." + e.Method
}

// Result is the output of translating part of a declaration tree: the
// emitted text and the entry points found in it, in discovery order.
type Result struct {
	Text        string
	EntryPoints []EntryPoint
}

// resultBuilder concatenates results in the order they are added.
type resultBuilder struct {
	text    strings.Builder
	entries []EntryPoint
}

func (b *resultBuilder) WriteString(s string) {
	b.text.WriteString(s)
}

func (b *resultBuilder) Add(r Result) {
	b.text.WriteString(r.Text)
	b.entries = append(b.entries, r.EntryPoints...)
}

func (b *resultBuilder) Result() Result {
	return Result{Text: b.text.String(), EntryPoints: b.entries}
}

type Option func(*Translator)

// WithRewriter sets the pass applied to every class before translation.
func WithRewriter(r ClassRewriter) Option {
	return func(t *Translator) {
		t.rewriter = r
	}
}

func WithLogger(log commonlog.Logger) Option {
	return func(t *Translator) {
		t.log = log
	}
}

// WithConcurrency translates up to n units at a time. Output is the same
// as a sequential run.
func WithConcurrency(n int) Option {
	return func(t *Translator) {
		t.concurrency = n
	}
}

// Translator turns declaration models into JavaScript. It holds no state
// between calls and may be shared by goroutines.
type Translator struct {
	rewriter    ClassRewriter
	log         commonlog.Logger
	concurrency int
}

func NewTranslator(opts ...Option) *Translator {
	t := &Translator{
		rewriter:    NopRewriter{},
		log:         commonlog.GetLogger("sharpjs.transpile"),
		concurrency: 1,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.rewriter == nil {
		t.rewriter = NopRewriter{}
	}
	return t
}
