package transpile

import (
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/dhamidi/sharpjs/csharp"
)

// Assemble translates units in order and joins them with the prelude,
// the entry point invocations and the provenance trailer.
func Assemble(units []csharp.Unit, opts ...Option) string {
	return NewTranslator(opts...).Assemble(units)
}

// Assemble panics on the calling goroutine when translating a unit
// panics, whatever the concurrency.
func (t *Translator) Assemble(units []csharp.Unit) string {
	results, err := t.walkUnits(units)
	if err != nil {
		panic(err)
	}

	var sb strings.Builder
	sb.WriteString("// BEGIN EXTRAS")
	sb.WriteString(Prelude)
	sb.WriteString("\n// END EXTRAS \n\n")

	var entries []EntryPoint
	for _, r := range results {
		sb.WriteString(r.Text)
		sb.WriteString("\n\n")
		entries = append(entries, r.EntryPoints...)
	}
	for _, e := range entries {
		sb.WriteString(e.String() + "();\n")
	}

	sb.WriteString("\n/* COMPILED WITH " + toolName + " */")
	t.log.Debugf("assembled %d units, %d entry points", len(units), len(entries))
	return sb.String()
}

// walkUnits returns one result per unit, in unit order. With a
// concurrency above one the units are walked by a bounded pool; each
// goroutine writes only its own slot.
func (t *Translator) walkUnits(units []csharp.Unit) ([]Result, error) {
	results := make([]Result, len(units))
	if t.concurrency <= 1 || len(units) < 2 {
		for i, unit := range units {
			results[i] = t.WalkUnit(unit)
		}
		return results, nil
	}

	var g errgroup.Group
	g.SetLimit(t.concurrency)
	for i, unit := range units {
		i, unit := i, unit
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("translate %s: %v", unitName(unit), r)
				}
			}()
			results[i] = t.WalkUnit(unit)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.log.Errorf("%s", err)
		return nil, err
	}
	return results, nil
}
