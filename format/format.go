package format

import (
	"encoding"

	"github.com/dhamidi/sharpjs/csharp"
)

// Encoder writes the declaration model of one unit.
type Encoder interface {
	encoding.TextMarshaler
	Encode(unit csharp.Unit) error
}
