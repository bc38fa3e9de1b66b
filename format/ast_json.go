package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/sharpjs/csharp/parser"
)

// ASTJSONEncoder writes a syntax tree as indented JSON. Statement and
// expression nodes carry their verbatim source text in "text".
type ASTJSONEncoder struct {
	w io.Writer
	// Positions adds "start" and "end" ("line:column") and the byte range
	// to every node.
	Positions bool
}

func NewASTJSONEncoder(w io.Writer) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w}
}

func (e *ASTJSONEncoder) Encode(node *parser.Node) error {
	text, err := e.MarshalText(node)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *ASTJSONEncoder) MarshalText(node *parser.Node) ([]byte, error) {
	return json.MarshalIndent(e.node(node), "", "  ")
}

type astNode struct {
	Kind     string     `json:"kind"`
	Start    string     `json:"start,omitempty"`
	End      string     `json:"end,omitempty"`
	Bytes    *[2]int    `json:"bytes,omitempty"`
	Text     string     `json:"text,omitempty"`
	Error    string     `json:"error,omitempty"`
	Expected []string   `json:"expected,omitempty"`
	Got      string     `json:"got,omitempty"`
	Children []*astNode `json:"children,omitempty"`
}

func (e *ASTJSONEncoder) node(n *parser.Node) *astNode {
	out := &astNode{
		Kind: n.Kind.String(),
		Text: n.TokenLiteral(),
	}
	if e.Positions {
		out.Start = n.Span.Start.String()
		out.End = n.Span.End.String()
		out.Bytes = &[2]int{n.Span.Start.Offset, n.Span.End.Offset}
	}
	if n.Error != nil {
		out.Error = n.Error.Message
		for _, kind := range n.Error.Expected {
			out.Expected = append(out.Expected, kind.String())
		}
		if n.Error.Got != nil {
			out.Got = n.Error.Got.Literal
		}
	}
	for _, child := range n.Children {
		out.Children = append(out.Children, e.node(child))
	}
	return out
}
