package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/sharpjs/csharp"
)

type JSONEncoder struct {
	w    io.Writer
	unit csharp.Unit
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(unit csharp.Unit) error {
	e.unit = unit
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	data := jsonUnit{Source: e.unit.Source}
	for _, decl := range e.unit.Declarations {
		data.Declarations = append(data.Declarations, buildDeclaration(decl))
	}
	for _, s := range e.unit.Stray {
		data.Stray = append(data.Stray, jsonStray{
			Kind: s.Kind,
			Line: s.Position.Line,
			Text: s.Text,
		})
	}
	return json.MarshalIndent(data, "", "  ")
}

type jsonUnit struct {
	Source       string            `json:"source,omitempty"`
	Declarations []jsonDeclaration `json:"declarations"`
	Stray        []jsonStray       `json:"stray,omitempty"`
}

type jsonStray struct {
	Kind string `json:"kind"`
	Line int    `json:"line"`
	Text string `json:"text"`
}

type jsonDeclaration struct {
	Kind         string            `json:"kind"`
	Name         string            `json:"name"`
	BaseTypes    []string          `json:"baseTypes,omitempty"`
	Annotations  []jsonAnnotation  `json:"annotations,omitempty"`
	Members      []jsonMember      `json:"members,omitempty"`
	EnumMembers  []jsonEnumMember  `json:"enumMembers,omitempty"`
	Declarations []jsonDeclaration `json:"declarations,omitempty"`
}

type jsonAnnotation struct {
	Name      string   `json:"name"`
	Arguments []string `json:"arguments,omitempty"`
}

type jsonEnumMember struct {
	Name  string `json:"name"`
	Value string `json:"value,omitempty"`
}

type jsonMember struct {
	Kind           string           `json:"kind"`
	Name           string           `json:"name,omitempty"`
	Static         bool             `json:"static,omitempty"`
	Parameters     []jsonParameter  `json:"parameters,omitempty"`
	Annotations    []jsonAnnotation `json:"annotations,omitempty"`
	Body           []string         `json:"body,omitempty"`
	ExpressionBody string           `json:"expressionBody,omitempty"`
	BaseArguments  *string          `json:"baseArguments,omitempty"`
	Variables      []string         `json:"variables,omitempty"`
	Getter         bool             `json:"getter,omitempty"`
	Setter         bool             `json:"setter,omitempty"`
	Declaration    *jsonDeclaration `json:"declaration,omitempty"`
}

type jsonParameter struct {
	Name    string `json:"name"`
	Default string `json:"default,omitempty"`
	Params  bool   `json:"params,omitempty"`
}

func buildDeclaration(decl csharp.Declaration) jsonDeclaration {
	switch d := decl.(type) {
	case *csharp.Namespace:
		data := jsonDeclaration{Kind: "namespace", Name: d.Name}
		for _, member := range d.Members {
			data.Declarations = append(data.Declarations, buildDeclaration(member))
		}
		return data
	case *csharp.Class:
		return jsonDeclaration{
			Kind:        "class",
			Name:        d.Name,
			BaseTypes:   d.BaseTypes,
			Annotations: buildAnnotations(d.Annotations),
			Members:     buildMembers(d.Members),
		}
	case *csharp.Interface:
		return jsonDeclaration{
			Kind:        "interface",
			Name:        d.Name,
			BaseTypes:   d.BaseTypes,
			Annotations: buildAnnotations(d.Annotations),
			Members:     buildMembers(d.Members),
		}
	case *csharp.Enum:
		data := jsonDeclaration{
			Kind:        "enum",
			Name:        d.Name,
			Annotations: buildAnnotations(d.Annotations),
		}
		for _, m := range d.Members {
			data.EnumMembers = append(data.EnumMembers, jsonEnumMember{Name: m.Name, Value: m.Value})
		}
		return data
	}
	return jsonDeclaration{Kind: "unknown"}
}

func buildMembers(members []csharp.Member) []jsonMember {
	var result []jsonMember
	for _, member := range members {
		switch m := member.(type) {
		case *csharp.Method:
			result = append(result, jsonMember{
				Kind:           "method",
				Name:           m.Name,
				Static:         m.IsStatic,
				Parameters:     buildParameters(m.Parameters),
				Annotations:    buildAnnotations(m.Annotations),
				Body:           m.Body,
				ExpressionBody: m.ExpressionBody,
			})
		case *csharp.Constructor:
			result = append(result, jsonMember{
				Kind:          "constructor",
				Static:        m.IsStatic,
				Parameters:    buildParameters(m.Parameters),
				Annotations:   buildAnnotations(m.Annotations),
				Body:          m.Body,
				BaseArguments: m.BaseArguments,
			})
		case *csharp.Field:
			result = append(result, jsonMember{
				Kind:        "field",
				Annotations: buildAnnotations(m.Annotations),
				Variables:   m.Variables,
			})
		case *csharp.Property:
			result = append(result, jsonMember{
				Kind:        "property",
				Name:        m.Name,
				Annotations: buildAnnotations(m.Annotations),
				Getter:      m.HasGetter,
				Setter:      m.HasSetter,
			})
		case *csharp.Nested:
			decl := buildDeclaration(m.Declaration)
			result = append(result, jsonMember{Kind: "nested", Name: decl.Name, Declaration: &decl})
		}
	}
	return result
}

func buildParameters(params []csharp.Parameter) []jsonParameter {
	var result []jsonParameter
	for _, p := range params {
		result = append(result, jsonParameter{Name: p.Name, Default: p.Default, Params: p.IsParams})
	}
	return result
}

func buildAnnotations(anns []csharp.Annotation) []jsonAnnotation {
	var result []jsonAnnotation
	for _, a := range anns {
		result = append(result, jsonAnnotation{Name: a.Name, Arguments: a.Arguments})
	}
	return result
}
