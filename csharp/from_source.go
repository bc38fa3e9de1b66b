package csharp

import (
	"bytes"
	"errors"
	"strings"

	"github.com/dhamidi/sharpjs/csharp/parser"
)

// ErrIncomplete is returned when the parser cannot produce a complete
// syntax tree, either because the source is empty or because it ends in
// the middle of a declaration.
var ErrIncomplete = errors.New("incomplete source")

// UnitFromSource parses source and builds its declaration model.
func UnitFromSource(source []byte, opts ...parser.Option) (Unit, error) {
	p := parser.ParseCompilationUnit(bytes.NewReader(source), opts...)
	node := p.Finish()
	if node == nil {
		return Unit{Source: p.File()}, ErrIncomplete
	}
	return UnitFromNode(node, p.File()), nil
}

// UnitFromNode builds the model of a parsed compilation unit. Error nodes
// and declarations without a model (delegates, using directives) are
// skipped.
func UnitFromNode(cu *parser.Node, source string) Unit {
	unit := Unit{Source: source}
	unit.Declarations = declarationsFromBody(cu, &unit)
	return unit
}

func declarationsFromBody(body *parser.Node, unit *Unit) []Declaration {
	var decls []Declaration
	for _, child := range body.Children {
		switch child.Kind {
		case parser.KindNamespaceDecl:
			decls = append(decls, namespaceFromDecl(child, unit))
		case parser.KindGlobalStatement:
			unit.Stray = append(unit.Stray, Stray{
				Kind:     "statement",
				Position: child.Span.Start,
				Text:     child.TokenLiteral(),
			})
		case parser.KindMethodDecl, parser.KindFieldDecl, parser.KindPropertyDecl,
			parser.KindConstructorDecl, parser.KindEventDecl, parser.KindIndexerDecl,
			parser.KindOperatorDecl, parser.KindDestructorDecl:
			unit.Stray = append(unit.Stray, Stray{
				Kind:     "member",
				Position: child.Span.Start,
				Text:     memberName(child),
			})
		default:
			if decl := declarationFromNode(child); decl != nil {
				decls = append(decls, decl)
			}
		}
	}
	return decls
}

func namespaceFromDecl(node *parser.Node, unit *Unit) *Namespace {
	ns := &Namespace{}
	if name := node.FirstChildOfKind(parser.KindQualifiedName); name != nil {
		ns.Name = name.TokenLiteral()
	}
	ns.Members = declarationsFromBody(node, unit)
	return ns
}

// declarationFromNode returns nil for nodes that are not modelled type
// declarations.
func declarationFromNode(node *parser.Node) Declaration {
	switch node.Kind {
	case parser.KindClassDecl, parser.KindStructDecl, parser.KindRecordDecl:
		return &Class{
			Name:        declName(node),
			BaseTypes:   baseTypes(node),
			Annotations: annotationsOf(node),
			Members:     membersOf(node),
		}
	case parser.KindInterfaceDecl:
		return &Interface{
			Name:        declName(node),
			BaseTypes:   baseTypes(node),
			Annotations: annotationsOf(node),
			Members:     membersOf(node),
		}
	case parser.KindEnumDecl:
		enum := &Enum{
			Name:        declName(node),
			Annotations: annotationsOf(node),
		}
		for _, m := range node.ChildrenOfKind(parser.KindEnumMember) {
			member := EnumMember{Name: declName(m)}
			if init := m.FirstChildOfKind(parser.KindInitializer); init != nil {
				member.Value = init.TokenLiteral()
			}
			enum.Members = append(enum.Members, member)
		}
		return enum
	}
	return nil
}

func membersOf(node *parser.Node) []Member {
	var members []Member
	for _, child := range node.Children {
		if member := memberFromNode(child); member != nil {
			members = append(members, member)
		}
	}
	return members
}

func memberFromNode(node *parser.Node) Member {
	switch node.Kind {
	case parser.KindMethodDecl:
		m := &Method{
			Name:        declName(node),
			Parameters:  parametersOf(node),
			IsStatic:    hasModifier(node, parser.TokenStatic),
			Annotations: annotationsOf(node),
		}
		m.Body, m.ExpressionBody, m.HasBody = bodyOf(node)
		return m
	case parser.KindConstructorDecl:
		c := &Constructor{
			Parameters:  parametersOf(node),
			IsStatic:    hasModifier(node, parser.TokenStatic),
			Annotations: annotationsOf(node),
		}
		var expr string
		c.Body, expr, c.HasBody = bodyOf(node)
		if expr != "" {
			c.Body = []string{expr + ";"}
		}
		if init := node.FirstChildOfKind(parser.KindConstructorInitializer); init != nil && init.Token.Kind == parser.TokenBase {
			args := ""
			if a := init.FirstChildOfKind(parser.KindArguments); a != nil {
				args = a.TokenLiteral()
			}
			c.BaseArguments = &args
		}
		return c
	case parser.KindFieldDecl:
		f := &Field{Annotations: annotationsOf(node)}
		for _, v := range node.ChildrenOfKind(parser.KindVariableDeclarator) {
			f.Variables = append(f.Variables, v.TokenLiteral())
		}
		return f
	case parser.KindPropertyDecl:
		p := &Property{
			Name:        declName(node),
			Annotations: annotationsOf(node),
		}
		if list := node.FirstChildOfKind(parser.KindAccessorList); list != nil {
			for _, acc := range list.ChildrenOfKind(parser.KindAccessor) {
				switch acc.TokenLiteral() {
				case "get":
					p.HasGetter = true
				case "set":
					p.HasSetter = true
				}
			}
		}
		return p
	}
	if decl := declarationFromNode(node); decl != nil {
		return &Nested{Declaration: decl}
	}
	return nil
}

// bodyOf returns the statements of a block body or the expression of an
// expression body.
func bodyOf(node *parser.Node) (stmts []string, expr string, ok bool) {
	if block := node.FirstChildOfKind(parser.KindBlock); block != nil {
		stmts = []string{}
		for _, stmt := range block.ChildrenOfKind(parser.KindStatement) {
			stmts = append(stmts, stmt.TokenLiteral())
		}
		return stmts, "", true
	}
	if body := node.FirstChildOfKind(parser.KindExpressionBody); body != nil {
		return nil, body.TokenLiteral(), true
	}
	return nil, "", false
}

func parametersOf(node *parser.Node) []Parameter {
	list := node.FirstChildOfKind(parser.KindParameters)
	if list == nil {
		return nil
	}
	var params []Parameter
	for _, p := range list.ChildrenOfKind(parser.KindParameter) {
		param := Parameter{Name: declName(p)}
		if def := p.FirstChildOfKind(parser.KindInitializer); def != nil {
			param.Default = def.TokenLiteral()
		}
		param.IsParams = hasModifier(p, parser.TokenParams)
		params = append(params, param)
	}
	return params
}

func baseTypes(node *parser.Node) []string {
	list := node.FirstChildOfKind(parser.KindBaseList)
	if list == nil {
		return nil
	}
	var types []string
	for _, base := range list.ChildrenOfKind(parser.KindBaseType) {
		name := base.TokenLiteral()
		// record Derived(int X) : Base(X)
		if i := strings.IndexByte(name, '('); i >= 0 {
			name = name[:i]
		}
		types = append(types, strings.TrimSpace(name))
	}
	return types
}

// annotationsOf collects the attributes applied to a declaration.
// Attributes aimed at the return value are not the declaration's own.
func annotationsOf(node *parser.Node) []Annotation {
	var anns []Annotation
	for _, list := range node.ChildrenOfKind(parser.KindAttributeList) {
		if list.Token != nil && list.Token.Literal == "return" {
			continue
		}
		for _, attr := range list.ChildrenOfKind(parser.KindAttribute) {
			ann := Annotation{Name: attr.TokenLiteral()}
			for _, arg := range attr.ChildrenOfKind(parser.KindAttributeArgument) {
				ann.Arguments = append(ann.Arguments, arg.TokenLiteral())
			}
			anns = append(anns, ann)
		}
	}
	return anns
}

func hasModifier(node *parser.Node, kind parser.TokenKind) bool {
	mods := node.FirstChildOfKind(parser.KindModifiers)
	if mods == nil {
		return false
	}
	for _, mod := range mods.Children {
		if mod.Token != nil && mod.Token.Kind == kind {
			return true
		}
	}
	return false
}

// declName returns the declared identifier with any verbatim '@' prefix
// removed.
func declName(node *parser.Node) string {
	ident := node.FirstChildOfKind(parser.KindIdentifier)
	if ident == nil {
		return ""
	}
	return strings.TrimPrefix(ident.TokenLiteral(), "@")
}

func memberName(node *parser.Node) string {
	if name := declName(node); name != "" {
		return node.Kind.String() + " " + name
	}
	return node.Kind.String()
}
