package parser

import "strings"

type NodeKind int

const (
	KindError NodeKind = iota

	// Compilation unit level
	KindCompilationUnit
	KindExternAlias
	KindUsingDirective
	KindGlobalStatement
	KindNamespaceDecl
	KindQualifiedName

	// Type declarations
	KindClassDecl
	KindStructDecl
	KindInterfaceDecl
	KindEnumDecl
	KindRecordDecl
	KindDelegateDecl

	// Members
	KindFieldDecl
	KindVariableDeclarator
	KindEventDecl
	KindMethodDecl
	KindConstructorDecl
	KindConstructorInitializer
	KindDestructorDecl
	KindPropertyDecl
	KindIndexerDecl
	KindOperatorDecl
	KindAccessorList
	KindAccessor
	KindEnumMember

	// Attributes, modifiers and types
	KindAttributeList
	KindAttribute
	KindAttributeArgument
	KindModifiers
	KindModifier
	KindTypeParameters
	KindBaseList
	KindBaseType
	KindConstraintClause
	KindType

	// Method components
	KindParameters
	KindParameter
	KindArguments

	// Bodies. Statement and expression text is kept verbatim in the
	// node's token literal.
	KindBlock
	KindStatement
	KindExpressionBody
	KindInitializer
	KindIdentifier
)

var nodeKindNames = map[NodeKind]string{
	KindError:                  "Error",
	KindCompilationUnit:        "CompilationUnit",
	KindExternAlias:            "ExternAlias",
	KindUsingDirective:         "UsingDirective",
	KindGlobalStatement:        "GlobalStatement",
	KindNamespaceDecl:          "NamespaceDecl",
	KindQualifiedName:          "QualifiedName",
	KindClassDecl:              "ClassDecl",
	KindStructDecl:             "StructDecl",
	KindInterfaceDecl:          "InterfaceDecl",
	KindEnumDecl:               "EnumDecl",
	KindRecordDecl:             "RecordDecl",
	KindDelegateDecl:           "DelegateDecl",
	KindFieldDecl:              "FieldDecl",
	KindVariableDeclarator:     "VariableDeclarator",
	KindEventDecl:              "EventDecl",
	KindMethodDecl:             "MethodDecl",
	KindConstructorDecl:        "ConstructorDecl",
	KindConstructorInitializer: "ConstructorInitializer",
	KindDestructorDecl:         "DestructorDecl",
	KindPropertyDecl:           "PropertyDecl",
	KindIndexerDecl:            "IndexerDecl",
	KindOperatorDecl:           "OperatorDecl",
	KindAccessorList:           "AccessorList",
	KindAccessor:               "Accessor",
	KindEnumMember:             "EnumMember",
	KindAttributeList:          "AttributeList",
	KindAttribute:              "Attribute",
	KindAttributeArgument:      "AttributeArgument",
	KindModifiers:              "Modifiers",
	KindModifier:               "Modifier",
	KindTypeParameters:         "TypeParameters",
	KindBaseList:               "BaseList",
	KindBaseType:               "BaseType",
	KindConstraintClause:       "ConstraintClause",
	KindType:                   "Type",
	KindParameters:             "Parameters",
	KindParameter:              "Parameter",
	KindArguments:              "Arguments",
	KindBlock:                  "Block",
	KindStatement:              "Statement",
	KindExpressionBody:         "ExpressionBody",
	KindInitializer:            "Initializer",
	KindIdentifier:             "Identifier",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsTypeDecl reports whether the kind declares a named type.
func (k NodeKind) IsTypeDecl() bool {
	switch k {
	case KindClassDecl, KindStructDecl, KindInterfaceDecl, KindEnumDecl,
		KindRecordDecl, KindDelegateDecl:
		return true
	}
	return false
}

type Error struct {
	Message  string
	Expected []TokenKind
	Got      *Token
}

type Node struct {
	Kind     NodeKind
	Span     Span
	Children []*Node
	Token    *Token
	Error    *Error
}

func (n *Node) AddChild(child *Node) {
	if child != nil {
		n.Children = append(n.Children, child)
	}
}

func (n *Node) IsError() bool {
	return n.Kind == KindError
}

func (n *Node) FirstChildOfKind(kind NodeKind) *Node {
	for _, child := range n.Children {
		if child.Kind == kind {
			return child
		}
	}
	return nil
}

func (n *Node) ChildrenOfKind(kind NodeKind) []*Node {
	var result []*Node
	for _, child := range n.Children {
		if child.Kind == kind {
			result = append(result, child)
		}
	}
	return result
}

func (n *Node) TokenLiteral() string {
	if n.Token != nil {
		return n.Token.Literal
	}
	return ""
}

// Errors returns every error node in the subtree, in source order.
func (n *Node) Errors() []*Node {
	var result []*Node
	var walk func(*Node)
	walk = func(node *Node) {
		if node.IsError() {
			result = append(result, node)
		}
		for _, child := range node.Children {
			walk(child)
		}
	}
	walk(n)
	return result
}

func (n *Node) String() string {
	var sb strings.Builder
	n.writeIndent(&sb, 0, false)
	return sb.String()
}

func (n *Node) StringWithPositions() string {
	var sb strings.Builder
	n.writeIndent(&sb, 0, true)
	return sb.String()
}

func (n *Node) writeIndent(sb *strings.Builder, indent int, showPositions bool) {
	sb.WriteString(strings.Repeat("  ", indent))
	sb.WriteString(n.Kind.String())
	if showPositions {
		sb.WriteString(" [" + n.Span.Start.String() + "-" + n.Span.End.String() + "]")
	}
	if n.Token != nil {
		sb.WriteString(" " + n.Token.Literal)
	}
	if n.Error != nil {
		sb.WriteString(" ERROR: " + n.Error.Message)
	}
	sb.WriteString("\n")

	for _, child := range n.Children {
		child.writeIndent(sb, indent+1, showPositions)
	}
}
