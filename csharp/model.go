package csharp

import "github.com/dhamidi/sharpjs/csharp/parser"

// Declaration is a namespace or a type declaration. The set of
// implementations is closed: *Namespace, *Class, *Interface and *Enum.
type Declaration interface {
	DeclarationName() string
	isDeclaration()
}

type Namespace struct {
	Name    string
	Members []Declaration
}

// Class covers classes, structs and records.
type Class struct {
	Name        string
	BaseTypes   []string
	Annotations []Annotation
	Members     []Member
}

type Interface struct {
	Name        string
	BaseTypes   []string
	Annotations []Annotation
	Members     []Member
}

type Enum struct {
	Name        string
	Annotations []Annotation
	Members     []EnumMember
}

// EnumMember is one enumerator. Value holds the verbatim initializer text
// and is empty when the source has none.
type EnumMember struct {
	Name  string
	Value string
}

func (n *Namespace) DeclarationName() string { return n.Name }
func (c *Class) DeclarationName() string     { return c.Name }
func (i *Interface) DeclarationName() string { return i.Name }
func (e *Enum) DeclarationName() string      { return e.Name }

func (*Namespace) isDeclaration() {}
func (*Class) isDeclaration()     {}
func (*Interface) isDeclaration() {}
func (*Enum) isDeclaration()      {}

// Member is one entry of a class or interface body: *Method,
// *Constructor, *Field, *Property or *Nested.
type Member interface {
	isMember()
}

type Method struct {
	Name        string
	Parameters  []Parameter
	IsStatic    bool
	Annotations []Annotation
	// Body holds the verbatim text of each statement of a block body.
	Body []string
	// HasBody is false for abstract and interface methods.
	HasBody bool
	// ExpressionBody is the expression of a "=> expr;" body.
	ExpressionBody string
}

type Constructor struct {
	Parameters  []Parameter
	IsStatic    bool
	Annotations []Annotation
	Body        []string
	HasBody     bool
	// BaseArguments is the argument text of a ": base(...)" initializer,
	// nil when the constructor does not chain to its base.
	BaseArguments *string
}

// Field is a field declaration. Each variable is the verbatim
// "name = initializer" text of one declarator.
type Field struct {
	Annotations []Annotation
	Variables   []string
}

type Property struct {
	Name        string
	Annotations []Annotation
	HasGetter   bool
	HasSetter   bool
}

// Nested is a type declared inside a class body.
type Nested struct {
	Declaration Declaration
}

func (*Method) isMember()      {}
func (*Constructor) isMember() {}
func (*Field) isMember()       {}
func (*Property) isMember()    {}
func (*Nested) isMember()      {}

type Parameter struct {
	Name     string
	Default  string
	IsParams bool
}

// Annotation is one attribute, with each argument kept as source text.
type Annotation struct {
	Name      string
	Arguments []string
}

// Unit is the model of one source file.
type Unit struct {
	Source       string
	Declarations []Declaration
	// Stray lists top-level content that is neither a namespace nor a
	// type declaration, such as top-level statements.
	Stray []Stray
}

type Stray struct {
	Kind     string
	Position parser.Position
	Text     string
}
