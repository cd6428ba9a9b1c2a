package typetree

// Kind classifies the shape of a type signature.
type Kind int

const (
	KindUnknown Kind = iota
	KindPrimitive
	KindObject
	KindArray
	KindUnion
	KindAlias
)

func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindUnion:
		return "union"
	case KindAlias:
		return "alias"
	default:
		return "unknown"
	}
}

// Member is one named member of an object shape.
type Member struct {
	Name        string
	Signature   string
	Optional    bool
	Deprecated  bool
	Description string
	Default     string
}

// Shape is the classification of a single signature. Exactly the fields
// relevant to the Kind are populated: Members for objects, Element for
// arrays, Variants for unions, Target for aliases whose definition is
// known to the parser.
type Shape struct {
	Kind     Kind
	Members  []Member
	Element  string
	Variants []string
	Target   string
}

// ShapeParser classifies raw signature text. It sits at the boundary to
// the external source-analysis toolchain; implementations backed by a
// real type checker can be substituted for the default textual parser.
// Parse returns an error for text it cannot classify — the Decomposer
// turns that into a ParseFailed leaf rather than propagating it.
type ShapeParser interface {
	Parse(signature string) (Shape, error)
}
