package typetree

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrimitives(t *testing.T) {
	p := NewSignatureParser()
	for _, sig := range []string{"string", "number", "boolean", "null", "undefined", "any", "never", "'literal'", "\"literal\"", "42", "-3.5", "true", "false"} {
		shape, err := p.Parse(sig)
		require.NoError(t, err, sig)
		assert.Equal(t, KindPrimitive, shape.Kind, sig)
	}
}

func TestParseReference(t *testing.T) {
	p := NewSignatureParser()
	for _, sig := range []string{"Foo", "pkg.Foo", "Foo2", "$internal", "Map<string>"} {
		shape, err := p.Parse(sig)
		require.NoError(t, err, sig)
		assert.Equal(t, KindAlias, shape.Kind, sig)
	}
}

func TestParseObject(t *testing.T) {
	p := NewSignatureParser()
	shape, err := p.Parse("{ a: string, b?: number; c: { d: boolean } }")
	require.NoError(t, err)
	require.Equal(t, KindObject, shape.Kind)
	require.Len(t, shape.Members, 3)

	assert.Equal(t, "a", shape.Members[0].Name)
	assert.Equal(t, "string", shape.Members[0].Signature)
	assert.False(t, shape.Members[0].Optional)

	assert.Equal(t, "b", shape.Members[1].Name)
	assert.True(t, shape.Members[1].Optional)

	assert.Equal(t, "c", shape.Members[2].Name)
	assert.Equal(t, "{ d: boolean }", shape.Members[2].Signature)
}

func TestParseEmptyObject(t *testing.T) {
	p := NewSignatureParser()
	shape, err := p.Parse("{}")
	require.NoError(t, err)
	assert.Equal(t, KindObject, shape.Kind)
	assert.Empty(t, shape.Members)
}

func TestParseArrays(t *testing.T) {
	p := NewSignatureParser()

	shape, err := p.Parse("string[]")
	require.NoError(t, err)
	assert.Equal(t, KindArray, shape.Kind)
	assert.Equal(t, "string", shape.Element)

	shape, err = p.Parse("Array<{ a: string }>")
	require.NoError(t, err)
	assert.Equal(t, KindArray, shape.Kind)
	assert.Equal(t, "{ a: string }", shape.Element)

	shape, err = p.Parse("{ a: string }[]")
	require.NoError(t, err)
	assert.Equal(t, KindArray, shape.Kind)
	assert.Equal(t, "{ a: string }", shape.Element)
}

func TestParseUnion(t *testing.T) {
	p := NewSignatureParser()
	shape, err := p.Parse("string | number | 'none'")
	require.NoError(t, err)
	require.Equal(t, KindUnion, shape.Kind)
	assert.Equal(t, []string{"string", "number", "'none'"}, shape.Variants)
}

func TestParseUnionInsideObjectIsNotSplit(t *testing.T) {
	p := NewSignatureParser()
	shape, err := p.Parse("{ a: string | number }")
	require.NoError(t, err)
	require.Equal(t, KindObject, shape.Kind)
	require.Len(t, shape.Members, 1)
	assert.Equal(t, "string | number", shape.Members[0].Signature)
}

func TestParseParenthesizedGroup(t *testing.T) {
	p := NewSignatureParser()
	shape, err := p.Parse("(string | number)")
	require.NoError(t, err)
	assert.Equal(t, KindUnion, shape.Kind)

	shape, err = p.Parse("(string | number)[]")
	require.NoError(t, err)
	assert.Equal(t, KindArray, shape.Kind)
	assert.Equal(t, "(string | number)", shape.Element)
}

func TestParseMemberDocComment(t *testing.T) {
	p := NewSignatureParser()
	shape, err := p.Parse("{ /** The display name. */ name: string, /** @deprecated use name */ title?: string }")
	require.NoError(t, err)
	require.Len(t, shape.Members, 2)

	assert.Equal(t, "The display name.", shape.Members[0].Description)
	assert.False(t, shape.Members[0].Deprecated)

	assert.True(t, shape.Members[1].Deprecated)
	assert.Equal(t, "use name", shape.Members[1].Description)
	assert.True(t, shape.Members[1].Optional)
}

func TestParseMemberDefault(t *testing.T) {
	p := NewSignatureParser()
	shape, err := p.Parse("{ limit: number = 25, label: string = 'all' }")
	require.NoError(t, err)
	require.Len(t, shape.Members, 2)
	assert.Equal(t, "number", shape.Members[0].Signature)
	assert.Equal(t, "25", shape.Members[0].Default)
	assert.Equal(t, "'all'", shape.Members[1].Default)
}

func TestParseQuotedMemberName(t *testing.T) {
	p := NewSignatureParser()
	shape, err := p.Parse(`{ "content-type": string }`)
	require.NoError(t, err)
	require.Len(t, shape.Members, 1)
	assert.Equal(t, "content-type", shape.Members[0].Name)
}

func TestParseErrors(t *testing.T) {
	p := NewSignatureParser()
	for _, sig := range []string{"", "   ", "{ a: string", "{ a }", "a: }{", "'unterminated", "???", "{ : string }"} {
		_, err := p.Parse(sig)
		require.Error(t, err, "%q should not classify", sig)
		assert.True(t, errors.Is(err, ErrParse), sig)
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, Normalize("{a:string}"), Normalize("{ a :  string }"))
	assert.Equal(t, Normalize("{a:string}"), Normalize("{\n  a: string\n}"))
	assert.NotEqual(t, Normalize("{ a: string }"), Normalize("{ b: string }"))
	// Whitespace inside quoted literals is significant.
	assert.NotEqual(t, Normalize("'a b'"), Normalize("'ab'"))
	// A space separating two word tokens is significant.
	assert.NotEqual(t, Normalize("ab"), Normalize("a b"))
	assert.Empty(t, Normalize("   \t\n"))
}
