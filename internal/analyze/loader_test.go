package analyze

import (
	"go/ast"
	"go/parser"
	"go/token"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const storePkg = "equals-verifier/store"

func TestAnalyzer_LoadPackages(t *testing.T) {
	analyzer := NewAnalyzer("")
	index, err := analyzer.LoadPackages(storePkg, "equals-verifier/warehouse")
	require.NoError(t, err)
	require.NotNil(t, index)
	assert.Same(t, index, analyzer.Index())

	// Check that packages were loaded
	assert.Contains(t, index.Packages, storePkg)
	assert.Contains(t, index.Packages, "equals-verifier/warehouse")

	// Only annotated declarations are indexed
	assert.Contains(t, index.Types, TypeID{PkgPath: storePkg, Name: "Customer"})
	assert.NotContains(t, index.Types, TypeID{PkgPath: storePkg, Name: "OrderItem"})
	assert.Empty(t, index.Packages["equals-verifier/warehouse"].Types)
}

func TestAnalyzer_FieldDirectives(t *testing.T) {
	index, err := NewAnalyzer("").LoadPackages(storePkg)
	require.NoError(t, err)

	customer := index.GetType(TypeID{PkgPath: storePkg, Name: "Customer"})
	require.NotNil(t, customer)

	assert.Empty(t, customer.Type)
	assert.Equal(t, []string{"Address"}, customer.FieldNames())
	assert.True(t, customer.Fields["Address"].Has("nonnull"))
	assert.Equal(t, "Customer", customer.ID.Name)
	assert.Contains(t, customer.Pos.Filename, "types.go")
}

func TestAnalyzer_VarDirectives(t *testing.T) {
	index, err := NewAnalyzer("").LoadPackages(storePkg)
	require.NoError(t, err)

	id := TypeID{PkgPath: storePkg, Name: "DefaultCarrier"}
	require.Contains(t, index.Vars, id)
	assert.Equal(t, Directives{"nonnull"}, index.Vars[id].Directives)
	assert.Equal(t, []TypeID{id}, index.SortedVars())
}

func TestAnalyzer_LoadErrors(t *testing.T) {
	_, err := NewAnalyzer("").LoadPackages("equals-verifier/does/not/exist")
	require.Error(t, err)
}

type boxed[T any] struct{ V T }

func TestTypeIDOf(t *testing.T) {
	id := TypeIDOf(reflect.TypeFor[boxed[int]]())
	assert.Equal(t, TypeID{PkgPath: "equals-verifier/internal/analyze", Name: "boxed"}, id)
	assert.Equal(t, "equals-verifier/internal/analyze.boxed", id.String())
	assert.Equal(t, "int", TypeIDOf(reflect.TypeFor[int]()).String())
}

const directiveSrc = `package p

// Money has a doc comment.
//
//verify:nonnull
type Money struct {
	// Amount in cents.
	//verify:nullable, transient
	Amount *int64
	Currency string //verify:transient
	A, B     *string //verify:nullable
	Embedded
	*Other
	//verify:nonnull
	Generic[int]
}

type (
	//verify:nonnull
	Grouped struct{}
	Plain   struct{}
)

//verify:transient
var Counter int
`

func parseSource(t *testing.T) *ast.File {
	t.Helper()

	file, err := parser.ParseFile(token.NewFileSet(), "p.go", directiveSrc, parser.ParseComments)
	require.NoError(t, err)
	return file
}

func TestParseDirectives(t *testing.T) {
	file := parseSource(t)

	money := file.Decls[0].(*ast.GenDecl)
	spec := money.Specs[0].(*ast.TypeSpec)
	assert.Equal(t, Directives{"nonnull"}, ParseDirectives(declDoc(money), spec.Doc, spec.Comment))

	fields := spec.Type.(*ast.StructType).Fields.List
	tests := []struct {
		name  string
		field *ast.Field
		names []string
		want  Directives
	}{
		{name: "doc comment", field: fields[0], names: []string{"Amount"}, want: Directives{"nullable", "transient"}},
		{name: "trailing comment", field: fields[1], names: []string{"Currency"}, want: Directives{"transient"}},
		{name: "several names", field: fields[2], names: []string{"A", "B"}, want: Directives{"nullable"}},
		{name: "embedded", field: fields[3], names: []string{"Embedded"}},
		{name: "embedded pointer", field: fields[4], names: []string{"Other"}},
		{name: "embedded generic", field: fields[5], names: []string{"Generic"}, want: Directives{"nonnull"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.names, fieldNames(tt.field))
			assert.Equal(t, tt.want, ParseDirectives(tt.field.Doc, tt.field.Comment))
		})
	}
}

func TestParseDirectives_GroupedDecl(t *testing.T) {
	file := parseSource(t)

	grouped := file.Decls[1].(*ast.GenDecl)
	assert.Nil(t, declDoc(grouped))

	first := grouped.Specs[0].(*ast.TypeSpec)
	second := grouped.Specs[1].(*ast.TypeSpec)
	assert.Equal(t, Directives{"nonnull"}, ParseDirectives(first.Doc, first.Comment))
	assert.Empty(t, ParseDirectives(second.Doc, second.Comment))

	counter := file.Decls[2].(*ast.GenDecl)
	assert.Equal(t, Directives{"transient"}, ParseDirectives(declDoc(counter)))
}
