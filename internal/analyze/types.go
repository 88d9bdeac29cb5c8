package analyze

import (
	"go/token"
	"reflect"
	"slices"
	"sort"

	"equals-verifier/internal/common"
)

// TypeID uniquely identifies a declaration by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "equals-verifier/store"
	Name    string // e.g., "Order"
}

// TypeIDOf returns the TypeID of a named reflect type. Type arguments are
// dropped, so all instantiations of a generic type share one ID.
func TypeIDOf(t reflect.Type) TypeID {
	return TypeID{PkgPath: t.PkgPath(), Name: common.BaseName(t)}
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// Directives lists directive names in source order, e.g. ["nonnull"].
type Directives []string

// Has reports whether name is listed.
func (d Directives) Has(name string) bool {
	return slices.Contains(d, name)
}

// TypeDirectives describes the directives of one type declaration.
type TypeDirectives struct {
	ID     TypeID                // Declared type
	Pos    token.Position        // Position of the type name
	Type   Directives            // Directives on the declaration itself
	Fields map[string]Directives // Directives per struct field
}

// FieldNames returns the names of annotated fields, sorted.
func (t *TypeDirectives) FieldNames() []string {
	names := make([]string, 0, len(t.Fields))
	for name := range t.Fields {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// IsEmpty reports whether neither the type nor any field has a directive.
func (t *TypeDirectives) IsEmpty() bool {
	return len(t.Type) == 0 && len(t.Fields) == 0
}

// VarDirectives describes the directives of one package-level variable.
type VarDirectives struct {
	ID         TypeID
	Pos        token.Position
	Directives Directives
}

// DirectiveIndex holds all directives found in loaded packages.
type DirectiveIndex struct {
	// Types maps TypeID to the directives of every struct or named type.
	Types map[TypeID]*TypeDirectives
	// Vars maps package-level variables to their directives.
	Vars map[TypeID]*VarDirectives
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
}

// NewDirectiveIndex creates a new empty DirectiveIndex.
func NewDirectiveIndex() *DirectiveIndex {
	return &DirectiveIndex{
		Types:    make(map[TypeID]*TypeDirectives),
		Vars:     make(map[TypeID]*VarDirectives),
		Packages: make(map[string]*PackageInfo),
	}
}

// GetType returns the directives for a given TypeID, or nil if not found.
func (x *DirectiveIndex) GetType(id TypeID) *TypeDirectives {
	return x.Types[id]
}

// TypeDirectives returns the directives on the declaration of t.
func (x *DirectiveIndex) TypeDirectives(t reflect.Type) []string {
	if info := x.Types[TypeIDOf(t)]; info != nil {
		return info.Type
	}

	return nil
}

// FieldDirectives returns the directives on field of t. A name that is not
// a struct field of t is looked up among the package-level variables of
// t's package.
func (x *DirectiveIndex) FieldDirectives(t reflect.Type, field string) []string {
	id := TypeIDOf(t)
	if info := x.Types[id]; info != nil {
		if d, ok := info.Fields[field]; ok {
			return d
		}
	}

	if v := x.Vars[TypeID{PkgPath: id.PkgPath, Name: field}]; v != nil {
		return v.Directives
	}

	return nil
}

// SortedTypes returns the IDs of all indexed types ordered by position.
func (x *DirectiveIndex) SortedTypes() []TypeID {
	ids := make([]TypeID, 0, len(x.Types))
	for id := range x.Types {
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool {
		return less(x.Types[ids[i]].Pos, x.Types[ids[j]].Pos)
	})
	return ids
}

// SortedVars returns the IDs of all indexed variables ordered by position.
func (x *DirectiveIndex) SortedVars() []TypeID {
	ids := make([]TypeID, 0, len(x.Vars))
	for id := range x.Vars {
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool {
		return less(x.Vars[ids[i]].Pos, x.Vars[ids[j]].Pos)
	})
	return ids
}

func less(a, b token.Position) bool {
	if a.Filename != b.Filename {
		return a.Filename < b.Filename
	}

	return a.Offset < b.Offset
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path  string   // Import path
	Name  string   // Package name
	Types []TypeID // Types with at least one directive
}
