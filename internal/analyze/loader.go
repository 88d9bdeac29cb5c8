package analyze

import (
	"fmt"
	"go/ast"
	"go/token"
	"log/slog"
	"strings"

	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes

// DirectivePrefix starts every directive comment, e.g. //verify:nonnull.
// Several directives may share one line separated by commas.
const DirectivePrefix = "//verify:"

// Analyzer loads Go packages and indexes their directives.
type Analyzer struct {
	index  *DirectiveIndex
	dir    string
	logger *slog.Logger
}

// NewAnalyzer creates a new Analyzer resolving patterns relative to dir;
// an empty dir means the current directory.
func NewAnalyzer(dir string) *Analyzer {
	return &Analyzer{
		index:  NewDirectiveIndex(),
		dir:    dir,
		logger: slog.Default().With(slog.String("component", "analyze")),
	}
}

// LoadPackages loads the specified packages and indexes their directives.
// Patterns are standard Go package patterns (e.g., "./store", "equals-verifier/warehouse").
func (a *Analyzer) LoadPackages(patterns ...string) (*DirectiveIndex, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  a.dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %v", errs)
	}

	for _, pkg := range pkgs {
		a.processPackage(pkg)
	}

	return a.index, nil
}

// Index returns the current directive index.
func (a *Analyzer) Index() *DirectiveIndex {
	return a.index
}

// processPackage indexes the declarations of a loaded package.
func (a *Analyzer) processPackage(pkg *packages.Package) {
	pkgInfo := &PackageInfo{
		Path: pkg.PkgPath,
		Name: pkg.Name,
	}

	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok {
				continue
			}

			switch gen.Tok {
			case token.TYPE:
				for _, spec := range gen.Specs {
					info := a.typeDirectives(pkg, gen, spec.(*ast.TypeSpec))
					if info.IsEmpty() {
						continue
					}

					a.index.Types[info.ID] = info
					pkgInfo.Types = append(pkgInfo.Types, info.ID)
				}

			case token.VAR:
				for _, spec := range gen.Specs {
					a.varDirectives(pkg, gen, spec.(*ast.ValueSpec))
				}
			}
		}
	}

	a.logger.Debug("indexed package", "package", pkg.PkgPath, "types", len(pkgInfo.Types))
	a.index.Packages[pkg.PkgPath] = pkgInfo
}

func (a *Analyzer) typeDirectives(pkg *packages.Package, gen *ast.GenDecl, spec *ast.TypeSpec) *TypeDirectives {
	info := &TypeDirectives{
		ID:     TypeID{PkgPath: pkg.PkgPath, Name: spec.Name.Name},
		Pos:    pkg.Fset.Position(spec.Name.Pos()),
		Type:   ParseDirectives(declDoc(gen), spec.Doc, spec.Comment),
		Fields: make(map[string]Directives),
	}

	st, ok := spec.Type.(*ast.StructType)
	if !ok {
		return info
	}

	for _, field := range st.Fields.List {
		directives := ParseDirectives(field.Doc, field.Comment)
		if len(directives) == 0 {
			continue
		}

		for _, name := range fieldNames(field) {
			info.Fields[name] = append(info.Fields[name], directives...)
		}
	}

	return info
}

func (a *Analyzer) varDirectives(pkg *packages.Package, gen *ast.GenDecl, spec *ast.ValueSpec) {
	directives := ParseDirectives(declDoc(gen), spec.Doc, spec.Comment)
	if len(directives) == 0 {
		return
	}

	for _, name := range spec.Names {
		id := TypeID{PkgPath: pkg.PkgPath, Name: name.Name}
		a.index.Vars[id] = &VarDirectives{
			ID:         id,
			Pos:        pkg.Fset.Position(name.Pos()),
			Directives: directives,
		}
	}
}

// declDoc returns the doc of an unparenthesized declaration, which belongs
// to its single spec.
func declDoc(gen *ast.GenDecl) *ast.CommentGroup {
	if gen.Lparen.IsValid() {
		return nil
	}

	return gen.Doc
}

// fieldNames returns the declared names of a field, or the type name for an
// embedded field.
func fieldNames(field *ast.Field) []string {
	if len(field.Names) > 0 {
		names := make([]string, 0, len(field.Names))
		for _, n := range field.Names {
			names = append(names, n.Name)
		}
		return names
	}

	if name := embeddedName(field.Type); name != "" {
		return []string{name}
	}

	return nil
}

func embeddedName(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.Ident:
		return e.Name
	case *ast.StarExpr:
		return embeddedName(e.X)
	case *ast.SelectorExpr:
		return e.Sel.Name
	case *ast.IndexExpr:
		return embeddedName(e.X)
	case *ast.IndexListExpr:
		return embeddedName(e.X)
	}

	return ""
}

// ParseDirectives collects the directive names of the comment groups. Raw
// comments are used because CommentGroup.Text drops directive lines.
func ParseDirectives(groups ...*ast.CommentGroup) Directives {
	var out Directives

	for _, group := range groups {
		if group == nil {
			continue
		}

		for _, comment := range group.List {
			rest, ok := strings.CutPrefix(comment.Text, DirectivePrefix)
			if !ok {
				continue
			}

			for _, name := range strings.Split(rest, ",") {
				if name = strings.TrimSpace(name); name != "" && !out.Has(name) {
					out = append(out, name)
				}
			}
		}
	}

	return out
}
