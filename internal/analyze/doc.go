// Package analyze provides package loading and directive extraction.
//
// It uses golang.org/x/tools/go/packages with the AST to find //verify:
// directives attached to type declarations, struct fields and package
// level variables. The result is an index the annotation cache consults
// alongside struct tags.
//
// Key types:
//   - TypeID: package import path + declared name
//   - TypeDirectives: directives of a type and of each of its fields
//   - DirectiveIndex: all directives found in the loaded packages
package analyze
