package scope

import (
	"github.com/sysmod-lang/sysmod/internal/ast"
	"github.com/sysmod-lang/sysmod/internal/model"
)

// Visible reports whether a member can be seen from outside its owner.
func Visible(d *model.Descriptor) bool {
	return d.Visibility == ast.Public
}

// Inheritable reports whether a member is visible to specializing
// types: anything not private.
func Inheritable(d *model.Descriptor) bool {
	return d.Visibility != ast.Private
}

// Importable reports whether a member can be brought in by an import.
func Importable(d *model.Descriptor) bool {
	return d.Visibility == ast.Public
}
