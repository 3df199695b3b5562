package mapper

import (
	"context"
	"path/filepath"

	"github.com/specialistvlad/forge/internal/model"
)

// DerivedDirectoryName is the per-project directory holding generated files.
const DerivedDirectoryName = "Derived"

// DeleteDerivedDirectory requests the removal of the project's derived
// directory so every generation starts from a clean slate.
type DeleteDerivedDirectory struct{}

// Map implements ProjectMapper.
func (DeleteDerivedDirectory) Map(_ context.Context, p *model.Project) (*model.Project, []SideEffect, error) {
	return p, []SideEffect{{Kind: SideEffectDelete, Path: filepath.Join(p.Path, DerivedDirectoryName)}}, nil
}
