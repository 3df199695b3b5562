package manifest

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/specialistvlad/forge/internal/model"
)

// XcodeProjectName evaluates the configured xcode_project_name template for
// a project. Without a template the project name is returned unchanged.
func XcodeProjectName(cfg *model.Config, projectName string) (string, error) {
	if cfg == nil || cfg.GenerationOptions.XcodeProjectName == nil {
		return projectName, nil
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"project_name": cty.StringVal(projectName),
		},
	}
	v, diags := cfg.GenerationOptions.XcodeProjectName.Value(evalCtx)
	if diags.HasErrors() {
		return "", fmt.Errorf("failed to evaluate xcode_project_name: %w", diags)
	}
	if v.IsNull() {
		return projectName, nil
	}

	v, err := convert.Convert(v, cty.String)
	if err != nil {
		return "", fmt.Errorf("xcode_project_name must be a string: %w", err)
	}
	if !v.IsWhollyKnown() || v.IsNull() {
		return "", fmt.Errorf("xcode_project_name must be known")
	}
	return v.AsString(), nil
}
