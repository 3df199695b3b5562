package manifest

import (
	"github.com/hashicorp/hcl/v2"
)

// File names forge looks for.
const (
	ProjectFile   = "Project.hcl"
	WorkspaceFile = "Workspace.hcl"
	ConfigFile    = "Config.hcl"
)

// --- Project.hcl ---

type projectRoot struct {
	Project *projectBlock `hcl:"project,block"`
	Remain  hcl.Body      `hcl:",remain"`
}

type projectBlock struct {
	Name             string         `hcl:"name,label"`
	OrganizationName string         `hcl:"organization_name,optional"`
	Targets          []*targetBlock `hcl:"target,block"`
	Schemes          []*schemeBlock `hcl:"scheme,block"`
}

type targetBlock struct {
	Name             string             `hcl:"name,label"`
	Platform         string             `hcl:"platform"`
	Product          string             `hcl:"product"`
	ProductName      string             `hcl:"product_name,optional"`
	BundleID         string             `hcl:"bundle_id,optional"`
	DeploymentTarget string             `hcl:"deployment_target,optional"`
	InfoPlist        string             `hcl:"info_plist,optional"`
	Entitlements     string             `hcl:"entitlements,optional"`
	Sources          []string           `hcl:"sources,optional"`
	Resources        []string           `hcl:"resources,optional"`
	Dependencies     []*dependencyBlock `hcl:"dependency,block"`
}

type dependencyBlock struct {
	Kind    string `hcl:"kind,label"`
	Name    string `hcl:"name,label"`
	Path    string `hcl:"path,optional"`
	Status  string `hcl:"status,optional"`
	Linking string `hcl:"linking,optional"`
}

type schemeBlock struct {
	Name         string   `hcl:"name,label"`
	Shared       *bool    `hcl:"shared,optional"`
	BuildTargets []string `hcl:"build_targets,optional"`
	TestTargets  []string `hcl:"test_targets,optional"`
}

// --- Workspace.hcl ---

type workspaceRoot struct {
	Workspace *workspaceBlock `hcl:"workspace,block"`
	Remain    hcl.Body        `hcl:",remain"`
}

type workspaceBlock struct {
	Name     string   `hcl:"name,label"`
	Projects []string `hcl:"projects"`
}

// --- Config.hcl ---

type configRoot struct {
	GenerationOptions *generationOptionsBlock `hcl:"generation_options,block"`
	Remain            hcl.Body                `hcl:",remain"`
}

type generationOptionsBlock struct {
	XcodeProjectName            hcl.Expression `hcl:"xcode_project_name,optional"`
	OrganizationName            string         `hcl:"organization_name,optional"`
	DisableAutogeneratedSchemes bool           `hcl:"disable_autogenerated_schemes,optional"`
}
