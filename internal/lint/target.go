package lint

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/specialistvlad/forge/internal/fsutil"
	"github.com/specialistvlad/forge/internal/model"
)

var (
	productNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	bundleIDPattern    = regexp.MustCompile(`^[a-zA-Z0-9-.]+$`)
	buildVariable      = regexp.MustCompile(`\$\{[^}]*\}|\$\([^)]*\)`)
)

// TargetLinter checks a single target.
type TargetLinter struct {
	locator fsutil.Locator
}

// NewTargetLinter creates a TargetLinter that checks referenced files through locator.
func NewTargetLinter(locator fsutil.Locator) *TargetLinter {
	return &TargetLinter{locator: locator}
}

// Lint returns every issue found in t.
func (l *TargetLinter) Lint(t *model.Target) Issues {
	var issues Issues
	issues = append(issues, l.productName(t)...)
	issues = append(issues, l.bundleID(t)...)
	issues = append(issues, l.sources(t)...)
	issues = append(issues, l.copiedFiles(t)...)
	issues = append(issues, l.referencedFiles(t)...)
	issues = append(issues, l.resources(t)...)
	issues = append(issues, l.deploymentTarget(t)...)
	issues = append(issues, l.platformProduct(t)...)
	issues = append(issues, l.duplicateDependencies(t)...)
	return issues
}

func (l *TargetLinter) productName(t *model.Target) Issues {
	name := t.ProductName
	if name == "" {
		name = t.Name
	}
	if productNamePattern.MatchString(name) {
		return nil
	}
	return Issues{failure("Invalid product name '%s'. This string must contain only alphanumeric (A-Z,a-z,0-9) and underscore (_) characters.", name)}
}

func (l *TargetLinter) bundleID(t *model.Target) Issues {
	if t.BundleID == "" {
		return nil
	}
	stripped := buildVariable.ReplaceAllString(t.BundleID, "")
	if stripped != "" && bundleIDPattern.MatchString(stripped) {
		return nil
	}
	return Issues{failure("Invalid bundle identifier '%s'. This string must be a uniform type identifier (UTI) that contains only alphanumeric (A-Z,a-z,0-9), hyphen (-), and period (.) characters.", t.BundleID)}
}

func (l *TargetLinter) sources(t *model.Target) Issues {
	if len(t.Sources) > 0 || t.Product == model.ProductBundle {
		return nil
	}
	return Issues{warning("The target %s doesn't contain source files.", t.Name)}
}

func (l *TargetLinter) copiedFiles(t *model.Target) Issues {
	var issues Issues
	for _, r := range t.Resources {
		switch {
		case filepath.Base(r) == "Info.plist":
			issues = append(issues, warning("Info.plist at path %s being copied into the target %s product.", r, t.Name))
		case filepath.Ext(r) == ".entitlements":
			issues = append(issues, warning("Entitlements file at path %s being copied into the target %s product.", r, t.Name))
		}
	}
	return issues
}

func (l *TargetLinter) referencedFiles(t *model.Target) Issues {
	var issues Issues
	if t.InfoPlist != "" && !l.locator.Exists(t.InfoPlist) {
		issues = append(issues, failure("Info.plist file not found at path %s", t.InfoPlist))
	}
	if t.Entitlements != "" && !l.locator.Exists(t.Entitlements) {
		issues = append(issues, failure("Entitlements file not found at path %s", t.Entitlements))
	}
	return issues
}

func (l *TargetLinter) resources(t *model.Target) Issues {
	if len(t.Resources) == 0 {
		return nil
	}

	switch t.Product {
	case model.ProductStaticLibrary, model.ProductDynamicLibrary:
		return Issues{failure("Target %s cannot contain resources. %s targets do not support resources", t.Name, t.Product.Caption())}
	default:
		return nil
	}
}

func (l *TargetLinter) deploymentTarget(t *model.Target) Issues {
	if t.DeploymentTarget == "" {
		return nil
	}
	if !isDeploymentVersion(t.DeploymentTarget) {
		return Issues{failure("The version of deployment target is incorrect")}
	}
	return nil
}

// isDeploymentVersion accepts plain major.minor or major.minor.patch versions.
func isDeploymentVersion(raw string) bool {
	v, err := semver.NewVersion(raw)
	if err != nil || v.Prerelease() != "" || v.Metadata() != "" {
		return false
	}
	// NewVersion also coerces "v1.0" and "14"; only the written form is valid.
	canonical := fmt.Sprintf("%d.%d", v.Major(), v.Minor())
	if strings.Count(raw, ".") == 2 {
		canonical += fmt.Sprintf(".%d", v.Patch())
	}
	return raw == canonical
}

func (l *TargetLinter) platformProduct(t *model.Target) Issues {
	var issues Issues

	switch t.Product {
	case model.ProductWatch2App, model.ProductWatch2Extension:
		if t.Platform != model.PlatformWatchOS {
			issues = append(issues, failure("'%s' for platform '%s' can't have a product type '%s'", t.Name, t.Platform.Caption(), t.Product.Caption()))
		}
	case model.ProductBundle:
		if t.Platform == model.PlatformIOS && len(t.Sources) > 0 {
			issues = append(issues, failure("Target %s cannot contain sources. iOS bundle targets don't support source files", t.Name))
		}
	}
	return issues
}

func (l *TargetLinter) duplicateDependencies(t *model.Target) Issues {
	var issues Issues
	seen := make(map[string]int, len(t.Dependencies))
	for _, d := range t.Dependencies {
		key := d.String()
		seen[key]++
		if seen[key] == 2 {
			issues = append(issues, warning("Target %s has duplicate '%s' dependency specified", t.Name, key))
		}
	}
	return issues
}
