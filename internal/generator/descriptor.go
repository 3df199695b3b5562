package generator

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"

	"github.com/specialistvlad/forge/internal/model"
)

// WorkspaceExtension is the extension of workspace descriptors.
const WorkspaceExtension = ".xcworkspace"

const descriptorFile = "contents.xcworkspacedata"

type workspaceXML struct {
	XMLName  xml.Name     `xml:"Workspace"`
	Version  string       `xml:"version,attr"`
	FileRefs []fileRefXML `xml:"FileRef"`
}

type fileRefXML struct {
	Location string `xml:"location,attr"`
}

// descriptor renders the workspace descriptor listing the IDE project of
// every project, relative to dir.
func descriptor(dir string, projects []*model.Project) ([]byte, error) {
	doc := workspaceXML{Version: "1.0"}
	for _, p := range projects {
		rel, err := filepath.Rel(dir, p.XcodeProjPath)
		if err != nil {
			return nil, err
		}
		doc.FileRefs = append(doc.FileRefs, fileRefXML{Location: "group:" + filepath.ToSlash(rel)})
	}

	body, err := xml.MarshalIndent(doc, "", "   ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), append(body, '\n')...), nil
}

// writeDescriptor writes <dir>/<name>.xcworkspace and returns its path.
func writeDescriptor(dir, name string, projects []*model.Project) (string, error) {
	contents, err := descriptor(dir, projects)
	if err != nil {
		return "", fmt.Errorf("failed to render workspace descriptor: %w", err)
	}

	path := filepath.Join(dir, name+WorkspaceExtension)
	if err := os.MkdirAll(path, 0o755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := os.WriteFile(filepath.Join(path, descriptorFile), contents, 0o644); err != nil {
		return "", fmt.Errorf("failed to write workspace descriptor: %w", err)
	}
	return path, nil
}
