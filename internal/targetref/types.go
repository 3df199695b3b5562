package targetref

// Reference identifies a target by its containing project path and its name.
type Reference struct {
	ProjectPath string
	Name        string
}

// New creates a reference to the target name inside the project at path.
func New(projectPath, name string) Reference {
	return Reference{ProjectPath: projectPath, Name: name}
}

// IsLocal returns true if the reference does not name a project.
func (r Reference) IsLocal() bool {
	return r.ProjectPath == ""
}
