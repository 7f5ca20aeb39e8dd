package config

import "fmt"

// DefaultSourceRoot is the conventional Java source root.
const DefaultSourceRoot = "src/main/java"

// DefaultStructureName names the built-in project-structure template.
const DefaultStructureName = "Spring Boot Standard"

// NodeType classifies a project-structure node.
type NodeType string

const (
	NodeDirectory  NodeType = "DIRECTORY"
	NodeJavaSource NodeType = "JAVA_SOURCE"
	NodeResource   NodeType = "RESOURCE"
	NodeConfig     NodeType = "CONFIG"
	NodeTest       NodeType = "TEST"
)

// ProjectStructureNode is a directory in a project-structure template.
type ProjectStructureNode struct {
	Name     string                  `json:"name"`
	Path     string                  `json:"path"`
	Type     NodeType                `json:"type"`
	Children []*ProjectStructureNode `json:"children,omitempty"`
}

// ProjectStructureConfig is a named project layout. Its JAVA_SOURCE nodes
// mark the directories searched as the source root.
type ProjectStructureConfig struct {
	ConfigName string                  `json:"configName"`
	RootNodes  []*ProjectStructureNode `json:"rootNodes"`
}

// DefaultProjectStructure returns the standard Maven/Gradle layout.
func DefaultProjectStructure() *ProjectStructureConfig {
	return &ProjectStructureConfig{
		ConfigName: DefaultStructureName,
		RootNodes: []*ProjectStructureNode{
			{
				Name: "src",
				Path: "src",
				Type: NodeDirectory,
				Children: []*ProjectStructureNode{
					{
						Name: "main",
						Path: "src/main",
						Type: NodeDirectory,
						Children: []*ProjectStructureNode{
							{Name: "java", Path: "src/main/java", Type: NodeJavaSource},
							{Name: "resources", Path: "src/main/resources", Type: NodeResource},
						},
					},
					{
						Name: "test",
						Path: "src/test",
						Type: NodeDirectory,
						Children: []*ProjectStructureNode{
							{Name: "java", Path: "src/test/java", Type: NodeTest},
						},
					},
				},
			},
		},
	}
}

// Walk visits every node depth first.
func (c *ProjectStructureConfig) Walk(fn func(*ProjectStructureNode)) {
	var walk func(nodes []*ProjectStructureNode)
	walk = func(nodes []*ProjectStructureNode) {
		for _, n := range nodes {
			if n == nil {
				continue
			}
			fn(n)
			walk(n.Children)
		}
	}
	walk(c.RootNodes)
}

// SourceRoots returns the paths of all JAVA_SOURCE nodes, falling back to
// DefaultSourceRoot when the template declares none.
func (c *ProjectStructureConfig) SourceRoots() []string {
	var roots []string
	c.Walk(func(n *ProjectStructureNode) {
		if n.Type == NodeJavaSource && n.Path != "" {
			roots = append(roots, n.Path)
		}
	})
	if len(roots) == 0 {
		return []string{DefaultSourceRoot}
	}
	return roots
}

// Directories returns every node path, parents before children.
func (c *ProjectStructureConfig) Directories() []string {
	var dirs []string
	c.Walk(func(n *ProjectStructureNode) {
		if n.Path != "" {
			dirs = append(dirs, n.Path)
		}
	})
	return dirs
}

// FindStructure returns the template with the given name.
func FindStructure(templates []*ProjectStructureConfig, name string) (*ProjectStructureConfig, error) {
	for _, t := range templates {
		if t.ConfigName == name {
			return t, nil
		}
	}
	return nil, fmt.Errorf("project structure %q not found", name)
}
