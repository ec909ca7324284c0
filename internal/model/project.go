package model

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/juju/errors"
)

// ProjectFileName is the project file Rojo reads from a project directory
const ProjectFileName = "default.project.json"

// RojoProject is the content of a Rojo project file
type RojoProject struct {
	Name string       `json:"name"`
	Tree *ProjectNode `json:"tree"`
}

// ProjectNode is one entry of a Rojo project tree. Keys starting with "$"
// are metadata; every other key is a child node.
type ProjectNode struct {
	ClassName    string
	Path         string
	OptionalPath bool // "$path": {"optional": ...}
	Properties   map[string]interface{}
	Children     map[string]*ProjectNode
}

// UnmarshalJSON splits "$"-prefixed metadata from child nodes
func (n *ProjectNode) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Annotate(err, "decoding project node")
	}

	n.Children = make(map[string]*ProjectNode)
	for key, value := range raw {
		switch key {
		case "$className":
			if err := json.Unmarshal(value, &n.ClassName); err != nil {
				return errors.Annotate(err, "decoding $className")
			}
		case "$path":
			n.Path, n.OptionalPath = decodePath(value)
		case "$properties":
			if err := json.Unmarshal(value, &n.Properties); err != nil {
				return errors.Annotate(err, "decoding $properties")
			}
		default:
			if strings.HasPrefix(key, "$") {
				continue
			}
			child := &ProjectNode{}
			if err := json.Unmarshal(value, child); err != nil {
				return errors.Annotatef(err, "decoding child %q", key)
			}
			n.Children[key] = child
		}
	}
	return nil
}

type optionalPath struct {
	Optional string `json:"optional"`
}

// decodePath reads a "$path" value. Values that are neither a string nor the
// optional object form are ignored.
func decodePath(value json.RawMessage) (string, bool) {
	var path string
	if err := json.Unmarshal(value, &path); err == nil {
		return path, false
	}
	var opt optionalPath
	if err := json.Unmarshal(value, &opt); err == nil && opt.Optional != "" {
		return opt.Optional, true
	}
	return "", false
}

// MarshalJSON writes the node back in Rojo's layout
func (n *ProjectNode) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(n.Children)+3)
	if n.ClassName != "" {
		out["$className"] = n.ClassName
	}
	if n.Path != "" {
		if n.OptionalPath {
			out["$path"] = optionalPath{Optional: n.Path}
		} else {
			out["$path"] = n.Path
		}
	}
	if len(n.Properties) > 0 {
		out["$properties"] = n.Properties
	}
	for name, child := range n.Children {
		out[name] = child
	}
	return json.Marshal(out)
}

// ChildNames returns child keys sorted alphabetically
func (n *ProjectNode) ChildNames() []string {
	names := make([]string, 0, len(n.Children))
	for name := range n.Children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ToInstance converts the project tree into an instance hierarchy rooted at
// a DataModel. Nodes without $className take their name when it is a known
// service and fall back to Folder.
func (p *RojoProject) ToInstance() *Instance {
	if p.Tree == nil {
		return NewInstance("DataModel", p.Name)
	}
	return p.Tree.toInstance(p.Name, "DataModel")
}

func (n *ProjectNode) toInstance(name, fallbackClass string) *Instance {
	className := n.ClassName
	if className == "" {
		className = fallbackClass
	}
	inst := NewInstance(className, name)
	for k, v := range n.Properties {
		inst.Properties[k] = v
	}
	for _, childName := range n.ChildNames() {
		fallback := "Folder"
		if s, err := ParseService(childName); err == nil {
			fallback = string(s)
		}
		inst.AddChild(n.Children[childName].toInstance(childName, fallback))
	}
	return inst
}

// Summary describes the project by name, top-level entries and instance count
func (p *RojoProject) Summary() *ProjectSummary {
	root := p.ToInstance()
	services := make([]string, 0, len(root.Children))
	for _, child := range root.Children {
		services = append(services, child.Name)
	}
	return &ProjectSummary{
		Name:      p.Name,
		Services:  services,
		Instances: len(root.Descendants()),
	}
}
