package model

// Instance is a node of a Roblox instance hierarchy
type Instance struct {
	ClassName  string                 `json:"ClassName"`
	Name       string                 `json:"Name"`
	Properties map[string]interface{} `json:"Properties,omitempty"`
	Children   []*Instance            `json:"Children,omitempty"`
}

// NewInstance creates an instance with no properties or children
func NewInstance(className, name string) *Instance {
	return &Instance{
		ClassName:  className,
		Name:       name,
		Properties: make(map[string]interface{}),
	}
}

// AddChild appends a child instance
func (i *Instance) AddChild(child *Instance) {
	i.Children = append(i.Children, child)
}

// FindFirstChild returns the first direct child with the given name
func (i *Instance) FindFirstChild(name string) *Instance {
	for _, child := range i.Children {
		if child.Name == name {
			return child
		}
	}
	return nil
}

// FindChildrenByClass returns direct children of the given class
func (i *Instance) FindChildrenByClass(className string) []*Instance {
	var found []*Instance
	for _, child := range i.Children {
		if child.ClassName == className {
			found = append(found, child)
		}
	}
	return found
}

// Descendants returns every instance below i in depth-first order
func (i *Instance) Descendants() []*Instance {
	var descendants []*Instance
	for _, child := range i.Children {
		descendants = append(descendants, child)
		descendants = append(descendants, child.Descendants()...)
	}
	return descendants
}

// CountByClass tallies descendants per class name
func (i *Instance) CountByClass() map[string]int {
	counts := make(map[string]int)
	for _, d := range i.Descendants() {
		counts[d.ClassName]++
	}
	return counts
}
