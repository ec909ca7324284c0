package model

import (
	"encoding/json"
	"strings"

	"github.com/juju/errors"
)

// Service is a top-level DataModel service the conversion can be limited to.
type Service string

const (
	ServiceWorkspace           Service = "Workspace"
	ServiceReplicatedStorage   Service = "ReplicatedStorage"
	ServiceReplicatedFirst     Service = "ReplicatedFirst"
	ServiceServerScriptService Service = "ServerScriptService"
	ServiceServerStorage       Service = "ServerStorage"
	ServiceStarterPlayer       Service = "StarterPlayer"
)

var allServices = []Service{
	ServiceWorkspace,
	ServiceReplicatedStorage,
	ServiceReplicatedFirst,
	ServiceServerScriptService,
	ServiceServerStorage,
	ServiceStarterPlayer,
}

// AllServices returns the supported services in display order.
func AllServices() []Service {
	out := make([]Service, len(allServices))
	copy(out, allServices)
	return out
}

// String returns the service class name
func (s Service) String() string {
	return string(s)
}

// ParseService matches name against the supported services, ignoring case.
func ParseService(name string) (Service, error) {
	trimmed := strings.TrimSpace(name)
	for _, s := range allServices {
		if strings.EqualFold(string(s), trimmed) {
			return s, nil
		}
	}
	return "", errors.NotValidf("service %q", name)
}

// ServiceSelection records which services are included in a conversion.
// The zero value selects nothing.
type ServiceSelection struct {
	selected map[Service]bool
}

// NewServiceSelection returns a selection with every service set to all.
func NewServiceSelection(all bool) ServiceSelection {
	sel := ServiceSelection{selected: make(map[Service]bool, len(allServices))}
	for _, s := range allServices {
		sel.selected[s] = all
	}
	return sel
}

// SelectionFromNames builds a selection from service names. Unknown names are
// rejected.
func SelectionFromNames(names []string) (ServiceSelection, error) {
	sel := NewServiceSelection(false)
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		s, err := ParseService(name)
		if err != nil {
			return ServiceSelection{}, err
		}
		sel.Set(s, true)
	}
	return sel, nil
}

// Set marks a service as included or excluded.
func (sel *ServiceSelection) Set(s Service, on bool) {
	if sel.selected == nil {
		sel.selected = make(map[Service]bool, len(allServices))
	}
	sel.selected[s] = on
}

// IsSelected reports whether s is included.
func (sel ServiceSelection) IsSelected(s Service) bool {
	return sel.selected[s]
}

// Selected returns the included services in display order.
func (sel ServiceSelection) Selected() []Service {
	var out []Service
	for _, s := range allServices {
		if sel.selected[s] {
			out = append(out, s)
		}
	}
	return out
}

// Names returns the included service names in display order.
func (sel ServiceSelection) Names() []string {
	services := sel.Selected()
	names := make([]string, 0, len(services))
	for _, s := range services {
		names = append(names, string(s))
	}
	return names
}

// IsEmpty reports whether no service is included.
func (sel ServiceSelection) IsEmpty() bool {
	return len(sel.Selected()) == 0
}

// MarshalArgument encodes the selection as the JSON array passed to the
// conversion script, e.g. ["Workspace","ServerStorage"].
func (sel ServiceSelection) MarshalArgument() (string, error) {
	data, err := json.Marshal(sel.Names())
	if err != nil {
		return "", errors.Annotate(err, "encoding service list")
	}
	return string(data), nil
}
