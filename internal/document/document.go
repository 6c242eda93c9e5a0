// Package document describes what a workspace tab shows: one view onto the
// tenant-scoped document catalog.
package document

import (
	"fmt"
	"maps"
	"strings"
)

// Kind is the type of view a descriptor opens.
type Kind string

const (
	KindDocument Kind = "document"
	KindFolder   Kind = "folder"
	KindSearch   Kind = "search"
	KindSettings Kind = "settings"
)

// ParseKind validates a kind string. The empty string means KindDocument.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return KindDocument, nil
	case KindDocument, KindFolder, KindSearch, KindSettings:
		return k, nil
	default:
		return "", fmt.Errorf("unknown document kind %q", s)
	}
}

// Descriptor is the tab payload.
type Descriptor struct {
	Tenant string            `json:"tenant,omitempty" yaml:"tenant,omitempty"`
	Kind   Kind              `json:"kind" yaml:"kind"`
	Title  string            `json:"title,omitempty" yaml:"title,omitempty"`
	Route  string            `json:"route" yaml:"route"`
	Meta   map[string]string `json:"meta,omitempty" yaml:"meta,omitempty"`
}

// Label is the text shown on the tab strip: the title, or the route when untitled.
func (d Descriptor) Label() string {
	if d.Title != "" {
		return d.Title
	}
	if d.Route != "" {
		return d.Route
	}
	return "untitled"
}

// Clone returns a deep copy. It satisfies layout.Cloner.
func (d Descriptor) Clone() Descriptor {
	d.Meta = maps.Clone(d.Meta)
	return d
}

// Welcome is the tab opened in an empty workspace.
func Welcome() Descriptor {
	return Descriptor{Kind: KindDocument, Title: "Welcome", Route: "/welcome"}
}

// Blank is the content of a freshly opened tab.
func Blank() Descriptor {
	return Descriptor{Kind: KindSearch, Title: "New tab", Route: "/search"}
}
