// Package manifest synchronizes ecosystem workspace manifests with the
// discovered module set. Each of the five ecosystems has its own manifest
// format; all are edited surgically so that content outside the members
// section survives byte-for-byte.
package manifest

import (
	"fmt"
	"strings"
)

// Ecosystem describes one target packaging toolchain: where its workspace
// manifest lives, how a module name maps to a member path, and what its
// client tree looks like. Instances come from configuration, never from
// hidden globals, so every list here is overridable per invocation.
type Ecosystem struct {
	Name           string   `yaml:"name" mapstructure:"name"`
	Format         string   `yaml:"format" mapstructure:"format"`
	Manifest       string   `yaml:"manifest" mapstructure:"manifest"`
	MemberTemplate string   `yaml:"member_template" mapstructure:"member_template"`
	SpecialEntries []string `yaml:"special_entries" mapstructure:"special_entries"`
	ClientRoot     string   `yaml:"client_root" mapstructure:"client_root"`
	MetadataFile   string   `yaml:"metadata_file" mapstructure:"metadata_file"`
	AllowList      []string `yaml:"allow_list" mapstructure:"allow_list"`
}

// MemberPath expands the ecosystem's member path template for a module.
func (e Ecosystem) MemberPath(module string) string {
	return strings.ReplaceAll(e.MemberTemplate, "{module}", module)
}

// Adapter is the per-format capability the synchronizer is written against:
// read the current members section out of a manifest document and replace it
// with a new one, leaving everything else untouched.
type Adapter interface {
	// Members returns the current members section in document order.
	Members(path string, doc []byte) ([]string, error)
	// ReplaceMembers returns a copy of doc with the members section replaced.
	ReplaceMembers(path string, doc []byte, members []string) ([]byte, error)
}

// Manifest format identifiers, used in ecosystem configuration.
const (
	FormatGoWork      = "gowork"
	FormatCargo       = "cargo"
	FormatUV          = "uv"
	FormatPackageJSON = "packagejson"
	FormatPOM         = "pom"
)

// AdapterFor returns the adapter for a manifest format identifier.
func AdapterFor(format string) (Adapter, error) {
	switch format {
	case FormatGoWork:
		return &goWorkAdapter{}, nil
	case FormatCargo:
		return &tomlListAdapter{table: []string{"workspace"}, key: "members"}, nil
	case FormatUV:
		return &tomlListAdapter{table: []string{"tool", "uv", "workspace"}, key: "members"}, nil
	case FormatPackageJSON:
		return &packageJSONAdapter{}, nil
	case FormatPOM:
		return &pomAdapter{}, nil
	default:
		return nil, fmt.Errorf("unknown manifest format %q", format)
	}
}
