// Package structure cross-references the discovered module set against each
// ecosystem's client directory tree. It only classifies and reports; it never
// creates or removes anything.
package structure

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/schemaforge/schemaforge/internal/discovery"
	"github.com/schemaforge/schemaforge/internal/logging"
	"github.com/schemaforge/schemaforge/internal/manifest"
)

// Entry is one classified client-tree location.
type Entry struct {
	Ecosystem string `json:"ecosystem" yaml:"ecosystem"`
	Module    string `json:"module" yaml:"module"`
	Path      string `json:"path" yaml:"path"`
	Reason    string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// Report classifies every expected and found client entry. Missing entries
// are errors; orphaned directories are warnings, since they may be legitimate
// generated artifacts and deleting arbitrary directories is unsafe.
type Report struct {
	OK       []Entry `json:"ok" yaml:"ok"`
	Missing  []Entry `json:"missing" yaml:"missing"`
	Orphaned []Entry `json:"orphaned" yaml:"orphaned"`
}

// HasMissing reports whether any expected client entry is absent.
func (r *Report) HasMissing() bool { return len(r.Missing) > 0 }

// HasOrphans reports whether any unexpected directory was found.
func (r *Report) HasOrphans() bool { return len(r.Orphaned) > 0 }

// Validator checks client trees against the module set.
type Validator struct {
	logger *logging.Logger
}

// NewValidator creates a validator.
func NewValidator(logger *logging.Logger) *Validator {
	if logger == nil {
		logger = logging.New(nil)
	}
	return &Validator{logger: logger.WithComponent("validate")}
}

// Validate checks, for every ecosystem, that each module has a client
// directory containing the ecosystem's metadata file, and flags directories
// with no corresponding module as orphaned. Housekeeping directories on the
// ecosystem's allow-list (build caches, dependency trees) are skipped.
func (v *Validator) Validate(modules discovery.ModuleSet, ecosystems []manifest.Ecosystem) Report {
	var report Report
	for _, eco := range ecosystems {
		v.validateEcosystem(&report, modules, eco)
	}
	v.logger.Debug("validated client trees",
		"ok", len(report.OK), "missing", len(report.Missing), "orphaned", len(report.Orphaned))
	return report
}

func (v *Validator) validateEcosystem(report *Report, modules discovery.ModuleSet, eco manifest.Ecosystem) {
	for _, module := range modules {
		dir := filepath.Join(eco.ClientRoot, module)
		entry := Entry{Ecosystem: eco.Name, Module: module, Path: dir}

		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			entry.Reason = "client directory missing"
			report.Missing = append(report.Missing, entry)
			continue
		}

		metadata := filepath.Join(dir, eco.MetadataFile)
		if _, err := os.Stat(metadata); err != nil {
			entry.Reason = eco.MetadataFile + " missing"
			entry.Path = metadata
			report.Missing = append(report.Missing, entry)
			continue
		}

		report.OK = append(report.OK, entry)
	}

	allowed := make(map[string]struct{}, len(eco.AllowList))
	for _, name := range eco.AllowList {
		allowed[name] = struct{}{}
	}

	entries, err := os.ReadDir(eco.ClientRoot)
	if err != nil {
		// A missing client root already surfaced as missing modules above.
		return
	}
	for _, dirEntry := range entries {
		if !dirEntry.IsDir() {
			continue
		}
		name := dirEntry.Name()
		if strings.HasPrefix(name, discovery.HiddenPrefix) {
			continue
		}
		if _, ok := allowed[name]; ok {
			continue
		}
		if modules.Contains(name) {
			continue
		}
		report.Orphaned = append(report.Orphaned, Entry{
			Ecosystem: eco.Name,
			Module:    name,
			Path:      filepath.Join(eco.ClientRoot, name),
			Reason:    "no schema module with this name",
		})
	}
}
