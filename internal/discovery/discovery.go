// Package discovery scans the canonical schema tree and yields the current
// set of schema modules. Each immediate subdirectory of the schema root is a
// module unless it is hidden or an infrastructure directory.
package discovery

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/schemaforge/schemaforge/internal/logging"
)

// ModuleNamePattern is the shape of a valid module identifier: lowercase,
// starts with a letter, letters/digits/hyphens only.
var ModuleNamePattern = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// HiddenPrefix marks directory entries excluded from discovery.
const HiddenPrefix = "."

// ModuleSet is the ordered, deduplicated set of discovered module names.
// It is derived state, recomputed on every scan and never persisted.
type ModuleSet []string

// Contains reports whether name is in the set.
func (m ModuleSet) Contains(name string) bool {
	for _, existing := range m {
		if existing == name {
			return true
		}
	}
	return false
}

// Scanner discovers schema modules under a schema root.
type Scanner struct {
	exclude map[string]struct{}
	logger  *logging.Logger
}

// NewScanner creates a scanner. exclude lists infrastructure directory names
// that live under the schema root but are not modules.
func NewScanner(exclude []string, logger *logging.Logger) *Scanner {
	set := make(map[string]struct{}, len(exclude))
	for _, name := range exclude {
		set[name] = struct{}{}
	}
	if logger == nil {
		logger = logging.New(nil)
	}
	return &Scanner{exclude: set, logger: logger.WithComponent("discovery")}
}

// Discover lists the immediate subdirectories of schemaRoot and returns the
// module set, sorted lexicographically for deterministic manifest output.
// A missing schema root yields an empty set rather than an error so the tool
// works before the first module exists.
func (s *Scanner) Discover(schemaRoot string) (ModuleSet, error) {
	entries, err := os.ReadDir(schemaRoot)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug("schema root does not exist, returning empty set", "path", schemaRoot)
			return ModuleSet{}, nil
		}
		return nil, fmt.Errorf("scan schema root %s: %w", schemaRoot, err)
	}

	modules := make(ModuleSet, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, HiddenPrefix) {
			continue
		}
		if _, excluded := s.exclude[name]; excluded {
			continue
		}
		modules = append(modules, name)
	}

	sort.Strings(modules)
	s.logger.Debug("discovered modules", "root", schemaRoot, "count", len(modules))
	return modules, nil
}
