package manifest

import (
	"os"
	"path/filepath"
	"slices"

	sferrors "github.com/schemaforge/schemaforge/internal/errors"
	"github.com/schemaforge/schemaforge/internal/logging"
)

// Result classifies the outcome of one ecosystem's sync.
type Result string

const (
	ResultChanged   Result = "changed"
	ResultUnchanged Result = "unchanged"
	ResultError     Result = "error"
)

// Outcome reports one ecosystem's sync result. Err is set only when Result
// is ResultError.
type Outcome struct {
	Ecosystem string `json:"ecosystem"`
	Manifest  string `json:"manifest"`
	Result    Result `json:"result"`
	Err       error  `json:"-"`
	Error     string `json:"error,omitempty"`
}

// Synchronizer reconciles workspace manifests against a desired module set.
type Synchronizer struct {
	dryRun bool
	logger *logging.Logger
}

// NewSynchronizer creates a synchronizer. In dry-run mode manifests are
// compared but never written, so drift can be detected without mutation.
func NewSynchronizer(dryRun bool, logger *logging.Logger) *Synchronizer {
	if logger == nil {
		logger = logging.New(nil)
	}
	return &Synchronizer{dryRun: dryRun, logger: logger.WithComponent("sync")}
}

// DesiredMembers computes the members section an ecosystem's manifest should
// hold: special entries in fixed leading positions, then one member path per
// module in module order, deduplicated.
func DesiredMembers(eco Ecosystem, modules []string) []string {
	desired := make([]string, 0, len(eco.SpecialEntries)+len(modules))
	seen := make(map[string]struct{}, cap(desired))
	add := func(entry string) {
		if _, dup := seen[entry]; dup {
			return
		}
		seen[entry] = struct{}{}
		desired = append(desired, entry)
	}
	for _, entry := range eco.SpecialEntries {
		add(entry)
	}
	for _, module := range modules {
		add(eco.MemberPath(module))
	}
	return desired
}

// Sync reconciles one ecosystem's manifest. A parse, locate, or write failure
// is scoped to this ecosystem; callers synchronizing several ecosystems keep
// going on error.
func (s *Synchronizer) Sync(eco Ecosystem, modules []string) Outcome {
	outcome := Outcome{Ecosystem: eco.Name, Manifest: eco.Manifest}

	adapter, err := AdapterFor(eco.Format)
	if err != nil {
		return outcome.failParse(eco, err)
	}

	doc, err := os.ReadFile(eco.Manifest)
	if err != nil {
		return outcome.failParse(eco, err)
	}

	current, err := adapter.Members(eco.Manifest, doc)
	if err != nil {
		return outcome.failParse(eco, err)
	}

	desired := DesiredMembers(eco, modules)
	if slices.Equal(current, desired) {
		outcome.Result = ResultUnchanged
		s.logger.Debug("manifest up to date", "ecosystem", eco.Name, "manifest", eco.Manifest)
		return outcome
	}

	updated, err := adapter.ReplaceMembers(eco.Manifest, doc, desired)
	if err != nil {
		return outcome.failParse(eco, err)
	}

	if !s.dryRun {
		if err := writeAtomic(eco.Manifest, updated); err != nil {
			outcome.Result = ResultError
			outcome.Err = &sferrors.ManifestWriteError{Ecosystem: eco.Name, Path: eco.Manifest, Err: err}
			outcome.Error = outcome.Err.Error()
			return outcome
		}
	}

	outcome.Result = ResultChanged
	s.logger.Info("manifest updated", "ecosystem", eco.Name, "manifest", eco.Manifest, "members", len(desired), "dry_run", s.dryRun)
	return outcome
}

// SyncAll reconciles every ecosystem independently. One ecosystem's failure
// never aborts the others; the caller inspects each outcome.
func (s *Synchronizer) SyncAll(ecosystems []Ecosystem, modules []string) []Outcome {
	outcomes := make([]Outcome, 0, len(ecosystems))
	for _, eco := range ecosystems {
		outcome := s.Sync(eco, modules)
		if outcome.Err != nil {
			s.logger.Error("sync failed", "ecosystem", eco.Name, "error", outcome.Err)
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}

func (o Outcome) failParse(eco Ecosystem, err error) Outcome {
	o.Result = ResultError
	o.Err = &sferrors.ManifestParseError{Ecosystem: eco.Name, Path: eco.Manifest, Err: err}
	o.Error = o.Err.Error()
	return o
}

// writeAtomic stages content next to path and renames it into place, so a
// failed write never leaves a partially written manifest behind.
func writeAtomic(path string, content []byte) error {
	info, err := os.Stat(path)
	mode := os.FileMode(0644)
	if err == nil {
		mode = info.Mode().Perm()
	}

	dir := filepath.Dir(path)
	staged, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	stagedPath := staged.Name()

	if _, err := staged.Write(content); err != nil {
		staged.Close()
		os.Remove(stagedPath)
		return err
	}
	if err := staged.Close(); err != nil {
		os.Remove(stagedPath)
		return err
	}
	if err := os.Chmod(stagedPath, mode); err != nil {
		os.Remove(stagedPath)
		return err
	}
	if err := os.Rename(stagedPath, path); err != nil {
		os.Remove(stagedPath)
		return err
	}
	return nil
}
