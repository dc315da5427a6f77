// Package scaffold materializes new schema modules from a parameterized
// template set. Validation happens before any filesystem mutation, so a
// rejected scaffold leaves the schema tree exactly as it was.
package scaffold

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"text/template"
	"time"

	"github.com/schemaforge/schemaforge/internal/discovery"
	sferrors "github.com/schemaforge/schemaforge/internal/errors"
	"github.com/schemaforge/schemaforge/internal/logging"
)

// DefaultVersion is used when no schema version is given.
const DefaultVersion = "v1"

var (
	versionPattern = regexp.MustCompile(`^v[0-9]+$`)
	entityPattern  = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]*$`)
)

// Options holds scaffold input. Version and Entity are optional.
type Options struct {
	Name        string
	Description string
	Version     string
	Entity      string
}

// Context is the placeholder set substituted into every template file.
type Context struct {
	Module      string // verbatim module name
	ModuleTitle string // TitleCase
	ModuleSnake string // lower_snake_case
	ModuleUpper string // UPPER_CASE
	Entity      string
	EntitySnake string
	EntityUpper string
	Description string
	Version     string
	Date        string
}

// Scaffolder creates schema modules from a template set.
type Scaffolder struct {
	schemaRoot string
	reserved   map[string]struct{}
	files      []File
	logger     *logging.Logger
}

// NewScaffolder creates a scaffolder with the builtin template set. reserved
// lists names that may never become modules (infrastructure directories,
// ecosystem keywords); it comes from configuration.
func NewScaffolder(schemaRoot string, reserved []string, logger *logging.Logger) *Scaffolder {
	set := make(map[string]struct{}, len(reserved))
	for _, name := range reserved {
		set[name] = struct{}{}
	}
	if logger == nil {
		logger = logging.New(nil)
	}
	return &Scaffolder{
		schemaRoot: schemaRoot,
		reserved:   set,
		files:      BuiltinTemplates(),
		logger:     logger.WithComponent("scaffold"),
	}
}

// LoadTemplateDir replaces the builtin template set with the files under dir.
// Relative paths within dir become output paths; both paths and contents may
// carry placeholders. A missing or empty directory is a configuration error.
func (s *Scaffolder) LoadTemplateDir(dir string) error {
	var files []File
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files = append(files, File{Path: filepath.ToSlash(rel), Content: string(content)})
		return nil
	})
	if err != nil {
		return &sferrors.TemplateError{Path: dir, Err: err}
	}
	if len(files) == 0 {
		return &sferrors.TemplateError{Path: dir, Err: fmt.Errorf("no template files found")}
	}
	s.files = files
	return nil
}

// Scaffold validates opts, renders the template set, and writes the new
// module under the schema root. It returns the created module directory.
// Validation failures are checked in order and reported one at a time, and
// no file or directory is created on any failure.
func (s *Scaffolder) Scaffold(opts Options) (string, error) {
	if opts.Name == "" || !discovery.ModuleNamePattern.MatchString(opts.Name) {
		return "", &sferrors.ValidationError{
			Field:  "name",
			Value:  opts.Name,
			Reason: "must be lowercase, start with a letter, and contain only letters, digits, and hyphens",
		}
	}

	moduleDir := filepath.Join(s.schemaRoot, opts.Name)
	if _, err := os.Stat(moduleDir); err == nil {
		return "", &sferrors.ValidationError{Field: "name", Value: opts.Name, Reason: "module already exists"}
	}

	if _, ok := s.reserved[opts.Name]; ok {
		return "", &sferrors.ValidationError{Field: "name", Value: opts.Name, Reason: "name is reserved"}
	}

	version := opts.Version
	if version == "" {
		version = DefaultVersion
	}
	if !versionPattern.MatchString(version) {
		return "", &sferrors.ValidationError{Field: "version", Value: version, Reason: "must match v<number>, e.g. v1"}
	}

	entity := opts.Entity
	if entity == "" {
		entity = TitleCase(opts.Name)
	}
	if !entityPattern.MatchString(entity) {
		return "", &sferrors.ValidationError{Field: "entity", Value: entity, Reason: "must be alphanumeric and start with a letter"}
	}

	ctx := Context{
		Module:      opts.Name,
		ModuleTitle: TitleCase(opts.Name),
		ModuleSnake: LowerSnake(opts.Name),
		ModuleUpper: UpperSnake(opts.Name),
		Entity:      entity,
		EntitySnake: CamelToSnake(entity),
		EntityUpper: UpperSnake(CamelToSnake(entity)),
		Description: opts.Description,
		Version:     version,
		Date:        time.Now().Format("2006-01-02"),
	}

	// Render everything up front so a malformed template set fails before
	// the first write.
	rendered := make(map[string][]byte, len(s.files))
	for _, file := range s.files {
		path, err := renderString(file.Path, ctx)
		if err != nil {
			return "", &sferrors.TemplateError{Path: file.Path, Err: err}
		}
		content, err := renderString(file.Content, ctx)
		if err != nil {
			return "", &sferrors.TemplateError{Path: file.Path, Err: err}
		}
		rendered[string(path)] = content
	}

	for path, content := range rendered {
		target := filepath.Join(moduleDir, filepath.FromSlash(path))
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return "", fmt.Errorf("create %s: %w", filepath.Dir(target), err)
		}
		if err := os.WriteFile(target, content, 0644); err != nil {
			return "", fmt.Errorf("write %s: %w", target, err)
		}
	}

	s.logger.Info("scaffolded module", "module", opts.Name, "version", version, "entity", entity, "path", moduleDir)
	return moduleDir, nil
}

func renderString(source string, ctx Context) ([]byte, error) {
	tmpl, err := template.New("scaffold").Option("missingkey=error").Parse(source)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, ctx); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
