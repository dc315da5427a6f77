package manifest

import (
	"golang.org/x/mod/modfile"
)

// goWorkAdapter edits the use directives of a go.work file through
// golang.org/x/mod, which preserves the go directive, toolchain lines, and
// comments while rewriting the use set.
type goWorkAdapter struct{}

func (a *goWorkAdapter) Members(path string, doc []byte) ([]string, error) {
	work, err := modfile.ParseWork(path, doc, nil)
	if err != nil {
		return nil, err
	}

	members := make([]string, 0, len(work.Use))
	for _, use := range work.Use {
		members = append(members, use.Path)
	}
	return members, nil
}

func (a *goWorkAdapter) ReplaceMembers(path string, doc []byte, members []string) ([]byte, error) {
	work, err := modfile.ParseWork(path, doc, nil)
	if err != nil {
		return nil, err
	}

	existing := make([]string, 0, len(work.Use))
	for _, use := range work.Use {
		existing = append(existing, use.Path)
	}
	for _, use := range existing {
		if err := work.DropUse(use); err != nil {
			return nil, err
		}
	}
	for _, member := range members {
		if err := work.AddUse(member, ""); err != nil {
			return nil, err
		}
	}

	work.Cleanup()
	return modfile.Format(work.Syntax), nil
}
