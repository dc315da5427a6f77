package manifest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/beevik/etree"
)

// pomAdapter edits the <modules> section of a Maven pom.xml. etree keeps the
// rest of the document, including comments and property blocks, exactly as
// read; only the children of <modules> are rebuilt.
type pomAdapter struct{}

func (a *pomAdapter) Members(path string, doc []byte) ([]string, error) {
	modules, _, err := parsePOM(doc)
	if err != nil {
		return nil, err
	}

	var members []string
	for _, el := range modules.SelectElements("module") {
		members = append(members, strings.TrimSpace(el.Text()))
	}
	return members, nil
}

func (a *pomAdapter) ReplaceMembers(path string, doc []byte, members []string) ([]byte, error) {
	modules, parsed, err := parsePOM(doc)
	if err != nil {
		return nil, err
	}

	lead, inner := pomIndent(doc)

	modules.Child = nil
	for _, member := range members {
		modules.CreateText("\n" + inner)
		modules.CreateElement("module").SetText(member)
	}
	if len(members) > 0 {
		modules.CreateText("\n" + lead)
	}

	return parsed.WriteToBytes()
}

func parsePOM(doc []byte) (*etree.Element, *etree.Document, error) {
	parsed := etree.NewDocument()
	if err := parsed.ReadFromBytes(doc); err != nil {
		return nil, nil, err
	}
	root := parsed.Root()
	if root == nil {
		return nil, nil, fmt.Errorf("empty document")
	}
	modules := root.SelectElement("modules")
	if modules == nil {
		return nil, nil, fmt.Errorf("<modules> section not found")
	}
	return modules, parsed, nil
}

var (
	modulesLineRe = regexp.MustCompile(`(?m)^([ \t]*)<modules>`)
	moduleLineRe  = regexp.MustCompile(`(?m)^([ \t]*)<module>`)
)

// pomIndent recovers the indentation of the <modules> block from the source
// so rewritten entries line up with the existing style.
func pomIndent(doc []byte) (lead, inner string) {
	lead = "  "
	if m := modulesLineRe.FindSubmatch(doc); m != nil {
		lead = string(m[1])
	}
	inner = lead + "  "
	if m := moduleLineRe.FindSubmatch(doc); m != nil {
		inner = string(m[1])
	}
	return lead, inner
}
