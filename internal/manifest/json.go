package manifest

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// packageJSONAdapter edits the "workspaces" array of a package.json document.
// The array is rebuilt with the document's own indentation and spliced in via
// sjson, which leaves every other key, its ordering, and its formatting alone.
type packageJSONAdapter struct{}

const workspacesKey = "workspaces"

func (a *packageJSONAdapter) Members(path string, doc []byte) ([]string, error) {
	if !gjson.ValidBytes(doc) {
		return nil, fmt.Errorf("invalid JSON")
	}
	field := gjson.GetBytes(doc, workspacesKey)
	if !field.Exists() {
		return nil, fmt.Errorf("%q field not found", workspacesKey)
	}
	if !field.IsArray() {
		return nil, fmt.Errorf("%q is not an array", workspacesKey)
	}

	var members []string
	field.ForEach(func(_, value gjson.Result) bool {
		members = append(members, value.String())
		return true
	})
	return members, nil
}

func (a *packageJSONAdapter) ReplaceMembers(path string, doc []byte, members []string) ([]byte, error) {
	if _, err := a.Members(path, doc); err != nil {
		return nil, err
	}

	raw, err := renderJSONArray(doc, members)
	if err != nil {
		return nil, err
	}
	return sjson.SetRawBytes(doc, workspacesKey, raw)
}

var (
	workspacesLineRe = regexp.MustCompile(`(?m)^([ \t]*)"` + workspacesKey + `"`)
	firstIndentRe    = regexp.MustCompile(`(?m)^([ \t]+)"`)
)

// renderJSONArray formats the members array using the indentation already in
// use around the workspaces key, so the edit reads like a hand-made one.
func renderJSONArray(doc []byte, members []string) ([]byte, error) {
	if len(members) == 0 {
		return []byte("[]"), nil
	}

	lead := ""
	if m := workspacesLineRe.FindSubmatch(doc); m != nil {
		lead = string(m[1])
	}
	unit := "  "
	if m := firstIndentRe.FindSubmatch(doc); m != nil {
		unit = string(m[1])
	}

	var b strings.Builder
	b.WriteString("[\n")
	for i, member := range members {
		quoted, err := json.Marshal(member)
		if err != nil {
			return nil, err
		}
		b.WriteString(lead + unit)
		b.Write(quoted)
		if i < len(members)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(lead + "]")
	return []byte(b.String()), nil
}
