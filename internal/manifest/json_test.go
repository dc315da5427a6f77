package manifest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

const packageJSONFixture = `{
  "name": "schema-clients",
  "private": true,
  "workspaces": [
    "tools/codegen-ts",
    "clients/typescript/core"
  ],
  "scripts": {
    "build": "turbo run build",
    "lint": "eslint ."
  },
  "devDependencies": {
    "turbo": "^2.0.0",
    "typescript": "^5.4.0"
  }
}
`

func TestPackageJSONMembers(t *testing.T) {
	adapter := &packageJSONAdapter{}
	members, err := adapter.Members("package.json", []byte(packageJSONFixture))
	require.NoError(t, err)
	assert.Equal(t, []string{"tools/codegen-ts", "clients/typescript/core"}, members)
}

func TestPackageJSONReplacePreservesOtherFields(t *testing.T) {
	adapter := &packageJSONAdapter{}
	desired := []string{"tools/codegen-ts", "clients/typescript/core", "clients/typescript/idp"}

	out, err := adapter.ReplaceMembers("package.json", []byte(packageJSONFixture), desired)
	require.NoError(t, err)

	roundTrip, err := adapter.Members("package.json", out)
	require.NoError(t, err)
	assert.Equal(t, desired, roundTrip)

	text := string(out)
	// Key order and surrounding formatting are untouched.
	assert.Contains(t, text, `  "name": "schema-clients",`)
	assert.Contains(t, text, `    "build": "turbo run build",`)
	assert.Contains(t, text, `    "turbo": "^2.0.0",`)
	assert.Less(t, strings.Index(text, `"name"`), strings.Index(text, `"workspaces"`))
	assert.Less(t, strings.Index(text, `"workspaces"`), strings.Index(text, `"scripts"`))

	// New entries follow the document's two-space indentation.
	assert.Contains(t, text, "    \"clients/typescript/idp\"\n  ]")
}

func TestPackageJSONReplaceEmptyMembers(t *testing.T) {
	adapter := &packageJSONAdapter{}
	out, err := adapter.ReplaceMembers("package.json", []byte(packageJSONFixture), nil)
	require.NoError(t, err)
	assert.Empty(t, gjson.GetBytes(out, "workspaces").Array())
}

func TestPackageJSONMissingWorkspaces(t *testing.T) {
	adapter := &packageJSONAdapter{}
	doc := []byte(`{"name": "x"}`)

	_, err := adapter.Members("package.json", doc)
	assert.ErrorContains(t, err, "workspaces")

	_, err = adapter.ReplaceMembers("package.json", doc, []string{"a"})
	assert.ErrorContains(t, err, "workspaces")
}

func TestPackageJSONInvalidDocument(t *testing.T) {
	adapter := &packageJSONAdapter{}
	_, err := adapter.Members("package.json", []byte("{not json"))
	assert.Error(t, err)
}
