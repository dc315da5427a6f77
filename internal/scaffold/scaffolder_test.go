package scaffold

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sferrors "github.com/schemaforge/schemaforge/internal/errors"
)

var testReserved = []string{"core", "docs", "tools"}

func newTestScaffolder(t *testing.T) (*Scaffolder, string) {
	t.Helper()
	root := t.TempDir()
	return NewScaffolder(root, testReserved, nil), root
}

func assertNoMutation(t *testing.T, root string) {
	t.Helper()
	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries, "failed scaffold must not touch the schema tree")
}

func TestScaffoldCreatesModule(t *testing.T) {
	scaffolder, root := newTestScaffolder(t)

	path, err := scaffolder.Scaffold(Options{
		Name:        "billing",
		Description: "Billing service",
		Version:     "v1",
		Entity:      "Subscription",
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "billing"), path)

	entity, err := os.ReadFile(filepath.Join(root, "billing", "v1", "billing.proto"))
	require.NoError(t, err)
	assert.Contains(t, string(entity), "package billing.v1;")
	assert.Contains(t, string(entity), "message Subscription {")
	assert.Contains(t, string(entity), "// Billing service")

	service, err := os.ReadFile(filepath.Join(root, "billing", "v1", "billing_service.proto"))
	require.NoError(t, err)
	assert.Contains(t, string(service), "service SubscriptionService {")
	assert.Contains(t, string(service), "rpc GetSubscription(GetSubscriptionRequest) returns (Subscription);")
	assert.Contains(t, string(service), "repeated Subscription subscriptions = 1;")

	readme, err := os.ReadFile(filepath.Join(root, "billing", "README.md"))
	require.NoError(t, err)
	assert.Contains(t, string(readme), "# Billing")
	assert.Contains(t, string(readme), "`BILLING_`")
}

func TestScaffoldDefaults(t *testing.T) {
	scaffolder, root := newTestScaffolder(t)

	_, err := scaffolder.Scaffold(Options{Name: "user-management", Description: "User administration"})
	require.NoError(t, err)

	// Version defaults to v1, entity to the TitleCase module name.
	entity, err := os.ReadFile(filepath.Join(root, "user-management", "v1", "user_management.proto"))
	require.NoError(t, err)
	assert.Contains(t, string(entity), "package user_management.v1;")
	assert.Contains(t, string(entity), "message UserManagement {")
}

func TestScaffoldRejectsInvalidName(t *testing.T) {
	scaffolder, root := newTestScaffolder(t)

	for _, name := range []string{"", "Core", "1billing", "billing_v1", "-billing"} {
		_, err := scaffolder.Scaffold(Options{Name: name, Description: "x"})
		require.Error(t, err, name)
		assert.True(t, sferrors.IsValidation(err), name)
	}
	assertNoMutation(t, root)
}

func TestScaffoldRejectsReservedName(t *testing.T) {
	scaffolder, root := newTestScaffolder(t)

	_, err := scaffolder.Scaffold(Options{Name: "docs", Description: "x"})
	require.Error(t, err)
	assert.True(t, sferrors.IsValidation(err))
	assert.Contains(t, err.Error(), "reserved")
	assertNoMutation(t, root)
}

func TestScaffoldRejectsExistingModule(t *testing.T) {
	scaffolder, root := newTestScaffolder(t)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "billing"), 0755))

	_, err := scaffolder.Scaffold(Options{Name: "billing", Description: "x"})
	require.Error(t, err)
	assert.True(t, sferrors.IsValidation(err))
	assert.Contains(t, err.Error(), "already exists")

	// The pre-existing directory stays untouched.
	entries, err := os.ReadDir(filepath.Join(root, "billing"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestScaffoldRejectsBadVersion(t *testing.T) {
	scaffolder, root := newTestScaffolder(t)

	for _, version := range []string{"1", "v1.2", "V1", "latest"} {
		_, err := scaffolder.Scaffold(Options{Name: "billing", Description: "x", Version: version})
		require.Error(t, err, version)
		assert.True(t, sferrors.IsValidation(err), version)
	}
	assertNoMutation(t, root)
}

func TestScaffoldRejectsBadEntity(t *testing.T) {
	scaffolder, root := newTestScaffolder(t)

	_, err := scaffolder.Scaffold(Options{Name: "billing", Description: "x", Entity: "my entity"})
	require.Error(t, err)
	assert.True(t, sferrors.IsValidation(err))
	assertNoMutation(t, root)
}

func TestScaffoldFromTemplateDir(t *testing.T) {
	scaffolder, root := newTestScaffolder(t)

	templateDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(templateDir, "{{ .Version }}"), 0755))
	require.NoError(t, os.WriteFile(
		filepath.Join(templateDir, "{{ .Version }}", "schema.txt"),
		[]byte("module={{ .Module }} entity={{ .EntityUpper }}\n"), 0644))
	require.NoError(t, scaffolder.LoadTemplateDir(templateDir))

	_, err := scaffolder.Scaffold(Options{Name: "billing", Description: "x", Entity: "UserAccount"})
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(root, "billing", "v1", "schema.txt"))
	require.NoError(t, err)
	assert.Equal(t, "module=billing entity=USER_ACCOUNT\n", string(content))
}

func TestLoadTemplateDirMissingIsConfigError(t *testing.T) {
	scaffolder, _ := newTestScaffolder(t)

	err := scaffolder.LoadTemplateDir(filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
	assert.True(t, sferrors.IsTemplate(err))
	assert.False(t, sferrors.IsValidation(err))
}

func TestScaffoldMalformedTemplateWritesNothing(t *testing.T) {
	scaffolder, root := newTestScaffolder(t)

	templateDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(templateDir, "bad.txt"), []byte("{{ .Missing "), 0644))
	require.NoError(t, scaffolder.LoadTemplateDir(templateDir))

	_, err := scaffolder.Scaffold(Options{Name: "billing", Description: "x"})
	require.Error(t, err)
	assert.True(t, sferrors.IsTemplate(err))
	assertNoMutation(t, root)
}
