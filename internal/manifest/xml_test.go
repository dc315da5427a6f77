package manifest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pomFixture = `<?xml version="1.0" encoding="UTF-8"?>
<project xmlns="http://maven.apache.org/POM/4.0.0">
  <modelVersion>4.0.0</modelVersion>
  <groupId>io.schemaforge.clients</groupId>
  <artifactId>schema-clients</artifactId>
  <version>1.0.0-SNAPSHOT</version>
  <packaging>pom</packaging>

  <!-- Aggregator for generated java clients. -->
  <modules>
    <module>tools/codegen-java</module>
    <module>clients/java/core</module>
  </modules>

  <properties>
    <maven.compiler.release>17</maven.compiler.release>
    <protobuf.version>3.25.3</protobuf.version>
  </properties>
</project>
`

func TestPOMMembers(t *testing.T) {
	adapter := &pomAdapter{}
	members, err := adapter.Members("pom.xml", []byte(pomFixture))
	require.NoError(t, err)
	assert.Equal(t, []string{"tools/codegen-java", "clients/java/core"}, members)
}

func TestPOMReplacePreservesDocument(t *testing.T) {
	adapter := &pomAdapter{}
	desired := []string{"tools/codegen-java", "clients/java/core", "clients/java/idp"}

	out, err := adapter.ReplaceMembers("pom.xml", []byte(pomFixture), desired)
	require.NoError(t, err)

	roundTrip, err := adapter.Members("pom.xml", out)
	require.NoError(t, err)
	assert.Equal(t, desired, roundTrip)

	text := string(out)
	assert.Contains(t, text, `<?xml version="1.0" encoding="UTF-8"?>`)
	assert.Contains(t, text, "<!-- Aggregator for generated java clients. -->")
	assert.Contains(t, text, "<protobuf.version>3.25.3</protobuf.version>")
	assert.Contains(t, text, "    <module>clients/java/idp</module>\n  </modules>")
	assert.Less(t, strings.Index(text, "<packaging>"), strings.Index(text, "<modules>"))
	assert.Less(t, strings.Index(text, "</modules>"), strings.Index(text, "<properties>"))
}

func TestPOMReplaceEmptyMembers(t *testing.T) {
	adapter := &pomAdapter{}
	out, err := adapter.ReplaceMembers("pom.xml", []byte(pomFixture), nil)
	require.NoError(t, err)

	members, err := adapter.Members("pom.xml", out)
	require.NoError(t, err)
	assert.Empty(t, members)
}

func TestPOMMissingModulesSection(t *testing.T) {
	adapter := &pomAdapter{}
	doc := []byte(`<project><artifactId>x</artifactId></project>`)

	_, err := adapter.Members("pom.xml", doc)
	assert.ErrorContains(t, err, "<modules>")
}
