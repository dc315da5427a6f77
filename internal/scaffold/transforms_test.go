package scaffold

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "UserManagement", TitleCase("user-management"))
	assert.Equal(t, "Core", TitleCase("core"))
	assert.Equal(t, "A1B2", TitleCase("a1-b2"))
}

func TestUpperSnake(t *testing.T) {
	assert.Equal(t, "USER_MANAGEMENT", UpperSnake("user-management"))
	assert.Equal(t, "CORE", UpperSnake("core"))
}

func TestLowerSnake(t *testing.T) {
	assert.Equal(t, "user_management", LowerSnake("user-management"))
	assert.Equal(t, "core", LowerSnake("core"))
}

func TestCamelToSnake(t *testing.T) {
	assert.Equal(t, "subscription", CamelToSnake("Subscription"))
	assert.Equal(t, "user_account", CamelToSnake("UserAccount"))
	assert.Equal(t, "oidc", CamelToSnake("Oidc"))
}

func TestCamelToSnakeKeepsAcronymsTogether(t *testing.T) {
	assert.Equal(t, "oidc", CamelToSnake("OIDC"))
	assert.Equal(t, "oidc_provider", CamelToSnake("OIDCProvider"))
	assert.Equal(t, "user_id", CamelToSnake("UserID"))
	assert.Equal(t, "oidc", LowerSnake(CamelToSnake("OIDC")))
}
