package main

import (
	"bytes"
	"strings"
	"testing"

	"store-admin-service/pkg/jwtutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCommand(t *testing.T) {
	t.Setenv("JWT_SIGNING_KEY", "cli-test")

	var out bytes.Buffer
	root := newRootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"token", "--user", "user_7"})
	require.NoError(t, root.Execute())

	claims, err := jwtutil.New("cli-test", 1).ValidateToken(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.Equal(t, "user_7", claims.UserID())
}

func TestTokenCommandRequiresUser(t *testing.T) {
	root := newRootCommand()
	root.SetArgs([]string{"token"})
	assert.Error(t, root.Execute())
}

func TestMigrateDownRejectsBadSteps(t *testing.T) {
	root := newRootCommand()
	root.SetArgs([]string{"migrate", "down", "many"})
	assert.ErrorContains(t, root.Execute(), "invalid steps")
}
