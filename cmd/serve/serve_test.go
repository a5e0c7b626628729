package serve_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/budget-board/cmd/serve"
)

func TestCommandMetadata(t *testing.T) {
	assert.Equal(t, "serve", serve.Cmd.Use)
	assert.Contains(t, serve.Cmd.Short, "HTTP")
	assert.NotNil(t, serve.Cmd.Run)
}

func TestAddrFlag(t *testing.T) {
	flag := serve.Cmd.Flags().Lookup("addr")
	require.NotNil(t, flag)
	assert.Equal(t, "", flag.DefValue)
	assert.Equal(t, "a", flag.Shorthand)
}
