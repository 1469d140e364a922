package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	cryptodomain "github.com/allisson/signvault/internal/crypto/domain"
)

func TestRunCreateMasterKey(t *testing.T) {
	var out bytes.Buffer
	err := RunCreateMasterKey(&out)
	require.NoError(t, err)

	encoded := strings.TrimSpace(out.String())
	require.NotEmpty(t, encoded)

	_, err = cryptodomain.Aes256KeyFromString(encoded)
	require.NoError(t, err)
}

func TestRunCreateMasterKey_ProducesDistinctKeys(t *testing.T) {
	var first, second bytes.Buffer
	require.NoError(t, RunCreateMasterKey(&first))
	require.NoError(t, RunCreateMasterKey(&second))

	require.NotEqual(t, first.String(), second.String())
}
