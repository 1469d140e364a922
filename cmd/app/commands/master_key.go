package commands

import (
	"fmt"
	"io"

	cryptodomain "github.com/allisson/signvault/internal/crypto/domain"
)

// RunCreateMasterKey generates a fresh 256-bit master key for the envelope
// encryption hierarchy and writes its URL-safe-no-pad base64 form to writer,
// ready to be stored in the file named by the master_key setting.
func RunCreateMasterKey(writer io.Writer) error {
	key, err := cryptodomain.GenerateAes256Key()
	if err != nil {
		return fmt.Errorf("failed to generate master key: %w", err)
	}
	defer key.Zero()

	_, err = fmt.Fprintln(writer, key.String())
	return err
}
