package util

import (
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

// Keccak256Hex hashes the concatenation of data.
func Keccak256Hex(data ...[]byte) string {
	return hex.EncodeToString(crypto.Keccak256(data...))
}

// WriteFile writes data to path, creating missing parent directories.
func WriteFile(filePath string, data []byte) error {
	if dir := filepath.Dir(filePath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "MkdirAll")
		}
	}
	out, err := os.Create(filePath)
	if err != nil {
		return errors.Wrap(err, "Create")
	}
	defer out.Close()
	n, err := out.Write(data)
	if err != nil {
		return errors.Wrapf(err, "Write %d", n)
	}
	return errors.Wrap(out.Close(), "Close")
}
