package challenge

import (
	"crypto/sha256"
	"fmt"
	"io"

	"github.com/axent-pl/selfkey/common"
	"golang.org/x/crypto/hkdf"
)

const keyInfo = "selfkey challenge"

// deriveKey expands the configured secret into the HS256 signing key so the
// raw secret can be shared with other components without reusing it as a
// MAC key.
func deriveKey(secret []byte) ([]byte, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("%w: missing challenge secret", common.ErrConfiguration)
	}
	key := make([]byte, sha256.Size)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, []byte(keyInfo)), key); err != nil {
		return nil, fmt.Errorf("%w: could not derive challenge key: %w", common.ErrInternal, err)
	}
	return key, nil
}
