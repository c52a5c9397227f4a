package core

import (
	"encoding/base64"
	"strconv"
	"time"

	"golang.org/x/crypto/blake2b"
)

// DeriveBiometricToken computes the opaque token used as an alternate lookup
// key for a person. The token is a one-way hash of the person's name,
// national id and a high-resolution creation timestamp, truncated to
// BiometricTokenLength. The timestamp component makes tokens unique even for
// identical name/id pairs.
func DeriveBiometricToken(name, nationalID string, createdAt time.Time) string {
	sum := blake2b.Sum256([]byte(name + nationalID + strconv.FormatInt(createdAt.UnixNano(), 10)))
	return base64.StdEncoding.EncodeToString(sum[:])[:BiometricTokenLength]
}
