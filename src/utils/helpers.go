package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"sync/atomic"
)

var ticketCodeSeq uint64

// GenerateCode returns n random bytes as an uppercase hex string.
func GenerateCode(n int) (string, error) {
	byt := make([]byte, n)
	if _, err := rand.Read(byt); err != nil {
		return "", err
	}
	return strings.ToUpper(hex.EncodeToString(byt)), nil
}

// GenerateTicketCode produces a candidate QR code string from a monotonic
// counter and a random component. Collisions are negligible by construction
// but callers must still verify uniqueness against issued tickets before
// accepting a code.
func GenerateTicketCode() (string, error) {
	seq := atomic.AddUint64(&ticketCodeSeq, 1)
	suffix, err := GenerateCode(8)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("T%06d-%s", seq, suffix), nil
}
