package util

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

const trackIDPrefix = "PRCL"

// GenerateTrackID produces a human-legible booking tracking identifier of
// the form PRCL-YYYYMMDD-XXXXXX, where the date is the current UTC day and
// the suffix is 3 cryptographically random bytes in upper hex.
func GenerateTrackID() (string, error) {
	buf := make([]byte, 3)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	date := time.Now().UTC().Format("20060102")
	suffix := strings.ToUpper(hex.EncodeToString(buf))
	return fmt.Sprintf("%s-%s-%s", trackIDPrefix, date, suffix), nil
}
