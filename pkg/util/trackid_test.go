package util

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTrackIDFormat(t *testing.T) {
	trackID, err := GenerateTrackID()
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^PRCL-\d{8}-[0-9A-F]{6}$`), trackID)
	assert.True(t, strings.HasPrefix(trackID, "PRCL-"+time.Now().UTC().Format("20060102")+"-"))
}

func TestGenerateTrackIDVariesAcrossCalls(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		trackID, err := GenerateTrackID()
		require.NoError(t, err)
		seen[trackID] = true
	}
	assert.Greater(t, len(seen), 1)
}
