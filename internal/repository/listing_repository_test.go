package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrefixPatternLowercasesAndAnchors(t *testing.T) {
	assert.Equal(t, "dha%", prefixPattern("Dha"))
	assert.Equal(t, "dhaka%", prefixPattern("DHAKA"))
}

func TestPrefixPatternEscapesLikeMetacharacters(t *testing.T) {
	// A leading wildcard must match a literal percent sign, not widen the
	// prefix match into a substring match.
	assert.Equal(t, `\%aka%`, prefixPattern("%aka"))
	assert.Equal(t, `d\_ka%`, prefixPattern("d_ka"))
	assert.Equal(t, `d\\ka%`, prefixPattern(`d\ka`))
}

func TestMarketplaceOrderMapsPriceSorts(t *testing.T) {
	assert.Equal(t, "price ASC", marketplaceOrder(PriceSortLow))
	assert.Equal(t, "price DESC", marketplaceOrder(PriceSortHigh))
	assert.Equal(t, "created_at ASC", marketplaceOrder(PriceSortNone))
}
