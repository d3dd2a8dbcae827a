package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "jane.doe@example.com", NormalizeEmail("  Jane.Doe@Example.COM "))
	assert.Equal(t, "", NormalizeEmail("   "))
}

func TestNormalizeNameComposes(t *testing.T) {
	decomposed := "Jose\u0301"
	assert.Equal(t, "Jos\u00e9", NormalizeName(" "+decomposed+"\t"))
}
