package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	Use(language.AmericanEnglish)
	assert.Equal("bus fault at 0x00001000", From("bus fault at 0x%08x", 0x1000))
	assert.Equal("1,024 words", From("%d words", 1024))
}
