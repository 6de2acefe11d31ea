package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("line 3 'foo bar'", From("line %d '%v'", 3, "foo bar"))
	assert.Equal("'x' is not a number", From("'%v' is not a number", "x"))
}

func TestNewPrinter(t *testing.T) {
	assert := assert.New(t)

	p := NewPrinter()
	assert.NotNil(p)
	assert.Equal("-7", p.Sprintf("%d", -7))

	p = NewPrinter("en-GB", "fr-FR")
	assert.Equal("cpy 41 a", p.Sprintf("%v %d %v", "cpy", 41, "a"))
}
