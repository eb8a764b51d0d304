package mask

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmail(t *testing.T) {
	assert.Equal(t, "al*****@gmail.com", Email("alice@gmail.com"))
	assert.Equal(t, "a*****@b.co", Email("a@b.co"))
	assert.Equal(t, "*****", Email("not-an-email"))
	assert.Equal(t, "*****", Email(""))
	assert.Equal(t, "*****", Email("trailing@"))
}
