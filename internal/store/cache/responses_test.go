package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	a := Key("/w_400,f_webp/https://picsum.photos/800/600")
	b := Key("/w_400,f_webp/https://picsum.photos/800/600")
	c := Key("/w_401,f_webp/https://picsum.photos/800/600")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Regexp(t, `^imgproxy-[0-9a-f]+$`, a)
}

func TestKeySeparatesQueryBearingSources(t *testing.T) {
	a := Key("w_400/https://cdn.example.com/a.png?v=1")
	b := Key("w_400/https://cdn.example.com/a.png?v=2")

	assert.NotEqual(t, a, b)
}
