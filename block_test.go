package cler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type namedTestBlock struct {
	BlockBase
}

func TestBlockBase_Name(t *testing.T) {
	b := namedTestBlock{BlockBase: NewBlockBase("my-block")}
	assert.Equal(t, "my-block", b.Name())
}
