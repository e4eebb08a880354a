package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueString(t *testing.T) {
	assert.Equal(t, "YWJj", Bytes("abc").String())
	assert.Equal(t, "hello", String("hello").String())
	assert.Equal(t, "2.5", Number(2.5).String())
}

func TestMapInsertGet(t *testing.T) {
	m := New()

	_, ok := m.Get("quilkin.dev/capture")
	assert.False(t, ok)

	m.Insert("quilkin.dev/capture", Bytes("abc"))
	v, ok := m.Get("quilkin.dev/capture")
	assert.True(t, ok)
	assert.Equal(t, Bytes("abc"), v)

	// insert overwrites
	m.Insert("quilkin.dev/capture", String("other"))
	v, _ = m.Get("quilkin.dev/capture")
	assert.Equal(t, String("other"), v)
}
