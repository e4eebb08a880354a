// Package metadata holds the dynamic key/value state that filters share
// while a single packet moves through the filter chain.
package metadata

import (
	"encoding/base64"
	"fmt"
	"strconv"
)

// Key identifies one entry in a packet's dynamic metadata.
type Key string

func (k Key) String() string { return string(k) }

// Value is one dynamic metadata value. The set of kinds is closed:
// Bytes, String and Number.
type Value interface {
	fmt.Stringer
	isValue()
}

type Bytes []byte

func (Bytes) isValue() {}

func (b Bytes) String() string { return base64.StdEncoding.EncodeToString(b) }

type String string

func (String) isValue() {}

func (s String) String() string { return string(s) }

type Number float64

func (Number) isValue() {}

func (n Number) String() string { return strconv.FormatFloat(float64(n), 'g', -1, 64) }

// Map is the per-packet metadata table. It is owned by exactly one
// packet task and is never shared across goroutines.
type Map map[Key]Value

func New() Map { return make(Map) }

func (m Map) Get(k Key) (Value, bool) {
	v, ok := m[k]
	return v, ok
}

func (m Map) Insert(k Key, v Value) {
	m[k] = v
}
