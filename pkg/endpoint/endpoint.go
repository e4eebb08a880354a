// Package endpoint models a single upstream backend an inbound packet
// may be forwarded to, together with the routing tokens attached to it.
package endpoint

import (
	"bytes"
	"net/netip"
)

// Metadata carries the routing state attached to an endpoint. Tokens are
// opaque byte strings compared only for exact equality.
type Metadata struct {
	Tokens [][]byte
}

// HasToken reports whether token is a member of the endpoint's token set.
func (m Metadata) HasToken(token []byte) bool {
	for _, t := range m.Tokens {
		if bytes.Equal(t, token) {
			return true
		}
	}
	return false
}

// Endpoint is an upstream address plus its attached metadata.
type Endpoint struct {
	Address  netip.AddrPort
	Metadata Metadata
}

func New(addr netip.AddrPort) Endpoint {
	return Endpoint{Address: addr}
}

func WithTokens(addr netip.AddrPort, tokens ...[]byte) Endpoint {
	return Endpoint{Address: addr, Metadata: Metadata{Tokens: tokens}}
}

// Set is an ordered collection of endpoints. Order is insertion order
// and is preserved by every iteration; routers rely on that.
type Set []Endpoint

// Filter returns the endpoints for which keep returns true, preserving
// the set's order.
func (s Set) Filter(keep func(Endpoint) bool) []Endpoint {
	var out []Endpoint
	for _, ep := range s {
		if keep(ep) {
			out = append(out, ep)
		}
	}
	return out
}

// CanonicalIP returns the textual form of the address's IP with
// IPv4-mapped IPv6 addresses collapsed to plain IPv4.
func CanonicalIP(addr netip.AddrPort) string {
	return addr.Addr().Unmap().String()
}
