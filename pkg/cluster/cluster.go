// Package cluster holds the forwarding-side view of the control plane
// configuration: named clusters of endpoints, the per-cluster token
// index used by the hashed router, and the atomically swapped snapshot
// handle packet tasks read from.
package cluster

import (
	"net/netip"
	"sort"

	"github.com/cespare/xxhash"

	"github.com/pilotage-io/pilotage/pkg/endpoint"
)

// DefaultClusterName is the name of the cluster endpoints land in when
// the configuration does not assign them to a named cluster.
const DefaultClusterName = ""

// Token is the opaque lookup key the hashed router uses against a
// cluster's token index. It is the xxhash digest of the raw token bytes.
type Token uint64

func NewToken(b []byte) Token { return Token(xxhash.Sum64(b)) }

// TokenAddressMap is a cluster's precomputed token index: exact-match
// token digest to the addresses of every endpoint carrying that token.
type TokenAddressMap map[Token][]netip.AddrPort

// EndpointSet is one cluster's endpoints plus its token index. The
// index is only valid after BuildTokenMap and must be rebuilt whenever
// membership changes.
type EndpointSet struct {
	endpoints endpoint.Set
	tokenMap  TokenAddressMap
}

func NewEndpointSet(eps endpoint.Set) *EndpointSet {
	return &EndpointSet{endpoints: eps}
}

func (s *EndpointSet) Endpoints() endpoint.Set { return s.endpoints }

func (s *EndpointSet) BuildTokenMap() {
	tm := make(TokenAddressMap)
	for _, ep := range s.endpoints {
		for _, tok := range ep.Metadata.Tokens {
			key := NewToken(tok)
			tm[key] = append(tm[key], ep.Address)
		}
	}
	s.tokenMap = tm
}

// AddressesForToken returns the addresses mapped to tok, or nil if the
// index has no entry. The returned slice is shared and must not be
// mutated by callers.
func (s *EndpointSet) AddressesForToken(tok Token) []netip.AddrPort {
	return s.tokenMap[tok]
}

// ClusterMap is one immutable configuration snapshot. A ClusterMap is
// mutated only while being built, before it is published through a
// Holder; after publication it must be treated as read-only.
//
// Cluster iteration order is sorted by cluster name. The hashed router
// stops at the first cluster whose index matches, so iteration order is
// part of the routing contract and is kept deterministic on purpose.
type ClusterMap struct {
	clusters map[string]*EndpointSet
	names    []string
}

func New() *ClusterMap {
	return &ClusterMap{clusters: make(map[string]*EndpointSet)}
}

func (m *ClusterMap) Insert(name string, eps endpoint.Set) {
	if _, ok := m.clusters[name]; !ok {
		m.names = append(m.names, name)
		sort.Strings(m.names)
	}
	m.clusters[name] = NewEndpointSet(eps)
}

func (m *ClusterMap) InsertDefault(eps endpoint.Set) {
	m.Insert(DefaultClusterName, eps)
}

func (m *ClusterMap) Remove(name string) {
	if _, ok := m.clusters[name]; !ok {
		return
	}
	delete(m.clusters, name)
	for i, n := range m.names {
		if n == name {
			m.names = append(m.names[:i], m.names[i+1:]...)
			break
		}
	}
}

func (m *ClusterMap) Get(name string) *EndpointSet {
	return m.clusters[name]
}

// Names returns the cluster names in iteration order.
func (m *ClusterMap) Names() []string { return m.names }

// EachCluster calls f for every cluster, in iteration order, until f
// returns false.
func (m *ClusterMap) EachCluster(f func(name string, set *EndpointSet) bool) {
	for _, name := range m.names {
		if !f(name, m.clusters[name]) {
			return
		}
	}
}

// Endpoints returns every endpoint in the snapshot, in cluster
// iteration order with each cluster's own order preserved.
func (m *ClusterMap) Endpoints() endpoint.Set {
	var out endpoint.Set
	for _, name := range m.names {
		out = append(out, m.clusters[name].endpoints...)
	}
	return out
}

func (m *ClusterMap) NumEndpoints() int {
	n := 0
	for _, set := range m.clusters {
		n += len(set.endpoints)
	}
	return n
}

// BuildTokenMaps rebuilds the token index of every cluster. Must be
// called after the last membership change and before publication.
func (m *ClusterMap) BuildTokenMaps() {
	for _, set := range m.clusters {
		set.BuildTokenMap()
	}
}

// clone returns a build-phase copy of m. Endpoint slices are shared,
// but every EndpointSet struct is fresh: the copy's index rebuild must
// never write into a set a published snapshot still reads through.
func (m *ClusterMap) clone() *ClusterMap {
	next := &ClusterMap{
		clusters: make(map[string]*EndpointSet, len(m.clusters)),
		names:    append([]string(nil), m.names...),
	}
	for name, set := range m.clusters {
		next.clusters[name] = NewEndpointSet(set.endpoints)
	}
	return next
}
