// Package xds aggregates configuration resources received from the
// control plane into the immutable snapshots the data path routes
// against: the cluster map and the filter chain.
package xds

import (
	"errors"
	"fmt"
	"net/netip"
	"sync"

	"github.com/golang/protobuf/ptypes/any"
	logging "github.com/ipfs/go-log/v2"

	"github.com/pilotage-io/pilotage/pkg/cluster"
	"github.com/pilotage-io/pilotage/pkg/endpoint"
	"github.com/pilotage-io/pilotage/pkg/filters"
	"github.com/pilotage-io/pilotage/pkg/xds/xdsresource"
)

var log = logging.Logger("xds")

// ResourceManager caches decoded resources by type and name and turns
// accepted updates into new snapshots. Decode failures reject the one
// resource and keep the rest of the batch; the caller decides per
// stream whether a partial batch is acceptable.
type ResourceManager struct {
	mu    sync.Mutex
	cache map[xdsresource.ResourceType]map[string]xdsresource.Resource

	clusters *cluster.Holder
	// onChainUpdate, when set, receives every rebuilt filter chain.
	onChainUpdate func(*filters.Chain)

	// relay marks the aggregation role that observes real sender
	// addresses and may stamp them into Datacenter resources.
	relay bool
}

func NewResourceManager(clusters *cluster.Holder, relay bool) *ResourceManager {
	c := make(map[xdsresource.ResourceType]map[string]xdsresource.Resource)
	for _, t := range xdsresource.ResourceTypes {
		c[t] = make(map[string]xdsresource.Resource)
	}
	return &ResourceManager{
		cache:    c,
		clusters: clusters,
		relay:    relay,
	}
}

// OnChainUpdate registers the callback invoked with each rebuilt filter
// chain. Must be called before updates start flowing.
func (m *ResourceManager) OnChainUpdate(f func(*filters.Chain)) {
	m.onChainUpdate = f
}

// Get returns the cached resource of the given type and name, or nil.
func (m *ResourceManager) Get(t xdsresource.ResourceType, name string) xdsresource.Resource {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cache[t][name]
}

// ApplyUpdate decodes and caches one update batch of a single resource
// type and republishes the affected snapshot. from is the sender's
// observed address, used only by the relay role for Datacenter
// resources. The returned error joins the per-resource failures of the
// batch; resources that decoded cleanly are applied regardless.
func (m *ResourceManager) ApplyUpdate(typeUrl string, raws []*any.Any, from netip.AddrPort) error {
	rType, err := xdsresource.ResourceTypeFromUrl(typeUrl)
	if err != nil {
		return err
	}

	var errs []error
	m.mu.Lock()
	for _, raw := range raws {
		if raw.GetTypeUrl() != typeUrl {
			errs = append(errs, fmt.Errorf("resource %s in %s batch rejected", raw.GetTypeUrl(), typeUrl))
			continue
		}
		res, err := xdsresource.UnmarshalResource(raw)
		if err != nil {
			log.Errorw("rejecting resource", "typeUrl", typeUrl, "error", err)
			errs = append(errs, err)
			continue
		}
		if m.relay && rType == xdsresource.DatacenterType {
			res.AddHostToDatacenter(from)
		}
		m.cache[rType][res.Name()] = res
	}
	m.mu.Unlock()

	switch rType {
	case xdsresource.ClusterType:
		m.rebuildClusters()
	case xdsresource.FilterChainType:
		if err := m.rebuildChain(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// rebuildClusters publishes a fresh cluster snapshot from every cached
// Cluster resource. Token indices are rebuilt before the swap; packets
// in flight finish against the snapshot they loaded.
func (m *ResourceManager) rebuildClusters() {
	next := cluster.New()

	m.mu.Lock()
	for name, res := range m.cache[xdsresource.ClusterType] {
		cr, ok := res.(*xdsresource.ClusterResource)
		if !ok {
			continue
		}
		eps := make(endpoint.Set, 0, len(cr.Cluster.GetEndpoints()))
		for _, e := range cr.Cluster.GetEndpoints() {
			addr, err := netip.ParseAddr(e.GetHost())
			if err != nil {
				log.Errorw("skipping endpoint with bad host", "cluster", name, "host", e.GetHost(), "error", err)
				continue
			}
			if e.GetPort() > 65535 {
				log.Errorw("skipping endpoint with bad port", "cluster", name, "host", e.GetHost(), "port", e.GetPort())
				continue
			}
			eps = append(eps, endpoint.Endpoint{
				Address:  netip.AddrPortFrom(addr, uint16(e.GetPort())),
				Metadata: endpoint.Metadata{Tokens: e.GetMetadata().GetTokens()},
			})
		}
		next.Insert(name, eps)
	}
	m.mu.Unlock()

	next.BuildTokenMaps()
	m.clusters.Store(next)
	log.Debugw("published cluster snapshot", "clusters", len(next.Names()), "endpoints", next.NumEndpoints())
}

// rebuildChain rebuilds the filter chain from the cached FilterChain
// resource. A chain that fails to construct leaves the previous chain
// in place.
func (m *ResourceManager) rebuildChain() error {
	m.mu.Lock()
	res := m.cache[xdsresource.FilterChainType][""]
	m.mu.Unlock()
	fcr, ok := res.(*xdsresource.FilterChainResource)
	if !ok {
		return nil
	}

	entries := make([]filters.Entry, 0, len(fcr.FilterChain.GetFilters()))
	for _, f := range fcr.FilterChain.GetFilters() {
		var cfg []byte
		if f.GetConfig() != "" {
			cfg = []byte(f.GetConfig())
		}
		entries = append(entries, filters.Entry{Name: f.GetName(), Config: cfg})
	}
	chain, err := filters.CreateChain(entries)
	if err != nil {
		log.Errorw("rejecting filter chain update", "error", err)
		return err
	}
	if m.onChainUpdate != nil {
		m.onChainUpdate(chain)
	}
	log.Debugw("published filter chain", "filters", chain.Len())
	return nil
}
