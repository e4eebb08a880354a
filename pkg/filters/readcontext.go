package filters

import (
	"net/netip"

	"github.com/pilotage-io/pilotage/pkg/cluster"
	"github.com/pilotage-io/pilotage/pkg/endpoint"
	"github.com/pilotage-io/pilotage/pkg/metadata"
)

// ReadContext is the mutable per-packet state a chain executes against.
// It is built once per packet from the snapshot current at that
// instant; filters read endpoints and metadata from it and routers
// write the forwarding destinations into it. It is owned by a single
// packet task and never shared.
type ReadContext struct {
	// Clusters is the configuration snapshot the whole packet routes
	// against. It must be treated as read-only.
	Clusters *cluster.ClusterMap
	// Source is the downstream address the packet arrived from.
	Source netip.AddrPort
	// Metadata carries dynamic state between filters, e.g. the token a
	// capture stage extracted from the payload.
	Metadata metadata.Map
	// Contents is the packet payload. Filters may reslice it.
	Contents []byte
	// Destinations starts empty and is the routers' sole write target.
	// A router either fills it or returns an error; it never succeeds
	// leaving it empty.
	Destinations []netip.AddrPort
}

func NewReadContext(clusters *cluster.ClusterMap, source netip.AddrPort, contents []byte) *ReadContext {
	return &ReadContext{
		Clusters: clusters,
		Source:   source,
		Metadata: metadata.New(),
		Contents: contents,
	}
}

// Endpoints returns the full candidate endpoint set of the snapshot,
// in stable iteration order.
func (c *ReadContext) Endpoints() endpoint.Set {
	return c.Clusters.Endpoints()
}
