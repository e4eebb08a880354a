package xdsresource

import (
	"net/netip"
	"strings"

	v3listenerpb "github.com/envoyproxy/go-control-plane/envoy/config/listener/v3"
	"github.com/golang/protobuf/proto"
	"github.com/golang/protobuf/ptypes/any"

	configv1alpha1 "github.com/pilotage-io/pilotage/pkg/api/config/v1alpha1"
	"github.com/pilotage-io/pilotage/pkg/endpoint"
)

// Resource is one decoded configuration object. Exactly one concrete
// implementation exists per ResourceType, and a Resource's
// ResourceType always agrees with the type identifier it was decoded
// from.
type Resource interface {
	ResourceType() ResourceType
	TypeUrl() string
	// Name derives a display name from the resource's content. It is
	// used for logging and cache indexing, not for identity.
	Name() string
	// AddHostToDatacenter stamps the observed sender address into a
	// Datacenter resource and is a no-op for every other kind. Only a
	// relay that can see the true origin address may call it; an
	// address-blind peer would silently inject a wrong host.
	AddHostToDatacenter(addr netip.AddrPort)
}

type ClusterResource struct {
	Cluster *configv1alpha1.Cluster
}

func (r *ClusterResource) ResourceType() ResourceType { return ClusterType }
func (r *ClusterResource) TypeUrl() string            { return ClusterTypeUrl }

func (r *ClusterResource) Name() string {
	return localityName(r.Cluster.GetLocality())
}

func (r *ClusterResource) AddHostToDatacenter(netip.AddrPort) {}

type ListenerResource struct {
	Listener *v3listenerpb.Listener
}

func (r *ListenerResource) ResourceType() ResourceType { return ListenerType }
func (r *ListenerResource) TypeUrl() string            { return ListenerTypeUrl }
func (r *ListenerResource) Name() string               { return r.Listener.GetName() }

func (r *ListenerResource) AddHostToDatacenter(netip.AddrPort) {}

type FilterChainResource struct {
	FilterChain *configv1alpha1.FilterChain
}

func (r *FilterChainResource) ResourceType() ResourceType { return FilterChainType }
func (r *FilterChainResource) TypeUrl() string            { return FilterChainTypeUrl }

// Name returns the empty string: filter chains have no independent name.
func (r *FilterChainResource) Name() string { return "" }

func (r *FilterChainResource) AddHostToDatacenter(netip.AddrPort) {}

type DatacenterResource struct {
	Datacenter *configv1alpha1.Datacenter
}

func (r *DatacenterResource) ResourceType() ResourceType { return DatacenterType }
func (r *DatacenterResource) TypeUrl() string            { return DatacenterTypeUrl }
func (r *DatacenterResource) Name() string               { return r.Datacenter.GetIcaoCode() }

// Agents do not know their own public IP, so they send Datacenter
// resources without a host and the relay stamps in the address it
// observed the resource arriving from.
func (r *DatacenterResource) AddHostToDatacenter(addr netip.AddrPort) {
	r.Datacenter.Host = endpoint.CanonicalIP(addr)
}

// localityName flattens a locality descriptor into the cluster's
// display name, or the empty string when the descriptor is absent.
func localityName(loc *configv1alpha1.Locality) string {
	if loc == nil {
		return ""
	}
	parts := make([]string, 0, 3)
	for _, p := range []string{loc.GetRegion(), loc.GetZone(), loc.GetSubZone()} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "-")
}

// UnmarshalResource decodes one wire envelope into its typed Resource.
// An identifier outside the registry fails with UnknownResourceTypeError;
// a matching identifier with a malformed payload surfaces the underlying
// decode error. Both reject only the one resource, never the stream.
func UnmarshalResource(raw *any.Any) (Resource, error) {
	rType, err := ResourceTypeFromUrl(raw.GetTypeUrl())
	if err != nil {
		return nil, err
	}
	return rType.Unmarshal(raw.GetValue())
}

// Unmarshal decodes a payload already known to be of type t. Semantics
// are identical to UnmarshalResource after the registry lookup.
func (t ResourceType) Unmarshal(value []byte) (Resource, error) {
	switch t {
	case ClusterType:
		c := &configv1alpha1.Cluster{}
		if err := proto.Unmarshal(value, c); err != nil {
			return nil, err
		}
		return &ClusterResource{Cluster: c}, nil
	case ListenerType:
		l := &v3listenerpb.Listener{}
		if err := proto.Unmarshal(value, l); err != nil {
			return nil, err
		}
		return &ListenerResource{Listener: l}, nil
	case FilterChainType:
		fc := &configv1alpha1.FilterChain{}
		if err := proto.Unmarshal(value, fc); err != nil {
			return nil, err
		}
		return &FilterChainResource{FilterChain: fc}, nil
	case DatacenterType:
		dc := &configv1alpha1.Datacenter{}
		if err := proto.Unmarshal(value, dc); err != nil {
			return nil, err
		}
		return &DatacenterResource{Datacenter: dc}, nil
	default:
		return nil, &UnknownResourceTypeError{Url: t.TypeUrl()}
	}
}

// MarshalAny serializes message into an envelope carrying t's canonical
// identifier. The buffer is pre-sized to the encoded length. Failures
// here mean malformed in-memory state and are defects, not recoverable
// conditions.
func MarshalAny(t ResourceType, message proto.Message) (*any.Any, error) {
	buf := proto.NewBuffer(make([]byte, 0, proto.Size(message)))
	if err := buf.Marshal(message); err != nil {
		return nil, err
	}
	return &any.Any{TypeUrl: t.TypeUrl(), Value: buf.Bytes()}, nil
}
