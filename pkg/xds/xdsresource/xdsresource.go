// Package xdsresource defines the typed configuration resources the
// proxy exchanges with its control plane, and the codec between those
// types and the opaque Any envelopes carried on the wire.
package xdsresource

import (
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type ResourceType int

const (
	UnknownResource ResourceType = iota
	ClusterType
	ListenerType
	FilterChainType
	DatacenterType
)

const (
	apiTypePrefix      = "type.googleapis.com/"
	ClusterTypeUrl     = apiTypePrefix + "quilkin.config.v1alpha1.Cluster"
	ListenerTypeUrl    = apiTypePrefix + "envoy.config.listener.v3.Listener"
	FilterChainTypeUrl = apiTypePrefix + "quilkin.config.v1alpha1.FilterChain"
	DatacenterTypeUrl  = apiTypePrefix + "quilkin.config.v1alpha1.Datacenter"
)

// ResourceTypes is the fixed iteration order over all resource kinds,
// for callers that must enumerate every kind (e.g. subscribing to all
// resource streams).
var ResourceTypes = []ResourceType{
	ClusterType,
	ListenerType,
	FilterChainType,
	DatacenterType,
}

var ResourceTypeToUrl = map[ResourceType]string{
	ClusterType:     ClusterTypeUrl,
	ListenerType:    ListenerTypeUrl,
	FilterChainType: FilterChainTypeUrl,
	DatacenterType:  DatacenterTypeUrl,
}

var ResourceUrlToType = map[string]ResourceType{
	ClusterTypeUrl:     ClusterType,
	ListenerTypeUrl:    ListenerType,
	FilterChainTypeUrl: FilterChainType,
	DatacenterTypeUrl:  DatacenterType,
}

var ResourceTypeToName = map[ResourceType]string{
	ClusterType:     "Cluster",
	ListenerType:    "Listener",
	FilterChainType: "FilterChain",
	DatacenterType:  "Datacenter",
}

// TypeUrl returns the canonical wire identifier of t.
func (t ResourceType) TypeUrl() string {
	return ResourceTypeToUrl[t]
}

func (t ResourceType) String() string {
	if name, ok := ResourceTypeToName[t]; ok {
		return name
	}
	return fmt.Sprintf("UnknownResource(%d)", int(t))
}

// ResourceTypeFromUrl resolves a wire identifier to its ResourceType.
// Matching is exact; anything not in the registry is rejected.
func ResourceTypeFromUrl(url string) (ResourceType, error) {
	if t, ok := ResourceUrlToType[url]; ok {
		return t, nil
	}
	return UnknownResource, &UnknownResourceTypeError{Url: url}
}

// UnknownResourceTypeError reports an envelope whose type identifier is
// not in the registry. It is recoverable per resource: callers skip the
// one envelope and keep the stream alive.
type UnknownResourceTypeError struct {
	Url string
}

func (e *UnknownResourceTypeError) Error() string {
	return fmt.Sprintf("unknown resource type: %s", e.Url)
}

// GRPCStatus renders the error as an invalid-argument status for
// request/response surfaces.
func (e *UnknownResourceTypeError) GRPCStatus() *status.Status {
	return status.New(codes.InvalidArgument, e.Error())
}
