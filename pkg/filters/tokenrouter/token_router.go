// Package tokenrouter selects forwarding destinations for a packet from
// the routing token a capture stage stored in its metadata. Two
// strategies exist: a linear scan over every candidate endpoint, and an
// indexed lookup against the per-cluster token maps. The strategy is
// chosen at chain construction time from configuration.
package tokenrouter

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/netip"

	jsoniter "github.com/json-iterator/go"

	tokenrouterv1alpha1 "github.com/pilotage-io/pilotage/pkg/api/filters/token_router/v1alpha1"
	"github.com/pilotage-io/pilotage/pkg/cluster"
	"github.com/pilotage-io/pilotage/pkg/filters"
	"github.com/pilotage-io/pilotage/pkg/filters/capture"
	"github.com/pilotage-io/pilotage/pkg/metadata"
)

const (
	// Name identifies the linear-scan router.
	Name = "quilkin.filters.token_router.v1alpha1.TokenRouter"
	// HashedName identifies the indexed router.
	HashedName = "quilkin.filters.token_router.v1alpha1.HashedTokenRouter"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Config struct {
	// MetadataKey selects which metadata entry holds the token. It
	// defaults to the key the capture filter populates.
	MetadataKey metadata.Key `json:"metadataKey" yaml:"metadataKey"`
}

func defaultConfig() Config {
	return Config{MetadataKey: capture.CapturedBytes}
}

// ConfigFromProto converts the wire-envelope schema form; an absent
// metadata_key decodes to the default key.
func ConfigFromProto(p *tokenrouterv1alpha1.TokenRouter) Config {
	if p.MetadataKey == nil {
		return defaultConfig()
	}
	return Config{MetadataKey: metadata.Key(p.GetMetadataKey())}
}

func (c Config) Proto() *tokenrouterv1alpha1.TokenRouter {
	key := string(c.MetadataKey)
	return &tokenrouterv1alpha1.TokenRouter{MetadataKey: &key}
}

type NoTokenFoundError struct {
	Key metadata.Key
}

func (e *NoTokenFoundError) Error() string {
	return fmt.Sprintf("no routing token found for %q", e.Key)
}

type InvalidTypeError struct {
	Key   metadata.Key
	Value metadata.Value
}

func (e *InvalidTypeError) Error() string {
	return fmt.Sprintf("key %q was found but wasn't bytes, found %T(%s)", e.Key, e.Value, e.Value)
}

type NoEndpointMatchError struct {
	Key metadata.Key
	// Token is the base64 rendering of the unmatched token, for
	// diagnostics only.
	Token string
}

func (e *NoEndpointMatchError) Error() string {
	return fmt.Sprintf("no endpoint matched token %q from %q", e.Token, e.Key)
}

// token extracts the routing token from the packet's metadata.
func (c Config) token(pkt *filters.ReadContext) ([]byte, error) {
	value, ok := pkt.Metadata.Get(c.MetadataKey)
	if !ok {
		return nil, &NoTokenFoundError{Key: c.MetadataKey}
	}
	b, ok := value.(metadata.Bytes)
	if !ok {
		return nil, &InvalidTypeError{Key: c.MetadataKey, Value: value}
	}
	return []byte(b), nil
}

// TokenRouter routes by testing token membership against every
// candidate endpoint in order. O(endpoints x tokens per endpoint).
type TokenRouter struct {
	config Config
}

func (f *TokenRouter) Read(_ context.Context, pkt *filters.ReadContext) error {
	token, err := f.config.token(pkt)
	if err != nil {
		return err
	}

	var destinations []netip.AddrPort
	for _, ep := range pkt.Endpoints() {
		if ep.Metadata.HasToken(token) {
			destinations = append(destinations, ep.Address)
		}
	}
	if len(destinations) == 0 {
		return &NoEndpointMatchError{
			Key:   f.config.MetadataKey,
			Token: base64.StdEncoding.EncodeToString(token),
		}
	}
	pkt.Destinations = destinations
	return nil
}

// HashedTokenRouter routes through the per-cluster token indices built
// by the cluster map: one expected-O(1) lookup per cluster, independent
// of per-cluster endpoint count. The first cluster whose index matches
// wins and iteration stops; cluster order is the snapshot's
// deterministic iteration order.
type HashedTokenRouter struct {
	config Config
}

func (f *HashedTokenRouter) Read(_ context.Context, pkt *filters.ReadContext) error {
	token, err := f.config.token(pkt)
	if err != nil {
		return err
	}

	tok := cluster.NewToken(token)
	var destinations []netip.AddrPort
	pkt.Clusters.EachCluster(func(_ string, set *cluster.EndpointSet) bool {
		if addrs := set.AddressesForToken(tok); len(addrs) > 0 {
			destinations = append(destinations, addrs...)
			return false
		}
		return true
	})
	if len(destinations) == 0 {
		return &NoEndpointMatchError{
			Key:   f.config.MetadataKey,
			Token: base64.StdEncoding.EncodeToString(token),
		}
	}
	pkt.Destinations = destinations
	return nil
}

// Interface checks: both routers are plain synchronous filters.
var (
	_ filters.Filter = (*TokenRouter)(nil)
	_ filters.Filter = (*HashedTokenRouter)(nil)
)

func parseConfig(config []byte) (Config, error) {
	if config == nil {
		return defaultConfig(), nil
	}
	c := defaultConfig()
	if err := json.Unmarshal(config, &c); err != nil {
		return Config{}, err
	}
	if c.MetadataKey == "" {
		c.MetadataKey = capture.CapturedBytes
	}
	return c, nil
}

type factory struct{}

func (factory) Name() string { return Name }

func (factory) New(config []byte) (filters.Filter, error) {
	c, err := parseConfig(config)
	if err != nil {
		return nil, err
	}
	return &TokenRouter{config: c}, nil
}

type hashedFactory struct{}

func (hashedFactory) Name() string { return HashedName }

func (hashedFactory) New(config []byte) (filters.Filter, error) {
	c, err := parseConfig(config)
	if err != nil {
		return nil, err
	}
	return &HashedTokenRouter{config: c}, nil
}

func init() {
	filters.Register(factory{})
	filters.Register(hashedFactory{})
}
