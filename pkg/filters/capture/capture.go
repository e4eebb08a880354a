// Package capture extracts a fixed number of leading or trailing bytes
// from each packet payload into the packet's dynamic metadata, where a
// downstream router picks them up as the routing token.
package capture

import (
	"context"
	"fmt"

	jsoniter "github.com/json-iterator/go"

	capturev1alpha1 "github.com/pilotage-io/pilotage/pkg/api/filters/capture/v1alpha1"
	"github.com/pilotage-io/pilotage/pkg/filters"
	"github.com/pilotage-io/pilotage/pkg/metadata"
)

// Name is the fixed versioned identifier the filter registers under.
const Name = "quilkin.filters.capture.v1alpha1.Capture"

// CapturedBytes is the metadata key the captured token is stored under,
// and the default key token routers look it up with.
const CapturedBytes = metadata.Key("quilkin.dev/capture")

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Strategy captures size bytes from one end of the payload and
// optionally removes them.
type Strategy struct {
	Size   uint32 `json:"size" yaml:"size"`
	Remove bool   `json:"remove" yaml:"remove"`
}

type Config struct {
	MetadataKey metadata.Key `json:"metadataKey" yaml:"metadataKey"`
	Suffix      *Strategy    `json:"suffix,omitempty" yaml:"suffix,omitempty"`
	Prefix      *Strategy    `json:"prefix,omitempty" yaml:"prefix,omitempty"`
}

// ConfigFromProto converts the wire-envelope schema form, applying the
// default metadata key when absent.
func ConfigFromProto(p *capturev1alpha1.Capture) Config {
	c := Config{MetadataKey: CapturedBytes}
	if p.MetadataKey != nil {
		c.MetadataKey = metadata.Key(p.GetMetadataKey())
	}
	if s := p.GetSuffix(); s != nil {
		c.Suffix = &Strategy{Size: s.GetSize(), Remove: s.GetRemove()}
	}
	if pre := p.GetPrefix(); pre != nil {
		c.Prefix = &Strategy{Size: pre.GetSize(), Remove: pre.GetRemove()}
	}
	return c
}

func (c Config) Proto() *capturev1alpha1.Capture {
	key := string(c.MetadataKey)
	p := &capturev1alpha1.Capture{MetadataKey: &key}
	if c.Suffix != nil {
		p.Suffix = &capturev1alpha1.Suffix{Size: c.Suffix.Size, Remove: c.Suffix.Remove}
	}
	if c.Prefix != nil {
		p.Prefix = &capturev1alpha1.Prefix{Size: c.Prefix.Size, Remove: c.Prefix.Remove}
	}
	return p
}

// Capture is the filter instance.
type Capture struct {
	config Config
}

func newCapture(config Config) (*Capture, error) {
	if config.MetadataKey == "" {
		config.MetadataKey = CapturedBytes
	}
	if (config.Suffix == nil) == (config.Prefix == nil) {
		return nil, fmt.Errorf("exactly one of suffix or prefix must be set")
	}
	return &Capture{config: config}, nil
}

func (f *Capture) Read(_ context.Context, pkt *filters.ReadContext) error {
	strategy, suffix := f.config.Suffix, true
	if strategy == nil {
		strategy, suffix = f.config.Prefix, false
	}
	size := int(strategy.Size)
	if len(pkt.Contents) < size {
		return fmt.Errorf("packet of %d bytes is shorter than capture size %d", len(pkt.Contents), size)
	}

	var captured []byte
	if suffix {
		captured = pkt.Contents[len(pkt.Contents)-size:]
		if strategy.Remove {
			pkt.Contents = pkt.Contents[:len(pkt.Contents)-size]
		}
	} else {
		captured = pkt.Contents[:size]
		if strategy.Remove {
			pkt.Contents = pkt.Contents[size:]
		}
	}

	token := make([]byte, size)
	copy(token, captured)
	pkt.Metadata.Insert(f.config.MetadataKey, metadata.Bytes(token))
	return nil
}

type factory struct{}

func (factory) Name() string { return Name }

func (factory) New(config []byte) (filters.Filter, error) {
	var c Config
	if config == nil {
		return nil, fmt.Errorf("capture requires a configuration")
	}
	if err := json.Unmarshal(config, &c); err != nil {
		return nil, err
	}
	return newCapture(c)
}

func init() {
	filters.Register(factory{})
}
