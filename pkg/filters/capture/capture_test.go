package capture

import (
	"context"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pilotage-io/pilotage/pkg/cluster"
	"github.com/pilotage-io/pilotage/pkg/filters"
	"github.com/pilotage-io/pilotage/pkg/metadata"
)

func newPkt(contents string) *filters.ReadContext {
	return filters.NewReadContext(cluster.New(), netip.MustParseAddrPort("127.0.0.1:7000"), []byte(contents))
}

func TestSuffixCapture(t *testing.T) {
	f, err := newCapture(Config{Suffix: &Strategy{Size: 3, Remove: true}})
	require.NoError(t, err)

	pkt := newPkt("helloabc")
	require.NoError(t, f.Read(context.Background(), pkt))
	assert.Equal(t, []byte("hello"), pkt.Contents)

	v, ok := pkt.Metadata.Get(CapturedBytes)
	require.True(t, ok)
	assert.Equal(t, metadata.Bytes("abc"), v)
}

func TestSuffixCaptureKeep(t *testing.T) {
	f, err := newCapture(Config{Suffix: &Strategy{Size: 3}})
	require.NoError(t, err)

	pkt := newPkt("helloabc")
	require.NoError(t, f.Read(context.Background(), pkt))
	assert.Equal(t, []byte("helloabc"), pkt.Contents)

	v, _ := pkt.Metadata.Get(CapturedBytes)
	assert.Equal(t, metadata.Bytes("abc"), v)
}

func TestPrefixCapture(t *testing.T) {
	f, err := newCapture(Config{
		MetadataKey: "custom",
		Prefix:      &Strategy{Size: 2, Remove: true},
	})
	require.NoError(t, err)

	pkt := newPkt("xyhello")
	require.NoError(t, f.Read(context.Background(), pkt))
	assert.Equal(t, []byte("hello"), pkt.Contents)

	v, ok := pkt.Metadata.Get(metadata.Key("custom"))
	require.True(t, ok)
	assert.Equal(t, metadata.Bytes("xy"), v)
}

func TestCaptureShortPacket(t *testing.T) {
	f, err := newCapture(Config{Suffix: &Strategy{Size: 8, Remove: true}})
	require.NoError(t, err)

	pkt := newPkt("hello")
	assert.Error(t, f.Read(context.Background(), pkt))
}

// The captured token must survive the packet buffer being reused.
func TestCapturedTokenIsCopied(t *testing.T) {
	f, err := newCapture(Config{Suffix: &Strategy{Size: 3, Remove: true}})
	require.NoError(t, err)

	buf := []byte("helloabc")
	pkt := filters.NewReadContext(cluster.New(), netip.MustParseAddrPort("127.0.0.1:7000"), buf)
	require.NoError(t, f.Read(context.Background(), pkt))

	copy(buf, "XXXXXXXX")
	v, _ := pkt.Metadata.Get(CapturedBytes)
	assert.Equal(t, metadata.Bytes("abc"), v)
}

func TestFactoryConfig(t *testing.T) {
	tests := []struct {
		name    string
		config  []byte
		wantErr bool
	}{
		{
			name:   "suffix",
			config: []byte(`{"suffix":{"size":3,"remove":true}}`),
		},
		{
			name:   "prefix with key",
			config: []byte(`{"metadataKey":"k","prefix":{"size":1}}`),
		},
		{
			name:    "missing config",
			config:  nil,
			wantErr: true,
		},
		{
			name:    "no strategy",
			config:  []byte(`{"metadataKey":"k"}`),
			wantErr: true,
		},
		{
			name:    "both strategies",
			config:  []byte(`{"suffix":{"size":1},"prefix":{"size":1}}`),
			wantErr: true,
		},
		{
			name:    "malformed",
			config:  []byte(`{`),
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := filters.New(Name, tt.config)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigProtoRoundTrip(t *testing.T) {
	c := Config{MetadataKey: "k", Suffix: &Strategy{Size: 3, Remove: true}}
	assert.Equal(t, c, ConfigFromProto(c.Proto()))

	c = Config{MetadataKey: CapturedBytes, Prefix: &Strategy{Size: 2}}
	assert.Equal(t, c, ConfigFromProto(c.Proto()))
}
