package tokenrouter

import (
	"context"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tokenrouterv1alpha1 "github.com/pilotage-io/pilotage/pkg/api/filters/token_router/v1alpha1"
	"github.com/pilotage-io/pilotage/pkg/cluster"
	"github.com/pilotage-io/pilotage/pkg/endpoint"
	"github.com/pilotage-io/pilotage/pkg/filters"
	"github.com/pilotage-io/pilotage/pkg/filters/capture"
	"github.com/pilotage-io/pilotage/pkg/metadata"
)

const tokenKey = metadata.Key("TOKEN")

var (
	addrA = netip.MustParseAddrPort("127.0.0.1:80")
	addrB = netip.MustParseAddrPort("127.0.0.1:90")
	addrC = netip.MustParseAddrPort("127.0.0.1:100")
)

func TestConvertProtoConfig(t *testing.T) {
	key := "foobar"
	tests := []struct {
		name  string
		proto *tokenrouterv1alpha1.TokenRouter
		want  Config
	}{
		{
			name:  "should use provided value",
			proto: &tokenrouterv1alpha1.TokenRouter{MetadataKey: &key},
			want:  Config{MetadataKey: "foobar"},
		},
		{
			name:  "should use correct default value",
			proto: &tokenrouterv1alpha1.TokenRouter{},
			want:  Config{MetadataKey: capture.CapturedBytes},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConfigFromProto(tt.proto))
		})
	}
}

func TestConfigProtoRoundTrip(t *testing.T) {
	c := Config{MetadataKey: "X"}
	assert.Equal(t, c, ConfigFromProto(c.Proto()))

	c = defaultConfig()
	assert.Equal(t, c, ConfigFromProto(c.Proto()))
}

// newCtx builds a context over a single default cluster holding
// endpoints A, B and C, where A and C (not B) carry token "abc".
func newCtx(t *testing.T) *filters.ReadContext {
	t.Helper()
	m := cluster.New()
	m.InsertDefault(endpoint.Set{
		endpoint.WithTokens(addrA, []byte("abc")),
		endpoint.WithTokens(addrB, []byte("def")),
		endpoint.WithTokens(addrC, []byte("abc"), []byte("xyz")),
	})
	m.BuildTokenMaps()
	return filters.NewReadContext(m, netip.MustParseAddrPort("127.0.0.1:7000"), []byte("hello"))
}

func TestTokenRouterRead(t *testing.T) {
	router := &TokenRouter{config: Config{MetadataKey: tokenKey}}

	t.Run("matches preserve endpoint order", func(t *testing.T) {
		pkt := newCtx(t)
		pkt.Metadata.Insert(tokenKey, metadata.Bytes("abc"))
		require.NoError(t, router.Read(context.Background(), pkt))
		assert.Equal(t, []netip.AddrPort{addrA, addrC}, pkt.Destinations)
	})

	t.Run("no endpoint match", func(t *testing.T) {
		pkt := newCtx(t)
		pkt.Metadata.Insert(tokenKey, metadata.Bytes("nope"))
		err := router.Read(context.Background(), pkt)
		var noMatch *NoEndpointMatchError
		require.ErrorAs(t, err, &noMatch)
		assert.Equal(t, tokenKey, noMatch.Key)
		assert.Equal(t, "bm9wZQ==", noMatch.Token)
		assert.Empty(t, pkt.Destinations)
	})

	t.Run("no token found", func(t *testing.T) {
		pkt := newCtx(t)
		err := router.Read(context.Background(), pkt)
		var noToken *NoTokenFoundError
		require.ErrorAs(t, err, &noToken)
		assert.Equal(t, tokenKey, noToken.Key)
	})

	t.Run("invalid token type", func(t *testing.T) {
		pkt := newCtx(t)
		pkt.Metadata.Insert(tokenKey, metadata.String("wrong"))
		err := router.Read(context.Background(), pkt)
		var invalid *InvalidTypeError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, tokenKey, invalid.Key)
		assert.Equal(t, metadata.String("wrong"), invalid.Value)
	})
}

// newHashedCtx builds a context over two named clusters with disjoint
// token indices.
func newHashedCtx(t *testing.T) *filters.ReadContext {
	t.Helper()
	m := cluster.New()
	m.Insert("alpha", endpoint.Set{endpoint.WithTokens(addrA, []byte("abc"))})
	m.Insert("beta", endpoint.Set{endpoint.WithTokens(addrB, []byte("xyz"))})
	m.BuildTokenMaps()
	return filters.NewReadContext(m, netip.MustParseAddrPort("127.0.0.1:7000"), []byte("hello"))
}

func TestHashedTokenRouterRead(t *testing.T) {
	router := &HashedTokenRouter{config: Config{MetadataKey: tokenKey}}

	t.Run("token in first cluster", func(t *testing.T) {
		pkt := newHashedCtx(t)
		pkt.Metadata.Insert(tokenKey, metadata.Bytes("abc"))
		require.NoError(t, router.Read(context.Background(), pkt))
		assert.Equal(t, []netip.AddrPort{addrA}, pkt.Destinations)
	})

	t.Run("token in later cluster", func(t *testing.T) {
		pkt := newHashedCtx(t)
		pkt.Metadata.Insert(tokenKey, metadata.Bytes("xyz"))
		require.NoError(t, router.Read(context.Background(), pkt))
		assert.Equal(t, []netip.AddrPort{addrB}, pkt.Destinations)
	})

	t.Run("first non-empty cluster wins", func(t *testing.T) {
		m := cluster.New()
		m.Insert("alpha", endpoint.Set{endpoint.WithTokens(addrA, []byte("abc"))})
		m.Insert("beta", endpoint.Set{endpoint.WithTokens(addrB, []byte("abc"))})
		m.BuildTokenMaps()
		pkt := filters.NewReadContext(m, netip.MustParseAddrPort("127.0.0.1:7000"), nil)
		pkt.Metadata.Insert(tokenKey, metadata.Bytes("abc"))
		require.NoError(t, router.Read(context.Background(), pkt))
		assert.Equal(t, []netip.AddrPort{addrA}, pkt.Destinations)
	})

	t.Run("no cluster matches", func(t *testing.T) {
		pkt := newHashedCtx(t)
		pkt.Metadata.Insert(tokenKey, metadata.Bytes("nope"))
		err := router.Read(context.Background(), pkt)
		var noMatch *NoEndpointMatchError
		require.ErrorAs(t, err, &noMatch)
		assert.Empty(t, pkt.Destinations)
	})

	t.Run("no token found", func(t *testing.T) {
		pkt := newHashedCtx(t)
		err := router.Read(context.Background(), pkt)
		var noToken *NoTokenFoundError
		require.ErrorAs(t, err, &noToken)
	})
}

func TestFactoryDefaultMetadataKey(t *testing.T) {
	for _, name := range []string{Name, HashedName} {
		f, err := filters.New(name, nil)
		require.NoError(t, err)

		pkt := newCtx(t)
		pkt.Metadata.Insert(capture.CapturedBytes, metadata.Bytes("abc"))
		require.NoError(t, f.Read(context.Background(), pkt))
		assert.NotEmpty(t, pkt.Destinations)
	}
}

func TestFactoryCustomMetadataKey(t *testing.T) {
	f, err := filters.New(Name, []byte(`{"metadataKey":"X"}`))
	require.NoError(t, err)

	// token under the default key is ignored once X is configured
	pkt := newCtx(t)
	pkt.Metadata.Insert(capture.CapturedBytes, metadata.Bytes("abc"))
	err = f.Read(context.Background(), pkt)
	var noToken *NoTokenFoundError
	require.ErrorAs(t, err, &noToken)
	assert.Equal(t, metadata.Key("X"), noToken.Key)

	pkt = newCtx(t)
	pkt.Metadata.Insert(metadata.Key("X"), metadata.Bytes("abc"))
	require.NoError(t, f.Read(context.Background(), pkt))
}

// Routers either fail or leave a non-empty destination list; success
// with no destinations is unreachable.
func TestNeverSucceedsEmpty(t *testing.T) {
	routers := []filters.Filter{
		&TokenRouter{config: Config{MetadataKey: tokenKey}},
		&HashedTokenRouter{config: Config{MetadataKey: tokenKey}},
	}
	values := []metadata.Value{
		nil,
		metadata.Bytes("abc"),
		metadata.Bytes("def"),
		metadata.Bytes(""),
		metadata.Bytes("missing"),
		metadata.String("abc"),
		metadata.Number(3),
	}
	for _, r := range routers {
		for _, v := range values {
			pkt := newCtx(t)
			if v != nil {
				pkt.Metadata.Insert(tokenKey, v)
			}
			err := r.Read(context.Background(), pkt)
			if err == nil {
				assert.NotEmpty(t, pkt.Destinations)
			} else {
				assert.Empty(t, pkt.Destinations)
			}
		}
	}
}
