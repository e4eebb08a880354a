// Package proxy runs the UDP data path: it receives downstream
// datagrams, routes each one through the filter chain against the
// current configuration snapshot, and forwards it to the destinations
// the routers selected.
package proxy

import (
	"context"
	"net"
	"net/netip"
	"sync/atomic"
	"time"

	"github.com/bytedance/gopkg/lang/mcache"
	"github.com/bytedance/gopkg/util/gopool"
	logging "github.com/ipfs/go-log/v2"
	"golang.org/x/sync/errgroup"

	"github.com/pilotage-io/pilotage/pkg/cluster"
	"github.com/pilotage-io/pilotage/pkg/filters"
)

var log = logging.Logger("proxy")

const (
	// maxPacketSize bounds a single datagram buffer.
	maxPacketSize = 1 << 16

	defaultSessionTTL = 60 * time.Second
)

type Proxy struct {
	port     uint16
	clusters *cluster.Holder
	chain    atomic.Pointer[filters.Chain]

	conn     *net.UDPConn
	sessions *sessionMap

	sessionTTL time.Duration
}

func New(port uint16, clusters *cluster.Holder, chain *filters.Chain) *Proxy {
	p := &Proxy{
		port:       port,
		clusters:   clusters,
		sessionTTL: defaultSessionTTL,
	}
	p.chain.Store(chain)
	return p
}

// StoreChain swaps in a new filter chain. Packets already mid-chain
// finish on the chain they started with.
func (p *Proxy) StoreChain(c *filters.Chain) {
	p.chain.Store(c)
}

// Listen binds the downstream socket. Must be called before Serve;
// split out so tests can bind port 0 and read the assigned port back.
func (p *Proxy) Listen() error {
	conn, err := net.ListenUDP("udp", &net.UDPAddr{Port: int(p.port)})
	if err != nil {
		return err
	}
	p.conn = conn
	p.sessions = newSessionMap(conn, p.sessionTTL)
	return nil
}

// Port returns the bound downstream port.
func (p *Proxy) Port() uint16 {
	return uint16(p.conn.LocalAddr().(*net.UDPAddr).Port)
}

// Serve runs the receive loop until ctx is cancelled.
func (p *Proxy) Serve(ctx context.Context) error {
	if p.conn == nil {
		if err := p.Listen(); err != nil {
			return err
		}
	}
	log.Infow("serving", "port", p.Port())

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-ctx.Done()
		p.conn.Close()
		p.sessions.Close()
		return nil
	})
	g.Go(func() error {
		for {
			buf := mcache.Malloc(maxPacketSize)
			n, src, err := p.conn.ReadFromUDPAddrPort(buf)
			if err != nil {
				mcache.Free(buf)
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
			src = netip.AddrPortFrom(src.Addr().Unmap(), src.Port())
			gopool.CtxGo(ctx, func() {
				p.process(ctx, buf, n, src)
			})
		}
	})
	return g.Wait()
}

// process routes one datagram. It loads the cluster snapshot and chain
// exactly once, so the whole packet is handled against one consistent
// configuration. Errors drop the packet; nothing shared is touched, so
// there is never anything to roll back.
func (p *Proxy) process(ctx context.Context, buf []byte, n int, src netip.AddrPort) {
	defer mcache.Free(buf)

	pkt := filters.NewReadContext(p.clusters.Load(), src, buf[:n])
	if err := p.chain.Load().Read(ctx, pkt); err != nil {
		log.Debugw("dropping packet", "src", src.String(), "error", err)
		return
	}

	for _, dst := range pkt.Destinations {
		sess, err := p.sessions.Get(src, dst)
		if err != nil {
			log.Errorw("session dial failed", "dst", dst.String(), "error", err)
			continue
		}
		if err := sess.Send(pkt.Contents); err != nil {
			log.Debugw("forward failed", "dst", dst.String(), "error", err)
		}
	}
}
