package proxy

import (
	"net"
	"net/netip"
	"sync"
	"time"

	"github.com/bytedance/gopkg/lang/mcache"
)

// sessionKey pairs a downstream sender with one forwarding destination.
type sessionKey struct {
	src netip.AddrPort
	dst netip.AddrPort
}

// session owns the upstream socket for one (sender, destination) pair
// and pumps replies back through the shared downstream socket.
type session struct {
	key        sessionKey
	upstream   *net.UDPConn
	downstream *net.UDPConn

	mu       sync.Mutex
	lastSeen time.Time

	closeOnce sync.Once
	closed    chan struct{}
}

func newSession(key sessionKey, downstream *net.UDPConn) (*session, error) {
	upstream, err := net.DialUDP("udp", nil, net.UDPAddrFromAddrPort(key.dst))
	if err != nil {
		return nil, err
	}
	s := &session{
		key:        key,
		upstream:   upstream,
		downstream: downstream,
		lastSeen:   time.Now(),
		closed:     make(chan struct{}),
	}
	go s.recvLoop()
	return s, nil
}

func (s *session) touch() {
	s.mu.Lock()
	s.lastSeen = time.Now()
	s.mu.Unlock()
}

func (s *session) idleSince(deadline time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen.Before(deadline)
}

func (s *session) Send(b []byte) error {
	s.touch()
	_, err := s.upstream.Write(b)
	return err
}

// recvLoop relays upstream replies back to the downstream sender until
// the session closes.
func (s *session) recvLoop() {
	for {
		buf := mcache.Malloc(maxPacketSize)
		n, err := s.upstream.Read(buf)
		if err != nil {
			mcache.Free(buf)
			select {
			case <-s.closed:
			default:
				log.Debugw("session closed", "dst", s.key.dst.String(), "error", err)
				s.Close()
			}
			return
		}
		if _, err := s.downstream.WriteToUDPAddrPort(buf[:n], s.key.src); err != nil {
			log.Debugw("reply write failed", "src", s.key.src.String(), "error", err)
		}
		s.touch()
		mcache.Free(buf)
	}
}

func (s *session) Close() {
	s.closeOnce.Do(func() {
		close(s.closed)
		s.upstream.Close()
	})
}

// sessionMap tracks live sessions and evicts the ones idle past the
// ttl, closing their sockets.
type sessionMap struct {
	mu       sync.Mutex
	sessions map[sessionKey]*session

	downstream *net.UDPConn
	ttl        time.Duration
	closed     chan struct{}
	closeOnce  sync.Once
}

func newSessionMap(downstream *net.UDPConn, ttl time.Duration) *sessionMap {
	m := &sessionMap{
		sessions:   make(map[sessionKey]*session),
		downstream: downstream,
		ttl:        ttl,
		closed:     make(chan struct{}),
	}
	go m.evictLoop()
	return m
}

func (m *sessionMap) Get(src, dst netip.AddrPort) (*session, error) {
	key := sessionKey{src: src, dst: dst}
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[key]; ok {
		select {
		case <-s.closed:
			delete(m.sessions, key)
		default:
			return s, nil
		}
	}
	s, err := newSession(key, m.downstream)
	if err != nil {
		return nil, err
	}
	m.sessions[key] = s
	return s, nil
}

func (m *sessionMap) evictLoop() {
	interval := m.ttl / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-m.closed:
			return
		case <-ticker.C:
			deadline := time.Now().Add(-m.ttl)
			m.mu.Lock()
			for key, s := range m.sessions {
				if s.idleSince(deadline) {
					s.Close()
					delete(m.sessions, key)
				}
			}
			m.mu.Unlock()
		}
	}
}

func (m *sessionMap) Close() {
	m.closeOnce.Do(func() {
		close(m.closed)
		m.mu.Lock()
		for key, s := range m.sessions {
			s.Close()
			delete(m.sessions, key)
		}
		m.mu.Unlock()
	})
}
