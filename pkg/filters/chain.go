package filters

import "context"

// Entry names one filter instance in a chain configuration.
type Entry struct {
	Name   string
	Config []byte
}

type chainLink struct {
	name   string
	filter Filter
}

// Chain executes an ordered list of filters over one packet. A chain is
// immutable once created; configuration updates build a new chain and
// swap it in atomically.
type Chain struct {
	links []chainLink
}

// CreateChain constructs every entry through the registry, in order.
func CreateChain(entries []Entry) (*Chain, error) {
	links := make([]chainLink, 0, len(entries))
	for _, e := range entries {
		f, err := New(e.Name, e.Config)
		if err != nil {
			return nil, err
		}
		links = append(links, chainLink{name: e.Name, filter: f})
	}
	return &Chain{links: links}, nil
}

// Read runs the packet through every filter in order. The first failure
// aborts the chain and is returned wrapped with the failing filter's
// name; the caller drops the packet.
func (c *Chain) Read(ctx context.Context, pkt *ReadContext) error {
	for _, l := range c.links {
		if err := l.filter.Read(ctx, pkt); err != nil {
			if _, ok := err.(*FilterError); ok {
				return err
			}
			return &FilterError{Filter: l.name, Err: err}
		}
	}
	return nil
}

// Len reports the number of filters in the chain.
func (c *Chain) Len() int { return len(c.links) }
