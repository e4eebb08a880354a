// Package filters defines the per-packet filter contract, the routing
// context threaded through a chain, and the registry filters are
// constructed from at configuration time.
package filters

import (
	"context"
	"fmt"
)

// Filter processes one inbound packet. Read is invoked through the
// chain's uniform call boundary; implementations in this repository are
// synchronous, CPU-only computations that never block, perform I/O or
// touch shared mutable state, so cancelling a packet mid-chain is
// always safe.
type Filter interface {
	Read(ctx context.Context, pkt *ReadContext) error
}

// FilterError wraps any failure returned by a filter in a chain. The
// proxy logs it and drops the packet; it is never fatal to the process
// or the chain.
type FilterError struct {
	Filter string
	Err    error
}

func (e *FilterError) Error() string {
	return fmt.Sprintf("filter %s: %s", e.Filter, e.Err)
}

func (e *FilterError) Unwrap() error { return e.Err }

// CreationError reports an invalid filter configuration at chain
// construction time.
type CreationError struct {
	Filter string
	Err    error
}

func (e *CreationError) Error() string {
	return fmt.Sprintf("create filter %s: %s", e.Filter, e.Err)
}

func (e *CreationError) Unwrap() error { return e.Err }
