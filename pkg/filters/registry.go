package filters

import (
	"fmt"
	"sync"
)

// Factory builds one kind of filter from its structured configuration,
// given as a raw JSON document or nil when the configuration is absent.
type Factory interface {
	Name() string
	New(config []byte) (Filter, error)
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register makes a factory available under its fixed versioned name.
// Filter packages call this from init.
func Register(f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[f.Name()] = f
}

func factoryFor(name string) (Factory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[name]
	return f, ok
}

// New constructs a filter by registered name.
func New(name string, config []byte) (Filter, error) {
	f, ok := factoryFor(name)
	if !ok {
		return nil, &CreationError{Filter: name, Err: fmt.Errorf("not registered")}
	}
	flt, err := f.New(config)
	if err != nil {
		return nil, &CreationError{Filter: name, Err: err}
	}
	return flt, nil
}
