// Package config loads the proxy's static configuration: the listen
// address, the ordered filter list, and any statically configured
// clusters. The same structures back the dynamic control-plane path,
// which replaces cluster and filter-chain snapshots at runtime.
package config

import (
	"encoding/base64"
	"fmt"
	"net/netip"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/pilotage-io/pilotage/pkg/cluster"
	"github.com/pilotage-io/pilotage/pkg/endpoint"
	"github.com/pilotage-io/pilotage/pkg/filters"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Filter is one entry of the filter list. Config keeps the YAML
// structure as-is; it is re-encoded to JSON for the filter factories.
type Filter struct {
	Name   string      `yaml:"name"`
	Label  string      `yaml:"label,omitempty"`
	Config interface{} `yaml:"config,omitempty"`
}

type Endpoint struct {
	Address string `yaml:"address"`
	// Tokens are base64 encoded in the file, raw bytes in memory.
	Tokens []string `yaml:"tokens,omitempty"`
}

type Cluster struct {
	Name      string     `yaml:"name,omitempty"`
	Endpoints []Endpoint `yaml:"endpoints"`
}

type Config struct {
	ID       string    `yaml:"id,omitempty"`
	Port     uint16    `yaml:"port,omitempty"`
	Filters  []Filter  `yaml:"filters,omitempty"`
	Clusters []Cluster `yaml:"clusters,omitempty"`
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(b)
}

func Parse(b []byte) (*Config, error) {
	c := &Config{}
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return c, nil
}

// FilterEntries converts the filter list into registry entries, turning
// each YAML config block into the JSON document the factories consume.
func (c *Config) FilterEntries() ([]filters.Entry, error) {
	entries := make([]filters.Entry, 0, len(c.Filters))
	for _, f := range c.Filters {
		if f.Name == "" {
			return nil, fmt.Errorf("filter entry without a name")
		}
		var raw []byte
		if f.Config != nil {
			b, err := json.Marshal(f.Config)
			if err != nil {
				return nil, fmt.Errorf("filter %s: encode config: %w", f.Name, err)
			}
			if !gjson.ValidBytes(b) || !gjson.ParseBytes(b).IsObject() {
				return nil, fmt.Errorf("filter %s: config must be a mapping", f.Name)
			}
			raw = b
		}
		entries = append(entries, filters.Entry{Name: f.Name, Config: raw})
	}
	return entries, nil
}

// NewChain builds the configured filter chain.
func (c *Config) NewChain() (*filters.Chain, error) {
	entries, err := c.FilterEntries()
	if err != nil {
		return nil, err
	}
	return filters.CreateChain(entries)
}

// NewClusterMap builds the static cluster snapshot, token indices
// included.
func (c *Config) NewClusterMap() (*cluster.ClusterMap, error) {
	m := cluster.New()
	for _, cl := range c.Clusters {
		eps := make(endpoint.Set, 0, len(cl.Endpoints))
		for _, e := range cl.Endpoints {
			addr, err := netip.ParseAddrPort(e.Address)
			if err != nil {
				return nil, fmt.Errorf("cluster %q: endpoint address %q: %w", cl.Name, e.Address, err)
			}
			tokens := make([][]byte, 0, len(e.Tokens))
			for _, t := range e.Tokens {
				raw, err := base64.StdEncoding.DecodeString(t)
				if err != nil {
					return nil, fmt.Errorf("cluster %q: token %q: %w", cl.Name, t, err)
				}
				tokens = append(tokens, raw)
			}
			eps = append(eps, endpoint.WithTokens(addr, tokens...))
		}
		m.Insert(cl.Name, eps)
	}
	m.BuildTokenMaps()
	return m, nil
}
