package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultThreadSleepTime matches the 0.01s quantum spec.md cites as a
// typical value.
const DefaultThreadSleepTime = 0.01

// LinkSpec is one direct, bidirectional link between two routers in a
// Topology.
type LinkSpec struct {
	A uint32 `yaml:"a"`
	B uint32 `yaml:"b"`
}

// Topology describes a static network of routers and direct links, plus
// the scheduling quantum every router and service manager in it shares.
type Topology struct {
	ThreadSleepTime float64    `yaml:"thread_sleep_time"`
	Routers         []uint32   `yaml:"routers"`
	Links           []LinkSpec `yaml:"links"`
}

// SleepDuration converts ThreadSleepTime, defaulting to
// DefaultThreadSleepTime when unset or non-positive.
func (t Topology) SleepDuration() time.Duration {
	seconds := t.ThreadSleepTime
	if seconds <= 0 {
		seconds = DefaultThreadSleepTime
	}
	return time.Duration(seconds * float64(time.Second))
}

// Load parses a Topology from r.
func Load(r io.Reader) (Topology, error) {
	var t Topology
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil {
		return Topology{}, fmt.Errorf("config: decode topology: %w", err)
	}
	return t, nil
}

// LoadFile opens path and parses it as a Topology.
func LoadFile(path string) (Topology, error) {
	f, err := os.Open(path)
	if err != nil {
		return Topology{}, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}
