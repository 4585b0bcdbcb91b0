package cmd

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/qnetsim/qnetsim/sim"
)

// Defaults applied when the model file leaves a value out.
const (
	defaultFirstArrival = 2.0
	defaultMinArrival   = 1.0
	defaultMaxArrival   = 5.0
	defaultMinService   = 1.0
	defaultMaxService   = 5.0

	// An `arrivals: {Q: base}` entry spreads inter-arrival times over [0.8·base, 1.2·base].
	arrivalSpreadLow  = 0.8
	arrivalSpreadHigh = 1.2

	exitTarget = "exit"
)

// ModelFile is the on-disk YAML model.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type ModelFile struct {
	RndNumbersPerSeed int                `yaml:"rndnumbersPerSeed"`
	Seeds             []int64            `yaml:"seeds"`
	FirstArrival      *float64           `yaml:"firstArrival"`
	Arrivals          map[string]float64 `yaml:"arrivals"`
	Queues            yaml.Node          `yaml:"queues"` // mapping; declaration order defines station ids
	Network           []RouteSpec        `yaml:"network"`
}

// QueueSpec describes one queue in the model file.
// minAtendimento/maxAtendimento are accepted as legacy aliases of minService/maxService.
type QueueSpec struct {
	Servers        int      `yaml:"servers"`
	Capacity       int      `yaml:"capacity"`
	MinArrival     *float64 `yaml:"minArrival"`
	MaxArrival     *float64 `yaml:"maxArrival"`
	MinService     *float64 `yaml:"minService"`
	MaxService     *float64 `yaml:"maxService"`
	MinAtendimento *float64 `yaml:"minAtendimento"`
	MaxAtendimento *float64 `yaml:"maxAtendimento"`
}

var knownQueueFields = map[string]bool{
	"servers": true, "capacity": true,
	"minArrival": true, "maxArrival": true,
	"minService": true, "maxService": true,
	"minAtendimento": true, "maxAtendimento": true,
}

// RouteSpec is one `network` entry.
type RouteSpec struct {
	Source      string  `yaml:"source"`
	Target      string  `yaml:"target"`
	Probability float64 `yaml:"probability"`
}

// Model is a decoded model file with queue names resolved to station ids.
type Model struct {
	DrawBudget   int
	Seeds        []int64
	FirstArrival float64
	MinArrival   float64
	MaxArrival   float64
	Entry        sim.StationID
	Stations     []sim.StationConfig
	Routes       []sim.RouteConfig
}

// LoadModel reads and decodes the model file at path.
func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model file: %w", err)
	}
	return ParseModel(data)
}

// ParseModel decodes model YAML with strict field checking.
func ParseModel(data []byte) (*Model, error) {
	var mf ModelFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&mf); err != nil {
		return nil, fmt.Errorf("parsing model file: %w", err)
	}
	return mf.resolve()
}

func (mf *ModelFile) resolve() (*Model, error) {
	names, specs, err := decodeQueues(&mf.Queues)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]sim.StationID, len(names))
	for i, name := range names {
		ids[name] = sim.StationID(i)
	}

	m := &Model{
		DrawBudget:   mf.RndNumbersPerSeed,
		Seeds:        mf.Seeds,
		FirstArrival: defaultFirstArrival,
		Stations:     make([]sim.StationConfig, len(names)),
	}
	if mf.FirstArrival != nil {
		m.FirstArrival = *mf.FirstArrival
	}
	for i, name := range names {
		m.Stations[i] = stationConfig(name, specs[i])
	}

	entryName, err := mf.entryName(names)
	if err != nil {
		return nil, err
	}
	m.Entry = ids[entryName]
	m.MinArrival, m.MaxArrival = mf.arrivalRange(entryName, specs[m.Entry])
	for i, name := range names {
		if sim.StationID(i) != m.Entry && (specs[i].MinArrival != nil || specs[i].MaxArrival != nil) {
			logrus.Warnf("queue %s is not the entry queue, ignoring its arrival range", name)
		}
	}

	for i, r := range mf.Network {
		src, ok := ids[r.Source]
		if !ok {
			return nil, &sim.ConfigError{Field: fmt.Sprintf("network[%d].source", i), Reason: fmt.Sprintf("unknown queue %q", r.Source)}
		}
		dst, ok := ids[r.Target]
		if !ok {
			if !strings.EqualFold(r.Target, exitTarget) {
				return nil, &sim.ConfigError{Field: fmt.Sprintf("network[%d].target", i), Reason: fmt.Sprintf("unknown queue %q", r.Target)}
			}
			dst = sim.Exit
		}
		m.Routes = append(m.Routes, sim.RouteConfig{Source: src, Target: dst, Probability: r.Probability})
	}
	return m, nil
}

// decodeQueues walks the queues mapping in declaration order.
func decodeQueues(node *yaml.Node) ([]string, []QueueSpec, error) {
	if node.Kind == 0 {
		return nil, nil, &sim.ConfigError{Field: "queues", Reason: "at least one queue required"}
	}
	if node.Kind != yaml.MappingNode {
		return nil, nil, &sim.ConfigError{Field: "queues", Reason: fmt.Sprintf("must be a mapping (line %d)", node.Line)}
	}
	names := make([]string, 0, len(node.Content)/2)
	specs := make([]QueueSpec, 0, len(node.Content)/2)
	seen := make(map[string]bool, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		name := key.Value
		if seen[name] {
			return nil, nil, &sim.ConfigError{Field: "queues." + name, Reason: fmt.Sprintf("duplicate queue (line %d)", key.Line)}
		}
		seen[name] = true
		if val.Kind != yaml.MappingNode {
			return nil, nil, &sim.ConfigError{Field: "queues." + name, Reason: fmt.Sprintf("must be a mapping (line %d)", val.Line)}
		}
		for j := 0; j+1 < len(val.Content); j += 2 {
			if field := val.Content[j].Value; !knownQueueFields[field] {
				return nil, nil, &sim.ConfigError{Field: "queues." + name + "." + field, Reason: fmt.Sprintf("unknown field (line %d)", val.Content[j].Line)}
			}
		}
		var spec QueueSpec
		if err := val.Decode(&spec); err != nil {
			return nil, nil, fmt.Errorf("parsing queue %s: %w", name, err)
		}
		names = append(names, name)
		specs = append(specs, spec)
	}
	if len(names) == 0 {
		return nil, nil, &sim.ConfigError{Field: "queues", Reason: "at least one queue required"}
	}
	return names, specs, nil
}

func stationConfig(name string, q QueueSpec) sim.StationConfig {
	minS, maxS := defaultMinService, defaultMaxService
	switch {
	case q.MinService != nil && q.MaxService != nil:
		minS, maxS = *q.MinService, *q.MaxService
	case q.MinAtendimento != nil && q.MaxAtendimento != nil:
		minS, maxS = *q.MinAtendimento, *q.MaxAtendimento
	default:
		logrus.Warnf("queue %s has no service range, using [%.1f, %.1f]", name, minS, maxS)
	}
	return sim.StationConfig{
		Name:       name,
		Servers:    q.Servers,
		Capacity:   q.Capacity,
		MinService: minS,
		MaxService: maxS,
	}
}

// entryName returns the queue external arrivals enter at: the single
// `arrivals` key, or the first declared queue.
func (mf *ModelFile) entryName(names []string) (string, error) {
	switch len(mf.Arrivals) {
	case 0:
		return names[0], nil
	case 1:
		for name := range mf.Arrivals {
			for _, n := range names {
				if n == name {
					return name, nil
				}
			}
			return "", &sim.ConfigError{Field: "arrivals." + name, Reason: "unknown queue"}
		}
	}
	return "", &sim.ConfigError{Field: "arrivals", Reason: fmt.Sprintf("exactly one entry queue supported, got %d", len(mf.Arrivals))}
}

// arrivalRange prefers the entry queue's explicit range, then the
// `arrivals` base value, then the defaults.
func (mf *ModelFile) arrivalRange(entry string, q QueueSpec) (float64, float64) {
	if q.MinArrival != nil && q.MaxArrival != nil {
		return *q.MinArrival, *q.MaxArrival
	}
	if base, ok := mf.Arrivals[entry]; ok {
		return base * arrivalSpreadLow, base * arrivalSpreadHigh
	}
	return defaultMinArrival, defaultMaxArrival
}

// NetworkConfig builds the run configuration for one seed.
func (m *Model) NetworkConfig(seed int64) sim.NetworkConfig {
	return sim.NetworkConfig{
		Seed:         seed,
		DrawBudget:   m.DrawBudget,
		FirstArrival: m.FirstArrival,
		MinArrival:   m.MinArrival,
		MaxArrival:   m.MaxArrival,
		Entry:        m.Entry,
		Stations:     m.Stations,
		Routes:       m.Routes,
	}
}
