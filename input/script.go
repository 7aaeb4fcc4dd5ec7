package input

import (
	"fmt"
	"os"

	"github.com/oomph-ac/strafe/oerror"
	"gopkg.in/yaml.v3"
)

// Step holds a raw sample for a number of ticks.
type Step struct {
	Ticks int `yaml:"ticks"`
	Raw   Raw `yaml:",inline"`
}

// Script is a Source replaying a fixed list of steps, one raw sample per tick. Once the steps run
// out it keeps sampling an idle Raw.
type Script struct {
	latch *Latch
	steps []Step

	index  int
	held   int
	played int
}

// NewScript returns a script playing steps through a latch with the given look.
func NewScript(look *Look, steps ...Step) *Script {
	return &Script{latch: NewLatch(look), steps: steps}
}

// Sample ...
func (s *Script) Sample() Frame {
	var raw Raw
	for s.index < len(s.steps) && s.held >= s.steps[s.index].Ticks {
		s.index++
		s.held = 0
	}
	if s.index < len(s.steps) {
		raw = s.steps[s.index].Raw
		s.held++
		s.played++
	}
	s.latch.Update(raw)
	return s.latch.Sample()
}

// Done reports whether every step has been played.
func (s *Script) Done() bool {
	return s.played >= s.Len()
}

// Len returns the total amount of ticks in the script.
func (s *Script) Len() int {
	n := 0
	for _, st := range s.steps {
		n += st.Ticks
	}
	return n
}

// LoadScript reads a list of steps from a YAML file.
func LoadScript(path string) ([]Step, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	var doc struct {
		Steps []Step `yaml:"steps"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode script %s: %w", path, err)
	}
	for i, st := range doc.Steps {
		if st.Ticks < 0 {
			return nil, oerror.New("script step %d has negative ticks", i)
		}
	}
	return doc.Steps, nil
}

var _ Source = (*Script)(nil)
