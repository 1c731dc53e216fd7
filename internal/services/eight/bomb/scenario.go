// Package bomb simulates the host bomb the puzzle module sits on.
//
// A Scenario describes the bomb's static figures and is usually loaded from a
// YAML file. A Bomb built from it counts its timer down from Start, tallies
// strikes, and counts solved modules, serving as the puzzle's environment and
// signal sink.
package bomb

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidScenario indicates a scenario whose figures cannot describe a bomb.
var ErrInvalidScenario = errors.New("invalid bomb scenario")

// Scenario is the static description of a bomb.
type Scenario struct {
	Timer      string `yaml:"timer"`
	Modules    int    `yaml:"modules"`
	Solved     int    `yaml:"solved"`
	Indicators int    `yaml:"indicators"`
	Batteries  int    `yaml:"batteries"`
	Serial     string `yaml:"serial"`
	Ports      int    `yaml:"ports"`
	MaxStrikes int    `yaml:"max_strikes"`
}

// DefaultScenario returns the bomb used when no scenario file is given.
func DefaultScenario() Scenario {
	return Scenario{
		Timer:      "5m",
		Modules:    11,
		Solved:     0,
		Indicators: 2,
		Batteries:  3,
		Serial:     "AL5QF2",
		Ports:      4,
		MaxStrikes: 3,
	}
}

// LoadScenario reads a YAML scenario. An empty path yields the default
// scenario; fields missing from the file keep their default values.
func LoadScenario(path string) (Scenario, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultScenario(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("read scenario: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario decodes YAML over the default scenario and validates it.
func ParseScenario(data []byte) (Scenario, error) {
	scenario := DefaultScenario()
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return Scenario{}, fmt.Errorf("parse scenario: %w", err)
	}
	if err := scenario.Validate(); err != nil {
		return Scenario{}, err
	}
	return scenario, nil
}

// Validate checks that the figures are consistent.
func (s Scenario) Validate() error {
	if _, err := s.TimerDuration(); err != nil {
		return err
	}
	if s.Modules <= 0 {
		return fmt.Errorf("%w: modules must be greater than zero", ErrInvalidScenario)
	}
	if s.Solved < 0 || s.Solved >= s.Modules {
		return fmt.Errorf("%w: solved must be in [0, %d)", ErrInvalidScenario, s.Modules)
	}
	if s.Indicators < 0 || s.Batteries < 0 || s.Ports < 0 {
		return fmt.Errorf("%w: counts must not be negative", ErrInvalidScenario)
	}
	if s.MaxStrikes <= 0 {
		return fmt.Errorf("%w: max_strikes must be greater than zero", ErrInvalidScenario)
	}
	return nil
}

// TimerDuration parses the timer field.
func (s Scenario) TimerDuration() (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(s.Timer))
	if err != nil {
		return 0, fmt.Errorf("%w: timer: %v", ErrInvalidScenario, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: timer must be positive", ErrInvalidScenario)
	}
	return d, nil
}

// SerialDigitSum adds up the decimal digits in the serial number.
func (s Scenario) SerialDigitSum() int {
	sum := 0
	for _, r := range s.Serial {
		if r >= '0' && r <= '9' {
			sum += int(r - '0')
		}
	}
	return sum
}
