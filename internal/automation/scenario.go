package automation

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/globalkin/internal/config"
	"github.com/san-kum/globalkin/internal/dynamo"
	"github.com/san-kum/globalkin/internal/experiment"
)

// Scenario is a scripted sequence of runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one run. Its config starts from the named preset (or the
// defaults) and every key given in the step overrides it.
type ScenarioStep struct {
	Name       string
	Preset     string
	Integrator string
	Config     config.Config
}

func (s *ScenarioStep) UnmarshalYAML(node *yaml.Node) error {
	var head struct {
		Name       string `yaml:"name"`
		Preset     string `yaml:"preset"`
		Integrator string `yaml:"integrator"`
	}
	if err := node.Decode(&head); err != nil {
		return err
	}

	cfg := config.DefaultConfig()
	if head.Preset != "" {
		if cfg = config.GetPreset(head.Preset); cfg == nil {
			return fmt.Errorf("line %d: unknown preset: %s", node.Line, head.Preset)
		}
	}
	if err := node.Decode(cfg); err != nil {
		return err
	}

	if head.Integrator == "" {
		head.Integrator = "euler"
	}
	*s = ScenarioStep{
		Name:       head.Name,
		Preset:     head.Preset,
		Integrator: head.Integrator,
		Config:     *cfg,
	}
	return nil
}

// Label names a step for output.
func (s ScenarioStep) Label(i int) string {
	if s.Name != "" {
		return s.Name
	}
	return fmt.Sprintf("step-%d", i+1)
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}
	return &scenario, nil
}

type StepResult struct {
	Step       ScenarioStep
	Trajectory *dynamo.Trajectory
}

// RunScenario executes the steps in order and stops at the first failure,
// returning the results gathered so far.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		exp := experiment.New(step.Config)
		if err := exp.Setup(registry, step.Integrator); err != nil {
			return results, fmt.Errorf("%s setup: %w", step.Label(i), err)
		}

		traj, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("%s run: %w", step.Label(i), err)
		}

		results = append(results, StepResult{Step: step, Trajectory: traj})
	}

	return results, nil
}
