package config

// Unitfile represents the structure of a mason.yaml unit configuration file.
type Unitfile struct {
	Version string               `yaml:"version"`
	Default string               `yaml:"default"`
	Vars    map[string]string    `yaml:"vars"`
	Targets map[string]TargetDTO `yaml:"targets"`
}

// TargetDTO represents a target definition in the configuration.
type TargetDTO struct {
	Description string            `yaml:"description"`
	Steps       []StepDTO         `yaml:"steps"`
	Deps        []string          `yaml:"deps"`
	Vars        map[string]string `yaml:"vars"`
}

// StepDTO represents a single step of a target.
type StepDTO struct {
	Cmd []string `yaml:"cmd"`
	Dir string   `yaml:"dir"`
}

// Workfile represents the structure of a mason.work.yaml workspace file.
type Workfile struct {
	Version string            `yaml:"version"`
	Default string            `yaml:"default"`
	Vars    map[string]string `yaml:"vars"`
	Units   []string          `yaml:"units"`
}
