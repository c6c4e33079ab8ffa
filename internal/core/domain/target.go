package domain

// Step is a single external-command invocation within a target.
// Argv entries may contain ${VAR} references that are expanded against the
// merged environment before the process is spawned.
type Step struct {
	Argv []string
	// Dir is the working directory of the step, relative to the unit
	// directory. Empty means the unit directory itself.
	Dir string
}

// Target represents a named unit of build, test or release work.
// In workspace mode names are qualified as "unit:target".
type Target struct {
	Name        InternedString
	Unit        InternedString
	Description string
	Steps       []Step
	// Prereqs lists prerequisite targets in declaration order. They run
	// fully, and must succeed, before the target's own steps.
	Prereqs []InternedString
	// Vars holds the unit-scoped bindings merged with the target-scoped
	// bindings (target wins). The merge happens at load time so bindings
	// never leak between sibling targets.
	Vars map[string]string
	// Dir is the absolute directory of the unit declaring the target.
	Dir InternedString
}

// Workspace is the loaded configuration: the target graph plus the
// workspace-scoped bindings and the default target.
type Workspace struct {
	// Root is the directory containing the workspace (or unit) file.
	Root    string
	Default InternedString
	Vars    map[string]string
	Graph   *Graph
}
