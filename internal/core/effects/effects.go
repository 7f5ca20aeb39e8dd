// Package effects defines effect types as data structures representing I/O operations.
// This is the foundation of the Functional Core / Imperative Shell pattern.
// Effects are pure data - they describe what should happen, not how.
package effects

// File operations understood by the executor.
const (
	OpMkdir  = "mkdir"
	OpWrite  = "write"
	OpRemove = "remove"
)

// Effect is the base interface for all effects.
// Effects represent I/O operations as data that can be interpreted by the shell.
type Effect interface {
	// EffectType returns a string identifier for the effect type.
	EffectType() string
}

// LogEffect represents a logging operation.
type LogEffect struct {
	Level   string
	Message string
	Fields  map[string]any
}

func (e LogEffect) EffectType() string { return "log" }

// FileEffect represents a file system operation.
type FileEffect struct {
	Operation string // "mkdir", "write", "remove"
	Path      string
	Content   []byte // For write operations
	Mode      uint32 // File permissions
}

func (e FileEffect) EffectType() string { return "file" }

// CompositeEffect holds multiple effects to be executed in sequence.
type CompositeEffect struct {
	Effects []Effect
}

func (e CompositeEffect) EffectType() string { return "composite" }

// Paths returns the target paths of the file effects in effs, flattening
// composites, in execution order.
func Paths(effs []Effect) []string {
	var out []string
	for _, eff := range effs {
		switch typed := eff.(type) {
		case FileEffect:
			out = append(out, typed.Operation+" "+typed.Path)
		case CompositeEffect:
			out = append(out, Paths(typed.Effects)...)
		}
	}
	return out
}
