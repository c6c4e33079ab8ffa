package history

import (
	"fmt"
	"sort"

	"github.com/cespare/xxhash/v2"
	"github.com/masonbuild/mason/internal/core/domain"
)

// Fingerprint computes a stable hash of a target's definition: steps,
// prerequisites and variable bindings. A recorded outcome whose fingerprint
// no longer matches was produced by a different definition.
func Fingerprint(t *domain.Target) string {
	h := xxhash.New()

	_, _ = h.WriteString(t.Name.String())
	_, _ = h.Write([]byte{0})

	for _, step := range t.Steps {
		for _, arg := range step.Argv {
			_, _ = h.WriteString(arg)
			_, _ = h.Write([]byte{0})
		}
		_, _ = h.WriteString(step.Dir)
		_, _ = h.Write([]byte{0, 0})
	}
	_, _ = h.Write([]byte{0})

	for _, dep := range t.Prereqs {
		_, _ = h.WriteString(dep.String())
		_, _ = h.Write([]byte{0})
	}
	_, _ = h.Write([]byte{0})

	// Sort keys for determinism.
	keys := make([]string, 0, len(t.Vars))
	for k := range t.Vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		_, _ = h.WriteString(k)
		_, _ = h.Write([]byte{'='})
		_, _ = h.WriteString(t.Vars[k])
		_, _ = h.Write([]byte{0})
	}

	return fmt.Sprintf("%016x", h.Sum64())
}
