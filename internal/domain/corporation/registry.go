package corporation

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRegistry indicates the configured corporation list cannot be used.
var ErrInvalidRegistry = errors.New("invalid corporation registry")

// Registry is the immutable list of owners corporations known to the portal.
type Registry struct {
	names []string
	index map[string]struct{}
	def   string
}

// NewRegistry builds a registry from configured names and a default selection.
func NewRegistry(names []string, defaultName string) (*Registry, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no corporations configured", ErrInvalidRegistry)
	}

	r := &Registry{
		names: make([]string, 0, len(names)),
		index: make(map[string]struct{}, len(names)),
		def:   defaultName,
	}
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("%w: blank corporation name", ErrInvalidRegistry)
		}
		if _, dup := r.index[name]; dup {
			return nil, fmt.Errorf("%w: duplicate corporation %q", ErrInvalidRegistry, name)
		}
		r.index[name] = struct{}{}
		r.names = append(r.names, name)
	}

	if r.def == "" {
		r.def = r.names[0]
	}
	if !r.Contains(r.def) {
		return nil, fmt.Errorf("%w: default %q is not a listed corporation", ErrInvalidRegistry, r.def)
	}

	return r, nil
}

// Names returns the corporations in configured order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Default returns the corporation preselected for new ballots.
func (r *Registry) Default() string {
	return r.def
}

// Contains reports whether name is a registered corporation.
func (r *Registry) Contains(name string) bool {
	_, ok := r.index[name]
	return ok
}
