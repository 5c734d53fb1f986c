package keymap

import "github.com/samber/lo"

// Resolver maps key strings to actions.
type Resolver struct {
	bindings map[string]map[string]Action // context -> key -> action
	byAction map[Action][]string          // action -> keys (for help/documentation)
}

// NewResolver creates a resolver from bindings.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		bindings: make(map[string]map[string]Action),
		byAction: make(map[Action][]string),
	}
	for _, b := range bindings {
		keys := r.bindings[b.Context]
		if keys == nil {
			keys = make(map[string]Action)
			r.bindings[b.Context] = keys
		}
		for _, key := range b.Keys {
			keys[key] = b.Action
		}
		// Collect all keys for each action (may have duplicates from different contexts)
		r.byAction[b.Action] = append(r.byAction[b.Action], b.Keys...)
	}
	for action, keys := range r.byAction {
		r.byAction[action] = lo.Uniq(keys)
	}
	return r
}

// Resolve returns the action bound to key in context. Bindings in the
// context win over playback bindings, which win over global ones.
// Returns the empty action if the key is not bound.
func (r *Resolver) Resolve(context, key string) Action {
	for _, c := range []string{context, ContextPlayback, ContextGlobal} {
		if a, ok := r.bindings[c][key]; ok {
			return a
		}
	}
	return ""
}

// ResolveOnly returns the action bound to key in context, without fallback.
func (r *Resolver) ResolveOnly(context, key string) Action {
	return r.bindings[context][key]
}

// KeysFor returns the keys bound to an action (for help/documentation).
func (r *Resolver) KeysFor(action Action) []string {
	return r.byAction[action]
}
