// Package resolve maps actor and holder names from harness commands to the
// world's actors and defined holders.
package resolve

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nathoo/triggerforge/engine/state"
	"github.com/nathoo/triggerforge/types"
)

// AmbiguityError indicates multiple candidates matched a name.
type AmbiguityError struct {
	Name       string
	Candidates []string
}

func (e *AmbiguityError) Error() string {
	names := strings.Join(e.Candidates, ", ")
	return fmt.Sprintf("which %s? (%s)", e.Name, names)
}

// NotFoundError indicates no candidate matched a name.
type NotFoundError struct {
	Kind string
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s named %q", e.Kind, e.Name)
}

// Actor resolves a name to an actor: exact (case-insensitive) name first,
// then a unique prefix.
func Actor(w *types.World, name string) (*types.Actor, error) {
	if a, ok := state.FindActor(w, name); ok {
		return a, nil
	}

	nameLower := strings.ToLower(name)
	var matches []*types.Actor
	for key, a := range w.Actors {
		if strings.HasPrefix(key, nameLower) {
			matches = append(matches, a)
		}
	}

	switch len(matches) {
	case 0:
		return nil, &NotFoundError{Kind: "actor", Name: name}
	case 1:
		return matches[0], nil
	default:
		names := make([]string, len(matches))
		for i, a := range matches {
			names[i] = a.DisplayName
		}
		sort.Strings(names)
		return nil, &AmbiguityError{Name: name, Candidates: names}
	}
}

// Holder resolves a name to a holder id: exact id, then display name, then
// the id with spaces normalized to underscores, then a unique id prefix.
func Holder(defs *state.Defs, name string) (string, error) {
	if _, ok := defs.Holders[name]; ok {
		return name, nil
	}

	nameLower := strings.ToLower(name)
	normalized := strings.ReplaceAll(nameLower, " ", "_")
	var exact, prefix []string
	for _, id := range state.HolderIDs(defs) {
		def := defs.Holders[id]
		idLower := strings.ToLower(id)
		switch {
		case idLower == nameLower, idLower == normalized, strings.EqualFold(def.Name, name):
			exact = append(exact, id)
		case strings.HasPrefix(idLower, normalized):
			prefix = append(prefix, id)
		}
	}

	matches := exact
	if len(matches) == 0 {
		matches = prefix
	}
	switch len(matches) {
	case 0:
		return "", &NotFoundError{Kind: "holder", Name: name}
	case 1:
		return matches[0], nil
	default:
		return "", &AmbiguityError{Name: name, Candidates: matches}
	}
}
