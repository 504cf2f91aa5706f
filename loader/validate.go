package loader

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/nathoo/triggerforge/engine/effects"
	"github.com/nathoo/triggerforge/engine/rules"
	"github.com/nathoo/triggerforge/engine/state"
	"github.com/nathoo/triggerforge/engine/trigger"
	"github.com/nathoo/triggerforge/engine/triggers"
	"github.com/nathoo/triggerforge/logging"
	"github.com/nathoo/triggerforge/types"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

// validate checks the compiled defs for referential integrity and consistency.
func validate(defs *state.Defs) error {
	ve := &ValidationError{}

	triggerIDs := triggers.IDs()
	chanceEffects := effects.ChanceEffectIDs()

	// Holders in id order so messages are stable.
	for _, id := range state.HolderIDs(defs) {
		h := defs.Holders[id]

		for _, c := range h.Chances {
			if !slices.Contains(chanceEffects, c.Effect) {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"holder %q: Chance on unknown effect %q", id, c.Effect))
			}
			if c.Chance < 0 || c.Chance > 100 {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"holder %q: chance %g for %q is outside [0, 100]", id, c.Chance, c.Effect))
			}
		}
		for _, m := range h.Multipliers {
			if !slices.Contains(chanceEffects, m.Effect) {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"holder %q: Multiplier on unknown effect %q", id, m.Effect))
			}
			if m.Multiplier <= 0 {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"holder %q: multiplier %g for %q must be positive", id, m.Multiplier, m.Effect))
			}
		}

		for _, l := range h.Listeners {
			if !slices.Contains(triggerIDs, l.Trigger) {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"holder %q: listener on unknown trigger %q", id, l.Trigger))
			}
			if l.Chance < 0 || l.Chance > 100 {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"holder %q: listener chance %g on %q is outside [0, 100]", id, l.Chance, l.Trigger))
			}
			if l.Chance == 0 {
				ve.Warnings = append(ve.Warnings, fmt.Sprintf(
					"holder %q: listener on %q has chance 0 and never fires", id, l.Trigger))
			}
			validateConditions(id, l.Conditions, ve)
			validateEffects(id, l.Effects, ve)
		}

		if len(h.Chances)+len(h.Multipliers)+len(h.Listeners) == 0 {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf("holder %q does nothing", id))
		}
	}

	actors := map[string]bool{}
	for _, a := range defs.Actors {
		actors[strings.ToLower(a.Name)] = true
	}
	for _, g := range defs.Grants {
		if !actors[strings.ToLower(g.Actor)] {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"grant of %q to undefined actor %q", g.Holder, g.Actor))
		}
		if _, ok := defs.Holders[g.Holder]; !ok {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"grant to %q references undefined holder %q", g.Actor, g.Holder))
		}
	}

	log := logging.GetLogger("loader")
	sort.Strings(ve.Warnings)
	for _, w := range ve.Warnings {
		log.Warn().Msg(w)
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

func validateConditions(holderID string, conditions []types.Condition, ve *ValidationError) {
	for _, cond := range conditions {
		if !rules.KnownCondition(cond.Type) {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"holder %q: unknown condition type %q", holderID, cond.Type))
			continue
		}

		switch cond.Type {
		case "has_parameter":
			name, _ := cond.Params["parameter"].(string)
			if _, ok := trigger.ParseParameter(name); !ok {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"holder %q: has_parameter names unknown parameter %q", holderID, name))
			}
		case "not":
			if cond.Inner != nil {
				validateConditions(holderID, []types.Condition{*cond.Inner}, ve)
			}
		}
	}
}

func validateEffects(holderID string, effs []types.Effect, ve *ValidationError) {
	for _, eff := range effs {
		if !effects.Known(eff.Type) {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"holder %q: unknown effect type %q", holderID, eff.Type))
		}
	}
}
