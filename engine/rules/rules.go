package rules

import (
	"sort"

	"github.com/nathoo/triggerforge/engine/holder"
	"github.com/nathoo/triggerforge/types"
)

// Candidate is one listener of one active holder.
type Candidate struct {
	Provided holder.Provided
	Listener types.ListenerDef
}

// Collect gathers the listeners on triggerID across the active holders.
// Holders keep their resolution order; within a holder, listeners run in
// source order.
func Collect(active []holder.Provided, triggerID string) []Candidate {
	var candidates []Candidate
	for _, p := range active {
		if holder.IsEmpty(p) {
			continue
		}
		var own []Candidate
		for _, l := range p.Holder().Definition().Listeners {
			if l.Trigger == triggerID {
				own = append(own, Candidate{Provided: p, Listener: l})
			}
		}
		sort.SliceStable(own, func(i, j int) bool {
			return own[i].Listener.SourceOrder < own[j].Listener.SourceOrder
		})
		candidates = append(candidates, own...)
	}
	return candidates
}
