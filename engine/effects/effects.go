// Package effects applies listener effects and defines the chance-multiplier
// effects that decide host-event outcomes.
// Every listener effect type is one atomic operation. No logic in effects.
package effects

import (
	"strconv"
	"strings"

	"github.com/nathoo/triggerforge/engine/state"
	"github.com/nathoo/triggerforge/engine/trigger"
	"github.com/nathoo/triggerforge/logging"
	"github.com/nathoo/triggerforge/types"
)

// Listener effect types understood by Apply.
const (
	CancelEvent   = "cancel_event"
	UncancelEvent = "uncancel_event"
	SendMessage   = "send_message"
	AddStat       = "add_stat"
	Stop          = "stop"
)

// Known reports whether Apply understands an effect type.
func Known(effectType string) bool {
	switch effectType {
	case CancelEvent, UncancelEvent, SendMessage, AddStat, Stop:
		return true
	}
	return false
}

// Apply applies a listener's effects for one dispatched occurrence, mutating
// the world and the host event held by data. Returns output text collected.
func Apply(w *types.World, data trigger.Data, effs []types.Effect) []string {
	var output []string

	for _, eff := range effs {
		switch eff.Type {
		case CancelEvent:
			setCancelled(data, true)

		case UncancelEvent:
			setCancelled(data, false)

		case SendMessage:
			text, _ := eff.Params["text"].(string)
			output = append(output, interpolate(text, data))

		case AddStat:
			stat, _ := eff.Params["stat"].(string)
			amount := toInt(eff.Params["amount"])
			p := data.Player()
			if p == nil || stat == "" {
				continue
			}
			state.AddStat(w, p.UUID(), stat, amount)

		case Stop:
			return output

		default:
			// Unknown effect type — ignore silently.
		}
	}

	return output
}

func setCancelled(data trigger.Data, cancelled bool) {
	ev, ok := data.Event().(types.Cancellable)
	if !ok {
		log := logging.GetLogger("effects")
		log.Debug().Msg("Event is not cancellable; cancel_event ignored")
		return
	}
	ev.SetCancelled(cancelled)
}

// interpolate replaces placeholders in text. Actor placeholders resolve
// against the original player, never the current one.
func interpolate(text string, data trigger.Data) string {
	if !strings.Contains(text, "%") {
		return text
	}
	r := strings.NewReplacer(
		"%player%", entityName(data.OriginalPlayer()),
		"%victim%", entityName(data.Victim()),
		"%value%", strconv.FormatFloat(data.Value(), 'g', -1, 64),
		"%text%", data.Text(),
		"%world%", worldName(data.Location()),
		"%item%", itemName(data.FoundItem()),
	)
	return r.Replace(text)
}

func entityName(e types.Entity) string {
	if e == nil {
		return ""
	}
	return e.Name()
}

func worldName(l *types.Location) string {
	if l == nil {
		return ""
	}
	return l.World
}

func itemName(item *types.Item) string {
	if item == nil {
		return ""
	}
	if item.DisplayName != "" {
		return item.DisplayName
	}
	return item.Material
}

func toInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	case int64:
		return int(n)
	default:
		return 0
	}
}
