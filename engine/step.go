package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/nathoo/triggerforge/engine/dispatcher"
	"github.com/nathoo/triggerforge/engine/parser"
	"github.com/nathoo/triggerforge/engine/resolve"
	"github.com/nathoo/triggerforge/engine/state"
	"github.com/nathoo/triggerforge/errors"
	"github.com/nathoo/triggerforge/logging"
	"github.com/nathoo/triggerforge/types"
)

var fishStates = map[string]types.FishState{
	"fail":   types.FishFailedAttempt,
	"catch":  types.FishCaughtFish,
	"ground": types.FishInGround,
	"reel":   types.FishReelIn,
	"bite":   types.FishBite,
}

// Vanilla fish loot weights.
var fishLoot = []Weighted[string]{
	{"COD", 60},
	{"SALMON", 25},
	{"TROPICAL_FISH", 2},
	{"PUFFERFISH", 13},
}

// Step runs one harness command: it synthesises the host event the command
// describes, routes it and reports what happened.
func (e *Engine) Step(input string) types.Result {
	var result types.Result
	before := e.RNG.Position()

	cmd := parser.Parse(input)
	e.World.CommandLog = append(e.World.CommandLog, input)

	if cmd.Verb == "" {
		result.Output = append(result.Output, "What do you want to do?")
		return result
	}

	var err error
	switch cmd.Verb {
	case "fish":
		result, err = e.fish(cmd.Args)
	case "boost":
		result, err = e.boost(cmd.Args)
	case "mine":
		result, err = e.mine(cmd.Args)
	case "hit":
		result, err = e.hit(cmd.Args, false)
	case "shoot":
		result, err = e.hit(cmd.Args, true)
	case "grant":
		result, err = e.grant(cmd.Args)
	case "revoke":
		result, err = e.revoke(cmd.Args)
	case "hold":
		result, err = e.hold(cmd.Args)
	case "tp":
		result, err = e.teleport(cmd.Args)
	case "actors":
		result = e.listActors()
	case "holders":
		result = e.listHolders()
	case "chance":
		result, err = e.chance(cmd.Args)
	default:
		err = errors.Newf(errors.ErrUnknownCommand, "I don't know how to %q.", cmd.Verb)
	}

	if err != nil {
		log := logging.GetLogger("engine")
		log.Debug().Err(err).Str("input", input).Msg("Command failed")
		result.Output = append(result.Output, message(err))
	}
	result.Draws = e.RNG.Position() - before
	return result
}

// message strips the error code prefix for player-facing output.
func message(err error) string {
	var coded *errors.Error
	if errors.As(err, &coded) {
		return coded.Message
	}
	return err.Error()
}

func usage(format string) error {
	return errors.Newf(errors.ErrInvalidInput, "usage: %s", format)
}

// emit routes ev and prefixes the narration lines to the result.
func (e *Engine) emit(ev types.Event, narration ...string) types.Result {
	res := e.Handle(ev)
	res.Output = append(narration, res.Output...)
	return res
}

func (e *Engine) fish(args []string) (types.Result, error) {
	if len(args) == 0 {
		return types.Result{}, usage("fish <actor> [fail|catch|ground|reel|bite] [item]")
	}
	a, err := resolve.Actor(e.World, args[0])
	if err != nil {
		return types.Result{}, err
	}

	outcome := "fail"
	if len(args) > 1 {
		outcome = args[1]
	}
	st, ok := fishStates[outcome]
	if !ok {
		return types.Result{}, errors.Newf(errors.ErrInvalidInput, "unknown fishing outcome %q", outcome)
	}

	ev := &types.FishEvent{Player: a, Hook: hookLocation(a), State: st}
	switch {
	case len(args) > 2:
		ev.CaughtItem = &types.Item{Material: strings.ToUpper(args[2]), Amount: 1}
	case st == types.FishCaughtFish:
		ev.CaughtItem = &types.Item{Material: e.rollLoot(), Amount: 1}
	}

	var line string
	switch st {
	case types.FishFailedAttempt:
		line = fmt.Sprintf("%s reels in an empty line.", a.DisplayName)
	case types.FishCaughtFish:
		line = fmt.Sprintf("%s reels in %s.", a.DisplayName, ev.CaughtItem.Material)
	default:
		line = fmt.Sprintf("%s's hook: %s.", a.DisplayName, strings.ToLower(string(st)))
	}

	res := e.emit(ev, line)
	if res.Cancelled {
		res.Output = append(res.Output, "The catch slips away.")
	}
	return res, nil
}

func (e *Engine) rollLoot() string {
	return Pick(e.RNG, fishLoot)
}

func hookLocation(a *types.Actor) types.Location {
	if a.Loc == nil {
		return types.Location{}
	}
	hook := *a.Loc
	hook.X += 3
	return hook
}

func (e *Engine) boost(args []string) (types.Result, error) {
	if len(args) == 0 {
		return types.Result{}, usage("boost <actor>")
	}
	a, err := resolve.Actor(e.World, args[0])
	if err != nil {
		return types.Result{}, err
	}

	ev := &types.ElytraBoostEvent{
		Player:        a,
		Firework:      &types.Item{Material: "FIREWORK_ROCKET", Amount: 1},
		ShouldConsume: true,
	}
	res := e.emit(ev, fmt.Sprintf("%s boosts with a firework.", a.DisplayName))
	switch {
	case res.Cancelled:
		res.Output = append(res.Output, "The boost fizzles.")
	case ev.ShouldConsume:
		res.Output = append(res.Output, "The firework is used up.")
	default:
		res.Output = append(res.Output, "The firework is saved!")
	}
	return res, nil
}

func (e *Engine) mine(args []string) (types.Result, error) {
	if len(args) < 2 {
		return types.Result{}, usage("mine <actor> <block>")
	}
	a, err := resolve.Actor(e.World, args[0])
	if err != nil {
		return types.Result{}, err
	}

	var at types.Location
	if a.Loc != nil {
		at = *a.Loc
		at.Y--
	}
	ev := &types.BlockBreakEvent{
		Player:    a,
		Block:     types.Block{Material: strings.ToUpper(args[1]), At: at},
		DropItems: true,
	}
	res := e.emit(ev, fmt.Sprintf("%s breaks %s.", a.DisplayName, ev.Block.Material))
	if res.Cancelled {
		res.Output = append(res.Output, "The block holds firm.")
	}
	return res, nil
}

func (e *Engine) hit(args []string, ranged bool) (types.Result, error) {
	if len(args) < 2 {
		if ranged {
			return types.Result{}, usage("shoot <actor> <victim> [damage]")
		}
		return types.Result{}, usage("hit <actor> <victim> [damage]")
	}
	damager, err := resolve.Actor(e.World, args[0])
	if err != nil {
		return types.Result{}, err
	}
	victim, err := resolve.Actor(e.World, args[1])
	if err != nil {
		return types.Result{}, err
	}

	var damage float64
	if len(args) > 2 {
		damage, err = strconv.ParseFloat(args[2], 64)
		if err != nil || damage < 0 {
			return types.Result{}, errors.Newf(errors.ErrInvalidInput, "bad damage %q", args[2])
		}
	} else {
		damage = float64(e.RNG.Roll(6))
	}

	ev := &types.EntityDamageEvent{
		Damager: damager,
		Victim:  victim,
		Cause:   types.DamageEntityAttack,
		Damage:  damage,
	}
	verb := "hits"
	if ranged {
		ev.Cause = types.DamageProjectile
		ev.Projectile = &types.Projectile{
			ID:      uuid.NewSHA1(damager.ID, []byte(fmt.Sprintf("arrow-%d", e.World.EventCount))),
			Kind:    "arrow",
			Shooter: damager.ID,
		}
		verb = "shoots"
	}

	res := e.emit(ev, fmt.Sprintf("%s %s %s for %g.", damager.DisplayName, verb, victim.DisplayName, damage))
	if res.Cancelled {
		res.Output = append(res.Output, "The blow is deflected.")
	}
	return res, nil
}

func (e *Engine) actorAndHolder(args []string, form string) (*types.Actor, string, error) {
	if len(args) < 2 {
		return nil, "", usage(form)
	}
	// "give the lucky charm to alice" arrives as [lucky charm alice].
	a, err := resolve.Actor(e.World, args[len(args)-1])
	if err != nil {
		return nil, "", err
	}
	id, err := resolve.Holder(e.Defs, strings.Join(args[:len(args)-1], " "))
	if err != nil {
		return nil, "", err
	}
	return a, id, nil
}

func (e *Engine) grant(args []string) (types.Result, error) {
	a, id, err := e.actorAndHolder(args, "grant <holder> <actor>")
	if err != nil {
		return types.Result{}, err
	}
	if err := state.GrantHolder(e.World, e.Defs, a.DisplayName, id); err != nil {
		return types.Result{}, err
	}
	return types.Result{Output: []string{fmt.Sprintf("%s now holds %s.", a.DisplayName, e.holderName(id))}}, nil
}

func (e *Engine) revoke(args []string) (types.Result, error) {
	a, id, err := e.actorAndHolder(args, "revoke <holder> <actor>")
	if err != nil {
		return types.Result{}, err
	}
	if err := state.RevokeHolder(e.World, a.DisplayName, id); err != nil {
		return types.Result{}, err
	}
	return types.Result{Output: []string{fmt.Sprintf("%s no longer holds %s.", a.DisplayName, e.holderName(id))}}, nil
}

func (e *Engine) holderName(id string) string {
	if def, ok := e.Defs.Holders[id]; ok && def.Name != "" {
		return def.Name
	}
	return id
}

func (e *Engine) hold(args []string) (types.Result, error) {
	if len(args) < 2 {
		return types.Result{}, usage("hold <actor> <item|nothing>")
	}
	a, err := resolve.Actor(e.World, args[0])
	if err != nil {
		return types.Result{}, err
	}
	material := strings.ToUpper(args[1])
	if material == "NOTHING" || material == "AIR" {
		a.MainHand = nil
		return types.Result{Output: []string{fmt.Sprintf("%s empties their hand.", a.DisplayName)}}, nil
	}
	a.MainHand = &types.Item{Material: material, Amount: 1}
	return types.Result{Output: []string{fmt.Sprintf("%s holds %s.", a.DisplayName, material)}}, nil
}

func (e *Engine) teleport(args []string) (types.Result, error) {
	if len(args) != 2 && len(args) != 5 {
		return types.Result{}, usage("tp <actor> <world> [x y z]")
	}
	a, err := resolve.Actor(e.World, args[0])
	if err != nil {
		return types.Result{}, err
	}

	loc := types.Location{World: args[1]}
	if len(args) == 5 {
		coords := make([]float64, 3)
		for i, s := range args[2:] {
			coords[i], err = strconv.ParseFloat(s, 64)
			if err != nil {
				return types.Result{}, errors.Newf(errors.ErrInvalidInput, "bad coordinate %q", s)
			}
		}
		loc.X, loc.Y, loc.Z = coords[0], coords[1], coords[2]
	}
	a.Loc = &loc
	return types.Result{Output: []string{fmt.Sprintf("%s is now in %s at %g, %g, %g.", a.DisplayName, loc.World, loc.X, loc.Y, loc.Z)}}, nil
}

func (e *Engine) listActors() types.Result {
	var res types.Result
	names := state.ActorNames(e.World)
	if len(names) == 0 {
		res.Output = append(res.Output, "No actors.")
		return res
	}
	for _, name := range names {
		a, _ := state.FindActor(e.World, name)
		line := fmt.Sprintf("%s (%s)", a.DisplayName, a.Kind)
		if a.Loc != nil {
			line += " in " + a.Loc.World
		}
		if held := state.GrantsOf(e.World, a.ID); len(held) > 0 {
			line += ": " + strings.Join(held, ", ")
		}
		res.Output = append(res.Output, line)
	}
	return res
}

func (e *Engine) listHolders() types.Result {
	var res types.Result
	ids := state.HolderIDs(e.Defs)
	if len(ids) == 0 {
		res.Output = append(res.Output, "No holders defined.")
		return res
	}
	for _, id := range ids {
		def := e.Defs.Holders[id]
		line := id
		if def.Name != "" {
			line += " \"" + def.Name + "\""
		}
		if def.Global {
			line += " [global]"
		}
		line += fmt.Sprintf(" %d listener(s)", len(def.Listeners))
		res.Output = append(res.Output, line)
	}
	return res
}

// chance reports the resolved probability for an effect. "global" asks for
// the global dispatcher.
func (e *Engine) chance(args []string) (types.Result, error) {
	if len(args) < 2 {
		return types.Result{}, usage("chance <actor|global> <effect>")
	}

	d := dispatcher.Global()
	if !strings.EqualFold(args[0], "global") {
		a, err := resolve.Actor(e.World, args[0])
		if err != nil {
			return types.Result{}, err
		}
		d = dispatcher.ForActor(a)
	}

	eff, err := e.effects.Get(args[1])
	if err != nil {
		return types.Result{}, err
	}
	r, err := e.Chances.Resolve(eff.ID(), d)
	if err != nil {
		return types.Result{}, err
	}

	res := types.Result{Output: []string{
		fmt.Sprintf("%s for %s: %.1f%% (base %.1f%% x %g)", r.Effect, d, r.Probability*100, r.Base*100, r.Multiplier),
	}}
	for _, c := range r.Contributions {
		switch {
		case c.Chance > 0 && c.Multiplier != 1:
			res.Output = append(res.Output, fmt.Sprintf("  %s: %g%%, x%g", c.Holder, c.Chance, c.Multiplier))
		case c.Chance > 0:
			res.Output = append(res.Output, fmt.Sprintf("  %s: %g%%", c.Holder, c.Chance))
		default:
			res.Output = append(res.Output, fmt.Sprintf("  %s: x%g", c.Holder, c.Multiplier))
		}
	}
	return res, nil
}
