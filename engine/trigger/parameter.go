package trigger

import "strings"

// Parameter is a capability tag: a field a trigger declares it can supply.
type Parameter int

const (
	ParamPlayer Parameter = iota
	ParamVictim
	ParamBlock
	ParamEvent
	ParamLocation
	ParamProjectile
	ParamVelocity
	ParamItem
	ParamText
	ParamValue
)

var parameterNames = [...]string{
	ParamPlayer:     "player",
	ParamVictim:     "victim",
	ParamBlock:      "block",
	ParamEvent:      "event",
	ParamLocation:   "location",
	ParamProjectile: "projectile",
	ParamVelocity:   "velocity",
	ParamItem:       "item",
	ParamText:       "text",
	ParamValue:      "value",
}

// inheritance is one level only; nothing walks it transitively.
var inheritance = map[Parameter][]Parameter{
	ParamLocation: {ParamVictim, ParamPlayer},
	ParamVelocity: {ParamPlayer, ParamVictim},
	ParamItem:     {ParamPlayer, ParamVictim},
}

// Parameters lists every parameter in declaration order.
func Parameters() []Parameter {
	return []Parameter{ParamPlayer, ParamVictim, ParamBlock, ParamEvent, ParamLocation, ParamProjectile, ParamVelocity, ParamItem, ParamText, ParamValue}
}

// InheritsFrom returns the parameters that may stand in for p when p itself
// is absent, in declaration order. The returned slice is a copy.
func (p Parameter) InheritsFrom() []Parameter {
	src := inheritance[p]
	out := make([]Parameter, len(src))
	copy(out, src)
	return out
}

func (p Parameter) String() string {
	if p < 0 || int(p) >= len(parameterNames) {
		return "unknown"
	}
	return parameterNames[p]
}

// ParseParameter is the inverse of String.
func ParseParameter(s string) (Parameter, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, p := range Parameters() {
		if p.String() == s {
			return p, true
		}
	}
	return 0, false
}

// Satisfies reports whether a trigger providing the given parameters can
// satisfy required, either directly or through one level of InheritsFrom.
func Satisfies(provided []Parameter, required Parameter) bool {
	if containsParameter(provided, required) {
		return true
	}
	for _, parent := range inheritance[required] {
		if containsParameter(provided, parent) {
			return true
		}
	}
	return false
}

// Missing returns the required parameters that provided cannot satisfy.
func Missing(provided, required []Parameter) []Parameter {
	var missing []Parameter
	for _, r := range required {
		if !Satisfies(provided, r) {
			missing = append(missing, r)
		}
	}
	return missing
}

// Names returns the String form of each parameter.
func Names(ps []Parameter) []string {
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = p.String()
	}
	return names
}

func containsParameter(ps []Parameter, p Parameter) bool {
	for _, x := range ps {
		if x == p {
			return true
		}
	}
	return false
}
