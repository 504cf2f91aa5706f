package types

import "github.com/google/uuid"

// Actor is a plain in-memory Entity used by the simulation world and tests.
type Actor struct {
	ID          uuid.UUID
	DisplayName string
	Kind        string
	Loc         *Location
	Vel         *Vector
	MainHand    *Item
}

func (a *Actor) UUID() uuid.UUID     { return a.ID }
func (a *Actor) Name() string        { return a.DisplayName }
func (a *Actor) Location() *Location { return a.Loc }
func (a *Actor) Velocity() *Vector   { return a.Vel }
func (a *Actor) HeldItem() *Item     { return a.MainHand }
