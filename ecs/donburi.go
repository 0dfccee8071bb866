package ecs

import (
	"time"

	"github.com/phanxgames/sprout"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// StageEventType is the Donburi event type for intro stage transitions.
var StageEventType = events.NewEventType[sprout.StageEvent]()

// IntroStateData is a singleton holding the intro's latest stage.
type IntroStateData struct {
	Stage sprout.Stage
	Since time.Duration
}

// IntroState is the component type of the intro singleton.
var IntroState = donburi.NewComponentType[IntroStateData]()

var introQuery = donburi.NewQuery(filter.Contains(IntroState))

type donburiObserver struct {
	world  donburi.World
	entity donburi.Entity
}

// NewDonburiObserver creates a StageObserver backed by a Donburi world. It
// creates the IntroState singleton, updates it on every transition and
// publishes the transition to StageEventType, to be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiObserver(world donburi.World) sprout.StageObserver {
	return &donburiObserver{world: world, entity: world.Create(IntroState)}
}

func (o *donburiObserver) StageChanged(ev sprout.StageEvent) {
	if o.world.Valid(o.entity) {
		IntroState.SetValue(o.world.Entry(o.entity), IntroStateData{Stage: ev.To, Since: ev.At})
	}
	StageEventType.Publish(o.world, ev)
}

// CurrentStage returns the stage stored in the world's IntroState singleton.
func CurrentStage(world donburi.World) (sprout.Stage, bool) {
	entry, ok := introQuery.First(world)
	if !ok {
		return sprout.StageRamping, false
	}
	return IntroState.Get(entry).Stage, true
}
