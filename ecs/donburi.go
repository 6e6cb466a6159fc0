// Package ecs provides ECS adapters for spotlight.
package ecs

import (
	"github.com/phanxgames/spotlight"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// LifecycleEventType is the Donburi event type for spotlight lifecycle
// events. Subscribe to this in your ECS systems to react to view mounts and
// block starts and completions.
var LifecycleEventType = events.NewEventType[spotlight.LifecycleEvent]()

// ViewState tracks one mounted view's progress.
type ViewState struct {
	MountID   string
	Started   int
	Completed int
	// Time is the timeline playhead of the last start or completion.
	Time float64
}

// ViewComponent holds the ViewState of each mounted view's entity.
var ViewComponent = donburi.NewComponentType[ViewState]()

type donburiStore struct {
	world donburi.World
	views map[string]donburi.Entity
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Lifecycle events are published to LifecycleEventType and can be consumed
// with events.Subscribe and ProcessEvents. Each mounted view also lives as
// an entity with a ViewComponent until it unmounts.
func NewDonburiStore(world donburi.World) spotlight.EntityStore {
	return &donburiStore{world: world, views: make(map[string]donburi.Entity)}
}

func (s *donburiStore) EmitEvent(event spotlight.LifecycleEvent) {
	s.track(event)
	LifecycleEventType.Publish(s.world, event)
}

func (s *donburiStore) track(event spotlight.LifecycleEvent) {
	switch event.Type {
	case spotlight.EventViewMounted:
		e := s.world.Create(ViewComponent)
		ViewComponent.SetValue(s.world.Entry(e), ViewState{MountID: event.MountID})
		s.views[event.MountID] = e
		return
	case spotlight.EventViewUnmounted:
		if e, ok := s.views[event.MountID]; ok {
			if s.world.Valid(e) {
				s.world.Remove(e)
			}
			delete(s.views, event.MountID)
		}
		return
	}

	e, ok := s.views[event.MountID]
	if !ok || !s.world.Valid(e) {
		return
	}
	st := ViewComponent.Get(s.world.Entry(e))
	switch event.Type {
	case spotlight.EventRevealStart:
		st.Started++
	case spotlight.EventRevealComplete:
		st.Completed++
	}
	st.Time = event.Time
}
