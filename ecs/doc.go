// Package ecs provides ECS adapters for spotlight's lifecycle events.
//
// The primary adapter is [NewDonburiStore], which bridges view mount and
// unmount events and per-block reveal start and completion events into a
// [Donburi] world as typed events. Subscribe to [LifecycleEventType] in your
// ECS systems to receive them, or query [ViewComponent] for the progress of
// each mounted view.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scene.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
