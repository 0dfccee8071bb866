// Package ecs provides ECS adapters for sprout's intro sequence.
//
// The primary adapter is [NewDonburiObserver], which bridges intro stage
// transitions into a [Donburi] world as typed events and keeps a singleton
// [IntroState] component current. Subscribe to [StageEventType] in your ECS
// systems to react to them.
//
// Usage:
//
//	page.SetObserver(ecs.NewDonburiObserver(world))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
