// Package spotlight is a scroll-choreography toolkit for [Ebitengine]: drifting
// elliptical spotlights cut through a dark overlay, and text blocks reveal
// themselves unit by unit as they scroll into view or as a chained timeline
// reaches them.
//
// # Quick start
//
// The simplest way to get started is [Run] with a [View] built from a
// [Config]:
//
//	cfg, err := spotlight.LoadConfig("speaker.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	font, _ := spotlight.LoadTTFFont(goregular.TTF, cfg.FontSizeOrDefault())
//
//	scene := spotlight.NewScene()
//	view := spotlight.NewView(cfg, font)
//	view.Mount(scene)
//	spotlight.Run(scene, spotlight.RunConfig{
//		Title: "Speaker", Width: 1280, Height: 720,
//	})
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Update], [Scene.Draw] and [Scene.Layout] directly. Layout must be
// forwarded: it is how the ticker learns the viewport size.
//
// # Frame scheduling
//
// Every scene owns a [Ticker]. Simulations and scroll triggers register a
// [TickFunc] on it and deregister on unmount; nothing keeps its
// own loop. Resize listeners run synchronously inside [Ticker.Resize], so the
// frame after a resize already sees re-clamped state.
//
// # Spotlights
//
// A [Simulator] moves [Aperture] values inside the viewport and reflects
// them off its edges. A [MaskLayer] draws the overlay with one blurred
// elliptical cutout per aperture. [Spotlight] ties the two to a ticker:
//
//	sp := spotlight.NewSpotlight(cfg.Apertures, spotlight.ColorOverlay)
//	sp.Mount(scene.Ticker(), scene.Root())
//	defer sp.Unmount()
//
// Content added beneath the mask node is seen only through the cutouts.
//
// # Text reveals
//
// A [Splitter] breaks a text node into chars, words, lines, or words then
// chars, keeping every fragment where the unsplit layout put it. A [Reveal]
// splits a block and tweens its units from a start [Style] to an end style
// with a per-unit stagger on a [Timeline]. Blocks on a shared timeline can
// be chained with [ChainOffset] so each starts as the previous block's last
// unit finishes.
//
// # ECS integration
//
// Lifecycle events ([EventViewMounted], [EventRevealStart], and the rest)
// are forwarded to an optional [EntityStore]; the spotlight/ecs package
// provides a [Donburi] adapter.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package spotlight
