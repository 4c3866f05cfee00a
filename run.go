package arbor

import "github.com/hajimehoshi/ebiten/v2"

// Run starts app with the given initial states, opens a window configured by
// rc and blocks until the state stack empties, Stop is called or the window
// is closed. A zero rc is filled from the app's Config.
func Run(app *App, rc RunConfig, initial ...string) error {
	def := app.config.RunConfig()
	if rc.Title == "" {
		rc.Title = def.Title
	}
	if rc.Width <= 0 || rc.Height <= 0 {
		rc.Width, rc.Height = def.Width, def.Height
	}
	if rc.TPS <= 0 {
		rc.TPS = def.TPS
	}
	rc.ShowFPS = rc.ShowFPS || def.ShowFPS
	app.config.ShowFPS = rc.ShowFPS

	if err := app.Start(initial...); err != nil {
		return err
	}

	ebiten.SetWindowTitle(rc.Title)
	ebiten.SetWindowSize(rc.Width, rc.Height)
	if rc.TPS > 0 {
		ebiten.SetTPS(rc.TPS)
	}
	return ebiten.RunGame(app)
}

// Run is shorthand for Run(a, a.Config().RunConfig(), initial...).
func (a *App) Run(initial ...string) error {
	return Run(a, a.config.RunConfig(), initial...)
}
