package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"infinite-tower/internal/component"
	"infinite-tower/internal/config"
	"infinite-tower/internal/game"
	"infinite-tower/internal/logger"
	"infinite-tower/internal/render"
	"infinite-tower/internal/vec"
)

const moveSpeed = 4.0 // player tiles per second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := "tower.yaml"
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	// Console output would fight the terminal UI; keep the file sink only.
	logCfg := cfg.Logging
	logCfg.ConsoleEnabled = false
	log := logger.New(logCfg)

	session, err := game.NewSession(cfg.Sim, log)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	events := make(chan tcell.Event, 8)
	go func() {
		for {
			events <- screen.PollEvent()
		}
	}()

	dt := 1.0 / float64(cfg.Sim.TickRate)
	ticker := time.NewTicker(time.Second / time.Duration(cfg.Sim.TickRate))
	defer ticker.Stop()

	renderer := render.NewRenderer(screen, session.FloorIndex())
	var move vec.Vec2

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
				renderer = render.NewRenderer(screen, session.FloorIndex())
			case *tcell.EventKey:
				switch {
				case ev.Key() == tcell.KeyEscape || ev.Rune() == 'q':
					return nil
				case ev.Rune() == 'w':
					move = vec.Vec2{Y: -1}
				case ev.Rune() == 's':
					move = vec.Vec2{Y: 1}
				case ev.Rune() == 'a':
					move = vec.Vec2{X: -1}
				case ev.Rune() == 'd':
					move = vec.Vec2{X: 1}
				case ev.Rune() == ' ':
					session.PlayerAttack()
				case ev.Rune() == '>':
					if err := session.NextFloor(); err != nil {
						return err
					}
					renderer.SetFloor(session.FloorIndex())
				}
			}
		case <-ticker.C:
			if move != (vec.Vec2{}) {
				session.SetPlayerVelocity(move.Normalized().Scale(moveSpeed))
				move = vec.Vec2{}
			}
			session.Tick(dt)
			if session.State() == game.StateDead {
				return nil
			}

			w := session.World()
			if c := w.Get(session.PlayerID(), component.CPosition); c != nil {
				pos := c.(component.Position).Pos
				renderer.CenterOn(int(pos.X), int(pos.Y))
			}
			renderer.DrawFrame(w, session.Floor().Tiles)
			renderer.DrawHUD(w, session.PlayerID(), session.FloorIndex())
		}
	}
}
