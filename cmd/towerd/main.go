// towerd runs a headless tower simulation and streams it to websocket
// observers. Build:
//
//	go build -o towerd ./cmd/towerd
//
// Usage:
//
//	./towerd [--config tower.yaml]
//
// Observers connect to ws://<listen_addr>/ws and receive one floor message
// on connect, then periodic tick snapshots.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"infinite-tower/internal/config"
	"infinite-tower/internal/game"
	"infinite-tower/internal/logger"
)

func main() {
	configPath := flag.String("config", "tower.yaml", "Path to the YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log := logger.New(cfg.Logging)

	session, err := game.NewSession(cfg.Sim, log)
	if err != nil {
		return err
	}

	hello, err := marshalFloor(session)
	if err != nil {
		return fmt.Errorf("encode floor: %w", err)
	}
	obs := &observer{
		cfg:     cfg.Observer,
		log:     log,
		hello:   hello,
		clients: make(map[*websocket.Conn]chan []byte),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", obs.handleUpgrade)

	srv := &http.Server{
		Addr:              cfg.Observer.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		log.Info("observer listening", "addr", cfg.Observer.ListenAddr, "run", session.RunID())
		errc <- srv.ListenAndServe()
	}()

	dt := 1.0 / float64(cfg.Sim.TickRate)
	ticker := time.NewTicker(time.Second / time.Duration(cfg.Sim.TickRate))
	defer ticker.Stop()

	var tick uint64
	for {
		select {
		case err := <-errc:
			return fmt.Errorf("observer server: %w", err)
		case <-ticker.C:
			session.Tick(dt)
			tick++
			if session.State() == game.StateDead {
				log.Info("run finished", "run", session.RunID())
				return srv.Close()
			}
			if tick%uint64(cfg.Observer.SnapshotEvery) == 0 {
				data, err := marshalSnapshot(session, tick)
				if err != nil {
					log.Error("snapshot encode failed", "error", err)
					continue
				}
				obs.broadcast(data)
			}
		}
	}
}

// observer tracks connected websocket clients and fans snapshots out to
// them. Slow clients are dropped rather than allowed to stall the tick.
type observer struct {
	cfg   config.ObserverConfig
	log   *slog.Logger
	hello []byte // floor message sent to each client on connect

	mu      sync.Mutex
	clients map[*websocket.Conn]chan []byte
}

func (o *observer) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			allowed := o.cfg.IsOriginAllowed(origin, r.Host)
			if !allowed {
				o.log.Warn("observer rejected", "origin", origin, "host", r.Host)
			}
			return allowed
		},
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		o.log.Error("websocket upgrade failed", "error", err)
		return
	}
	go o.serve(conn)
}

func (o *observer) serve(conn *websocket.Conn) {
	send := make(chan []byte, 16)
	o.mu.Lock()
	o.clients[conn] = send
	o.mu.Unlock()
	o.log.Info("observer connected", "remote", conn.RemoteAddr().String())

	if err := conn.WriteMessage(websocket.TextMessage, o.hello); err != nil {
		o.drop(conn)
		conn.Close()
		return
	}

	// Discard inbound frames; their errors signal disconnect.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				o.drop(conn)
				return
			}
		}
	}()

	for data := range send {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			o.drop(conn)
			break
		}
	}
	conn.Close()
}

func (o *observer) broadcast(data []byte) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for conn, send := range o.clients {
		select {
		case send <- data:
		default:
			// Client is not keeping up; cut it loose.
			delete(o.clients, conn)
			close(send)
		}
	}
}

// drop unregisters a client and closes its send channel, ending the write
// loop. Safe to call more than once per connection.
func (o *observer) drop(conn *websocket.Conn) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if send, ok := o.clients[conn]; ok {
		delete(o.clients, conn)
		close(send)
	}
}
