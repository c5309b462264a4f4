package main

import (
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"fieldview/colormap"
	"fieldview/field"
)

// FieldSnapshot is the CPU-side state the server streams; produced by
// Viewer.Snapshot. Everything is copied out of the live field while the
// viewer's mutex is held, so the broadcast goroutine never touches data
// the GL thread may be replacing.
type FieldSnapshot struct {
	Shape    [3]int
	Min      float32
	Max      float32
	VMin     float32
	VMax     float32
	Axis     int
	Position float32
	Colormap *colormap.Colormap
	Values   []float32
}

// snapshotField materializes a snapshot of f: shape, extrema, and the
// sampled values of the active slice. Callers must hold whatever lock
// guards f against replacement.
func snapshotField(f *field.ScalarField, cm *colormap.Colormap, axis int, pos, vmin, vmax float32) FieldSnapshot {
	nx, ny, nz := f.Shape()
	snap := FieldSnapshot{
		Shape:    [3]int{nx, ny, nz},
		Min:      f.Min(),
		Max:      f.Max(),
		VMin:     vmin,
		VMax:     vmax,
		Axis:     axis,
		Position: pos,
		Colormap: cm,
	}
	switch axis {
	case 0:
		snap.Values = f.SliceX(pos)
	case 1:
		snap.Values = f.SliceY(pos)
	default:
		snap.Values = f.SliceZ(pos)
	}
	return snap
}

// SliceUpdate is the JSON message sent to every connected client. Colors
// holds one #rrggbb pixel per value, colormapped through the display
// window.
type SliceUpdate struct {
	Type     string    `json:"type"`
	Shape    [3]int    `json:"shape"`
	Min      float32   `json:"min"`
	Max      float32   `json:"max"`
	VMin     float32   `json:"vmin"`
	VMax     float32   `json:"vmax"`
	Axis     int       `json:"axis"`
	Position float32   `json:"position"`
	Colormap string    `json:"colormap"`
	Values   []float32 `json:"values"`
	Colors   []string  `json:"colors"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// SliceServer streams the active slice of the viewed field to websocket
// clients at a fixed interval.
type SliceServer struct {
	snapshot func() FieldSnapshot
	interval time.Duration

	clients      map[*websocket.Conn]*sync.Mutex
	clientsMutex sync.RWMutex
}

// NewSliceServer builds a server around a snapshot source.
func NewSliceServer(snapshot func() FieldSnapshot, interval time.Duration) *SliceServer {
	return &SliceServer{
		snapshot: snapshot,
		interval: interval,
		clients:  make(map[*websocket.Conn]*sync.Mutex),
	}
}

// Start registers handlers and serves on the given port. Runs in its own
// goroutines; never touches GL state.
func (s *SliceServer) Start(port int) {
	go s.broadcastLoop()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)

	addr := fmt.Sprintf(":%d", port)
	fmt.Println("Slice server listening on", addr)
	go func() {
		log.Fatal(http.ListenAndServe(addr, mux))
	}()
}

func (s *SliceServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}
	defer conn.Close()

	connMutex := &sync.Mutex{}
	s.clientsMutex.Lock()
	s.clients[conn] = connMutex
	s.clientsMutex.Unlock()
	defer func() {
		s.clientsMutex.Lock()
		delete(s.clients, conn)
		s.clientsMutex.Unlock()
	}()

	// Send the current slice immediately on connect.
	update := makeSliceUpdate(s.snapshot())
	connMutex.Lock()
	err = conn.WriteJSON(update)
	connMutex.Unlock()
	if err != nil {
		return
	}

	// Drain incoming messages until the client goes away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (s *SliceServer) broadcastLoop() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for range ticker.C {
		s.broadcast(makeSliceUpdate(s.snapshot()))
	}
}

func (s *SliceServer) broadcast(update SliceUpdate) {
	s.clientsMutex.RLock()
	var failed []*websocket.Conn
	for client, mutex := range s.clients {
		mutex.Lock()
		err := client.WriteJSON(update)
		mutex.Unlock()
		if err != nil {
			log.Println("WebSocket write error:", err)
			client.Close()
			failed = append(failed, client)
		}
	}
	s.clientsMutex.RUnlock()

	if len(failed) > 0 {
		s.clientsMutex.Lock()
		for _, client := range failed {
			delete(s.clients, client)
		}
		s.clientsMutex.Unlock()
	}
}

// makeSliceUpdate converts a snapshot into the wire message, colormapping
// every value through the display window the same way the shader does:
// linear remap, then clamp inside Colormap.At.
func makeSliceUpdate(snap FieldSnapshot) SliceUpdate {
	update := SliceUpdate{
		Type:     "slice",
		Shape:    snap.Shape,
		Min:      snap.Min,
		Max:      snap.Max,
		VMin:     snap.VMin,
		VMax:     snap.VMax,
		Axis:     snap.Axis,
		Position: snap.Position,
		Colormap: snap.Colormap.Name(),
		Values:   snap.Values,
		Colors:   make([]string, len(snap.Values)),
	}

	span := snap.VMax - snap.VMin
	for i, v := range snap.Values {
		t := float32(0)
		if span != 0 {
			t = (v - snap.VMin) / span
		}
		rgb := snap.Colormap.At(t)
		update.Colors[i] = fmt.Sprintf("#%02x%02x%02x",
			uint8(rgb[0]*255+0.5), uint8(rgb[1]*255+0.5), uint8(rgb[2]*255+0.5))
	}
	return update
}
