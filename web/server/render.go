package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/df07/go-phong-raytracer/pkg/renderer"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// StreamEvent is one WebSocket message of a render stream
type StreamEvent struct {
	Type string          `json:"type"` // "console", "tile", "complete", "error"
	Data json.RawMessage `json:"data"`
}

// TileUpdate represents a single tile update
type TileUpdate struct {
	TileX      int    `json:"tileX"`
	TileY      int    `json:"tileY"`
	TileSize   int    `json:"tileSize"`
	ImageData  string `json:"imageData"`  // Base64 encoded PNG of just this tile
	TileNumber int    `json:"tileNumber"` // Tiles finished so far (1-based)
	TotalTiles int    `json:"totalTiles"` // Total number of tiles in the image
}

// CompleteUpdate carries the finished image and its statistics
type CompleteUpdate struct {
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	ImageData string `json:"imageData"` // Base64 encoded PNG
	Stats     Stats  `json:"stats"`
}

// Stats represents render statistics
type Stats struct {
	TotalPixels      int     `json:"totalPixels"`
	TotalTiles       int     `json:"totalTiles"`
	NumWorkers       int     `json:"numWorkers"`
	ElapsedMs        int64   `json:"elapsedMs"`
	AverageLuminance float64 `json:"averageLuminance"`
}

// handleRender upgrades to a WebSocket and streams console lines, tiles as they finish,
// then the complete image. Closing the socket cancels the render.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, parseErr := s.parseRenderRequest(r.URL.Query())

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("upgrade:", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Single writer goroutine; gorilla connections allow one concurrent writer
	events := make(chan StreamEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeEvents(conn, events, cancel)
	}()
	go s.watchDisconnect(conn, cancel)

	defer func() {
		close(events)
		<-writerDone
	}()

	if parseErr != nil {
		s.handleError(ctx, events, fmt.Sprintf("Invalid request: %v", parseErr))
		return
	}

	s.renderToStream(ctx, req, events)
}

// renderToStream runs one render, sending every event to events. It returns once all
// producers are done, so the caller may close events afterwards.
func (s *Server) renderToStream(ctx context.Context, req *RenderRequest, events chan<- StreamEvent) {
	sceneObj, err := s.createScene(req)
	if err != nil {
		s.handleError(ctx, events, err.Error())
		return
	}
	camera, err := renderer.NewCameraFromConfig(sceneObj.Camera)
	if err != nil {
		s.handleError(ctx, events, err.Error())
		return
	}

	// Setup console logging and streaming
	consoleChan, webLogger := s.setupConsoleLogging()
	var consoleWG sync.WaitGroup
	consoleWG.Add(1)
	go func() {
		defer consoleWG.Done()
		s.streamConsoleMessages(ctx, consoleChan, events)
	}()

	webLogger.Printf("Rendering scene %s at %dx%d (max depth %d)\n",
		sceneObj.Name, sceneObj.Camera.Width, sceneObj.Camera.Height, sceneObj.World.MaxDepth)

	rt := renderer.NewRaytracer(sceneObj.World, camera, renderer.RenderConfig{
		TileSize:   req.TileSize,
		NumWorkers: req.NumWorkers,
	}, webLogger)

	canvas, stats, renderErr := rt.Render(ctx, func(result renderer.TileCompletionResult) {
		s.handleTileUpdate(ctx, events, result, req.TileSize)
	})

	if renderErr != nil && ctx.Err() == nil {
		webLogger.Errorf("Render failed: %v\n", renderErr)
	}
	if n := webLogger.Dropped(); n > 0 {
		log.Printf("Render %s: dropped %d console lines", sceneObj.Name, n)
	}

	// The logger is not used past this point
	close(consoleChan)
	consoleWG.Wait()

	if renderErr != nil {
		if ctx.Err() == nil {
			s.handleError(ctx, events, fmt.Sprintf("Render error: %v", renderErr))
		}
		return
	}

	imageData, err := s.imageToBase64PNG(canvas.ToImage())
	if err != nil {
		s.handleError(ctx, events, fmt.Sprintf("Failed to encode image: %v", err))
		return
	}
	s.sendEvent(ctx, events, "complete", CompleteUpdate{
		Width:     canvas.Width,
		Height:    canvas.Height,
		ImageData: imageData,
		Stats: Stats{
			TotalPixels:      stats.TotalPixels,
			TotalTiles:       stats.TotalTiles,
			NumWorkers:       stats.NumWorkers,
			ElapsedMs:        stats.Elapsed.Milliseconds(),
			AverageLuminance: renderer.AverageLuminance(canvas),
		},
	})
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, *WebLogger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	webLogger := NewWebLogger(renderID, consoleChan)
	return consoleChan, webLogger
}

// writeEvents writes every event to the socket, then sends a normal close frame.
// After a failed write it keeps draining so that producers never block.
func (s *Server) writeEvents(conn *websocket.Conn, events <-chan StreamEvent, cancel context.CancelFunc) {
	failed := false
	for event := range events {
		if failed {
			continue
		}
		conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := conn.WriteJSON(event); err != nil {
			// Client disconnected during write
			failed = true
			cancel()
		}
	}
	if !failed {
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	}
}

// watchDisconnect reads until the client goes away and then cancels the render
func (s *Server) watchDisconnect(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// streamConsoleMessages forwards console lines until consoleChan is closed
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan <-chan ConsoleMessage, events chan<- StreamEvent) {
	for msg := range consoleChan {
		s.sendEvent(ctx, events, "console", msg)
	}
}

// handleTileUpdate encodes a finished tile and queues it
func (s *Server) handleTileUpdate(ctx context.Context, events chan<- StreamEvent, result renderer.TileCompletionResult, tileSize int) {
	imageData, err := s.imageToBase64PNG(result.TileImage)
	if err != nil {
		log.Printf("Failed to encode tile (%d, %d): %v", result.TileX, result.TileY, err)
		return
	}
	s.sendEvent(ctx, events, "tile", TileUpdate{
		TileX:      result.TileX,
		TileY:      result.TileY,
		TileSize:   tileSize,
		ImageData:  imageData,
		TileNumber: result.TileNumber,
		TotalTiles: result.TotalTiles,
	})
}

// handleError queues an error event
func (s *Server) handleError(ctx context.Context, events chan<- StreamEvent, message string) {
	log.Printf("Render error: %s", message)
	s.sendEvent(ctx, events, "error", map[string]string{"message": message})
}

// sendEvent marshals data and queues it unless the client is gone
func (s *Server) sendEvent(ctx context.Context, events chan<- StreamEvent, eventType string, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", eventType, err)
		return
	}
	select {
	case events <- StreamEvent{Type: eventType, Data: payload}:
	case <-ctx.Done():
	}
}
