package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/df07/go-phong-raytracer/pkg/loaders"
	"github.com/df07/go-phong-raytracer/pkg/renderer"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// Request parameter limits, shared by parsing and /api/scene-config
const (
	minImageSize = 16
	maxImageSize = 2000
	maxMaxDepth  = 20
	maxWorkers   = 64
	minTileSize  = 8
	maxTileSize  = 256
)

const shutdownTimeout = 5 * time.Second

// Server handles web requests for the raytracer
type Server struct {
	port int
	mux  *http.ServeMux
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	s := &Server{port: port, mux: http.NewServeMux()}

	// Serve static files
	s.mux.Handle("/", http.FileServer(http.Dir("static/")))

	// API endpoints
	s.mux.HandleFunc("/api/render", s.handleRender)
	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.HandleFunc("/api/scenes", s.handleScenes)
	s.mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	s.mux.HandleFunc("/api/inspect", s.handleInspect)
	return s
}

// Handler returns the server's routes, for embedding or httptest
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start serves until ctx is done, then shuts down gracefully. Requests, including open
// render streams, see ctx through their request context, so a shutdown cancels renders.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:        fmt.Sprintf(":%d", s.port),
		Handler:     s.mux,
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	log.Printf("Starting web server on http://localhost%s", srv.Addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Printf("Web server stopped")
	return nil
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene      string `json:"scene"`      // Built-in ID or file:<name>
	Width      int    `json:"width"`      // 0 = scene default
	Height     int    `json:"height"`     // 0 = scene default
	MaxDepth   int    `json:"maxDepth"`   // -1 = scene default
	NumWorkers int    `json:"numWorkers"` // 0 = CPU count
	TileSize   int    `json:"tileSize"`
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in and file scenes, grouped for the UI
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	response, err := scene.ListAllScenes()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = "default"
	}

	sceneObj, err := s.loadScene(sceneName)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	response := map[string]interface{}{
		"scene": sceneName,
		"name":  sceneObj.Name,
		"defaults": map[string]interface{}{
			"width":    sceneObj.Camera.Width,
			"height":   sceneObj.Camera.Height,
			"maxDepth": sceneObj.World.MaxDepth,
			"tileSize": renderer.DefaultTileSize,
			"objects":  len(sceneObj.World.Objects()),
			"lights":   len(sceneObj.World.Lights()),
		},
		"limits": map[string]interface{}{
			"width":    map[string]int{"min": minImageSize, "max": maxImageSize},
			"height":   map[string]int{"min": minImageSize, "max": maxImageSize},
			"maxDepth": map[string]int{"min": 0, "max": maxMaxDepth},
			"workers":  map[string]int{"min": 0, "max": maxWorkers},
			"tileSize": map[string]int{"min": minTileSize, "max": maxTileSize},
		},
	}
	writeJSON(w, http.StatusOK, response)
}

// parseRenderRequest parses and validates request parameters
func (s *Server) parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{Scene: values.Get("scene")}
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 0, minImageSize, maxImageSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(values, "height", 0, minImageSize, maxImageSize); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(values, "maxDepth", -1, 0, maxMaxDepth); err != nil {
		return nil, err
	}
	if req.NumWorkers, err = parseIntParam(values, "workers", 0, 0, maxWorkers); err != nil {
		return nil, err
	}
	if req.TileSize, err = parseIntParam(values, "tileSize", renderer.DefaultTileSize, minTileSize, maxTileSize); err != nil {
		return nil, err
	}

	// Performance warning
	if req.Width*req.Height > 1600*1200 && req.MaxDepth > 10 {
		log.Printf("Render warning: Large image with deep reflections may render slowly")
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// loadScene resolves a scene ID. Raw file paths are refused; file scenes are
// reachable only through the IDs that /api/scenes hands out.
func (s *Server) loadScene(id string) (*scene.Scene, error) {
	if strings.HasSuffix(strings.ToLower(id), ".json") {
		return nil, fmt.Errorf("unknown scene: %s", id)
	}
	sceneObj, err := loaders.LoadScene(id)
	if err != nil {
		return nil, fmt.Errorf("unknown scene: %s: %w", id, err)
	}
	return sceneObj, nil
}

// createScene loads the requested scene and applies the size and depth overrides
func (s *Server) createScene(req *RenderRequest) (*scene.Scene, error) {
	sceneObj, err := s.loadScene(req.Scene)
	if err != nil {
		return nil, err
	}
	sceneObj.Camera = scene.MergeCameraConfig(sceneObj.Camera, scene.CameraConfig{
		Width:  req.Width,
		Height: req.Height,
	})
	if req.MaxDepth >= 0 {
		sceneObj.World.MaxDepth = req.MaxDepth
	}
	return sceneObj, nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func (s *Server) imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}
