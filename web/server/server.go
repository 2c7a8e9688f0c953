package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/golang/glog"

	"github.com/df07/go-pathtracer/pkg/imaging"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Request limits for preview renders
const (
	maxDimension = 1920
	maxSamples   = 1000
	maxDepth     = 100
)

// Server serves preview renders of the built-in scenes
type Server struct {
	port     int
	sceneDir string
	workers  int
}

// NewServer creates a new web server. Scene files are listed from and loaded
// out of sceneDir. workers <= 0 renders with one chunk per CPU.
func NewServer(port int, sceneDir string, workers int) *Server {
	return &Server{port: port, sceneDir: sceneDir, workers: workers}
}

// RenderRequest holds the parsed query of a render or inspect request
type RenderRequest struct {
	Scene   string `json:"scene"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Samples int    `json:"samples"`
	Depth   int    `json:"depth"`
	Seed    int64  `json:"seed"`
}

// Handler returns the routes served by Start
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	return mux
}

// Start listens on the configured port until the server fails
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	glog.Infof("Listening on %s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	response, err := scene.ListAllScenes(s.sceneDir, func(path string, err error) {
		glog.Warningf("Skipping %s: %v", path, err)
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("method %s not allowed", r.Method))
		return
	}
	req, err := parseRenderRequest(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	sc, err := s.buildScene(req)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	rt, err := sc.NewRaytracer(renderer.Options{
		Workers: s.workers,
		Seed:    req.Seed,
		Logger:  renderer.VerboseLogger(1),
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	// The PNG is only written once every row is traced, so errors can still
	// become a status code.
	out := &pngResponse{w: w}
	sink, err := imaging.NewWriterSink(out, imaging.FormatPNG, req.Width, req.Height)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	stats, err := rt.Render(r.Context(), sink)
	if err != nil {
		if !out.started {
			writeError(w, http.StatusInternalServerError, err)
		}
		glog.Warningf("Render of %q failed: %v", req.Scene, err)
		return
	}
	glog.Infof("Rendered %q at %dx%d: %s", req.Scene, req.Width, req.Height, stats)
}

// pngResponse sets the PNG headers on the first write
type pngResponse struct {
	w       http.ResponseWriter
	started bool
}

func (p *pngResponse) Write(b []byte) (int, error) {
	if !p.started {
		p.w.Header().Set("Content-Type", "image/png")
		p.w.WriteHeader(http.StatusOK)
		p.started = true
	}
	return p.w.Write(b)
}

// buildScene resolves the requested scene and applies the request overrides
func (s *Server) buildScene(req *RenderRequest) (*scene.Scene, error) {
	sc, err := s.resolveScene(req.Scene, req.Seed)
	if err != nil {
		return nil, err
	}
	if req.Width == 0 {
		req.Width = sc.Image.Width
	}
	if req.Height == 0 {
		req.Height = max(1, int(float64(req.Width)/sc.Image.AspectRatio()))
	}
	if err := sc.Resize(req.Width, req.Height); err != nil {
		return nil, err
	}
	if req.Samples > 0 {
		sc.Settings.SamplesPerPixel = req.Samples
	}
	if req.Depth > 0 {
		sc.Settings.MaxDepth = req.Depth
	}
	return sc, nil
}

// resolveScene looks id up among the built-in scenes, then among the scene
// files listed from sceneDir. Only listed files are loaded, so ids outside
// sceneDir resolve to ErrUnknownScene.
func (s *Server) resolveScene(id string, seed int64) (*scene.Scene, error) {
	sc, err := scene.ByName(id, seed)
	if err == nil || !errors.Is(err, scene.ErrUnknownScene) || s.sceneDir == "" {
		return sc, err
	}
	files, listErr := scene.ListSceneFiles(s.sceneDir, nil)
	if listErr != nil {
		return nil, listErr
	}
	for _, info := range files {
		if info.ID == id {
			return scene.Load(info.FilePath)
		}
	}
	return nil, err
}

func parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{Scene: values.Get("scene")}
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 0, 1, maxDimension); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(values, "height", 0, 1, maxDimension); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(values, "samples", 0, 1, maxSamples); err != nil {
		return nil, err
	}
	if req.Depth, err = parseIntParam(values, "depth", 0, 1, maxDepth); err != nil {
		return nil, err
	}
	if v := values.Get("seed"); v != "" {
		if req.Seed, err = strconv.ParseInt(v, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid seed: %s", v)
		}
	} else {
		req.Seed = 1
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

func statusFor(err error) int {
	if errors.Is(err, scene.ErrUnknownScene) {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		glog.Warningf("Writing response failed: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
