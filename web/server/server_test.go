package server

import (
	"encoding/json"
	"image/png"
	"math"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	return newTestServerIn(t, t.TempDir())
}

func newTestServerIn(t *testing.T, sceneDir string) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(NewServer(0, sceneDir, 2).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func saveBuiltin(t *testing.T, name, path string) {
	t.Helper()
	d, err := scene.Describe(name, 1)
	if err != nil {
		t.Fatalf("Describe failed: %v", err)
	}
	if err := d.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
}

func get(t *testing.T, ts *httptest.Server, path string) *http.Response {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	if err != nil {
		t.Fatalf("GET %s failed: %v", path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp := get(t, ts, "/api/health")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("Expected status ok, got %v", body)
	}
}

func TestScenes(t *testing.T) {
	ts := newTestServer(t)
	resp := get(t, ts, "/api/scenes")
	var body scene.ScenesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(body.Groups) != 1 {
		t.Fatalf("Expected only the built-in group for an empty scene dir, got %d groups", len(body.Groups))
	}
	if got, want := len(body.Groups[0].Scenes), len(scene.Names()); got != want {
		t.Errorf("Expected %d built-in scenes, got %d", want, got)
	}
}

func TestRender_PNG(t *testing.T) {
	ts := newTestServer(t)
	resp := get(t, ts, "/api/render?scene=two-spheres&width=8&height=6&samples=2&depth=3")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("Expected image/png, got %q", ct)
	}
	img, err := png.Decode(resp.Body)
	if err != nil {
		t.Fatalf("png.Decode failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 6 {
		t.Errorf("Expected 8x6 image, got %v", b)
	}
}

func TestRender_KeepsAspectForWidthOnly(t *testing.T) {
	ts := newTestServer(t)
	resp := get(t, ts, "/api/render?scene=two-spheres&width=16&samples=1&depth=2")
	img, err := png.Decode(resp.Body)
	if err != nil {
		t.Fatalf("png.Decode failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 9 {
		t.Errorf("Expected 16x9 image, got %v", b)
	}
}

func TestRender_Errors(t *testing.T) {
	ts := newTestServer(t)
	tests := []struct {
		name   string
		query  string
		status int
	}{
		{"unknown scene", "scene=nope&width=4&height=4", http.StatusNotFound},
		{"width too large", "width=1921", http.StatusBadRequest},
		{"zero height", "height=0", http.StatusBadRequest},
		{"samples too large", "samples=1001", http.StatusBadRequest},
		{"depth too large", "depth=101", http.StatusBadRequest},
		{"bad seed", "seed=abc", http.StatusBadRequest},
		{"not a number", "width=wide", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := get(t, ts, "/api/render?"+tt.query)
			if resp.StatusCode != tt.status {
				t.Errorf("Expected %d, got %d", tt.status, resp.StatusCode)
			}
			var body map[string]string
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body["error"] == "" {
				t.Errorf("Expected a JSON error body, got %v (%v)", body, err)
			}
		})
	}
}

func TestRender_MethodNotAllowed(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Post(ts.URL+"/api/render", "text/plain", nil)
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405, got %d", resp.StatusCode)
	}
}

func TestParseRenderRequest_Defaults(t *testing.T) {
	req, err := parseRenderRequest(nil)
	if err != nil {
		t.Fatalf("parseRenderRequest failed: %v", err)
	}
	if req.Scene != "default" || req.Seed != 1 || req.Width != 0 || req.Samples != 0 {
		t.Errorf("Unexpected defaults %+v", req)
	}
}

func TestInspect(t *testing.T) {
	ts := newTestServer(t)
	tests := []struct {
		name         string
		query        string
		wantHit      bool
		wantGeometry string
		wantMaterial string
	}{
		{"center hits the small sphere", "x=8&y=4", true, "sphere", "lambertian"},
		{"top row sees the sky", "x=8&y=0", false, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := get(t, ts, "/api/inspect?scene=two-spheres&width=16&height=9&"+tt.query)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("Expected 200, got %d", resp.StatusCode)
			}
			var body InspectResponse
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if body.Hit != tt.wantHit || body.GeometryType != tt.wantGeometry || body.MaterialType != tt.wantMaterial {
				t.Errorf("got hit=%v geometry=%q material=%q, want %v %q %q",
					body.Hit, body.GeometryType, body.MaterialType, tt.wantHit, tt.wantGeometry, tt.wantMaterial)
			}
			if tt.wantHit {
				if !body.FrontFace {
					t.Error("Expected a front face hit from outside the sphere")
				}
				if r, ok := body.Properties["radius"].(float64); !ok || r != 0.5 {
					t.Errorf("Expected radius 0.5, got %v", body.Properties["radius"])
				}
			}
		})
	}
}

func TestInspect_Errors(t *testing.T) {
	ts := newTestServer(t)
	for _, query := range []string{"x=1", "x=16&y=0", "x=-1&y=0"} {
		resp := get(t, ts, "/api/inspect?scene=two-spheres&width=16&height=9&"+query)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", query, resp.StatusCode)
		}
	}
}

func TestRender_ListedSceneFile(t *testing.T) {
	dir := t.TempDir()
	saveBuiltin(t, "two-spheres", filepath.Join(dir, "mine.yaml"))
	ts := newTestServerIn(t, dir)

	var listing scene.ScenesResponse
	if err := json.NewDecoder(get(t, ts, "/api/scenes").Body).Decode(&listing); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(listing.Groups) != 2 || len(listing.Groups[1].Scenes) != 1 {
		t.Fatalf("Expected one listed scene file, got %+v", listing.Groups)
	}
	id := listing.Groups[1].Scenes[0].ID

	resp := get(t, ts, "/api/render?width=8&height=4&samples=1&depth=2&scene="+url.QueryEscape(id))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected listed scene %q to render, got %d", id, resp.StatusCode)
	}
	img, err := png.Decode(resp.Body)
	if err != nil {
		t.Fatalf("png.Decode failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 4 {
		t.Errorf("Expected 8x4 image, got %v", b)
	}

	inspect := get(t, ts, "/api/inspect?width=16&height=9&x=8&y=4&scene="+url.QueryEscape(id))
	if inspect.StatusCode != http.StatusOK {
		t.Errorf("Expected listed scene %q to be inspectable, got %d", id, inspect.StatusCode)
	}
}

func TestRender_RejectsSceneFileOutsideDir(t *testing.T) {
	outside := filepath.Join(t.TempDir(), "elsewhere.yaml")
	saveBuiltin(t, "two-spheres", outside)
	ts := newTestServer(t)

	for _, id := range []string{outside, filepath.Join("..", filepath.Base(outside))} {
		resp := get(t, ts, "/api/render?width=4&height=4&scene="+url.QueryEscape(id))
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("%s: expected 404, got %d", id, resp.StatusCode)
		}
	}
}

func TestInspect_MatchesRenderedPixelCenter(t *testing.T) {
	const width, height = 16, 9
	ts := newTestServer(t)
	sc, err := scene.ByName("two-spheres", 1)
	if err != nil {
		t.Fatalf("ByName failed: %v", err)
	}
	if err := sc.Resize(width, height); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	camera, err := sc.NewCamera()
	if err != nil {
		t.Fatalf("NewCamera failed: %v", err)
	}

	for _, px := range [][2]int{{0, 8}, {8, 4}, {15, 8}, {3, 6}} {
		x, y := px[0], px[1]
		// Center of the pixel the renderer writes at bottom-up row height-1-y
		s := (float64(x) + 0.5) / float64(width-1)
		v := (float64(height-1-y) + 0.5) / float64(height-1)
		ray := camera.GetRay(s, v, rand.New(rand.NewSource(0)))
		wantHit, wantOK := sc.World.Hit(ray, integrator.ShadowAcneEpsilon, math.Inf(1))

		query := url.Values{
			"scene": {"two-spheres"}, "width": {"16"}, "height": {"9"},
			"x": {strconv.Itoa(x)}, "y": {strconv.Itoa(y)},
		}
		var body InspectResponse
		if err := json.NewDecoder(get(t, ts, "/api/inspect?"+query.Encode()).Body).Decode(&body); err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		if body.Hit != wantOK {
			t.Fatalf("pixel (%d, %d): hit=%v, want %v", x, y, body.Hit, wantOK)
		}
		if !wantOK {
			continue
		}
		for i, want := range [3]float64{wantHit.Point.X, wantHit.Point.Y, wantHit.Point.Z} {
			if math.Abs(body.Point[i]-want) > 1e-9 {
				t.Errorf("pixel (%d, %d): point %v, want %v", x, y, body.Point, wantHit.Point)
				break
			}
		}
	}

	// The same mapping drives the renderer's samples
	if u, v := renderer.ImagePlane(8, 4, 0.5, 0.5, width, height); u != 8.5/15 || v != 4.5/8 {
		t.Errorf("ImagePlane(8, 4) = (%f, %f)", u, v)
	}
}
