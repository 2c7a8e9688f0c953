package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Scene sources reported by discovery
const (
	TypeBuiltin = "builtin"
	TypeFile    = "file"
)

// fileExtensions are the suffixes treated as scene files
var fileExtensions = []string{".yaml", ".yml", ".scene"}

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`                 // Name for ByName, or the file path
	DisplayName string `json:"displayName"`        // UI display name
	Description string `json:"description"`        // Optional description
	Type        string `json:"type"`               // "builtin" or "file"
	FilePath    string `json:"filePath,omitempty"` // Path to the scene file (file type only)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete scene listing
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

// ListBuiltinScenes describes every registered built-in scene
func ListBuiltinScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtins))
	for _, name := range Names() {
		scenes = append(scenes, SceneInfo{
			ID:          name,
			DisplayName: titleCase(name),
			Description: builtins[name].description,
			Type:        TypeBuiltin,
		})
	}
	return scenes
}

// ListSceneFiles scans dir for scene files. A missing directory yields an empty list;
// files whose header cannot be parsed are reported through warn and skipped.
func ListSceneFiles(dir string, warn func(path string, err error)) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return []SceneInfo{}, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("while scanning scenes directory: %w", err)
	}

	scenes := []SceneInfo{}
	for _, entry := range entries {
		if entry.IsDir() || !isSceneFile(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		d, err := LoadDescriptor(path)
		if err != nil {
			if warn != nil {
				warn(path, err)
			}
			continue
		}
		scenes = append(scenes, SceneInfo{
			ID:          path,
			DisplayName: titleCase(d.Name),
			Description: d.Description,
			Type:        TypeFile,
			FilePath:    path,
		})
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})
	return scenes, nil
}

// ListAllScenes returns built-in scenes followed by the scene files in dir
func ListAllScenes(dir string, warn func(path string, err error)) (ScenesResponse, error) {
	response := ScenesResponse{
		Groups: []SceneGroup{{Name: "Built-in Scenes", Scenes: ListBuiltinScenes()}},
	}
	if dir == "" {
		return response, nil
	}

	files, err := ListSceneFiles(dir, warn)
	if err != nil {
		return response, err
	}
	if len(files) > 0 {
		response.Groups = append(response.Groups, SceneGroup{Name: "Scene Files", Scenes: files})
	}
	return response, nil
}

func isSceneFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, candidate := range fileExtensions {
		if ext == candidate {
			return true
		}
	}
	return false
}

// titleCase converts a filename-style string to title case
// e.g., "two-spheres" -> "Two Spheres"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
