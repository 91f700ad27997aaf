package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/material"
	"github.com/df07/go-phong-raytracer/pkg/renderer"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	ShapeID      uint64                 `json:"shapeId"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Inside       bool                   `json:"inside"`
	Shadowed     []bool                 `json:"shadowed"` // One entry per light
	Color        [3]float64             `json:"color"`    // Shaded color, unclamped
	Properties   map[string]interface{} `json:"properties"`
}

// extractMaterialInfo lists the Phong parameters and pattern of a material
func extractMaterialInfo(m material.Material) map[string]interface{} {
	properties := map[string]interface{}{
		"color":      fmt.Sprintf("#%02x%02x%02x", renderer.ChannelByte(m.Color.R), renderer.ChannelByte(m.Color.G), renderer.ChannelByte(m.Color.B)),
		"ambient":    m.Ambient,
		"diffuse":    m.Diffuse,
		"specular":   m.Specular,
		"shininess":  m.Shininess,
		"reflective": m.Reflective,
	}
	if m.Pattern != nil {
		properties["pattern"] = m.Pattern.Kind().String()
	}
	return properties
}

// extractGeometryInfo names the shape type and reports its placement
func extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})
	origin := shape.Transform().MulTuple(core.Point(0, 0, 0))
	properties["origin"] = [3]float64{origin.X, origin.Y, origin.Z}

	switch shape.(type) {
	case *geometry.Sphere:
		return "sphere", properties
	case *geometry.Plane:
		return "plane", properties
	default:
		return "unknown", properties
	}
}

// inspectPixel casts the primary ray for a pixel and describes what it hits
func inspectPixel(sceneObj *scene.Scene, camera *renderer.Camera, pixelX, pixelY int) (InspectResponse, error) {
	ray, err := camera.RayForPixel(pixelX, pixelY)
	if err != nil {
		return InspectResponse{}, err
	}
	world := sceneObj.World

	hit, ok := world.Intersect(ray).Hit()
	if !ok {
		return InspectResponse{Hit: false}, nil
	}
	shape, err := world.Lookup(hit.ShapeID)
	if err != nil {
		return InspectResponse{}, err
	}
	state, err := geometry.ComputeState(ray, hit, shape)
	if err != nil {
		return InspectResponse{}, err
	}
	color, err := world.ShadeHit(state, world.MaxDepth)
	if err != nil {
		return InspectResponse{}, err
	}

	shadowed := make([]bool, len(world.Lights()))
	for i := range shadowed {
		if shadowed[i], err = world.IsShadowed(state.OverPoint, i); err != nil {
			return InspectResponse{}, err
		}
	}

	geometryType, geometryProps := extractGeometryInfo(shape)
	return InspectResponse{
		Hit:          true,
		ShapeID:      uint64(shape.ID()),
		GeometryType: geometryType,
		Point:        [3]float64{state.Point.X, state.Point.Y, state.Point.Z},
		Normal:       [3]float64{state.Normal.X, state.Normal.Y, state.Normal.Z},
		Distance:     state.T,
		Inside:       state.Inside,
		Shadowed:     shadowed,
		Color:        [3]float64{color.R, color.G, color.B},
		Properties: map[string]interface{}{
			"material": extractMaterialInfo(*shape.Material()),
			"geometry": geometryProps,
		},
	}, nil
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r.URL.Query())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid scene parameters: " + err.Error()})
		return
	}

	// Parse pixel coordinates
	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid x coordinate"})
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid y coordinate"})
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	// Validate pixel coordinates
	if pixelX < 0 || pixelX >= sceneObj.Camera.Width || pixelY < 0 || pixelY >= sceneObj.Camera.Height {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Pixel coordinates out of bounds"})
		return
	}

	camera, err := renderer.NewCameraFromConfig(sceneObj.Camera)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	result, err := inspectPixel(sceneObj, camera, pixelX, pixelY)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, result)
}
