package domain

import "sort"

// halfKmStepM is the interval of the optional interpolated height markers.
const halfKmStepM = 500

// HodographPoint is one plot-ready point of the storm-relative hodograph
// curve. The ordered point sequence is the rendering contract; it is handed to
// the rendering collaborator verbatim.
type HodographPoint struct {
	HeightM float64 `json:"height_m"`
	U       float64 `json:"u"`
	V       float64 `json:"v"`
}

// BuildHodograph assembles the height-ordered point sequence from the
// storm-relative series. With includeHalfKm set, additional points are
// linearly interpolated at every 500 m boundary between sampled heights that
// is not itself a sampled height, so the renderer can place half-kilometre
// markers without recomputing the profile.
func BuildHodograph(relative Profile, includeHalfKm bool) []HodographPoint {
	points := make([]HodographPoint, 0, len(relative))
	for _, vec := range relative {
		points = append(points, HodographPoint(vec))
	}

	if includeHalfKm {
		sampled := make(map[float64]bool, len(relative))
		for _, vec := range relative {
			sampled[vec.HeightM] = true
		}

		first := halfKmBoundaryAbove(relative.Bottom())
		for h := first; h < relative.Top(); h += halfKmStepM {
			if sampled[h] {
				continue
			}
			vec, ok := relative.vectorAt(h)
			if !ok {
				continue
			}
			points = append(points, HodographPoint(vec))
		}

		sort.Slice(points, func(i, j int) bool { return points[i].HeightM < points[j].HeightM })
	}

	return points
}

// halfKmBoundaryAbove returns the smallest 500 m multiple strictly above h.
func halfKmBoundaryAbove(h float64) float64 {
	n := int(h / halfKmStepM)
	boundary := float64(n) * halfKmStepM
	for boundary <= h {
		boundary += halfKmStepM
	}
	return boundary
}
