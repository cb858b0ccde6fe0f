package topology

import (
	"fmt"
)

// MapField maps one field from the source topology onto a Sides
// result, per §4.4.1:
//   - element-associated, non-volume-dependent: copy the parent cell's
//     value to every side.
//   - element-associated, volume-dependent: scale the parent's value by
//     simplex_volume / parent_volume.
//   - vertex-associated: copy values carried over from the source
//     coordset; new (centroid) vertices get the mean of adjacent
//     original vertices found by scanning the derived connectivity
//     (0 if none). Volume-dependent is fatal for vertex association.
//
// The two auxiliary fields §4.4.1 always emits are not returned here:
// original element ids (S2D) and original vertex ids (OriginalVertexIDs)
// are carried on SidesResult already; MapField returns only the mapped
// field's values (and, for volume-dependent fields, the volume field
// alongside it).
func MapField(sr *SidesResult, association string, volumeDependent bool, values []float64) (mapped []float64, volume []float64, err error) {
	switch association {
	case "element":
		return mapElementField(sr, volumeDependent, values)
	case "vertex":
		if volumeDependent {
			return nil, nil, errVertexVolumeDependent()
		}
		return mapVertexField(sr, values), nil, nil
	default:
		return nil, nil, errUnknownAssociation(association)
	}
}

func mapElementField(sr *SidesResult, volumeDependent bool, values []float64) ([]float64, []float64, error) {
	n := len(sr.S2D)
	mapped := make([]float64, n)
	var volume []float64
	if volumeDependent {
		volume = make([]float64, n)
	}
	for i, cell := range sr.S2D {
		v := values[cell]
		if !volumeDependent {
			mapped[i] = v
			continue
		}
		ratio := sr.SimplexVolumes[i] / sr.CellVolumes[cell]
		mapped[i] = v * ratio
		volume[i] = sr.SimplexVolumes[i]
	}
	return mapped, volume, nil
}

// mapVertexField assigns each derived vertex a value: original
// vertices copy through; new (centroid) vertices get the mean of
// adjacent original vertices discovered by scanning the derived
// connectivity's simplices (triangles in 2D, tets in 3D), per §4.4.1.
func mapVertexField(sr *SidesResult, values []float64) []float64 {
	n := len(sr.OriginalVertexIDs)
	out := make([]float64, n)
	conn := sr.Topo.Child("elements").Child("connectivity").AsInt64Slice()
	width := 3
	if sr.Topo.Child("elements").Child("shape").AsString() == "tet" {
		width = 4
	}

	adjacency := make([][]int64, n)
	for t := 0; t+width <= len(conn); t += width {
		tri := conn[t : t+width]
		for _, a := range tri {
			for _, b := range tri {
				if a != b {
					adjacency[a] = append(adjacency[a], b)
				}
			}
		}
	}

	for v := 0; v < n; v++ {
		if orig := sr.OriginalVertexIDs[v]; orig >= 0 {
			out[v] = values[orig]
			continue
		}
		var sum float64
		var count int
		seen := map[int64]bool{}
		for _, nb := range adjacency[v] {
			if seen[nb] {
				continue
			}
			seen[nb] = true
			if sr.OriginalVertexIDs[nb] >= 0 {
				sum += values[sr.OriginalVertexIDs[nb]]
				count++
			}
		}
		if count > 0 {
			out[v] = sum / float64(count)
		}
	}
	return out
}

func errVertexVolumeDependent() error {
	return fmt.Errorf("field mapping: vertex-associated fields cannot be volume-dependent")
}

func errUnknownAssociation(a string) error {
	return fmt.Errorf("field mapping: unrecognized field association %q", a)
}
