package math

// GeometryCalculateExtents returns the bounding box and its center for the
// positions of the supplied vertices. An empty slice yields zero extents.
func GeometryCalculateExtents(vertices []Vertex) (Extents3D, Vec3) {
	if len(vertices) == 0 {
		return Extents3D{}, NewVec3Zero()
	}

	extents := Extents3D{
		Min: vertices[0].Position,
		Max: vertices[0].Position,
	}
	for i := 1; i < len(vertices); i++ {
		extents.Min = extents.Min.Min(vertices[i].Position)
		extents.Max = extents.Max.Max(vertices[i].Position)
	}

	center := extents.Min.Add(extents.Max).MulScalar(0.5)
	return extents, center
}
