package metadata

// Mesh pairs the CPU side buffers of a scene object with the geometry the
// renderer created from them. Geometry is nil until the mesh is uploaded.
type Mesh struct {
	Name     string
	Config   *GeometryConfig
	Geometry *Geometry
}

// IsUploaded reports whether the mesh has renderer resources.
func (m *Mesh) IsUploaded() bool {
	return m.Geometry != nil
}
