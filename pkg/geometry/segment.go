package geometry

// Segment is a line segment between two points, the unit a wireframe is drawn from
type Segment struct {
	A, B Vector3
}

// Length returns the distance between the segment's endpoints
func (s Segment) Length() float64 {
	return s.A.Distance(s.B)
}
