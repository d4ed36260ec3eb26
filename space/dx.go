package space

// DXHeader carries the OpenDX density-map header fields described in
// spec.md §6, as plain data — writing the file is the out-of-scope
// external writer's job (SPEC_FULL.md §6).
type DXHeader struct {
	Counts [3]int
	Origin [3]float64
	Delta  [3][3]float64
}

// DXHeader computes the header fields for the bottom-level type tensor.
func (s *Space) DXHeader() DXHeader {
	nx, ny, nz := s.Levels[0].Dims()
	h := DXHeader{Counts: [3]int{nx, ny, nz}}
	for d := 0; d < 3; d++ {
		h.Origin[d] = s.CartMin[d] + s.GridSize/2
	}
	h.Delta[0] = [3]float64{s.GridSize, 0, 0}
	h.Delta[1] = [3]float64{0, s.GridSize, 0}
	h.Delta[2] = [3]float64{0, 0, s.GridSize}
	return h
}
