package board

// Next returns the position distance steps forward from start.
func (b *Board) Next(start, distance int) int {
	n := len(b.lands)
	return ((start+distance)%n + n) % n
}

// Path lists the positions crossed moving distance steps forward from start,
// excluding start and including the destination.
func (b *Board) Path(start, distance int) []int {
	if distance <= 0 {
		return nil
	}
	path := make([]int, 0, distance)
	pos := start
	for i := 0; i < distance; i++ {
		pos = b.Next(pos, 1)
		path = append(path, pos)
	}
	return path
}

// PathTo lists the positions crossed moving forward from start to target.
// It is empty when start and target are the same land.
func (b *Board) PathTo(start, target int) []int {
	n := len(b.lands)
	distance := ((target-start)%n + n) % n
	return b.Path(start, distance)
}

// HasType reports whether any land on the board is of type t.
func (b *Board) HasType(t LandType) bool {
	for _, land := range b.lands {
		if land.Type == t {
			return true
		}
	}
	return false
}
