package entity

// Position is an exact 2D grid coordinate in the plan. Positions are bucket
// keys in the content index, so equality is exact.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Pos is a shorthand constructor for Position
func Pos(x, y int) Position {
	return Position{X: x, Y: y}
}

// Shifted returns the position moved n steps along dir
func (p Position) Shifted(dir Direction, n int) Position {
	dx, dy := dir.Offsets()
	return Position{X: p.X + dx*n, Y: p.Y + dy*n}
}

// BoundingBox is an inclusive axis-aligned box over plan positions
type BoundingBox struct {
	Min Position
	Max Position
}

// Expand grows the box by margin tiles on every side
func (b BoundingBox) Expand(margin int) BoundingBox {
	return BoundingBox{
		Min: Position{X: b.Min.X - margin, Y: b.Min.Y - margin},
		Max: Position{X: b.Max.X + margin, Y: b.Max.Y + margin},
	}
}

// Contains reports whether pos lies inside the box
func (b BoundingBox) Contains(pos Position) bool {
	return pos.X >= b.Min.X && pos.X <= b.Max.X && pos.Y >= b.Min.Y && pos.Y <= b.Max.Y
}

// Direction is one of the eight plan orientations. North is up (negative Y).
type Direction uint8

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

// Opposite returns the direction rotated 180 degrees
func (d Direction) Opposite() Direction {
	return (d + 4) % 8
}

// IsDiagonal reports whether the direction is one of the four diagonals.
// Flip-compatible matching falls back to exact matching for diagonals.
func (d Direction) IsDiagonal() bool {
	return d%2 == 1
}

// Offsets returns the unit step along the direction
func (d Direction) Offsets() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case NorthEast:
		return 1, -1
	case East:
		return 1, 0
	case SouthEast:
		return 1, 1
	case South:
		return 0, 1
	case SouthWest:
		return -1, 1
	case West:
		return -1, 0
	case NorthWest:
		return -1, -1
	}
	return 0, 0
}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case NorthEast:
		return "north-east"
	case East:
		return "east"
	case SouthEast:
		return "south-east"
	case South:
		return "south"
	case SouthWest:
		return "south-west"
	case West:
		return "west"
	case NorthWest:
		return "north-west"
	}
	return "unknown"
}

// DirectionPtr returns a pointer to d, for observation fields where nil
// means "any direction"
func DirectionPtr(d Direction) *Direction {
	return &d
}
