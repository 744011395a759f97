// Package hex provides the axial hex grid used by the board: coordinates,
// neighbours, distances and the "QxR" names used in move text.
package hex

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
)

// Coord is an axial coordinate. The third cube coordinate is S = -Q-R.
type Coord struct {
	Q int `json:"q" yaml:"q"`
	R int `json:"r" yaml:"r"`
}

// S returns the implicit third cube coordinate.
func (c Coord) S() int {
	return -c.Q - c.R
}

// Directions holds the six neighbour offsets, clockwise from east.
var Directions = [6]Coord{
	{Q: 1, R: 0},
	{Q: 1, R: -1},
	{Q: 0, R: -1},
	{Q: -1, R: 0},
	{Q: -1, R: 1},
	{Q: 0, R: 1},
}

// Add returns c translated by d.
func (c Coord) Add(d Coord) Coord {
	return Coord{Q: c.Q + d.Q, R: c.R + d.R}
}

// Sub returns c minus d.
func (c Coord) Sub(d Coord) Coord {
	return Coord{Q: c.Q - d.Q, R: c.R - d.R}
}

// Neighbours returns the six adjacent coordinates.
func (c Coord) Neighbours() [6]Coord {
	var out [6]Coord
	for i, d := range Directions {
		out[i] = c.Add(d)
	}
	return out
}

// Distance returns the hex distance between two coordinates.
func Distance(a, b Coord) int {
	return max(abs(a.Q-b.Q), abs(a.R-b.R), abs(a.S()-b.S()))
}

// Within returns every coordinate at distance <= radius of c, sorted.
func (c Coord) Within(radius int) []Coord {
	var out []Coord
	for dq := -radius; dq <= radius; dq++ {
		for dr := max(-radius, -dq-radius); dr <= min(radius, -dq+radius); dr++ {
			out = append(out, Coord{Q: c.Q + dq, R: c.R + dr})
		}
	}
	Sort(out)
	return out
}

// Rotate turns c around center by n sixths of a turn, clockwise.
func (c Coord) Rotate(center Coord, n int) Coord {
	n = ((n % 6) + 6) % 6
	d := c.Sub(center)
	x, y, z := d.Q, d.R, d.S()
	for i := 0; i < n; i++ {
		x, y, z = -z, -x, -y
	}
	return center.Add(Coord{Q: x, R: y})
}

func (c Coord) String() string {
	return fmt.Sprintf("%dx%d", c.Q, c.R)
}

// MarshalText lets coordinates key JSON maps.
func (c Coord) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText is the inverse of MarshalText.
func (c *Coord) UnmarshalText(b []byte) error {
	p, err := Parse(string(b))
	if err != nil {
		return err
	}
	*c = p
	return nil
}

var nameRegex = regexp.MustCompile(`^(-?\d+)x(-?\d+)$`)

// Parse reads a "QxR" name such as "-2x3".
func Parse(name string) (Coord, error) {
	m := nameRegex.FindStringSubmatch(name)
	if m == nil {
		return Coord{}, fmt.Errorf("invalid hex coordinate %q", name)
	}
	q, _ := strconv.Atoi(m[1])
	r, _ := strconv.Atoi(m[2])
	return Coord{Q: q, R: r}, nil
}

// Less orders coordinates by Q then R.
func Less(a, b Coord) bool {
	if a.Q != b.Q {
		return a.Q < b.Q
	}
	return a.R < b.R
}

// Sort orders a slice of coordinates in place.
func Sort(cs []Coord) {
	sort.Slice(cs, func(i, j int) bool { return Less(cs[i], cs[j]) })
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
