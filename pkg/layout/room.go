package layout

import (
	"github.com/paulmach/orb"

	"github.com/forgelab/dungeonforge/pkg/layout/geom"
)

// RoomType tags a room with its gameplay role. Generation methods that do
// not assign roles leave rooms as RoomGeneric.
type RoomType string

// Room type tags.
const (
	RoomGeneric  RoomType = "room"
	RoomEntrance RoomType = "entrance"
	RoomBoss     RoomType = "boss"
	RoomTreasure RoomType = "treasure"
	RoomTrap     RoomType = "trap"
	RoomPuzzle   RoomType = "puzzle"
	RoomChamber  RoomType = "chamber"
	RoomCorridor RoomType = "corridor"
)

// markerFor maps a room type to its grid marker tile. Types without a
// dedicated marker stamp the generic room marker.
func markerFor(t RoomType) int {
	switch t {
	case RoomEntrance:
		return TileEntrance
	case RoomBoss:
		return TileBoss
	case RoomTreasure:
		return TileTreasure
	case RoomTrap:
		return TileTrap
	case RoomPuzzle:
		return TilePuzzle
	case RoomChamber:
		return TileChamber
	default:
		return TileTreasure
	}
}

// Room is one placed room. Ids are unique within a layout and stable for its
// lifetime: rooms dropped from the output are filtered at result time, never
// removed from the working slice, so corridor and door records can keep
// referring to rooms by id.
//
// IsMain and IsHallway are mutually exclusive once room selection has run.
type Room struct {
	ID        int
	Geometry  *Geometry
	Type      RoomType
	IsMain    bool
	IsHallway bool
	Doors     []geom.Cell
}

// NewRoom constructs a room around a geometry with the generic type.
func NewRoom(id int, g *Geometry) *Room {
	return &Room{ID: id, Geometry: g, Type: RoomGeneric}
}

// Center returns the room's geometric center.
func (r *Room) Center() orb.Point { return r.Geometry.Center }

// Bounds returns the room's bounding box.
func (r *Room) Bounds() geom.Bounds { return r.Geometry.Bounds }

// Area returns the room's footprint area.
func (r *Room) Area() float64 { return r.Geometry.Area }

// CenterCell returns the grid cell containing the room center.
func (r *Room) CenterCell() geom.Cell {
	return geom.Cell{X: int(r.Geometry.Center.X()), Y: int(r.Geometry.Center.Y())}
}

// Overlaps reports whether two rooms' geometries intersect.
func (r *Room) Overlaps(other *Room) bool {
	return r.Geometry.Overlaps(other.Geometry)
}

// AddDoor appends a door coordinate, skipping exact duplicates.
func (r *Room) AddDoor(c geom.Cell) {
	for _, d := range r.Doors {
		if d == c {
			return
		}
	}
	r.Doors = append(r.Doors, c)
}
