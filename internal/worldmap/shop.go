package worldmap

// ShopType distinguishes the inn from ordinary shops — inns additionally
// reserve an adjacent perimeter door tile to model a double door, and their
// shopkeeper (the innkeeper) is bound to the building.
type ShopType string

const (
	ShopGeneric ShopType = "generic"
	ShopInn     ShopType = "inn"
)

// Shop is a trading location inside a Building. BuildingID indexes
// Town.Buildings.
type Shop struct {
	X, Y        int
	Type        ShopType
	Name        string
	OpenMin     int // minutes since midnight, [0, 1440)
	CloseMin    int
	AlwaysOpen  bool
	BuildingID  int
	InsideTiles []Point // candidate interior tiles for "go inside the shop"
}

// IsOpen reports whether the shop is open at the given minute-of-day.
// OpenMin == CloseMin is treated as "never open" rather than "always open" —
// a zero-width window describes a shop with no real hours, not one staffed
// around the clock; AlwaysOpen exists for that case.
func (s Shop) IsOpen(minute int) bool {
	if s.AlwaysOpen {
		return true
	}
	if s.OpenMin == s.CloseMin {
		return false
	}
	minute = ((minute % 1440) + 1440) % 1440
	open := ((s.OpenMin % 1440) + 1440) % 1440
	close := ((s.CloseMin % 1440) + 1440) % 1440
	if open < close {
		return minute >= open && minute < close
	}
	// wraps past midnight
	return minute >= open || minute < close
}

// InArriveWindow reports whether minute falls in [open-120, close+10) mod
// day — the window in which a shopkeeper should be routing into their shop.
func (s Shop) InArriveWindow(minute int) bool {
	if s.AlwaysOpen {
		return true
	}
	if s.OpenMin == s.CloseMin {
		return false
	}
	lo := mod1440(s.OpenMin - 120)
	hi := mod1440(s.CloseMin + 10)
	minute = mod1440(minute)
	if lo < hi {
		return minute >= lo && minute < hi
	}
	return minute >= lo || minute < hi
}

func mod1440(m int) int {
	return ((m % 1440) + 1440) % 1440
}

// Door returns the shop's reserved door tile. A shop's door is the building
// door it occupies; by convention it equals the building's Door coordinate.
func (s Shop) Door(b Building) Point {
	return b.Door
}
