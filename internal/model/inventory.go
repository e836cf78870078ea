package model

// DefaultInventoryCapacity is the number of loot items a player keeps.
const DefaultInventoryCapacity = 24

// Inventory holds loot items most-recent-first. When full, adding an item
// evicts the oldest one.
//
// Inventory is owned by a single session and is not safe for concurrent use.
type Inventory struct {
	items    []LootItem
	capacity int
}

// NewInventory creates an inventory with the given capacity.
// A non-positive capacity falls back to DefaultInventoryCapacity.
func NewInventory(capacity int) *Inventory {
	if capacity <= 0 {
		capacity = DefaultInventoryCapacity
	}
	return &Inventory{
		items:    make([]LootItem, 0, capacity),
		capacity: capacity,
	}
}

// Add puts item at the front. Returns the evicted item, if any.
func (inv *Inventory) Add(item LootItem) (evicted LootItem, ok bool) {
	if len(inv.items) == inv.capacity {
		evicted, ok = inv.items[len(inv.items)-1], true
		inv.items = inv.items[:len(inv.items)-1]
	}
	inv.items = append(inv.items, LootItem{})
	copy(inv.items[1:], inv.items)
	inv.items[0] = item
	return evicted, ok
}

// Items returns a copy of the items, most recent first.
func (inv *Inventory) Items() []LootItem {
	out := make([]LootItem, len(inv.items))
	copy(out, inv.items)
	return out
}

// Latest returns the most recently added item.
func (inv *Inventory) Latest() (LootItem, bool) {
	if len(inv.items) == 0 {
		return LootItem{}, false
	}
	return inv.items[0], true
}

// Count returns the number of items held.
func (inv *Inventory) Count() int {
	return len(inv.items)
}

// Capacity returns the maximum number of items held.
func (inv *Inventory) Capacity() int {
	return inv.capacity
}
