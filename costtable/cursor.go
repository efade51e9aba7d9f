package costtable

// Cursor caches the tier of the last looked up counter.
// Tiers are consulted again only once the counter leaves the cached tier.
//
// Cursor is owned by a single caller and is not safe for concurrent use.
type Cursor struct {
	tiers Tiers
	def   uint64

	valid   bool
	cost    uint64
	start   uint64
	next    uint64
	bounded bool
}

func newCursor(tiers Tiers, def uint64) *Cursor {
	return &Cursor{tiers: tiers, def: def}
}

// Cost returns the per-unit cost for counter.
// moved is true if the tiers had to be consulted again because counter
// left the previously cached tier.
func (c *Cursor) Cost(counter uint64) (cost uint64, moved bool) {
	if c.valid && counter >= c.start && (!c.bounded || counter < c.next) {
		return c.cost, false
	}
	moved = c.valid
	c.cost, c.start, c.next, c.bounded = c.tiers.locate(c.def, counter)
	c.valid = true
	return c.cost, moved
}

// Next returns start of the tier after the cached one.
// ok is false if the cached tier is the last one or nothing was cached yet.
func (c *Cursor) Next() (next uint64, ok bool) {
	return c.next, c.valid && c.bounded
}
