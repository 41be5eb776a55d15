package models

// Change is one entity touched by a mutation.
type Change struct {
	Entity  EntityRef
	Deleted bool
}

// VisibilityTransition records an item count crossing zero in a group
// library within one mutation.
type VisibilityTransition struct {
	GroupID  int64
	FromZero bool
	ToZero   bool
}

// ChangeSet is the ordered set of entities one logical mutation touches.
// All of them get stamped with the same version. The zero value is empty
// and ready to use.
type ChangeSet struct {
	changes     []Change
	index       map[EntityRef]int
	transitions []VisibilityTransition
}

// NewChangeSet builds a change set of updated (not deleted) entities.
func NewChangeSet(refs ...EntityRef) ChangeSet {
	var cs ChangeSet
	for _, r := range refs {
		cs.Touch(r)
	}
	return cs
}

// Touch records a create or update of ref.
func (c *ChangeSet) Touch(ref EntityRef) { c.put(Change{Entity: ref}) }

// Delete records a deletion of ref.
func (c *ChangeSet) Delete(ref EntityRef) { c.put(Change{Entity: ref, Deleted: true}) }

// put keeps the first position of an entity and the last operation on it.
func (c *ChangeSet) put(ch Change) {
	if c.index == nil {
		c.index = make(map[EntityRef]int)
	}
	if i, ok := c.index[ch.Entity]; ok {
		c.changes[i] = ch
		return
	}
	c.index[ch.Entity] = len(c.changes)
	c.changes = append(c.changes, ch)
}

// Merge appends every change and transition of other.
func (c *ChangeSet) Merge(other ChangeSet) {
	for _, ch := range other.changes {
		c.put(ch)
	}
	c.transitions = append(c.transitions, other.transitions...)
}

// ItemCountChanged records the item count of a group library going from
// before to after. Only zero crossings are kept.
func (c *ChangeSet) ItemCountChanged(groupID int64, before, after int64) {
	t := VisibilityTransition{
		GroupID:  groupID,
		FromZero: before == 0 && after > 0,
		ToZero:   before > 0 && after == 0,
	}
	if t.FromZero || t.ToZero {
		c.transitions = append(c.transitions, t)
	}
}

func (c ChangeSet) Changes() []Change {
	out := make([]Change, len(c.changes))
	copy(out, c.changes)
	return out
}

func (c ChangeSet) Transitions() []VisibilityTransition {
	out := make([]VisibilityTransition, len(c.transitions))
	copy(out, c.transitions)
	return out
}

func (c ChangeSet) Len() int { return len(c.changes) }

func (c ChangeSet) Contains(ref EntityRef) bool {
	_, ok := c.index[ref]
	return ok
}
