package catalog

// DeletePolicy decides what happens to a delete request when dependents
// exist. The default is to block; force authorizes the level's cascade or
// orphan behavior.
type DeletePolicy string

const (
	// PolicyBlock refuses the delete while dependents exist.
	PolicyBlock DeletePolicy = "block"

	// PolicyForce authorizes cascade deletion (courses, modules) or
	// orphaning (categories). Lessons never honor force.
	PolicyForce DeletePolicy = "force"
)

// PolicyFromFlag maps the caller's boolean cascade/force query flag onto a
// policy.
func PolicyFromFlag(force bool) DeletePolicy {
	if force {
		return PolicyForce
	}
	return PolicyBlock
}

// DependentCounts maps a dependent kind ("course", "module", "lesson",
// "progress", "favorite") to the number of direct dependents.
type DependentCounts map[string]int

// Total sums all dependent counts.
func (c DependentCounts) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}
