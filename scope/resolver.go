package scope

import "strconv"

// Resolver hands out names that are free in the checker's scope. Names it
// has already returned count as bound.
type Resolver struct {
	checker NameConflictChecker
	claimed map[string]bool
}

func NewResolver(checker NameConflictChecker) *Resolver {
	return &Resolver{checker: checker, claimed: make(map[string]bool)}
}

// Resolve returns candidate, or candidate followed by the smallest suffix
// 1, 2, ... that is free.
func (r *Resolver) Resolve(candidate string) string {
	name := candidate
	for i := 1; r.taken(name); i++ {
		name = candidate + strconv.Itoa(i)
	}
	r.claimed[name] = true

	return name
}

func (r *Resolver) taken(name string) bool {
	return r.claimed[name] || r.checker.IsBound(name)
}
