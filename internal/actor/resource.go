package actor

// Resource is a non-negative counter with an optional ceiling.
// Invariant: 0 <= cur, and cur <= max when capped.
type Resource struct {
	cur    int
	max    int
	capped bool
}

// NewCapped returns a resource clamped to max. cur is clamped into [0, max].
func NewCapped(cur, max int) Resource {
	if max < 0 {
		max = 0
	}
	r := Resource{max: max, capped: true}
	r.cur = clamp(cur, 0, max)
	return r
}

// NewUncapped returns a resource with no ceiling, used for shields.
func NewUncapped(cur int) Resource {
	if cur < 0 {
		cur = 0
	}
	return Resource{cur: cur}
}

// Current returns the current value.
func (r *Resource) Current() int { return r.cur }

// Max returns the ceiling, or 0 for uncapped resources.
func (r *Resource) Max() int { return r.max }

// Capped reports whether the resource has a ceiling.
func (r *Resource) Capped() bool { return r.capped }

// Add raises the value by n, clamped to max, and returns the delta applied.
func (r *Resource) Add(n int) int {
	if n <= 0 {
		return 0
	}
	next := r.cur + n
	if r.capped && next > r.max {
		next = r.max
	}
	delta := next - r.cur
	r.cur = next
	return delta
}

// Cut lowers the value by n, clamped at 0, and returns the amount removed.
func (r *Resource) Cut(n int) int {
	if n <= 0 {
		return 0
	}
	if n > r.cur {
		n = r.cur
	}
	r.cur -= n
	return n
}

// Use subtracts n only when the full amount is available.
func (r *Resource) Use(n int) bool {
	if n < 0 || r.cur < n {
		return false
	}
	r.cur -= n
	return true
}

// Clear resets the value to 0.
func (r *Resource) Clear() { r.cur = 0 }

// Fill raises the value to its ceiling. Uncapped resources are unchanged.
func (r *Resource) Fill() int {
	if !r.capped {
		return 0
	}
	return r.Add(r.max - r.cur)
}

// Optional is a resource an actor may not have at all. An absent resource
// reads as 0 and every mutation is a no-op.
type Optional struct {
	r *Resource
}

// Some wraps a present resource.
func Some(r Resource) Optional { return Optional{r: &r} }

// Absent returns an optional with no resource behind it.
func Absent() Optional { return Optional{} }

// Present reports whether the resource exists.
func (o Optional) Present() bool { return o.r != nil }

// Current returns the value, 0 when absent.
func (o Optional) Current() int {
	if o.r == nil {
		return 0
	}
	return o.r.Current()
}

// Max returns the cap, 0 when absent.
func (o Optional) Max() int {
	if o.r == nil {
		return 0
	}
	return o.r.Max()
}

// Add adds n and returns the change, 0 when absent.
func (o Optional) Add(n int) int {
	if o.r == nil {
		return 0
	}
	return o.r.Add(n)
}

// Cut removes up to n and returns the amount removed, 0 when absent.
func (o Optional) Cut(n int) int {
	if o.r == nil {
		return 0
	}
	return o.r.Cut(n)
}

// Use spends n if all of it is available. An absent resource never pays.
func (o Optional) Use(n int) bool {
	if o.r == nil {
		return false
	}
	return o.r.Use(n)
}

// Clear empties the resource.
func (o Optional) Clear() {
	if o.r != nil {
		o.r.Clear()
	}
}

// Fill restores the resource to its cap and returns the change.
func (o Optional) Fill() int {
	if o.r == nil {
		return 0
	}
	return o.r.Fill()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
