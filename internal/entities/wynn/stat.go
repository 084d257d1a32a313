package wynn

import "sort"

// StatRange is the rolled value of one identification: the value shown on an
// unidentified item (Raw) and the lowest and highest possible rolls.
type StatRange struct {
	Raw int `json:"raw"`
	Min int `json:"min"`
	Max int `json:"max"`
}

// NewStatRange builds a range, swapping min and max when given out of order
func NewStatRange(raw, minValue, maxValue int) StatRange {
	if minValue > maxValue {
		minValue, maxValue = maxValue, minValue
	}
	return StatRange{Raw: raw, Min: minValue, Max: maxValue}
}

// Fixed is a range whose three components are all v
func Fixed(v int) StatRange {
	return StatRange{Raw: v, Min: v, Max: v}
}

// Add sums the ranges component-wise
func (r StatRange) Add(o StatRange) StatRange {
	return StatRange{
		Raw: r.Raw + o.Raw,
		Min: r.Min + o.Min,
		Max: r.Max + o.Max,
	}
}

// Scale applies a percentage modifier to every component, truncating toward
// zero. A negative percentage flips the sign, so the scaled min becomes the
// larger magnitude; min and max are swapped to keep Min <= Max.
func (r StatRange) Scale(pct int) StatRange {
	scaled := StatRange{
		Raw: r.Raw * pct / 100,
		Min: r.Min * pct / 100,
		Max: r.Max * pct / 100,
	}
	if pct < 0 {
		scaled.Min, scaled.Max = scaled.Max, scaled.Min
	}
	return scaled
}

// IsZero reports whether every component is zero
func (r StatRange) IsZero() bool {
	return r.Raw == 0 && r.Min == 0 && r.Max == 0
}

// StatBag maps identification names to ranges. It is sparse: a name that is
// not present reads as the zero range.
type StatBag map[string]StatRange

// Get returns the range for name, or the zero range if absent
func (b StatBag) Get(name string) StatRange {
	return b[name]
}

// Add returns a new bag holding the union of both bags' keys
func (b StatBag) Add(o StatBag) StatBag {
	out := make(StatBag, len(b)+len(o))
	for k, v := range b {
		out[k] = v
	}
	for k, v := range o {
		out[k] = out[k].Add(v)
	}
	return out
}

// Scale returns a new bag with every present entry scaled by pct
func (b StatBag) Scale(pct int) StatBag {
	out := make(StatBag, len(b))
	for k, v := range b {
		out[k] = v.Scale(pct)
	}
	return out
}

// Clone returns a shallow copy; ranges are values so the copy is independent
func (b StatBag) Clone() StatBag {
	out := make(StatBag, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

// With returns a copy of the bag with name set to r
func (b StatBag) With(name string, r StatRange) StatBag {
	out := b.Clone()
	out[name] = r
	return out
}

// Names returns the present identification names in sorted order
func (b StatBag) Names() []string {
	names := make([]string, 0, len(b))
	for k := range b {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
