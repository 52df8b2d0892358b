package rebalance

// AssetClass is a named category of investments with a target allocation
// fraction of the whole portfolio. Immutable after construction; lookups
// inside a group compare asset class identity, not allocation values.
type AssetClass struct {
	name   string
	target Percent
}

// NewAssetClass creates an asset class. The target allocation must be a
// fraction between 0 and 1.
func NewAssetClass(name string, target Percent) (*AssetClass, error) {
	if !target.InRange() {
		return nil, invalidConfigf("asset class %q: target allocation must be between 0 and 1", name)
	}
	return &AssetClass{name: name, target: target}, nil
}

func (a *AssetClass) Name() string              { return a.name }
func (a *AssetClass) TargetAllocation() Percent { return a.target }
func (a *AssetClass) String() string            { return a.name }

// AssetClassSplit assigns a fraction of a holding's value to one asset class.
type AssetClassSplit struct {
	Class    *AssetClass
	Fraction Percent
}

// AssetClassGroup is the ordered list of asset class splits of a single
// holding. A holding fully in one class is a group of one split at 100%.
type AssetClassGroup struct {
	splits []AssetClassSplit
}

// NewAssetClassGroup validates and creates a group. A class may not appear
// twice, every fraction must be in [0, 1], and the fractions may not sum to
// more than 1 (they may sum to less, leaving part of the holding unclassed).
func NewAssetClassGroup(splits []AssetClassSplit) (*AssetClassGroup, error) {
	var total Percent
	seen := make(map[*AssetClass]bool, len(splits))
	for _, s := range splits {
		if s.Class == nil {
			return nil, invalidConfigf("asset class split has no asset class")
		}
		if seen[s.Class] {
			return nil, invalidConfigf("duplicate asset class %q in group", s.Class.Name())
		}
		if !s.Fraction.InRange() {
			return nil, invalidConfigf("asset class %q: split percentage must be between 0 and 1", s.Class.Name())
		}
		seen[s.Class] = true
		total = total.Add(s.Fraction)
	}
	if total.GreaterThanOne() {
		return nil, invalidConfigf("asset class percentages sum to more than 100%%")
	}
	group := &AssetClassGroup{splits: make([]AssetClassSplit, len(splits))}
	copy(group.splits, splits)
	return group, nil
}

// Percentage returns the fraction of the holding assigned to the given
// class, or zero if the class is not part of the group.
func (g *AssetClassGroup) Percentage(class *AssetClass) Percent {
	for _, s := range g.splits {
		if s.Class == class {
			return s.Fraction
		}
	}
	return Percent{}
}

// Has reports whether the class is part of the group.
func (g *AssetClassGroup) Has(class *AssetClass) bool {
	for _, s := range g.splits {
		if s.Class == class {
			return true
		}
	}
	return false
}

// Splits returns the ordered splits of the group.
func (g *AssetClassGroup) Splits() []AssetClassSplit {
	out := make([]AssetClassSplit, len(g.splits))
	copy(out, g.splits)
	return out
}
