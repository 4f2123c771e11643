package checklist

// Group is one display section: the section name and its items in input order.
type Group struct {
	Section string
	Items   []Item
}

// GroupBySection partitions items by Section. Sections appear in first-seen order and
// items keep their relative input order. The input is not modified.
func GroupBySection(items []Item) []Group {
	var groups []Group
	index := make(map[string]int)
	for _, it := range items {
		i, ok := index[it.Section]
		if !ok {
			i = len(groups)
			index[it.Section] = i
			groups = append(groups, Group{Section: it.Section})
		}
		groups[i].Items = append(groups[i].Items, it)
	}
	return groups
}

// Flatten returns the items of groups in display order.
func Flatten(groups []Group) []Item {
	var out []Item
	for _, g := range groups {
		out = append(out, g.Items...)
	}
	return out
}

// DisplayOrder is Flatten(GroupBySection(items)).
// The 1-based position of an item in this slice is its display number.
func DisplayOrder(items []Item) []Item {
	return Flatten(GroupBySection(items))
}
