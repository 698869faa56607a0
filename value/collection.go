package value

import "slices"

// SetAdd adds v to a SetType node unless an equal element is present and
// returns y.
func (y *Node) SetAdd(v *Node) *Node {
	if !y.SetHas(v) {
		y.Values = append(y.Values, v)
	}
	return y
}

func (y *Node) SetHas(v *Node) bool {
	return slices.IndexFunc(y.Values, func(e *Node) bool { return Compare(e, v) == 0 }) != -1
}

// SetDelete removes the element equal to v, reporting whether it was present.
func (y *Node) SetDelete(v *Node) bool {
	i := slices.IndexFunc(y.Values, func(e *Node) bool { return Compare(e, v) == 0 })
	if i == -1 {
		return false
	}
	y.Values = slices.Delete(y.Values, i, i+1)
	return true
}

// MapGet returns the value stored under key in an object or map.
func (y *Node) MapGet(key *Node) *Node {
	i := y.FieldIndex(key)
	if i == -1 {
		return nil
	}
	return y.Values[i]
}

// MapSet stores v under key, keeping the position of an existing entry,
// and returns y.
func (y *Node) MapSet(key, v *Node) *Node {
	if i := y.FieldIndex(key); i != -1 {
		y.Values[i] = v
		return y
	}
	y.Fields = append(y.Fields, key)
	y.Values = append(y.Values, v)
	return y
}

// MapDelete removes the entry for key, reporting whether it was present.
func (y *Node) MapDelete(key *Node) bool {
	i := y.FieldIndex(key)
	if i == -1 {
		return false
	}
	y.Fields = slices.Delete(y.Fields, i, i+1)
	y.Values = slices.Delete(y.Values, i, i+1)
	return true
}

// Clear empties any container.
func (y *Node) Clear() {
	if y.Fields != nil {
		y.Fields = y.Fields[:0:0]
	}
	y.Values = y.Values[:0:0]
}
