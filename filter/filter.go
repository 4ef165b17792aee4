// Package filter selects pets and orders with expr-lang expressions.
//
// Expressions see the fields of one item as variables and must evaluate to a
// boolean, for example:
//
//	Status == "available" and hasTag("friendly")
//	Quantity > 1 and shippedAfter("2024-01-01")
package filter

// Select returns the items matching f, keeping their order. Evaluation stops
// at the first item that fails to evaluate.
func Select[T any](f CompiledFilter[T], items []T) ([]T, error) {
	matched := make([]T, 0, len(items))
	for _, item := range items {
		ok, err := f.Match(item)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, item)
		}
	}
	return matched, nil
}
