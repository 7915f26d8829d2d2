package schema

import "slices"

// SortByNamespace stable-sorts declarations by namespace path, comparing
// segments positionally. Order within one namespace is preserved. The input
// slice is not modified.
func SortByNamespace(decls []Declaration) []Declaration {
	out := slices.Clone(decls)
	slices.SortStableFunc(out, func(a, b Declaration) int {
		return slices.Compare(a.Info().Namespace, b.Info().Namespace)
	})
	return out
}
