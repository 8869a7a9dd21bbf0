package models

import "sort"

func nullColumns(cols map[string]bool) []string {
	var out []string
	for name, null := range cols {
		if null {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}
