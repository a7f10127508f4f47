package search

import "strings"

// Filterは表示用フィールドの部分一致（大文字小文字を区別しない）で絞り込む。
// 対象は多くても数百件なので毎回O(n)走査で十分。
// 空のtermは入力をそのまま返す。
func Filter[T any](items []T, term string, key func(T) string) []T {
	if strings.TrimSpace(term) == "" {
		return items
	}

	needle := strings.ToLower(term)
	out := make([]T, 0, len(items))
	for _, it := range items {
		if strings.Contains(strings.ToLower(key(it)), needle) {
			out = append(out, it)
		}
	}
	return out
}
