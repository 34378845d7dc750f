package bundle

import (
	"sort"

	"github.com/xunholy/bundle-advisor/pkg/model"
)

// Category is the size bucket of a file
type Category int

const (
	CategoryOther Category = iota
	CategoryJS
	CategoryCSS
	CategoryImage
)

// Categorize maps a lowercased extension to its bucket
func Categorize(ext string) Category {
	switch ext {
	case ".js", ".mjs":
		return CategoryJS
	case ".css":
		return CategoryCSS
	case ".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp":
		return CategoryImage
	default:
		return CategoryOther
	}
}

// Summarize adds every file to exactly one category
func Summarize(files []model.FileRecord) model.SizeTotals {
	var t model.SizeTotals
	for _, f := range files {
		t.Total += f.SizeBytes
		switch Categorize(f.Extension) {
		case CategoryJS:
			t.JS += f.SizeBytes
		case CategoryCSS:
			t.CSS += f.SizeBytes
		case CategoryImage:
			t.Image += f.SizeBytes
		default:
			t.Other += f.SizeBytes
		}
	}
	return t
}

// Largest returns up to n files, biggest first. Equal sizes keep scan order.
func Largest(files []model.FileRecord, n int) []model.FileRecord {
	sorted := make([]model.FileRecord, len(files))
	copy(sorted, files)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SizeBytes > sorted[j].SizeBytes
	})
	if n >= 0 && n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}
