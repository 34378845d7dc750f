package bundle

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/xunholy/bundle-advisor/pkg/model"
)

// percent of size, rounded down
func percent(size, pct uint64) *uint64 {
	v := size * pct / 100
	return &v
}

func relative(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

// recommend evaluates the battery in its fixed order
func recommend(root string, files []model.FileRecord, totals model.SizeTotals, t Thresholds) []model.SizeRecommendation {
	recs := []model.SizeRecommendation{}

	if totals.JS > t.JS {
		largest := largestJS(files)
		recs = append(recs,
			model.SizeRecommendation{
				Title: "Code Splitting",
				Description: fmt.Sprintf("JavaScript totals %s. Split %s (%s) into smaller chunks loaded on demand.",
					humanize.IBytes(totals.JS), relative(root, largest.Path), humanize.IBytes(largest.SizeBytes)),
				PotentialSavingsBytes: percent(largest.SizeBytes, 30),
			},
			model.SizeRecommendation{
				Title:                 "Tree Shaking",
				Description:           "Remove unused exports from the JavaScript bundles with ES module imports and sideEffects hints.",
				PotentialSavingsBytes: percent(totals.JS, 15),
			},
		)
	}

	if totals.CSS > t.CSS {
		recs = append(recs, model.SizeRecommendation{
			Title:                 "Remove Unused CSS",
			Description:           fmt.Sprintf("Stylesheets total %s. Purge selectors that no template uses.", humanize.IBytes(totals.CSS)),
			PotentialSavingsBytes: percent(totals.CSS, 40),
		})
	}

	if totals.Image > t.Image {
		recs = append(recs, model.SizeRecommendation{
			Title:                 "Optimize Images",
			Description:           fmt.Sprintf("Images total %s. Compress them and serve modern formats such as WebP or AVIF.", humanize.IBytes(totals.Image)),
			PotentialSavingsBytes: percent(totals.Image, 50),
		})
	}

	if vendor := vendorJS(root, files); vendor > t.Vendor {
		recs = append(recs, model.SizeRecommendation{
			Title:                 "Review Vendor Dependencies",
			Description:           fmt.Sprintf("Vendor chunks total %s. Replace heavy libraries or import only the parts in use.", humanize.IBytes(vendor)),
			PotentialSavingsBytes: percent(vendor, 25),
		})
	}

	if dups := duplicateNames(files); len(dups) > 0 {
		recs = append(recs, model.SizeRecommendation{
			Title:       "Duplicate Resources",
			Description: fmt.Sprintf("Files with the same name appear more than once: %s.", strings.Join(dups, ", ")),
		})
	}

	recs = append(recs, model.SizeRecommendation{
		Title:                 "Enable Compression",
		Description:           "Serve text assets with gzip or brotli compression.",
		PotentialSavingsBytes: percent(totals.Total, 60),
	})

	if hasSourceMaps(files) {
		recs = append(recs, model.SizeRecommendation{
			Title:       "Source Maps in Production",
			Description: "Source map files are part of the output. Upload them to your error tracker instead of deploying them.",
		})
	}

	return recs
}

// largestJS returns the first JS file of maximal size
func largestJS(files []model.FileRecord) model.FileRecord {
	var largest model.FileRecord
	for _, f := range files {
		if Categorize(f.Extension) == CategoryJS && f.SizeBytes > largest.SizeBytes {
			largest = f
		}
	}
	return largest
}

func vendorJS(root string, files []model.FileRecord) uint64 {
	var sum uint64
	for _, f := range files {
		if Categorize(f.Extension) != CategoryJS {
			continue
		}
		rel := strings.ToLower(relative(root, f.Path))
		if strings.Contains(rel, "vendor") || strings.Contains(rel, "chunk-vendors") {
			sum += f.SizeBytes
		}
	}
	return sum
}

func duplicateNames(files []model.FileRecord) []string {
	seen := make(map[string]int, len(files))
	for _, f := range files {
		seen[filepath.Base(f.Path)]++
	}
	var dups []string
	for name, n := range seen {
		if n > 1 {
			dups = append(dups, name)
		}
	}
	sort.Strings(dups)
	return dups
}

func hasSourceMaps(files []model.FileRecord) bool {
	for _, f := range files {
		if f.Extension == ".map" {
			return true
		}
	}
	return false
}
