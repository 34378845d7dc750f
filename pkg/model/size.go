package model

// FileRecord is one scanned file
type FileRecord struct {
	Path      string `json:"path" yaml:"path"`
	SizeBytes uint64 `json:"sizeBytes" yaml:"sizeBytes"`
	Extension string `json:"extension" yaml:"extension"`
}

// SizeTotals holds mutually exclusive categorical sums.
// JS+CSS+Image+Other always equals Total.
type SizeTotals struct {
	Total uint64 `json:"totalSize" yaml:"totalSize"`
	JS    uint64 `json:"jsSize" yaml:"jsSize"`
	CSS   uint64 `json:"cssSize" yaml:"cssSize"`
	Image uint64 `json:"imageSize" yaml:"imageSize"`
	Other uint64 `json:"otherSize" yaml:"otherSize"`
}

// SizeRecommendation is a heuristic size-reduction estimate
type SizeRecommendation struct {
	Title                 string  `json:"title" yaml:"title"`
	Description           string  `json:"description" yaml:"description"`
	PotentialSavingsBytes *uint64 `json:"potentialSavings,omitempty" yaml:"potentialSavings,omitempty"`
}

// Savings returns the estimate and whether one is present
func (r SizeRecommendation) Savings() (uint64, bool) {
	if r.PotentialSavingsBytes == nil {
		return 0, false
	}
	return *r.PotentialSavingsBytes, true
}

// ProbeResult holds measured, not estimated, figures
type ProbeResult struct {
	MinifiedJSBytes     uint64 `json:"minifiedJsBytes" yaml:"minifiedJsBytes"`
	MinifyFailures      int    `json:"minifyFailures,omitempty" yaml:"minifyFailures,omitempty"`
	GzipPayloadBytes    uint64 `json:"gzipPayloadBytes" yaml:"gzipPayloadBytes"`
	GzipCompressedBytes uint64 `json:"gzipCompressedBytes" yaml:"gzipCompressedBytes"`
}

// SizeAnalysisResult is the outcome of analyzing one directory tree
type SizeAnalysisResult struct {
	Root            string               `json:"root" yaml:"root"`
	Totals          SizeTotals           `json:"totals" yaml:"totals"`
	Files           []FileRecord         `json:"files" yaml:"files"`
	Recommendations []SizeRecommendation `json:"recommendations" yaml:"recommendations"`
	Probe           *ProbeResult         `json:"probe,omitempty" yaml:"probe,omitempty"`
}
