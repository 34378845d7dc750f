package bundle

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/evanw/esbuild/pkg/api"
	"github.com/klauspost/compress/gzip"
	"github.com/spf13/afero"
	"github.com/xunholy/bundle-advisor/pkg/errdefs"
	"github.com/xunholy/bundle-advisor/pkg/model"
)

type countingWriter struct {
	n uint64
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.n += uint64(len(p))
	return len(p), nil
}

// measure minifies every JS file with esbuild and gzips the JS and CSS payload
func (a *Analyzer) measure(files []model.FileRecord) (*model.ProbeResult, error) {
	probe := &model.ProbeResult{}
	counter := &countingWriter{}
	zw, err := gzip.NewWriterLevel(io.Discard, gzip.DefaultCompression)
	if err != nil {
		return nil, errdefs.Analysis("failed to create gzip writer", err)
	}

	for _, f := range files {
		category := Categorize(f.Extension)
		if category != CategoryJS && category != CategoryCSS {
			continue
		}

		src, err := afero.ReadFile(a.fs, f.Path)
		if err != nil {
			return nil, errdefs.Analysis(fmt.Sprintf("failed to read %s", f.Path), err).
				WithCode("probe_read_failed").WithData(f.Path)
		}

		if category == CategoryJS {
			size, ok := minifiedSize(src)
			if !ok {
				probe.MinifyFailures++
				a.logger.Debug().Str("path", f.Path).Msg("minify probe failed, counting file as-is")
			}
			probe.MinifiedJSBytes += size
		}

		zw.Reset(counter)
		if _, err := zw.Write(src); err != nil {
			return nil, errdefs.Analysis("failed to compress payload", err)
		}
		if err := zw.Close(); err != nil {
			return nil, errdefs.Analysis("failed to compress payload", err)
		}
		probe.GzipPayloadBytes += uint64(len(src))
	}
	probe.GzipCompressedBytes = counter.n

	return probe, nil
}

// minifiedSize never reports more than the original size
func minifiedSize(src []byte) (uint64, bool) {
	result := api.Transform(string(src), api.TransformOptions{
		Loader:            api.LoaderJS,
		MinifyWhitespace:  true,
		MinifyIdentifiers: true,
		MinifySyntax:      true,
	})
	if len(result.Errors) > 0 {
		return uint64(len(src)), false
	}
	if n := uint64(len(result.Code)); n < uint64(len(src)) {
		return n, true
	}
	return uint64(len(src)), true
}

func minifyRecommendation(probe *model.ProbeResult, totals model.SizeTotals) *model.SizeRecommendation {
	if probe.MinifiedJSBytes >= totals.JS {
		return nil
	}
	saved := totals.JS - probe.MinifiedJSBytes
	desc := fmt.Sprintf("Minifying the JavaScript shrinks it from %s to %s.",
		humanize.IBytes(totals.JS), humanize.IBytes(probe.MinifiedJSBytes))
	if probe.MinifyFailures > 0 {
		desc += fmt.Sprintf(" %d file(s) could not be parsed and were counted unchanged.", probe.MinifyFailures)
	}
	return &model.SizeRecommendation{
		Title:                 "Minify JavaScript",
		Description:           desc,
		PotentialSavingsBytes: &saved,
	}
}
