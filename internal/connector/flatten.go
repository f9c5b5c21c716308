package connector

import (
	"sudomock-connector/internal/providers/sudomock"
)

// FlattenRender surfaces the rendered image URLs at the top level of a
// render reply so downstream steps can pick them up without digging into
// print_files. The copy is shallow and purely additive: the original nested
// structure stays intact for callers that need the per-smart-object mapping,
// and a reply with zero print files passes through unchanged.
func FlattenRender(result *sudomock.RenderResult) map[string]any {
	out := make(map[string]any, len(result.Raw)+2)
	for key, value := range result.Raw {
		out[key] = value
	}
	files := result.Response.PrintFiles()
	if len(files) == 0 {
		return out
	}
	urls := make([]string, 0, len(files))
	for _, file := range files {
		urls = append(urls, file.ExportPath)
	}
	out["renderedImageUrl"] = urls[0]
	out["allRenderedUrls"] = urls
	return out
}
