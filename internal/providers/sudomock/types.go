package sudomock

import (
	"net/url"
	"strconv"
	"strings"
)

// RenderRequest is the wire body for POST /api/v1/renders. It is built fresh
// per call and never persisted.
type RenderRequest struct {
	MockupUUID    string                `json:"mockup_uuid"`
	SmartObjects  []SmartObjectPayload  `json:"smart_objects"`
	ExportOptions *ExportOptionsPayload `json:"export_options,omitempty"`
	ExportLabel   string                `json:"export_label,omitempty"`
}

// SmartObjectPayload is the API shape of one smart-object edit. Optional
// blocks are pointers so that absence, not a zero value, goes on the wire.
type SmartObjectPayload struct {
	UUID             string            `json:"uuid"`
	Asset            AssetPayload      `json:"asset"`
	Color            *ColorPayload     `json:"color,omitempty"`
	AdjustmentLayers *AdjustmentLayers `json:"adjustment_layers,omitempty"`
}

// AssetPayload places a design asset into the smart object's bounds.
type AssetPayload struct {
	URL    string `json:"url"`
	Fit    string `json:"fit"`
	Rotate *int   `json:"rotate,omitempty"`
}

// ColorPayload is the color-overlay block, emitted only when a hex color was
// supplied.
type ColorPayload struct {
	Hex          string `json:"hex"`
	BlendingMode string `json:"blending_mode"`
}

// AdjustmentLayers carries only the adjustments that differ from their
// neutral values.
type AdjustmentLayers struct {
	Brightness *int `json:"brightness,omitempty"`
	Contrast   *int `json:"contrast,omitempty"`
	Opacity    *int `json:"opacity,omitempty"`
}

// ExportOptionsPayload is the optional export block of a render request.
type ExportOptionsPayload struct {
	ImageFormat string `json:"image_format,omitempty"`
	ImageSize   int    `json:"image_size,omitempty"`
	Quality     int    `json:"quality,omitempty"`
}

// RenderResponse is the typed view of a render reply.
type RenderResponse struct {
	Success bool        `json:"success"`
	Data    *RenderData `json:"data"`
}

// RenderData holds the produced print files in the order the service
// rendered them.
type RenderData struct {
	PrintFiles []PrintFile `json:"print_files"`
}

// PrintFile is one rendered output image.
type PrintFile struct {
	ExportPath      string `json:"export_path"`
	SmartObjectUUID string `json:"smart_object_uuid"`
}

// PrintFiles returns the produced files, tolerating a missing data block.
func (r RenderResponse) PrintFiles() []PrintFile {
	if r.Data == nil {
		return nil
	}
	return r.Data.PrintFiles
}

// RenderResult pairs the raw decoded reply (passed through to the caller
// unchanged) with its typed view used for flattening.
type RenderResult struct {
	Raw      map[string]any
	Response RenderResponse
}

// ListQuery is one page request against GET /api/v1/mockups. Filters are
// sent only when set.
type ListQuery struct {
	Limit         int
	Offset        int
	Name          string
	CreatedAfter  string
	CreatedBefore string
	Sort          string
	Order         string
}

func (q ListQuery) values() url.Values {
	values := url.Values{}
	values.Set("limit", strconv.Itoa(q.Limit))
	values.Set("offset", strconv.Itoa(q.Offset))
	if v := strings.TrimSpace(q.Name); v != "" {
		values.Set("name", v)
	}
	if v := strings.TrimSpace(q.CreatedAfter); v != "" {
		values.Set("created_after", v)
	}
	if v := strings.TrimSpace(q.CreatedBefore); v != "" {
		values.Set("created_before", v)
	}
	if v := strings.TrimSpace(q.Sort); v != "" {
		values.Set("sort", v)
	}
	if v := strings.TrimSpace(q.Order); v != "" {
		values.Set("order", v)
	}
	return values
}

// MockupPage is one page of the template listing. Records stay generic maps
// so unknown fields survive the round trip to the caller.
type MockupPage struct {
	Mockups []map[string]any
}

type listResponse struct {
	Data struct {
		Mockups []map[string]any `json:"mockups"`
	} `json:"data"`
}

type uploadRequest struct {
	PsdFileURL string `json:"psd_file_url"`
	PsdName    string `json:"psd_name,omitempty"`
}

type updateRequest struct {
	Name string `json:"name"`
}
