package sudomock

import (
	"sudomock-connector/internal/domain"
)

// BuildRenderRequest assembles the full render body from a mockup identifier,
// the smart-object edits (order preserved, it is the remote compositing
// order), and the export options. It performs no validation; a malformed
// mockup UUID or an empty edit list is forwarded as-is and fails remotely.
func BuildRenderRequest(mockupUUID string, edits []domain.SmartObjectEdit, export domain.ExportOptions) RenderRequest {
	objects := make([]SmartObjectPayload, 0, len(edits))
	for _, edit := range edits {
		objects = append(objects, normalizeSmartObject(edit))
	}
	req := RenderRequest{
		MockupUUID:   mockupUUID,
		SmartObjects: objects,
	}
	if export.IsZero() {
		return req
	}
	req.ExportLabel = export.ExportLabel
	opts := ExportOptionsPayload{
		ImageFormat: string(export.ImageFormat),
		ImageSize:   export.ImageSize,
		Quality:     export.Quality,
	}
	// A label on its own travels at the top level without an export_options
	// block.
	if opts != (ExportOptionsPayload{}) {
		req.ExportOptions = &opts
	}
	return req
}

// normalizeSmartObject converts one edit into the API's nested shape. Every
// field at its neutral value is dropped: the remote API treats absence as the
// documented default, and an explicit zero is not the same instruction.
func normalizeSmartObject(edit domain.SmartObjectEdit) SmartObjectPayload {
	fit := edit.Fit
	if fit == "" {
		fit = domain.DefaultFit
	}
	payload := SmartObjectPayload{
		UUID: edit.UUID,
		Asset: AssetPayload{
			URL:    edit.AssetURL,
			Fit:    string(fit),
			Rotate: nonNeutral(edit.Rotate, domain.NeutralRotate),
		},
	}
	if edit.ColorHex != "" {
		mode := edit.ColorBlendMode
		if mode == "" {
			mode = domain.BlendMultiply
		}
		payload.Color = &ColorPayload{Hex: edit.ColorHex, BlendingMode: string(mode)}
	}
	layers := AdjustmentLayers{
		Brightness: nonNeutral(edit.Brightness, domain.NeutralBrightness),
		Contrast:   nonNeutral(edit.Contrast, domain.NeutralContrast),
		Opacity:    nonNeutral(edit.Opacity, domain.NeutralOpacity),
	}
	if layers != (AdjustmentLayers{}) {
		payload.AdjustmentLayers = &layers
	}
	return payload
}

// nonNeutral returns a pointer to value unless it equals neutral, in which
// case the field stays off the wire.
func nonNeutral(value, neutral int) *int {
	if value == neutral {
		return nil
	}
	v := value
	return &v
}
