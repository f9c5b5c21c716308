package connector

import (
	"fmt"
	"math"

	"sudomock-connector/internal/domain"
)

// Item is one generic input item of a run. Operation parameters are read
// from it by name and parsed once into a typed struct per operation.
type Item map[string]any

// ParamError reports an invalid or missing parameter on an input item. It is
// raised before any request leaves the process, so callers can treat it as a
// caller mistake rather than a remote failure.
type ParamError struct {
	Message string
}

func (e *ParamError) Error() string { return e.Message }

func paramErrorf(format string, args ...any) error {
	return &ParamError{Message: fmt.Sprintf(format, args...)}
}

// UploadParams configures one uploadTemplate call.
type UploadParams struct {
	PsdFileURL string
	PsdName    string
}

// RenderParams configures one render call.
type RenderParams struct {
	MockupUUID   string
	SmartObjects []domain.SmartObjectEdit
	Export       domain.ExportOptions
}

// ListParams configures one listTemplates pagination loop.
type ListParams struct {
	ReturnAll     bool
	Limit         int
	Name          string
	CreatedAfter  string
	CreatedBefore string
	Sort          string
	Order         string
}

// TemplateParams identifies a template for get and delete calls.
type TemplateParams struct {
	MockupUUID string
}

// UpdateParams configures one updateTemplate call.
type UpdateParams struct {
	MockupUUID string
	NewName    string
}

func parseUploadParams(item Item) (UploadParams, error) {
	fileURL, err := stringParam(item, "psdFileUrl", true)
	if err != nil {
		return UploadParams{}, err
	}
	name, _ := stringParam(item, "psdName", false)
	return UploadParams{PsdFileURL: fileURL, PsdName: name}, nil
}

func parseRenderParams(item Item) (RenderParams, error) {
	mockupUUID, err := stringParam(item, "mockupUuid", true)
	if err != nil {
		return RenderParams{}, err
	}
	params := RenderParams{MockupUUID: mockupUUID}

	rawObjects, _ := item["smartObjects"].([]any)
	for i, rawObject := range rawObjects {
		entry, ok := rawObject.(map[string]any)
		if !ok {
			return RenderParams{}, paramErrorf("smartObjects[%d] must be an object", i)
		}
		edit, err := parseSmartObject(Item(entry))
		if err != nil {
			return RenderParams{}, fmt.Errorf("smartObjects[%d]: %w", i, err)
		}
		params.SmartObjects = append(params.SmartObjects, edit)
	}

	if rawExport, ok := item["exportOptions"].(map[string]any); ok {
		export := Item(rawExport)
		format, _ := stringParam(export, "imageFormat", false)
		size, err := intParam(export, "imageSize", 0)
		if err != nil {
			return RenderParams{}, err
		}
		quality, err := intParam(export, "quality", 0)
		if err != nil {
			return RenderParams{}, err
		}
		label, _ := stringParam(export, "exportLabel", false)
		params.Export = domain.ExportOptions{
			ImageFormat: domain.ImageFormat(format),
			ImageSize:   size,
			Quality:     quality,
			ExportLabel: label,
		}
	}
	return params, nil
}

func parseSmartObject(entry Item) (domain.SmartObjectEdit, error) {
	uuid, err := stringParam(entry, "uuid", true)
	if err != nil {
		return domain.SmartObjectEdit{}, err
	}
	assetURL, err := stringParam(entry, "assetUrl", true)
	if err != nil {
		return domain.SmartObjectEdit{}, err
	}
	edit := domain.NewSmartObjectEdit(uuid, assetURL)
	if fit, _ := stringParam(entry, "fit", false); fit != "" {
		edit.Fit = domain.Fit(fit)
	}
	if edit.Rotate, err = intParam(entry, "rotate", domain.NeutralRotate); err != nil {
		return domain.SmartObjectEdit{}, err
	}
	edit.ColorHex, _ = stringParam(entry, "colorHex", false)
	if mode, _ := stringParam(entry, "colorBlendMode", false); mode != "" {
		edit.ColorBlendMode = domain.BlendMode(mode)
	}
	if edit.Brightness, err = intParam(entry, "brightness", domain.NeutralBrightness); err != nil {
		return domain.SmartObjectEdit{}, err
	}
	if edit.Contrast, err = intParam(entry, "contrast", domain.NeutralContrast); err != nil {
		return domain.SmartObjectEdit{}, err
	}
	if edit.Opacity, err = intParam(entry, "opacity", domain.NeutralOpacity); err != nil {
		return domain.SmartObjectEdit{}, err
	}
	return edit, nil
}

func parseListParams(item Item) (ListParams, error) {
	returnAll, err := boolParam(item, "returnAll")
	if err != nil {
		return ListParams{}, err
	}
	limit, err := intParam(item, "limit", 20)
	if err != nil {
		return ListParams{}, err
	}
	params := ListParams{ReturnAll: returnAll, Limit: limit}
	params.Name, _ = stringParam(item, "name", false)
	params.CreatedAfter, _ = stringParam(item, "createdAfter", false)
	params.CreatedBefore, _ = stringParam(item, "createdBefore", false)
	params.Sort, _ = stringParam(item, "sort", false)
	params.Order, _ = stringParam(item, "order", false)
	return params, nil
}

func parseTemplateParams(item Item) (TemplateParams, error) {
	uuid, err := stringParam(item, "mockupUuid", true)
	if err != nil {
		return TemplateParams{}, err
	}
	return TemplateParams{MockupUUID: uuid}, nil
}

func parseUpdateParams(item Item) (UpdateParams, error) {
	uuid, err := stringParam(item, "mockupUuid", true)
	if err != nil {
		return UpdateParams{}, err
	}
	name, err := stringParam(item, "newName", true)
	if err != nil {
		return UpdateParams{}, err
	}
	return UpdateParams{MockupUUID: uuid, NewName: name}, nil
}

func stringParam(item Item, name string, required bool) (string, error) {
	value, exists := item[name]
	if !exists {
		if required {
			return "", paramErrorf("missing required parameter: %s", name)
		}
		return "", nil
	}
	str, ok := value.(string)
	if !ok {
		return "", paramErrorf("parameter %s must be a string", name)
	}
	if required && str == "" {
		return "", paramErrorf("missing required parameter: %s", name)
	}
	return str, nil
}

// intParam reads an integer parameter, accepting the float64 that generic
// JSON decoding produces as long as it carries no fractional part.
func intParam(item Item, name string, fallback int) (int, error) {
	value, exists := item[name]
	if !exists {
		return fallback, nil
	}
	switch v := value.(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, paramErrorf("parameter %s must be an integer", name)
		}
		return int(v), nil
	case int:
		return v, nil
	default:
		return 0, paramErrorf("parameter %s must be an integer", name)
	}
}

func boolParam(item Item, name string) (bool, error) {
	value, exists := item[name]
	if !exists {
		return false, nil
	}
	b, ok := value.(bool)
	if !ok {
		return false, paramErrorf("parameter %s must be a boolean", name)
	}
	return b, nil
}
