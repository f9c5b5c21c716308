package domain

// Fit controls how a design asset is mapped onto a smart object's bounds.
type Fit string

const (
	FitFill    Fit = "fill"
	FitContain Fit = "contain"
	FitCover   Fit = "cover"
)

// DefaultFit matches the remote API's documented default.
const DefaultFit = FitCover

// BlendMode names a color-overlay blending mode. Only meaningful when a
// color overlay is present; the zero value resolves to multiply when the
// overlay is serialized.
type BlendMode string

const (
	BlendNormal     BlendMode = "normal"
	BlendMultiply   BlendMode = "multiply"
	BlendScreen     BlendMode = "screen"
	BlendOverlay    BlendMode = "overlay"
	BlendDarken     BlendMode = "darken"
	BlendLighten    BlendMode = "lighten"
	BlendColorDodge BlendMode = "color-dodge"
	BlendColorBurn  BlendMode = "color-burn"
	BlendHardLight  BlendMode = "hard-light"
	BlendSoftLight  BlendMode = "soft-light"
)

// Neutral values. A field at its neutral value is never transmitted; the
// remote API treats absence as the documented default.
const (
	NeutralRotate     = 0
	NeutralBrightness = 0
	NeutralContrast   = 0
	NeutralOpacity    = 100
)

// SmartObjectEdit describes one smart object to fill during a render. Range
// constraints (rotate -360..360, brightness -150..150, contrast -100..100,
// opacity 0..100) are enforced at the parameter-collection boundary, not
// here.
type SmartObjectEdit struct {
	UUID           string
	AssetURL       string
	Fit            Fit
	Rotate         int
	ColorHex       string
	ColorBlendMode BlendMode
	Brightness     int
	Contrast       int
	Opacity        int
}

// NewSmartObjectEdit returns an edit with every adjustment at its neutral
// value.
func NewSmartObjectEdit(uuid, assetURL string) SmartObjectEdit {
	return SmartObjectEdit{
		UUID:     uuid,
		AssetURL: assetURL,
		Fit:      DefaultFit,
		Opacity:  NeutralOpacity,
	}
}

// ImageFormat is the render output encoding.
type ImageFormat string

const (
	FormatWebP ImageFormat = "webp"
	FormatPNG  ImageFormat = "png"
	FormatJPG  ImageFormat = "jpg"
)

// ExportOptions applies once per render call. Zero-valued fields are omitted
// from the outgoing request.
type ExportOptions struct {
	ImageFormat ImageFormat
	ImageSize   int
	Quality     int
	ExportLabel string
}

// IsZero reports whether no export option was set at all, in which case the
// export block is left out of the request entirely.
func (e ExportOptions) IsZero() bool {
	return e.ImageFormat == "" && e.ImageSize == 0 && e.Quality == 0 && e.ExportLabel == ""
}
