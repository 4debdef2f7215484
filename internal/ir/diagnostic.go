package ir

// Diagnostic codes for recoverable degradations. Parsing and
// classification never abort on a single malformed construct; they
// degrade to the nearest safe default, record one of these, and keep
// producing blocks. Fatal conditions (unreadable source, unsupported
// input shape, writer rejection) are returned as errors instead.
const (
	DiagMalformedEnvironment    = "malformed_environment"
	DiagAmbiguousClassification = "ambiguous_classification"
	DiagAssetUnavailable        = "asset_unavailable"
)

// Diagnostic is one recorded degradation, attached to the document.
type Diagnostic struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Span    Span   `json:"span"`
}
