package engine

// LoadStatus describes where a page load currently stands. The
// success/warn split is decided above the engine layer, which only
// reports loading state and outcome.
type LoadStatus int

const (
	// LoadStatusNone means no load has happened in this view yet.
	LoadStatusNone LoadStatus = iota
	// LoadStatusLoading means a load is in flight.
	LoadStatusLoading
	// LoadStatusSuccess means the load finished over an insecure origin.
	LoadStatusSuccess
	// LoadStatusSuccessHTTPS means the load finished over a clean HTTPS origin.
	LoadStatusSuccessHTTPS
	// LoadStatusWarn means the load finished but the origin had certificate trouble.
	LoadStatusWarn
	// LoadStatusError means the load failed.
	LoadStatusError
)

func (s LoadStatus) String() string {
	switch s {
	case LoadStatusNone:
		return "none"
	case LoadStatusLoading:
		return "loading"
	case LoadStatusSuccess:
		return "success"
	case LoadStatusSuccessHTTPS:
		return "success_https"
	case LoadStatusWarn:
		return "warn"
	case LoadStatusError:
		return "error"
	default:
		return "unknown"
	}
}

// TerminationStatus classifies how a renderer process ended.
type TerminationStatus int

const (
	TerminationUnknown  TerminationStatus = -1
	TerminationNormal   TerminationStatus = 0
	TerminationAbnormal TerminationStatus = 1
	TerminationCrashed  TerminationStatus = 2
	TerminationKilled   TerminationStatus = 3
)

func (s TerminationStatus) String() string {
	switch s {
	case TerminationNormal:
		return "normal"
	case TerminationAbnormal:
		return "abnormal"
	case TerminationCrashed:
		return "crashed"
	case TerminationKilled:
		return "killed"
	default:
		return "unknown"
	}
}

// Termination is the payload of the RendererTerminated event.
type Termination struct {
	Status TerminationStatus
	// Code is the process exit code, 0 when the backend does not report one.
	Code int
}

// NavEntry is one entry of a view's session history.
type NavEntry struct {
	// URL is the entry's current URL, after redirects.
	URL string
	// OriginalURL is the URL as requested, before redirects.
	OriginalURL string
	Title       string
}

// FindFlags modifies how a page search runs.
type FindFlags struct {
	CaseSensitive bool
	Backward      bool
	WrapAround    bool
}

// FindResult reports the outcome of a find operation. Current and Total
// stay zero on backends that cannot count matches.
type FindResult struct {
	Found   bool
	Current int
	Total   int
}

// World selects the JavaScript execution context for injected scripts.
// Backends without world isolation run everything in WorldMain.
type World int

const (
	// WorldMain is the page's own JavaScript context.
	WorldMain World = iota
	// WorldApp is an isolated context for internal scripts.
	WorldApp
	// WorldUser is an isolated context for user scripts.
	WorldUser
)

// Point is a pixel position in page coordinates.
type Point struct {
	X int
	Y int
}

// Rect is an element's geometry in page coordinates.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ElementData is the serialized snapshot of a DOM element exchanged
// between engine-side code and the element API. Snapshots go stale as
// the page mutates; the ID ties follow-up operations back to the live
// node on backends that keep one.
type ElementData struct {
	ID         uint64            `json:"id"`
	Tag        string            `json:"tag"`
	Text       string            `json:"text,omitempty"`
	Value      string            `json:"value,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Rects      []Rect            `json:"rects,omitempty"`
	Visible    bool              `json:"visible"`
}

// PercKeep passed as an axis of ScrollToPerc leaves that axis alone.
const PercKeep = -1
