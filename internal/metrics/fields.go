package metrics

// Label keys shared by every collector.
const (
	LabelKind     = "kind"
	LabelReason   = "reason"
	LabelFrom     = "from"
	LabelTo       = "to"
	LabelScreen   = "screen"
	LabelField    = "field"
	LabelProvider = "provider"
	LabelResult   = "result"
	LabelSink     = "sink"
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
)

const namespace = "scoreboard"
