package mqtt

// Topic constants for the sky agent surface.
//
// Context topics carry the computed ambient appearance for the styling
// layer; command topics carry inputs from collaborators (the circular
// time-picker publishes manual overrides).
const (
	// Computed sky appearance (background/text color, darkness, lux)
	TopicColorContext = "sky/context/color"

	// Moon phase, illumination and named phase bucket
	TopicMoonContext = "sky/context/moon"

	// Active day schedule after each successful refresh
	TopicScheduleContext = "sky/context/schedule"

	// Manual time override in minutes since midnight; empty payload clears
	TopicTimeOverride = "sky/command/time-override"

	// Wildcard covering every context topic, for observers
	TopicContextWildcard = "sky/context/#"
)
