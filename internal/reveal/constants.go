package reveal

// Log messages
const (
	LogMsgRevealScheduled = "Reveal scheduled"
	LogMsgRevealFired     = "Reveal fired"
	LogMsgFlushed         = "Flushed pending reveals"
)
