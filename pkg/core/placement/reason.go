package placement

// Reason names why an attempt was rejected. The empty Reason means the
// attempt was accepted.
type Reason string

const (
	ReasonTooLong       Reason = "too_long"
	ReasonPathExhausted Reason = "path_exhausted"
	ReasonAngleDelta    Reason = "angle_delta"
	ReasonCollision     Reason = "collision"
	ReasonOutOfBounds   Reason = "out_of_bounds"
)

// Strategy names reported with each attempt.
const (
	StrategyHorizontal = "horizontal"
	StrategyFollow     = "follow"
)
