package error

import "fmt"

const (
	ConstErrAttackFailed    = "attack operation failed"
	ConstErrPlacementFailed = "placement operation failed"
)

func ErrGameNotExists(gameUuid string) error {
	return fmt.Errorf("game with this uuid does not exist, uuid: %s", gameUuid)
}

func ErrGameIsNil(gameUuid string) error {
	return fmt.Errorf("game with this uuid is nil, uuid: %s", gameUuid)
}

func ErrSessionNotFound(sessionId string) error {
	return fmt.Errorf("session with this id does not exist, id: %s", sessionId)
}

func ErrEmptyShipRoster() error {
	return fmt.Errorf("ship roster must contain at least one ship")
}

func ErrInvalidGridSize(size int) error {
	return fmt.Errorf("grid size must be positive and large enough for the roster, got: %d", size)
}

func ErrInvalidShipSpec(name string, width, length int) error {
	return fmt.Errorf("invalid ship dimensions for %s\twidth: %d\tlength: %d", name, width, length)
}

func ErrRowOrColOutOfGridBound(row, col int) error {
	return fmt.Errorf("incoming row or col is out of game grid bound\trow: %d\tcol: %d", row, col)
}

func ErrPositionAlreadyResolved(row, col int) error {
	return fmt.Errorf("this position already holds a hit or miss from previous rounds\trow: %d\tcol: %d", row, col)
}

func ErrInvalidPlacement(row, col int) error {
	return fmt.Errorf("ship does not fit at this position\trow: %d\tcol: %d", row, col)
}

func ErrFleetAlreadyPlaced() error {
	return fmt.Errorf("every ship of the fleet is already placed")
}

func ErrWrongPhase(expected, current string) error {
	return fmt.Errorf("operation only valid in %s phase, current phase: %s", expected, current)
}

func ErrNotYourTurn() error {
	return fmt.Errorf("it is not this side's turn to attack")
}

func ErrAttackInFlight() error {
	return fmt.Errorf("another attack is still in flight")
}

func ErrAutoPlacementExhausted(attempts int) error {
	return fmt.Errorf("could not auto-place the fleet after %d attempts", attempts)
}
