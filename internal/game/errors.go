package game

// Each operation family has its own error type so callers can switch on the
// failures that family can actually produce. All of them are comparable
// values and work with errors.Is and errors.As.

// BetError is returned by Bet.
type BetError uint8

const (
	BetInvalidState BetError = iota + 1
	BetPlayerNotFound
	BetInsufficientFunds
	BetZero
)

func (e BetError) Error() string {
	switch e {
	case BetInvalidState:
		return "bet: not accepting bets"
	case BetPlayerNotFound:
		return "bet: player not found"
	case BetInsufficientFunds:
		return "bet: insufficient funds"
	case BetZero:
		return "bet: amount must be positive"
	default:
		return "bet: unknown error"
	}
}

// DealError is returned by Deal.
type DealError uint8

const (
	DealInvalidState DealError = iota + 1
	DealNoBets
	DealNotEnoughCards
)

func (e DealError) Error() string {
	switch e {
	case DealInvalidState:
		return "deal: not in betting state"
	case DealNoBets:
		return "deal: no bets placed"
	case DealNotEnoughCards:
		return "deal: not enough cards in shoe"
	default:
		return "deal: unknown error"
	}
}

// ActionError is returned by the player actions: Hit, Stand, DoubleDown,
// Split and Surrender.
type ActionError uint8

const (
	ActionInvalidState ActionError = iota + 1
	ActionNotYourTurn
	ActionPlayerNotFound
	ActionHandNotFound
	ActionHandNotActive
	ActionCannotDouble
	ActionCannotSplit
	ActionMaxSplitsReached
	ActionCannotSurrender
	ActionInsufficientFunds
	ActionNoCards
)

func (e ActionError) Error() string {
	switch e {
	case ActionInvalidState:
		return "action: not in player turn"
	case ActionNotYourTurn:
		return "action: not your turn"
	case ActionPlayerNotFound:
		return "action: player not found"
	case ActionHandNotFound:
		return "action: hand not found"
	case ActionHandNotActive:
		return "action: hand is not active"
	case ActionCannotDouble:
		return "action: hand cannot double down"
	case ActionCannotSplit:
		return "action: hand cannot be split"
	case ActionMaxSplitsReached:
		return "action: maximum splits reached"
	case ActionCannotSurrender:
		return "action: hand cannot surrender"
	case ActionInsufficientFunds:
		return "action: insufficient funds"
	case ActionNoCards:
		return "action: shoe is empty"
	default:
		return "action: unknown error"
	}
}

// InsuranceError is returned by the insurance operations.
type InsuranceError uint8

const (
	InsuranceInvalidState InsuranceError = iota + 1
	InsuranceNotOffered
	InsurancePlayerNotFound
	InsuranceInsufficientFunds
	InsuranceAlreadyDecided
	InsuranceNoBet
)

func (e InsuranceError) Error() string {
	switch e {
	case InsuranceInvalidState:
		return "insurance: not in insurance state"
	case InsuranceNotOffered:
		return "insurance: not offered at this table"
	case InsurancePlayerNotFound:
		return "insurance: player not found"
	case InsuranceInsufficientFunds:
		return "insurance: insufficient funds"
	case InsuranceAlreadyDecided:
		return "insurance: player already decided"
	case InsuranceNoBet:
		return "insurance: player has no bet this round"
	default:
		return "insurance: unknown error"
	}
}

// ShowdownError is returned by DealerPlay and Showdown.
type ShowdownError uint8

const (
	ShowdownInvalidState ShowdownError = iota + 1
	ShowdownNoCards
	ShowdownAlreadySettled
)

func (e ShowdownError) Error() string {
	switch e {
	case ShowdownInvalidState:
		return "showdown: invalid state"
	case ShowdownNoCards:
		return "showdown: shoe ran out while dealer was drawing"
	case ShowdownAlreadySettled:
		return "showdown: round already settled"
	default:
		return "showdown: unknown error"
	}
}

// ReshuffleError is returned by Reshuffle and CheckAndReshuffle.
type ReshuffleError uint8

const (
	ReshuffleInvalidState ReshuffleError = iota + 1
)

func (e ReshuffleError) Error() string {
	if e == ReshuffleInvalidState {
		return "reshuffle: round in progress"
	}
	return "reshuffle: unknown error"
}

// LeaveError is returned by Leave.
type LeaveError uint8

const (
	LeavePlayerNotFound LeaveError = iota + 1
	LeaveRoundInProgress
)

func (e LeaveError) Error() string {
	switch e {
	case LeavePlayerNotFound:
		return "leave: player not found"
	case LeaveRoundInProgress:
		return "leave: player is seated in a round in progress"
	default:
		return "leave: unknown error"
	}
}
