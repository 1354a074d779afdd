package model

import "fmt"

// FulfillmentState is the lifecycle position of one outbound request.
type FulfillmentState string

const (
	StateReceived      FulfillmentState = "received"
	StateValidated     FulfillmentState = "validated"
	StateStockReserved FulfillmentState = "stock_reserved"
	StatePacked        FulfillmentState = "packed"
	StateConfirmed     FulfillmentState = "confirmed"
	StateRejected      FulfillmentState = "rejected"
)

var stateTransitions = map[FulfillmentState][]FulfillmentState{
	StateReceived:      {StateValidated, StateRejected},
	StateValidated:     {StateStockReserved},
	StateStockReserved: {StatePacked},
	StatePacked:        {StateConfirmed},
}

// CanTransition reports whether the state may move to next.
func (s FulfillmentState) CanTransition(next FulfillmentState) bool {
	for _, allowed := range stateTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is possible.
func (s FulfillmentState) Terminal() bool {
	return len(stateTransitions[s]) == 0
}

// Transition returns next if the move is legal.
func (s FulfillmentState) Transition(next FulfillmentState) (FulfillmentState, error) {
	if !s.CanTransition(next) {
		return s, fmt.Errorf("illegal fulfillment transition %s -> %s", s, next)
	}
	return next, nil
}
