package app

import (
	"context"

	"github.com/iov-one/swapvault"
	"github.com/iov-one/swapvault/errors"
	amino "github.com/tendermint/go-amino"
)

// Scenario is a list of transactions executed one after another.
//
// Scenarios are read with the amino JSON codec: messages are written as
// {"type": "vault/redeem", "value": {...}} and 64 bit integers as strings.
type Scenario struct {
	Steps []Step `json:"steps"`
}

// Step is a single transaction of a scenario. The called contract is
// referenced by its name.
type Step struct {
	Source   swapvault.Address  `json:"source"`
	Sender   swapvault.Address  `json:"sender,omitempty"`
	Contract string             `json:"contract"`
	Amount   uint64             `json:"amount"`
	Time     swapvault.UnixTime `json:"time"`
	Msg      swapvault.Msg      `json:"msg"`
	// Fails is set when the step is expected to be rejected.
	Fails bool `json:"fails,omitempty"`
}

// StepResult is the outcome of a step.
type StepResult struct {
	Receipt *Receipt
	Err     error
}

// LoadScenario decodes a scenario.
func LoadScenario(cdc *amino.Codec, raw []byte) (*Scenario, error) {
	var s Scenario
	if err := cdc.UnmarshalJSON(raw, &s); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "decode scenario: %s", err)
	}
	return &s, nil
}

// Run executes all steps in order. It stops at the first step whose outcome
// is not the expected one.
func (l *Ledger) Run(ctx context.Context, s *Scenario) ([]StepResult, error) {
	results := make([]StepResult, 0, len(s.Steps))
	for i, step := range s.Steps {
		c, err := l.Lookup(step.Contract)
		if err != nil {
			return results, errors.Wrapf(err, "step %d", i)
		}
		receipt, err := l.Execute(ctx, Tx{
			Source:      step.Source,
			Sender:      step.Sender,
			Destination: c.Address,
			Amount:      step.Amount,
			Msg:         step.Msg,
			Time:        step.Time,
		})
		results = append(results, StepResult{Receipt: receipt, Err: err})

		switch {
		case err != nil && !step.Fails:
			return results, errors.Wrapf(err, "step %d", i)
		case err == nil && step.Fails:
			return results, errors.Wrapf(errors.ErrPrecondition, "step %d: expected failure", i)
		}
	}
	return results, nil
}
