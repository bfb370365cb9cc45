package order

import (
	"fmt"

	"labflow/internal/pkg/errs"
)

// Stage is the position of an order in the laboratory workflow.
//
// Stage transitions:
//
//	created ──> analysis ──> completed
//
// Stages only move forward, one step at a time. completed is terminal.
type Stage string

const (
	// Created is the initial stage of every order.
	Created Stage = "created"

	// Analysis means samples are being processed by the lab.
	Analysis Stage = "analysis"

	// Completed is terminal. No transition leaves it.
	Completed Stage = "completed"
)

// stageSequence is the workflow in order. AdvanceStage moves to the next element.
var stageSequence = []Stage{Created, Analysis, Completed}

// allowedStageTransitions is the adjacency table shared by explicit stage updates
// and AdvanceStage.
var allowedStageTransitions = map[Stage][]Stage{
	Created:  {Analysis},
	Analysis: {Completed},
}

// ParseStage converts an external value into a Stage.
func ParseStage(s string) (Stage, error) {
	stage := Stage(s)
	if err := stage.Validate(); err != nil {
		return "", err
	}
	return stage, nil
}

// Validate returns an error unless s is one of the workflow stages.
func (s Stage) Validate() error {
	for _, known := range stageSequence {
		if s == known {
			return nil
		}
	}
	return errs.NewValueIsInvalidErrorWithCause("stage", fmt.Errorf("%q is not a valid stage", string(s)))
}

func (s Stage) String() string {
	return string(s)
}

// CanTransitionTo reports whether the adjacency table allows s -> next.
func (s Stage) CanTransitionTo(next Stage) bool {
	for _, allowed := range allowedStageTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo validates s -> next and returns next.
//
// Returns:
//   - (next, nil) when the adjacency table allows the move
//   - ("", error) wrapping errs.ErrValueIsInvalid otherwise
func (s Stage) TransitionTo(next Stage) (Stage, error) {
	if err := next.Validate(); err != nil {
		return "", err
	}
	if !s.CanTransitionTo(next) {
		return "", errs.NewValueIsInvalidErrorWithCause(
			"stage",
			fmt.Errorf("cannot transition from %s to %s", s, next),
		)
	}
	return next, nil
}

// Next returns the stage that follows s in the workflow sequence.
// The last stage has no successor and yields an error wrapping errs.ErrValueIsInvalid.
func (s Stage) Next() (Stage, error) {
	for i, known := range stageSequence {
		if known != s {
			continue
		}
		if i+1 >= len(stageSequence) {
			return "", errs.NewValueIsInvalidErrorWithCause(
				"stage",
				fmt.Errorf("cannot advance from stage %s", s),
			)
		}
		return s.TransitionTo(stageSequence[i+1])
	}
	return "", s.Validate()
}
