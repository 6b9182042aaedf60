// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// Stage names one step of the pipeline.
type Stage string

const (
	StageResolve  Stage = "resolve"
	StageProcess  Stage = "process"
	StageAssemble Stage = "assemble"
	StageCleanup  Stage = "cleanup"
)

// StageError reports which stage failed, what it was doing and, when there is
// one, the file involved.
type StageError struct {
	Stage Stage
	Op    string
	Path  string
	Err   error
}

func (e *StageError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s: %v", e.Stage, e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %s %s: %v", e.Stage, e.Op, e.Path, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
