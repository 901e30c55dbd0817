package job

import (
	"time"
)

type RunningState string

const (
	Starting  RunningState = "starting"
	Running   RunningState = "running"
	Failed    RunningState = "failed"
	Succeeded RunningState = "succeeded"
)

type baseStatus struct {
	Status      RunningState `json:"status"`
	SubmittedAt time.Time    `json:"submittedAt"`
	CompletedAt *time.Time   `json:"completedAt,omitempty"`
}

func newBaseStatus() baseStatus {
	return baseStatus{
		Status:      Starting,
		SubmittedAt: time.Now(),
	}
}

func (s *baseStatus) Complete(rs RunningState) {
	now := time.Now()
	s.Status = rs
	s.CompletedAt = &now
}

// Elapsed returns the time taken from submission to completion,
// or until now if it has not completed yet.
func (s baseStatus) Elapsed() time.Duration {
	if s.CompletedAt == nil {
		return time.Since(s.SubmittedAt)
	}
	return s.CompletedAt.Sub(s.SubmittedAt)
}

// Status is a status of the job.
type Status struct {
	baseStatus
	Errors []Error `json:"errors,omitempty"`
}

func NewStatus() *Status {
	return &Status{baseStatus: newBaseStatus()}
}

// Fail completes the status as failed, recording the task caused it.
func (s *Status) Fail(caused TaskID, err error) {
	s.Errors = append(s.Errors, Error{
		Task:    caused.String(),
		Message: err.Error(),
	})
	s.Complete(Failed)
}

type Error struct {
	Task    string `json:"task"`
	Message string `json:"message"`
}
