package storage

import "liquidityDesk/internal/model"

// Journal records executed plans.
type Journal interface {
	AppendExecution(record model.ExecutionRecord) error
}
