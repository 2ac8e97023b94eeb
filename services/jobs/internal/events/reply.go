package events

import (
	"encoding/json"
	stderrors "errors"

	"jobsportal/services/jobs/internal/errors"

	"go.uber.org/zap"
)

const (
	SearchSubject  = "jobs.search"
	ListSubject    = "jobs.list"
	CompanySubject = "jobs.company"
	RangesSubject  = "jobs.ranges"

	CreateSubject = "jobs.create"
	UpdateSubject = "jobs.update"
	DeleteSubject = "jobs.delete"
)

type errorBody struct {
	Type    errors.ErrorType `json:"type"`
	Message string           `json:"message"`
}

type errorReply struct {
	Error errorBody `json:"error"`
}

// errorPayload renders err for the wire. Only the domain message leaves the
// service; wrapped causes are logged instead.
func errorPayload(err error) []byte {
	body := errorBody{Type: errors.ErrTypeInternal, Message: "internal error"}
	var de *errors.DomainError
	if stderrors.As(err, &de) {
		body = errorBody{Type: de.Type, Message: de.Message}
	}
	data, _ := json.Marshal(errorReply{Error: body})
	return data
}

func marshalReply(logger *zap.Logger, v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		logger.Error("Failed to marshal reply", zap.Error(err))
		return errorPayload(errors.Internal("marshaling reply", err))
	}
	return data
}
