package service

import (
	"errors"

	"hcp-crm-be/internal/pkg/serverutils"
	"hcp-crm-be/pkg/agent"
)

var (
	ErrEmptyMessage        = errors.New("message is required")
	ErrHCPRequired         = errors.New("hcp is required")
	ErrHCPNotFound         = errors.New("hcp not found")
	ErrNoInteractions      = errors.New("no interactions for hcp")
	ErrInteractionNotFound = errors.New("interaction not found")
	ErrInvalidSessionID    = errors.New("invalid session id")
	ErrModelUnavailable    = errors.New("model unavailable")
)

const (
	msgEditHCPNotFound  = "HCP not found for edit. Please mention the HCP name."
	msgNoInteractions   = "No interactions found for this HCP to edit."
	msgHCPNotFound      = "HCP not found"
	msgModelUnavailable = "The assistant model is unavailable, please retry."
)

// EditFailureMessage returns the user-facing explanation for an EditLatest
// failure. ok is false for errors the user cannot act on.
func EditFailureMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, ErrHCPNotFound):
		return msgEditHCPNotFound, true
	case errors.Is(err, ErrNoInteractions):
		return msgNoInteractions, true
	default:
		return "", false
	}
}

// ToAppError maps service sentinels onto HTTP errors. Unknown errors pass
// through and become a 500 in the error middleware.
func ToAppError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := serverutils.AsAppError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, ErrEmptyMessage):
		return serverutils.NewBadRequest("message is required")
	case errors.Is(err, ErrHCPRequired):
		return serverutils.NewBadRequest(agent.MsgLogNeedsHCP)
	case errors.Is(err, ErrInvalidSessionID):
		return serverutils.NewBadRequest("session_id must be a valid UUID")
	case errors.Is(err, ErrHCPNotFound):
		return serverutils.NewNotFound(msgHCPNotFound)
	case errors.Is(err, ErrNoInteractions):
		return serverutils.NewBadRequest(msgNoInteractions)
	case errors.Is(err, ErrInteractionNotFound):
		return serverutils.NewNotFound("Interaction not found")
	case errors.Is(err, ErrModelUnavailable):
		return serverutils.NewBadGateway(msgModelUnavailable, err)
	default:
		return err
	}
}
