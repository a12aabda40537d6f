package vendure

import (
	"encoding/json"
	"fmt"

	"storefront/internal/model"
)

// unionProbe reads just enough of a union branch to classify it. Every
// mutation result carries __typename; error branches add errorCode and
// message, and insufficient-stock errors add quantityAvailable.
type unionProbe struct {
	Typename          string `json:"__typename"`
	ErrorCode         string `json:"errorCode"`
	Message           string `json:"message"`
	QuantityAvailable int    `json:"quantityAvailable"`
}

func probe(raw json.RawMessage) (unionProbe, error) {
	var p unionProbe
	if err := json.Unmarshal(raw, &p); err != nil {
		return p, fmt.Errorf("decoding union result: %w", err)
	}
	if p.Typename == "" {
		return p, fmt.Errorf("union result missing __typename")
	}
	return p, nil
}

func domainError(p unionProbe) *model.DomainError {
	return &model.DomainError{
		Typename:          p.Typename,
		Code:              p.ErrorCode,
		Message:           p.Message,
		QuantityAvailable: p.QuantityAvailable,
	}
}

// decodeOrderResult classifies an Order-or-error union branch.
func decodeOrderResult(raw json.RawMessage) (model.OrderResult, error) {
	p, err := probe(raw)
	if err != nil {
		return model.OrderResult{}, err
	}
	if p.Typename != model.TypeOrder {
		return model.OrderResult{Err: domainError(p)}, nil
	}
	var order model.Order
	if err := json.Unmarshal(raw, &order); err != nil {
		return model.OrderResult{}, fmt.Errorf("decoding order: %w", err)
	}
	return model.OrderResult{Order: &order}, nil
}

// decodeUserResult classifies a CurrentUser-or-error union branch.
func decodeUserResult(raw json.RawMessage) (model.UserResult, error) {
	p, err := probe(raw)
	if err != nil {
		return model.UserResult{}, err
	}
	if p.Typename != model.TypeCurrentUser {
		return model.UserResult{Err: domainError(p)}, nil
	}
	var user model.CurrentUser
	if err := json.Unmarshal(raw, &user); err != nil {
		return model.UserResult{}, fmt.Errorf("decoding current user: %w", err)
	}
	return model.UserResult{User: &user}, nil
}

// decodeSuccessResult classifies a Success-or-error union branch.
func decodeSuccessResult(raw json.RawMessage) (model.SuccessResult, error) {
	p, err := probe(raw)
	if err != nil {
		return model.SuccessResult{}, err
	}
	if p.Typename != model.TypeSuccess {
		return model.SuccessResult{Err: domainError(p)}, nil
	}
	return model.SuccessResult{Success: true}, nil
}

// orderFromResult collapses an OrderResult into the (order, error) shape the
// shop interface uses; domain errors travel as the error value.
func orderFromResult(res model.OrderResult) (*model.Order, error) {
	if res.Err != nil {
		return nil, res.Err
	}
	return res.Order, nil
}

// userFromResult collapses a UserResult the same way.
func userFromResult(res model.UserResult) (*model.CurrentUser, error) {
	if res.Err != nil {
		return nil, res.Err
	}
	return res.User, nil
}
