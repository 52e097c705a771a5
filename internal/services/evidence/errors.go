package evidence

import "errors"

var (
	ErrSourceUnavailable = errors.New("evidence source unavailable")
	ErrUnexpectedStatus  = errors.New("unexpected response status from evidence source")
	ErrEmptyResponse     = errors.New("empty response from evidence source")
)
