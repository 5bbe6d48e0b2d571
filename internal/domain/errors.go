package domain

import "errors"

var (
	ErrNotFound       = errors.New("not_found")
	ErrUnknownRule    = errors.New("unknown_rate_rule")
	ErrNegativeAmount = errors.New("negative_amount")
	ErrEmptySchedule  = errors.New("empty_schedule")
	ErrInvalidRange   = errors.New("invalid_date_range")
	ErrAlreadyLinked  = errors.New("worker_already_linked")
)
