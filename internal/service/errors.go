package service

import "errors"

var (
	// ErrScheduleNotFound indicates the targeted student schedule slot does
	// not exist. This is a data or programmer error and is never retried.
	ErrScheduleNotFound = errors.New("student schedule not found")

	// ErrNoAvailablePlace indicates the place allocator exhausted the home
	// room and its three successors. It aborts the remainder of the current
	// strategy run; layers already written stay in place.
	ErrNoAvailablePlace = errors.New("no available place")

	// ErrConfigNotFound indicates the referenced activity record is absent.
	ErrConfigNotFound = errors.New("config not found")

	// ErrLeaveSeatExists indicates a leave seat already occupies the
	// (room, day, period) slot.
	ErrLeaveSeatExists = errors.New("leave seat already exists for place and slot")
)
