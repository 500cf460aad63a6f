package roster

import "errors"

var (
	ErrUnknownPosition     = errors.New("unknown position")
	ErrMissingSpecialist   = errors.New("missing kicking specialist")
	ErrDuplicateSpecialist = errors.New("duplicate kicking specialist")
	ErrTeamCount           = errors.New("exactly two teams required")
	ErrEmptyRoster         = errors.New("empty roster")
	ErrUnknownStat         = errors.New("unknown stat")
)
