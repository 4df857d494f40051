package stats

import "fmt"

var (
	ErrInvalidGranularity = fmt.Errorf("invalid time granularity")
	ErrInvalidWordCounter = fmt.Errorf("invalid word counter")
)
