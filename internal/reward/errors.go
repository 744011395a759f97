package reward

import "fmt"

// ParseError reports a reward or event token that could not be understood.
type ParseError struct {
	Token string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unrecognized reward token %q", e.Token)
}
