package goviewset

import (
	"net/http"
)

// Status is the outcome vocabulary an action result may carry under its
// "status" key. Any other value is a lookup failure with no fallback.
type Status string

const (
	StatusCreated  Status = "created"
	StatusUpdated  Status = "updated"
	StatusAccepted Status = "accepted"
)

// StatusCodes maps the result envelope vocabulary to HTTP response codes.
var StatusCodes = map[Status]int{
	StatusCreated:  http.StatusCreated,
	StatusUpdated:  http.StatusOK,
	StatusAccepted: http.StatusAccepted,
}

// CodeForStatus resolves a result status to its HTTP response code.
// The second return value reports whether the status is known.
func CodeForStatus(s Status) (int, bool) {
	code, ok := StatusCodes[s]
	return code, ok
}

func closestStatus(input Status) Status {
	return Status(closestMatch(string(input), knownStatuses()))
}

func knownStatuses() []string {
	ret := make([]string, 0, len(StatusCodes))
	for s := range StatusCodes {
		ret = append(ret, string(s))
	}

	return ret
}
