package v1

import (
	"time"

	"github.com/pkg/errors"

	"github.com/studyzen/studyzen/server/identity"
)

var (
	errSchedRequired = errors.New("schedule array is required")
	errSchedInvalid  = errors.New("schedule must be valid JSON")
)

func identityValid(id string) bool {
	return identity.IsValid(id)
}

func formatTimestamp(ts int64) string {
	return time.Unix(ts, 0).UTC().Format(time.RFC3339)
}
