package redis

import (
	"fmt"

	"github.com/mcoot/courtside/internal/model"
)

// Key prefix for all application data
const keyPrefix = "courtside"

// sessionKey returns the Redis key for a Session
func sessionKey(id model.SessionID) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, id)
}
