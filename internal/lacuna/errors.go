package lacuna

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/napolitain/lacuna-upgrader/internal/models"
)

// ErrNotLoggedIn is returned by session calls made before Login
var ErrNotLoggedIn = errors.New("not logged in")

const queueFullMessage = "no room left in the build queue"

// RPCError is the error object of a JSON-RPC response
type RPCError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *RPCError) Error() string {
	if len(e.Data) > 0 && string(e.Data) != "null" {
		return fmt.Sprintf("rpc error %d: %s (data: %s)", e.Code, e.Message, e.Data)
	}
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// Is lets errors.Is(err, models.ErrQueueFull) recognize a full build queue
func (e *RPCError) Is(target error) bool {
	return target == models.ErrQueueFull &&
		strings.Contains(strings.ToLower(e.Message), queueFullMessage)
}
