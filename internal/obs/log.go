package obs

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ammarakk/todo-backend/internal/ids"
)

// RequestLogger tags every request with a ULID and emits one JSON log line
// when it completes.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := ids.New()
		c.Set("X-Request-ID", requestID)

		start := time.Now()
		err := c.Next()

		logRequest(map[string]any{
			"ts":          time.Now().UTC().Format(time.RFC3339),
			"request_id":  requestID,
			"method":      c.Method(),
			"path":        c.Path(),
			"status":      c.Response().StatusCode(),
			"duration_ms": time.Since(start).Milliseconds(),
		})

		return err
	}
}

func logRequest(entry map[string]any) {
	data, err := json.Marshal(entry)
	if err != nil {
		log.Println(`{"level":"error","msg":"log marshal failed"}`)
		return
	}
	log.Println(string(data))
}
