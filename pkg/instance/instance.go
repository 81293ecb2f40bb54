package instance

import "os"

// GetID returns the process instance identifier used in startup logs.
// NOVA_INSTANCE_ID wins over the platform's DYNO name.
func GetID() string {
	for _, key := range []string{"NOVA_INSTANCE_ID", "DYNO"} {
		if id := os.Getenv(key); id != "" {
			return id
		}
	}
	return "local"
}
