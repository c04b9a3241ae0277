package instance

import "os"

const fallbackID = "cron-worker-0"

// ID identifies the running worker process in logs and lock diagnostics.
// VELOUR_WORKER_ID wins, then the host name.
func ID() string {
	if id := os.Getenv("VELOUR_WORKER_ID"); id != "" {
		return id
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return fallbackID
}
