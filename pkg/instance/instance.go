package instance

import "os"

// ID identifies the running process in logs. GATHERLY_INSTANCE_ID wins, then
// the platform's DYNO, then the hostname.
func ID() string {
	for _, key := range []string{"GATHERLY_INSTANCE_ID", "DYNO"} {
		if id := os.Getenv(key); id != "" {
			return id
		}
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "local"
}
