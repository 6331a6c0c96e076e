package instance

import "os"

// GetID returns an identifier for this process: PACKFINDERZ_CART_INSTANCE_ID,
// then the platform's DYNO, then the hostname.
func GetID() string {
	for _, key := range []string{"PACKFINDERZ_CART_INSTANCE_ID", "DYNO"} {
		if id := os.Getenv(key); id != "" {
			return id
		}
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "local"
}
