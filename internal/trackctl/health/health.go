package health

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

var client = &http.Client{Timeout: 5 * time.Second}

// Host returns the relay address, PIXELTRACK_HOST or localhost:5001.
func Host() string {
	if host := strings.TrimSpace(os.Getenv("PIXELTRACK_HOST")); host != "" {
		return host
	}
	return "localhost:5001"
}

// CheckOnce pings the relay once.
func CheckOnce(host string) error {
	_, err := get(host, "/ping")
	return err
}

// Version returns the version string the relay reports.
func Version(host string) (string, error) {
	return get(host, "/version")
}

func get(host string, path string) (string, error) {
	url := fmt.Sprintf("http://%s%s", host, path)
	resp, err := client.Get(url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s failed with status: %d", path, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(body)), nil
}
