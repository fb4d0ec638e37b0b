package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"
)

const defaultBridgeAddr = "127.0.0.1:8765"

func main() {
	os.Exit(check(normalizeAddr(os.Getenv("BUDGETCTL_BRIDGE_ADDR"))))
}

// check probes the bridge health endpoint and returns a process exit code.
func check(addr string) int {
	client := &http.Client{Timeout: 2 * time.Second}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("http://%s/api/v1/health", addr), nil)
	if err != nil {
		return 1
	}
	// The bridge only answers loopback Host headers.
	req.Host = addr

	resp, err := client.Do(req)
	if err != nil {
		return 1
	}
	_ = resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 1
	}

	return 0
}

// normalizeAddr points the probe at loopback when the bridge address is empty,
// malformed, or bound to all interfaces.
func normalizeAddr(raw string) string {
	if raw == "" {
		return defaultBridgeAddr
	}

	host, port, err := net.SplitHostPort(raw)
	if err != nil {
		return defaultBridgeAddr
	}

	if host == "" || host == "0.0.0.0" || host == "localhost" {
		host = "127.0.0.1"
	}

	return net.JoinHostPort(host, port)
}
