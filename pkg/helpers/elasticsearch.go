package helpers

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
)

// esRetryStatuses are retried by the transport before a request fails.
var esRetryStatuses = []int{http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout}

// esBackoff doubles from 100ms and caps at 1s.
func esBackoff(attempt int) time.Duration {
	d := 100 * time.Millisecond << max(attempt-1, 0)
	return min(d, time.Second)
}

// NewESClient creates an Elasticsearch client with optional basic auth.
// Overload and gateway statuses are retried with backoff; request bodies are gzipped.
// No addresses means search is disabled and nil is returned.
func NewESClient(addrs []string, username, password string) (*elasticsearch.Client, error) {
	if len(addrs) == 0 {
		return nil, nil
	}
	cfg := elasticsearch.Config{
		Addresses: addrs,
		Username:  username,
		Password:  password,

		RetryOnStatus:       esRetryStatuses,
		MaxRetries:          3,
		RetryBackoff:        esBackoff,
		CompressRequestBody: true,

		Transport: &http.Transport{
			MaxIdleConnsPerHost:   10,
			ResponseHeaderTimeout: 5 * time.Second,
			TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
			DialContext:           (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
		},
	}
	return elasticsearch.NewClient(cfg)
}
