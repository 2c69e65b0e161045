package cli

import (
	"context"
	"net"
	"net/http"
	"net/url"
	"strings"
)

func (api *APIClient) buildHTTPClientAndURL(path string) (*http.Client, string, error) {
	u, err := url.Parse(api.apiAddress)
	if err != nil {
		return nil, "", err
	}
	if u.Scheme != "unix" {
		return api.httpClient, strings.TrimRight(api.apiAddress, "/") + path, nil
	}

	socketPath := u.Path
	return &http.Client{
		Timeout: api.httpClient.Timeout,
		Transport: &http.Transport{
			DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
				return (&net.Dialer{}).DialContext(ctx, "unix", socketPath)
			},
		},
	}, "http://unix" + path, nil
}
