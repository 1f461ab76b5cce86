package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"time"
)

const (
	fetchTimeout = 30 * time.Second
	dialTimeout  = 10 * time.Second
	maxRedirects = 10
)

// blockedAddr reports whether a spec URL may not be fetched from addr.
func blockedAddr(addr netip.Addr) bool {
	addr = addr.Unmap()
	return !addr.IsValid() ||
		addr.IsPrivate() ||
		addr.IsLoopback() ||
		addr.IsLinkLocalUnicast() ||
		addr.IsLinkLocalMulticast() ||
		addr.IsUnspecified()
}

// publicAddr resolves host and returns its first address, failing when any
// resolved address is blocked.
func publicAddr(ctx context.Context, host string) (netip.Addr, error) {
	addrs, err := net.DefaultResolver.LookupNetIP(ctx, "ip", host)
	if err != nil {
		return netip.Addr{}, err
	}
	if len(addrs) == 0 {
		return netip.Addr{}, fmt.Errorf("no IP addresses found for host: %s", host)
	}
	for _, a := range addrs {
		if blockedAddr(a) {
			return netip.Addr{}, fmt.Errorf("blocked request to private/loopback IP: %s (%s)", host, a.Unmap())
		}
	}
	return addrs[0].Unmap(), nil
}

// newSafeHTTPClient returns the client used to fetch spec URLs given by MCP
// clients. Every dial and redirect target must resolve to a public address.
func newSafeHTTPClient() *http.Client {
	dialer := &net.Dialer{Timeout: dialTimeout}
	dial := func(ctx context.Context, network, hostport string) (net.Conn, error) {
		host, port, err := net.SplitHostPort(hostport)
		if err != nil {
			return nil, err
		}
		addr, err := publicAddr(ctx, host)
		if err != nil {
			return nil, err
		}
		// dial the checked address so a second lookup cannot swap it
		return dialer.DialContext(ctx, network, net.JoinHostPort(addr.String(), port))
	}

	return &http.Client{
		Timeout:   fetchTimeout,
		Transport: &http.Transport{DialContext: dial},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return errors.New("stopped after 10 redirects")
			}
			_, err := publicAddr(req.Context(), req.URL.Hostname())
			return err
		},
	}
}
