package device

import (
	"context"
	"fmt"
	"net"
	"regexp"
	"strconv"
	"sync"
	"time"

	"github.com/grandcat/zeroconf"
)

const (
	// ServiceType is advertised by phones with wireless debugging enabled.
	ServiceType = "_adb-tls-connect._tcp"

	// ServiceDomain is the mDNS domain.
	ServiceDomain = "local."

	// DefaultScanTimeout is how long a scan browses before returning.
	DefaultScanTimeout = 5 * time.Second
)

// instancePattern extracts the serial from instance names such as
// "adb-R58N123ABC-Xk3b9Q".
var instancePattern = regexp.MustCompile(`^adb-([A-Za-z0-9]+)-`)

// WirelessEndpoint is a phone advertising wireless debugging.
type WirelessEndpoint struct {
	// Instance is the mDNS instance name.
	Instance string

	// Serial is the hardware serial embedded in the instance name, if any.
	Serial string

	// Address is host:port suitable for `adb connect`.
	Address string

	// DiscoveredAt is when the advertisement was seen.
	DiscoveredAt time.Time
}

// Scanner browses mDNS for wireless-debugging phones.
type Scanner struct {
	// Timeout is the maximum time to browse.
	Timeout time.Duration
}

// NewScanner creates a scanner with the default timeout.
func NewScanner() *Scanner {
	return &Scanner{Timeout: DefaultScanTimeout}
}

// Scan browses for the scanner's timeout (or until ctx is done) and returns
// every endpoint seen, de-duplicated by address.
func (s *Scanner) Scan(ctx context.Context) ([]WirelessEndpoint, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	entries := make(chan *zeroconf.ServiceEntry)

	var (
		mu        sync.Mutex
		endpoints []WirelessEndpoint
		seen      = make(map[string]bool)
	)

	go func() {
		for {
			select {
			case entry, ok := <-entries:
				if !ok {
					return
				}
				ep, ok := parseServiceEntry(entry)
				if !ok {
					continue
				}
				mu.Lock()
				if !seen[ep.Address] {
					seen[ep.Address] = true
					endpoints = append(endpoints, ep)
				}
				mu.Unlock()
			case <-ctx.Done():
				return
			}
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	<-ctx.Done()

	mu.Lock()
	defer mu.Unlock()
	return append([]WirelessEndpoint(nil), endpoints...), nil
}

// parseServiceEntry converts a zeroconf entry into an endpoint. Entries
// without a usable address are dropped.
func parseServiceEntry(entry *zeroconf.ServiceEntry) (WirelessEndpoint, bool) {
	if entry == nil || entry.Port == 0 {
		return WirelessEndpoint{}, false
	}

	var ip net.IP
	if len(entry.AddrIPv4) > 0 {
		ip = entry.AddrIPv4[0]
	} else if len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0]
	}
	if ip == nil {
		return WirelessEndpoint{}, false
	}

	ep := WirelessEndpoint{
		Instance:     entry.Instance,
		Address:      net.JoinHostPort(ip.String(), strconv.Itoa(entry.Port)),
		DiscoveredAt: time.Now(),
	}
	if m := instancePattern.FindStringSubmatch(entry.Instance); len(m) == 2 {
		ep.Serial = m[1]
	}
	return ep, true
}
