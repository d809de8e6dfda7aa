package syslog

import (
	"context"
	"fmt"
	"net"
	"time"
)

// Forwarder delivers a formatted line to a syslog endpoint
type Forwarder interface {
	Forward(ctx context.Context, address, line string) error
}

// NetForwarder writes each line as a single datagram (or stream write) to the target address
type NetForwarder struct {
	network string
	address string
	timeout time.Duration
}

// Forward sends line to address; the configured address, when set, takes precedence
func (f *NetForwarder) Forward(ctx context.Context, address, line string) error {
	if f.address != "" {
		address = f.address
	}
	if address == "" {
		return fmt.Errorf("failed to forward syslog line: empty address")
	}
	dialer := net.Dialer{Timeout: f.timeout}
	conn, err := dialer.DialContext(ctx, f.network, address)
	if err != nil {
		return fmt.Errorf("failed to dial %v %v: %w", f.network, address, err)
	}
	defer conn.Close()
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetWriteDeadline(deadline)
	}
	payload := line
	if f.network != "udp" {
		payload += "\n"
	}
	if _, err = conn.Write([]byte(payload)); err != nil {
		return fmt.Errorf("failed to write syslog line to %v: %w", address, err)
	}
	return nil
}

// NewForwarder creates a forwarder, network defaults to udp
func NewForwarder(network, address string) *NetForwarder {
	if network == "" {
		network = "udp"
	}
	return &NetForwarder{network: network, address: address, timeout: 5 * time.Second}
}
