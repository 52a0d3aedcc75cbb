/*
Copyright 2025 firestoned.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package dnsupdate sends RFC 2136 Dynamic DNS Update messages to a BIND9 primary,
// TSIG-signed with the cluster's RNDC key (spec.md §4.10).
package dnsupdate

import (
	"context"
	"fmt"
	"time"

	"github.com/miekg/dns"

	"github.com/firestoned/bindy/internal/rndc"
)

// DefaultTTL is used when a record's spec leaves TTL unset (zero).
const DefaultTTL = 3600

// Client sends dynamic updates against one DNS server address, signing every message with
// the given TSIG signer.
type Client struct {
	signer  *rndc.TsigSigner
	timeout time.Duration
}

// New builds a Client that signs every message with signer.
func New(signer *rndc.TsigSigner) *Client {
	return &Client{signer: signer, timeout: 10 * time.Second}
}

// ownerName returns the FQDN a record named "name" lives at within zone. "@" or "" means
// the zone apex.
func ownerName(name, zone string) string {
	zone = dns.Fqdn(zone)
	if name == "" || name == "@" {
		return zone
	}
	return dns.Fqdn(name + "." + zone)
}

// exchange signs msg and sends it to server, preferring TCP per spec.md §4.10; it retries over
// UDP whenever the TCP exchange returns an error (dial, write, read or timeout).
func (c *Client) exchange(ctx context.Context, server string, msg *dns.Msg) (*dns.Msg, error) {
	c.signer.Apply(msg)

	client := &dns.Client{Net: "tcp", Timeout: c.timeout, TsigSecret: c.signer.SecretMap()}
	resp, _, err := client.ExchangeContext(ctx, msg, server)
	if err != nil {
		udpClient := &dns.Client{Net: "udp", Timeout: c.timeout, TsigSecret: c.signer.SecretMap()}
		resp, _, err = udpClient.ExchangeContext(ctx, msg, server)
		if err != nil {
			return nil, fmt.Errorf("exchange with %s: %w", server, err)
		}
	}
	return resp, nil
}

// AddRecord replaces the RRset at name.zone/type with rrs (an unconditional replace — no
// prerequisites are used). NOERROR and YXRRSET (already present) are both treated as
// success. rrs must be non-empty and share the same owner name and type.
func (c *Client) AddRecord(ctx context.Context, server, zone, name string, rrs []dns.RR) error {
	if len(rrs) == 0 {
		return fmt.Errorf("add record %s.%s: no resource records supplied", name, zone)
	}
	owner := rrs[0].Header().Name
	rrtype := rrs[0].Header().Rrtype

	deleteRRset, err := dns.NewRR(fmt.Sprintf("%s 0 ANY %s", owner, dns.TypeToString[rrtype]))
	if err != nil {
		return fmt.Errorf("build RRset-delete record: %w", err)
	}

	msg := new(dns.Msg)
	msg.SetUpdate(dns.Fqdn(zone))
	msg.Ns = append(msg.Ns, deleteRRset)
	msg.Ns = append(msg.Ns, rrs...)

	resp, err := c.exchange(ctx, server, msg)
	if err != nil {
		return err
	}
	switch resp.Rcode {
	case dns.RcodeSuccess, dns.RcodeYXRrset:
		return nil
	default:
		return fmt.Errorf("dynamic update of %s at %s rejected: %s", name, zone, dns.RcodeToString[resp.Rcode])
	}
}

// DeleteRecord removes the full RRset at name.zone/type. NXRRSET is treated as success
// (the RRset is already absent).
func (c *Client) DeleteRecord(ctx context.Context, server, zone, name string, rrtype uint16) error {
	owner := ownerName(name, zone)
	rrRemove, err := dns.NewRR(fmt.Sprintf("%s 0 ANY %s", owner, dns.TypeToString[rrtype]))
	if err != nil {
		return fmt.Errorf("build RRset-delete record: %w", err)
	}

	msg := new(dns.Msg)
	msg.SetUpdate(dns.Fqdn(zone))
	msg.RemoveRRset([]dns.RR{rrRemove})

	resp, err := c.exchange(ctx, server, msg)
	if err != nil {
		return err
	}
	switch resp.Rcode {
	case dns.RcodeSuccess, dns.RcodeNXRrset:
		return nil
	default:
		return fmt.Errorf("dynamic delete of %s at %s rejected: %s", name, zone, dns.RcodeToString[resp.Rcode])
	}
}

// Query returns the current RRset for name.zone/rrtype, used by ShouldUpdateRecord and by
// callers probing current state before a write.
func (c *Client) Query(ctx context.Context, server, zone, name string, rrtype uint16) ([]dns.RR, error) {
	owner := ownerName(name, zone)
	msg := new(dns.Msg)
	msg.SetQuestion(owner, rrtype)
	msg.RecursionDesired = false

	client := &dns.Client{Net: "udp", Timeout: c.timeout}
	resp, _, err := client.ExchangeContext(ctx, msg, server)
	if err != nil {
		return nil, fmt.Errorf("query %s/%s at %s: %w", owner, dns.TypeToString[rrtype], server, err)
	}
	if resp.Rcode != dns.RcodeSuccess {
		return nil, fmt.Errorf("query %s/%s at %s: rcode %s", owner, dns.TypeToString[rrtype], server, dns.RcodeToString[resp.Rcode])
	}
	return resp.Answer, nil
}

// ShouldUpdateRecord reports whether the current RRset at name.zone/rrtype differs from
// expected. A query failure fails safe: it returns true (attempt the update) rather than
// risk silently skipping a needed change.
func (c *Client) ShouldUpdateRecord(ctx context.Context, server, zone, name string, rrtype uint16, expected []dns.RR) bool {
	current, err := c.Query(ctx, server, zone, name, rrtype)
	if err != nil {
		return true
	}
	if len(current) == 0 {
		return true
	}
	return !recordSetsEqual(rrtype, current, expected)
}
