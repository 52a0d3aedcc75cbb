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

package bindcar

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/miekg/dns"
)

// VerifyZoneSigned reports whether the zone currently publishes a DNSKEY record on the
// given server, which is how the sidecar's original implementation confirmed a DNSSEC
// inline-signing policy had actually taken effect after a create/modify call.
func VerifyZoneSigned(ctx context.Context, server, zoneName string) (bool, error) {
	host, _, err := net.SplitHostPort(server)
	if err != nil {
		host = server
		server = net.JoinHostPort(host, "53")
	}

	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(zoneName), dns.TypeDNSKEY)
	msg.RecursionDesired = false

	client := &dns.Client{Net: "udp", Timeout: 5 * time.Second}
	resp, _, err := client.ExchangeContext(ctx, msg, server)
	if err != nil {
		return false, fmt.Errorf("query DNSKEY for %s at %s: %w", zoneName, server, err)
	}
	if resp.Rcode != dns.RcodeSuccess {
		return false, fmt.Errorf("query DNSKEY for %s at %s: rcode %s", zoneName, server, dns.RcodeToString[resp.Rcode])
	}
	return len(resp.Answer) > 0, nil
}
