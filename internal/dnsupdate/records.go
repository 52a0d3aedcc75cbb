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

package dnsupdate

import (
	"fmt"
	"net"

	"github.com/miekg/dns"
)

func effectiveTTL(ttl int32) uint32 {
	if ttl <= 0 {
		return DefaultTTL
	}
	return uint32(ttl)
}

// NewARecord builds an A record for name.zone.
func NewARecord(name, zone, ipv4 string, ttl int32) (dns.RR, error) {
	ip := net.ParseIP(ipv4)
	if ip == nil || ip.To4() == nil {
		return nil, fmt.Errorf("invalid IPv4 address %q", ipv4)
	}
	return &dns.A{
		Hdr: dns.RR_Header{Name: ownerName(name, zone), Rrtype: dns.TypeA, Class: dns.ClassINET, Ttl: effectiveTTL(ttl)},
		A:   ip,
	}, nil
}

// NewAAAARecord builds an AAAA record for name.zone.
func NewAAAARecord(name, zone, ipv6 string, ttl int32) (dns.RR, error) {
	ip := net.ParseIP(ipv6)
	if ip == nil || ip.To4() != nil {
		return nil, fmt.Errorf("invalid IPv6 address %q", ipv6)
	}
	return &dns.AAAA{
		Hdr:  dns.RR_Header{Name: ownerName(name, zone), Rrtype: dns.TypeAAAA, Class: dns.ClassINET, Ttl: effectiveTTL(ttl)},
		AAAA: ip,
	}, nil
}

// NewCNAMERecord builds a CNAME record for name.zone pointing at target.
func NewCNAMERecord(name, zone, target string, ttl int32) dns.RR {
	return &dns.CNAME{
		Hdr:    dns.RR_Header{Name: ownerName(name, zone), Rrtype: dns.TypeCNAME, Class: dns.ClassINET, Ttl: effectiveTTL(ttl)},
		Target: dns.Fqdn(target),
	}
}

// NewNSRecord builds an NS record for name.zone delegating to server.
func NewNSRecord(name, zone, server string, ttl int32) dns.RR {
	return &dns.NS{
		Hdr: dns.RR_Header{Name: ownerName(name, zone), Rrtype: dns.TypeNS, Class: dns.ClassINET, Ttl: effectiveTTL(ttl)},
		Ns:  dns.Fqdn(server),
	}
}

// NewTXTRecord builds a TXT record for name.zone with the given character-strings.
func NewTXTRecord(name, zone string, texts []string, ttl int32) dns.RR {
	return &dns.TXT{
		Hdr: dns.RR_Header{Name: ownerName(name, zone), Rrtype: dns.TypeTXT, Class: dns.ClassINET, Ttl: effectiveTTL(ttl)},
		Txt: texts,
	}
}

// NewMXRecord builds an MX record for name.zone.
func NewMXRecord(name, zone string, priority int32, mailServer string, ttl int32) dns.RR {
	return &dns.MX{
		Hdr:        dns.RR_Header{Name: ownerName(name, zone), Rrtype: dns.TypeMX, Class: dns.ClassINET, Ttl: effectiveTTL(ttl)},
		Preference: uint16(priority),
		Mx:         dns.Fqdn(mailServer),
	}
}

// NewSRVRecord builds an SRV record for name.zone.
func NewSRVRecord(name, zone string, priority, weight, port int32, target string, ttl int32) dns.RR {
	return &dns.SRV{
		Hdr:      dns.RR_Header{Name: ownerName(name, zone), Rrtype: dns.TypeSRV, Class: dns.ClassINET, Ttl: effectiveTTL(ttl)},
		Priority: uint16(priority),
		Weight:   uint16(weight),
		Port:     uint16(port),
		Target:   dns.Fqdn(target),
	}
}

// NewCAARecord builds a CAA record for name.zone.
func NewCAARecord(name, zone string, flag int32, tag, value string, ttl int32) dns.RR {
	return &dns.CAA{
		Hdr:   dns.RR_Header{Name: ownerName(name, zone), Rrtype: dns.TypeCAA, Class: dns.ClassINET, Ttl: effectiveTTL(ttl)},
		Flag:  uint8(flag),
		Tag:   tag,
		Value: value,
	}
}
