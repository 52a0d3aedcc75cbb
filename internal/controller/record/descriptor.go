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

// Package record implements one generic reconciler parameterised over a small per-kind
// descriptor (spec.md §4.14, §9), instead of eight near-identical controllers.
package record

import (
	"github.com/miekg/dns"
	"sigs.k8s.io/controller-runtime/pkg/client"

	bindyv1beta1 "github.com/firestoned/bindy/api/v1beta1"
	"github.com/firestoned/bindy/internal/constant"
	"github.com/firestoned/bindy/internal/dnsupdate"
)

// object is the minimum surface every record kind's generated type satisfies: a
// client.Object with the condition accessors C5 needs.
type object interface {
	client.Object
	bindyv1beta1.ConditionAccessor
}

// Descriptor parameterises the generic reconciler over one of the eight record kinds.
type Descriptor struct {
	Kind      string
	Finalizer string
	DNSType   uint16

	NewObject func() object
	NewList   func() client.ObjectList
	ListItems func(client.ObjectList) []object

	// RecordName returns the owner label ("@" or a leftmost label) from the object's spec.
	RecordName func(object) string
	// TTL returns the object's own TTL override, or zero to fall back to the zone default.
	TTL func(object) int32
	// BuildRR constructs the RRset this record should carry at zone with the given effective TTL.
	BuildRR func(obj object, zone string, ttl int32) ([]dns.RR, error)
}

// Descriptors returns the eight record-kind descriptors driving the controllers registered
// from cmd/main.go.
func Descriptors() []Descriptor {
	return []Descriptor{
		aRecordDescriptor(),
		aaaaRecordDescriptor(),
		cnameRecordDescriptor(),
		txtRecordDescriptor(),
		mxRecordDescriptor(),
		nsRecordDescriptor(),
		srvRecordDescriptor(),
		caaRecordDescriptor(),
	}
}

func aRecordDescriptor() Descriptor {
	return Descriptor{
		Kind:       "ARecord",
		Finalizer:  constant.FinalizerARecord,
		DNSType:    dns.TypeA,
		NewObject:  func() object { return &bindyv1beta1.ARecord{} },
		NewList:    func() client.ObjectList { return &bindyv1beta1.ARecordList{} },
		ListItems:  func(l client.ObjectList) []object { return aRecordItems(l.(*bindyv1beta1.ARecordList)) },
		RecordName: func(o object) string { return o.(*bindyv1beta1.ARecord).Spec.Name },
		TTL:        func(o object) int32 { return o.(*bindyv1beta1.ARecord).Spec.TTL },
		BuildRR: func(o object, zone string, ttl int32) ([]dns.RR, error) {
			r := o.(*bindyv1beta1.ARecord)
			rr, err := dnsupdate.NewARecord(r.Spec.Name, zone, r.Spec.IPv4, ttl)
			if err != nil {
				return nil, err
			}
			return []dns.RR{rr}, nil
		},
	}
}

func aRecordItems(l *bindyv1beta1.ARecordList) []object {
	out := make([]object, len(l.Items))
	for i := range l.Items {
		out[i] = &l.Items[i]
	}
	return out
}

func aaaaRecordDescriptor() Descriptor {
	return Descriptor{
		Kind:       "AAAARecord",
		Finalizer:  constant.FinalizerAAAARecord,
		DNSType:    dns.TypeAAAA,
		NewObject:  func() object { return &bindyv1beta1.AAAARecord{} },
		NewList:    func() client.ObjectList { return &bindyv1beta1.AAAARecordList{} },
		ListItems:  func(l client.ObjectList) []object { return aaaaRecordItems(l.(*bindyv1beta1.AAAARecordList)) },
		RecordName: func(o object) string { return o.(*bindyv1beta1.AAAARecord).Spec.Name },
		TTL:        func(o object) int32 { return o.(*bindyv1beta1.AAAARecord).Spec.TTL },
		BuildRR: func(o object, zone string, ttl int32) ([]dns.RR, error) {
			r := o.(*bindyv1beta1.AAAARecord)
			rr, err := dnsupdate.NewAAAARecord(r.Spec.Name, zone, r.Spec.IPv6, ttl)
			if err != nil {
				return nil, err
			}
			return []dns.RR{rr}, nil
		},
	}
}

func aaaaRecordItems(l *bindyv1beta1.AAAARecordList) []object {
	out := make([]object, len(l.Items))
	for i := range l.Items {
		out[i] = &l.Items[i]
	}
	return out
}

func cnameRecordDescriptor() Descriptor {
	return Descriptor{
		Kind:       "CNAMERecord",
		Finalizer:  constant.FinalizerCNAMERecord,
		DNSType:    dns.TypeCNAME,
		NewObject:  func() object { return &bindyv1beta1.CNAMERecord{} },
		NewList:    func() client.ObjectList { return &bindyv1beta1.CNAMERecordList{} },
		ListItems:  func(l client.ObjectList) []object { return cnameRecordItems(l.(*bindyv1beta1.CNAMERecordList)) },
		RecordName: func(o object) string { return o.(*bindyv1beta1.CNAMERecord).Spec.Name },
		TTL:        func(o object) int32 { return o.(*bindyv1beta1.CNAMERecord).Spec.TTL },
		BuildRR: func(o object, zone string, ttl int32) ([]dns.RR, error) {
			r := o.(*bindyv1beta1.CNAMERecord)
			return []dns.RR{dnsupdate.NewCNAMERecord(r.Spec.Name, zone, r.Spec.Target, ttl)}, nil
		},
	}
}

func cnameRecordItems(l *bindyv1beta1.CNAMERecordList) []object {
	out := make([]object, len(l.Items))
	for i := range l.Items {
		out[i] = &l.Items[i]
	}
	return out
}

func txtRecordDescriptor() Descriptor {
	return Descriptor{
		Kind:       "TXTRecord",
		Finalizer:  constant.FinalizerTXTRecord,
		DNSType:    dns.TypeTXT,
		NewObject:  func() object { return &bindyv1beta1.TXTRecord{} },
		NewList:    func() client.ObjectList { return &bindyv1beta1.TXTRecordList{} },
		ListItems:  func(l client.ObjectList) []object { return txtRecordItems(l.(*bindyv1beta1.TXTRecordList)) },
		RecordName: func(o object) string { return o.(*bindyv1beta1.TXTRecord).Spec.Name },
		TTL:        func(o object) int32 { return o.(*bindyv1beta1.TXTRecord).Spec.TTL },
		BuildRR: func(o object, zone string, ttl int32) ([]dns.RR, error) {
			r := o.(*bindyv1beta1.TXTRecord)
			return []dns.RR{dnsupdate.NewTXTRecord(r.Spec.Name, zone, r.Spec.Text, ttl)}, nil
		},
	}
}

func txtRecordItems(l *bindyv1beta1.TXTRecordList) []object {
	out := make([]object, len(l.Items))
	for i := range l.Items {
		out[i] = &l.Items[i]
	}
	return out
}

func mxRecordDescriptor() Descriptor {
	return Descriptor{
		Kind:       "MXRecord",
		Finalizer:  constant.FinalizerMXRecord,
		DNSType:    dns.TypeMX,
		NewObject:  func() object { return &bindyv1beta1.MXRecord{} },
		NewList:    func() client.ObjectList { return &bindyv1beta1.MXRecordList{} },
		ListItems:  func(l client.ObjectList) []object { return mxRecordItems(l.(*bindyv1beta1.MXRecordList)) },
		RecordName: func(o object) string { return o.(*bindyv1beta1.MXRecord).Spec.Name },
		TTL:        func(o object) int32 { return o.(*bindyv1beta1.MXRecord).Spec.TTL },
		BuildRR: func(o object, zone string, ttl int32) ([]dns.RR, error) {
			r := o.(*bindyv1beta1.MXRecord)
			return []dns.RR{dnsupdate.NewMXRecord(r.Spec.Name, zone, r.Spec.Priority, r.Spec.Server, ttl)}, nil
		},
	}
}

func mxRecordItems(l *bindyv1beta1.MXRecordList) []object {
	out := make([]object, len(l.Items))
	for i := range l.Items {
		out[i] = &l.Items[i]
	}
	return out
}

func nsRecordDescriptor() Descriptor {
	return Descriptor{
		Kind:       "NSRecord",
		Finalizer:  constant.FinalizerNSRecord,
		DNSType:    dns.TypeNS,
		NewObject:  func() object { return &bindyv1beta1.NSRecord{} },
		NewList:    func() client.ObjectList { return &bindyv1beta1.NSRecordList{} },
		ListItems:  func(l client.ObjectList) []object { return nsRecordItems(l.(*bindyv1beta1.NSRecordList)) },
		RecordName: func(o object) string { return o.(*bindyv1beta1.NSRecord).Spec.Name },
		TTL:        func(o object) int32 { return o.(*bindyv1beta1.NSRecord).Spec.TTL },
		BuildRR: func(o object, zone string, ttl int32) ([]dns.RR, error) {
			r := o.(*bindyv1beta1.NSRecord)
			return []dns.RR{dnsupdate.NewNSRecord(r.Spec.Name, zone, r.Spec.Server, ttl)}, nil
		},
	}
}

func nsRecordItems(l *bindyv1beta1.NSRecordList) []object {
	out := make([]object, len(l.Items))
	for i := range l.Items {
		out[i] = &l.Items[i]
	}
	return out
}

func srvRecordDescriptor() Descriptor {
	return Descriptor{
		Kind:       "SRVRecord",
		Finalizer:  constant.FinalizerSRVRecord,
		DNSType:    dns.TypeSRV,
		NewObject:  func() object { return &bindyv1beta1.SRVRecord{} },
		NewList:    func() client.ObjectList { return &bindyv1beta1.SRVRecordList{} },
		ListItems:  func(l client.ObjectList) []object { return srvRecordItems(l.(*bindyv1beta1.SRVRecordList)) },
		RecordName: func(o object) string { return o.(*bindyv1beta1.SRVRecord).Spec.Name },
		TTL:        func(o object) int32 { return o.(*bindyv1beta1.SRVRecord).Spec.TTL },
		BuildRR: func(o object, zone string, ttl int32) ([]dns.RR, error) {
			r := o.(*bindyv1beta1.SRVRecord)
			return []dns.RR{dnsupdate.NewSRVRecord(r.Spec.Name, zone, r.Spec.Priority, r.Spec.Weight, r.Spec.Port, r.Spec.Target, ttl)}, nil
		},
	}
}

func srvRecordItems(l *bindyv1beta1.SRVRecordList) []object {
	out := make([]object, len(l.Items))
	for i := range l.Items {
		out[i] = &l.Items[i]
	}
	return out
}

func caaRecordDescriptor() Descriptor {
	return Descriptor{
		Kind:       "CAARecord",
		Finalizer:  constant.FinalizerCAARecord,
		DNSType:    dns.TypeCAA,
		NewObject:  func() object { return &bindyv1beta1.CAARecord{} },
		NewList:    func() client.ObjectList { return &bindyv1beta1.CAARecordList{} },
		ListItems:  func(l client.ObjectList) []object { return caaRecordItems(l.(*bindyv1beta1.CAARecordList)) },
		RecordName: func(o object) string { return o.(*bindyv1beta1.CAARecord).Spec.Name },
		TTL:        func(o object) int32 { return o.(*bindyv1beta1.CAARecord).Spec.TTL },
		BuildRR: func(o object, zone string, ttl int32) ([]dns.RR, error) {
			r := o.(*bindyv1beta1.CAARecord)
			return []dns.RR{dnsupdate.NewCAARecord(r.Spec.Name, zone, r.Spec.Flag, r.Spec.Tag, r.Spec.Value, ttl)}, nil
		},
	}
}

func caaRecordItems(l *bindyv1beta1.CAARecordList) []object {
	out := make([]object, len(l.Items))
	for i := range l.Items {
		out[i] = &l.Items[i]
	}
	return out
}
