package models

import (
	"cmp"
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// URL holds the four components of a URL exactly as they were supplied.
// Nothing is parsed or validated. A nil Port or Path means the component is absent.
//
// Compare URLs with Equal, not ==: the optional fields are pointers.
type URL struct {
	Protocol string
	HostName string
	Port     *uint16
	Path     *string
}

// Port returns a present port value for use with NewURL.
func Port(p uint16) *uint16 { return &p }

// Path returns a present path value for use with NewURL.
func Path(s string) *string { return &s }

// NewURL creates a URL from its components.
//
// The record keeps its own copies of port and path, so later writes through the
// caller's pointers are not observed by the record.
func NewURL(protocol, hostName string, port *uint16, path *string) URL {
	return URL{
		Protocol: protocol,
		HostName: hostName,
		Port:     clonePtr(port),
		Path:     clonePtr(path),
	}
}

// Clone returns a copy of u that shares no storage with it.
func (u URL) Clone() URL {
	return NewURL(u.Protocol, u.HostName, u.Port, u.Path)
}

// Equal reports whether all four components of u and other match.
// Two absent components are equal; an absent component never equals a present one.
func (u URL) Equal(other URL) bool {
	return u.Protocol == other.Protocol &&
		u.HostName == other.HostName &&
		optionalEqual(u.Port, other.Port) &&
		optionalEqual(u.Path, other.Path)
}

// Compare orders URLs lexicographically by protocol, host name, port and path.
// Absent components sort before present ones. The result is -1, 0 or +1.
func (u URL) Compare(other URL) int {
	if c := strings.Compare(u.Protocol, other.Protocol); c != 0 {
		return c
	}
	if c := strings.Compare(u.HostName, other.HostName); c != 0 {
		return c
	}
	if c := optionalCompare(u.Port, other.Port); c != 0 {
		return c
	}
	return optionalCompare(u.Path, other.Path)
}

// Hash returns a 64-bit xxhash of u. Equal URLs have equal hashes.
//
// Every string is length-prefixed and every optional component carries a presence
// byte, so distinct component tuples never share an encoding.
func (u URL) Hash() uint64 {
	d := xxhash.New()
	writeString(d, u.Protocol)
	writeString(d, u.HostName)
	if u.Port == nil {
		d.Write([]byte{0})
	} else {
		var buf [3]byte
		buf[0] = 1
		binary.BigEndian.PutUint16(buf[1:], *u.Port)
		d.Write(buf[:])
	}
	if u.Path == nil {
		d.Write([]byte{0})
	} else {
		d.Write([]byte{1})
		writeString(d, *u.Path)
	}
	return d.Sum64()
}

// IncrPort increments a present port in place and reports whether it did.
// An absent port, or one already at 65535, is left alone.
func (u *URL) IncrPort() bool {
	if u.Port == nil || *u.Port == math.MaxUint16 {
		return false
	}
	// Swap in a fresh pointer: a plain struct copy of u may still hold the old one.
	next := *u.Port + 1
	u.Port = &next
	return true
}

// String renders u in the NullEmpty style, e.g.
//
//	Url { protocol: "http", host_name: "www.google.com", port: 80, path: "" }
func (u URL) String() string {
	return u.Debug(NullEmpty)
}

// Debug renders u with the given treatment of absent components.
func (u URL) Debug(style NullStyle) string {
	var b strings.Builder
	b.WriteString("Url { protocol: ")
	b.WriteString(strconv.Quote(u.Protocol))
	b.WriteString(", host_name: ")
	b.WriteString(strconv.Quote(u.HostName))
	b.WriteString(", port: ")
	if u.Port != nil {
		b.WriteString(strconv.FormatUint(uint64(*u.Port), 10))
	} else {
		b.WriteString(nullLiteral)
	}
	b.WriteString(", path: ")
	switch {
	case u.Path != nil:
		b.WriteString(strconv.Quote(*u.Path))
	case style == NullEmpty:
		b.WriteString(`""`)
	default:
		b.WriteString(nullLiteral)
	}
	b.WriteString(" }")
	return b.String()
}

const nullLiteral = "null"

// NullStyle selects how Debug renders an absent path.
type NullStyle int

const (
	// NullEmpty renders an absent path as "". An absent port is still rendered as null.
	NullEmpty NullStyle = iota
	// NullExplicit renders every absent component as null.
	NullExplicit
)

func (s NullStyle) String() string {
	switch s {
	case NullEmpty:
		return "empty"
	case NullExplicit:
		return "explicit"
	default:
		return fmt.Sprintf("NullStyle(%d)", int(s))
	}
}

// ParseNullStyle maps "empty" or "explicit" (any case) to a NullStyle.
func ParseNullStyle(s string) (NullStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "empty":
		return NullEmpty, nil
	case "explicit":
		return NullExplicit, nil
	default:
		return NullEmpty, fmt.Errorf("unknown null style %q (want empty or explicit)", s)
	}
}

func writeString(d *xxhash.Digest, s string) {
	var n [8]byte
	binary.BigEndian.PutUint64(n[:], uint64(len(s)))
	d.Write(n[:])
	d.WriteString(s)
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func optionalEqual[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func optionalCompare[T cmp.Ordered](a, b *T) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return cmp.Compare(*a, *b)
}
