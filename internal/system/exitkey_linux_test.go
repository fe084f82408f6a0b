//go:build linux

package system

import (
	"encoding/binary"
	"testing"
)

func event(l eventLayout, typ, code uint16, value int32) []byte {
	rec := make([]byte, l.size)
	binary.LittleEndian.PutUint16(rec[l.timeval:], typ)
	binary.LittleEndian.PutUint16(rec[l.timeval+2:], code)
	binary.LittleEndian.PutUint32(rec[l.timeval+4:], uint32(value))
	return rec
}

func TestEventLayoutPressed(t *testing.T) {
	l := newEventLayout()
	cases := []struct {
		name string
		buf  []byte
		want bool
	}{
		{"key down", event(l, evKey, KeyF4, 1), true},
		{"key up", event(l, evKey, KeyF4, 0), false},
		{"autorepeat", event(l, evKey, KeyF4, 2), false},
		{"other key", event(l, evKey, 30, 1), false},
		{"sync then key", append(event(l, 0, 0, 0), event(l, evKey, KeyF4, 1)...), true},
		{"truncated", event(l, evKey, KeyF4, 1)[:l.size-1], false},
	}
	for _, tc := range cases {
		if got := l.pressed(tc.buf, KeyF4); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}
