package deserialize

import (
	"fmt"
	"net/netip"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-decoder/pkg/cursor"
)

// NetAddress is a peer address record.
type NetAddress struct {
	Version  int32
	Time     uint32
	Services uint64
	Reserved [12]byte
	IP       netip.Addr
	Port     uint16
}

// LastSeen returns the record timestamp in UTC.
func (a NetAddress) LastSeen() time.Time {
	return time.Unix(int64(a.Time), 0).UTC()
}

func (a NetAddress) String() string {
	return fmt.Sprintf("%s:%d (lastseen: %s)", a.IP, a.Port, a.LastSeen().Format(time.ANSIC))
}

// ParseNetAddress reads a peer address record. The port is stored in network
// byte order.
func ParseNetAddress(c *cursor.Cursor) (NetAddress, error) {
	var (
		a   NetAddress
		err error
	)
	if a.Version, err = c.ReadInt32(); err != nil {
		return a, fmt.Errorf("address version: %w", err)
	}
	if a.Time, err = c.ReadUint32(); err != nil {
		return a, fmt.Errorf("address time: %w", err)
	}
	if a.Services, err = c.ReadUint64(); err != nil {
		return a, fmt.Errorf("address services: %w", err)
	}
	reserved, err := c.ReadBytes(len(a.Reserved))
	if err != nil {
		return a, fmt.Errorf("address reserved: %w", err)
	}
	copy(a.Reserved[:], reserved)

	ip, err := c.ReadBytes(4)
	if err != nil {
		return a, fmt.Errorf("address ip: %w", err)
	}
	a.IP = netip.AddrFrom4([4]byte(ip))

	port, err := c.ReadUint16()
	if err != nil {
		return a, fmt.Errorf("address port: %w", err)
	}
	a.Port = port>>8 | port<<8
	return a, nil
}
