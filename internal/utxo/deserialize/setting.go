package deserialize

import (
	"fmt"
	"strings"

	"github.com/goodnatureofminers/blockinsight7000-decoder/pkg/cursor"
)

// UnknownSetting is the value reported for setting names without a known encoding.
const UnknownSetting = "unknown setting"

// ParseSetting reads the value of a legacy wallet setting. The encoding is
// chosen by name: f* flags are booleans, addr* entries are peer addresses,
// nTransactionFee is an int64 and nLimitProcessors an int32. addrIncoming is
// stored empty by encrypting clients and reads as "". Unknown names consume
// nothing and return UnknownSetting.
func ParseSetting(c *cursor.Cursor, name string) (any, error) {
	switch {
	case strings.HasPrefix(name, "f"):
		v, err := c.ReadBool()
		if err != nil {
			return nil, fmt.Errorf("setting %s: %w", name, err)
		}
		return v, nil
	case name == "addrIncoming":
		return "", nil
	case strings.HasPrefix(name, "addr"):
		addr, err := ParseNetAddress(c)
		if err != nil {
			return nil, fmt.Errorf("setting %s: %w", name, err)
		}
		return addr, nil
	case name == "nTransactionFee":
		v, err := c.ReadInt64()
		if err != nil {
			return nil, fmt.Errorf("setting %s: %w", name, err)
		}
		return v, nil
	case name == "nLimitProcessors":
		v, err := c.ReadInt32()
		if err != nil {
			return nil, fmt.Errorf("setting %s: %w", name, err)
		}
		return v, nil
	default:
		return UnknownSetting, nil
	}
}
