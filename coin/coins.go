package coin

import (
	"math/big"
	"strings"

	"github.com/theconstruct/settle/errors"
)

// Coins is an ordered list of coins. The order is the one chosen by the
// creator and is preserved by every operation.
type Coins []*Coin

// Clone returns a deep copy of the list.
func (cs Coins) Clone() Coins {
	if cs == nil {
		return nil
	}
	res := make(Coins, len(cs))
	for i, c := range cs {
		res[i] = c.Clone()
	}
	return res
}

// IsEmpty returns true if there are no coins.
func (cs Coins) IsEmpty() bool {
	return len(cs) == 0
}

// IsPositive returns true if there is at least one coin and every coin
// carries a positive amount.
func (cs Coins) IsPositive() bool {
	if len(cs) == 0 {
		return false
	}
	for _, c := range cs {
		if c == nil || !c.IsPositive() {
			return false
		}
	}
	return true
}

// Validate requires every coin to be well formed and every denomination to
// be used only once. Amount signs are not checked.
func (cs Coins) Validate() error {
	seen := make(map[string]struct{}, len(cs))
	for i, c := range cs {
		if c == nil {
			return errors.Wrapf(errors.ErrEmpty, "coin %d", i)
		}
		if err := c.Validate(); err != nil {
			return errors.Wrapf(err, "coin %d", i)
		}
		if _, ok := seen[c.Denom]; ok {
			return errors.Wrapf(errors.ErrDuplicate, "denomination %q", c.Denom)
		}
		seen[c.Denom] = struct{}{}
	}
	return nil
}

// Equals returns true if both lists contain the same coins in the same
// order.
func (cs Coins) Equals(o Coins) bool {
	if len(cs) != len(o) {
		return false
	}
	for i := range cs {
		if cs[i] == nil || o[i] == nil {
			if cs[i] != o[i] {
				return false
			}
			continue
		}
		if !cs[i].Equals(*o[i]) {
			return false
		}
	}
	return true
}

// Totals sums the amounts per denomination.
func (cs Coins) Totals() (map[string]*big.Int, error) {
	res := make(map[string]*big.Int, len(cs))
	for _, c := range cs {
		n, err := c.BigInt()
		if err != nil {
			return nil, err
		}
		if total, ok := res[c.Denom]; ok {
			total.Add(total, n)
		} else {
			res[c.Denom] = n
		}
	}
	return res, nil
}

// String returns the coins in the "100usd, 5eur" format.
func (cs Coins) String() string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		if c == nil {
			parts[i] = "<nil>"
			continue
		}
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}

// ParseCoins parses a list of coins in the human readable format, separated
// by commas.
func ParseCoins(raw string) (Coins, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var res Coins
	for _, part := range strings.Split(raw, ",") {
		c, err := ParseHumanFormat(part)
		if err != nil {
			return nil, err
		}
		res = append(res, &c)
	}
	return res, nil
}
