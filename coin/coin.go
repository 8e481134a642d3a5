package coin

import (
	"encoding/json"
	"fmt"
	"math/big"
	"regexp"

	"github.com/gogo/protobuf/proto"
	"github.com/theconstruct/settle/errors"
)

//-------------- Coin -----------------------

var (
	// IsDenom is the RegExp to ensure valid denominations
	IsDenom = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9/:._\-]{2,127}$`).MatchString

	isAmount = regexp.MustCompile(`^-?[0-9]+$`).MatchString

	// humanCoin is the "<amount><denom>" format, as used in event attributes
	humanCoin = regexp.MustCompile(`^\s*([0-9]+)\s*([a-zA-Z][a-zA-Z0-9/:._\-]{2,127})\s*$`)

	// MaxAmount is the largest amount a single coin can carry (u128).
	MaxAmount = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
)

// Coin is an amount of a single denomination. The amount is kept as a decimal
// string so that the whole u128 range survives every codec.
type Coin struct {
	Denom  string `protobuf:"bytes,1,opt,name=denom,proto3" json:"denom"`
	Amount string `protobuf:"bytes,2,opt,name=amount,proto3" json:"amount"`
}

func (m *Coin) Reset()      { *m = Coin{} }
func (*Coin) ProtoMessage() {}

var _ proto.Message = (*Coin)(nil)

// NewCoin creates a new coin object
func NewCoin(amount uint64, denom string) Coin {
	return Coin{
		Denom:  denom,
		Amount: fmt.Sprint(amount),
	}
}

// NewCoinp returns a pointer to a new coin.
func NewCoinp(amount uint64, denom string) *Coin {
	c := NewCoin(amount, denom)
	return &c
}

// ID returns the coin denomination.
func (c Coin) ID() string {
	return c.Denom
}

// BigInt returns the amount as a number.
func (c Coin) BigInt() (*big.Int, error) {
	if !isAmount(c.Amount) {
		return nil, errors.Wrapf(errors.ErrInvalidAmount, "%q is not an integer", c.Amount)
	}
	n, ok := new(big.Int).SetString(c.Amount, 10)
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidAmount, "%q is not an integer", c.Amount)
	}
	if new(big.Int).Abs(n).Cmp(MaxAmount) > 0 {
		return nil, errors.Wrapf(errors.ErrOverflow, "amount %s", c.Amount)
	}
	return n, nil
}

// IsPositive returns true if the amount is a valid number greater than zero.
func (c Coin) IsPositive() bool {
	n, err := c.BigInt()
	return err == nil && n.Sign() > 0
}

// Compare returns 1 if c is bigger than o, -1 if smaller and 0 if both
// amounts are equal. Coins of different denominations or invalid amounts
// are not comparable and always return -1.
func (c Coin) Compare(o Coin) int {
	if c.Denom != o.Denom {
		return -1
	}
	a, err := c.BigInt()
	if err != nil {
		return -1
	}
	b, err := o.BigInt()
	if err != nil {
		return -1
	}
	return a.Cmp(b)
}

// Equals returns true if both coins carry the same amount of the same
// denomination.
func (c Coin) Equals(o Coin) bool {
	return c.Compare(o) == 0
}

// Clone returns a copy of the coin.
func (c *Coin) Clone() *Coin {
	if c == nil {
		return nil
	}
	cpy := *c
	return &cpy
}

// Validate ensures the coin is well formed: a known denomination format and
// an integer amount that fits in 128 bits. The amount sign is not checked
// here, use IsPositive for that.
func (c Coin) Validate() error {
	if !IsDenom(c.Denom) {
		return errors.Wrapf(errors.ErrInvalidInput, "invalid denomination %q", c.Denom)
	}
	_, err := c.BigInt()
	return err
}

// UnmarshalJSON accepts both the object notation and the human readable
// "<amount><denom>" string, which is handy in genesis files.
func (c *Coin) UnmarshalJSON(raw []byte) error {
	var human string
	if err := json.Unmarshal(raw, &human); err == nil {
		parsed, err := ParseHumanFormat(human)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	}

	// alias drops the methods, so this does not recurse
	type coinAlias Coin
	var obj coinAlias
	if err := json.Unmarshal(raw, &obj); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	*c = Coin(obj)
	return nil
}

// String returns the "<amount><denom>" representation, for example 100usd.
func (c Coin) String() string {
	if c.Amount == "" && c.Denom == "" {
		return "0"
	}
	return c.Amount + c.Denom
}

// ParseHumanFormat parses the "<amount><denom>" representation of a coin.
func ParseHumanFormat(h string) (Coin, error) {
	m := humanCoin.FindStringSubmatch(h)
	if m == nil {
		return Coin{}, errors.Wrapf(errors.ErrInvalidInput, "invalid coin format %q", h)
	}
	// normalize leading zeros through big.Int
	c := Coin{Denom: m[2], Amount: m[1]}
	n, err := c.BigInt()
	if err != nil {
		return Coin{}, err
	}
	c.Amount = n.String()
	return c, nil
}

// Set implements flag.Value so a coin can be passed as a command line flag.
func (c *Coin) Set(raw string) error {
	parsed, err := ParseHumanFormat(raw)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
