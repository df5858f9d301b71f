package types

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
)

// Int256Size is the width of an Int256 in bytes.
const Int256Size = 32

// ErrArithmeticFault is returned by checked arithmetic on overflow,
// division by zero and other undefined results.
var ErrArithmeticFault = errors.New("arithmetic fault")

// Int256 is a signed 256-bit integer. It is kept as its 32-byte
// little-endian two's-complement representation, so the zero value
// of the type is the number zero and comparison is plain byte
// comparison. All balances, supplies and amounts crossing the storage
// or event boundary use this type.
type Int256 struct {
	b [Int256Size]byte
}

var (
	one256      = NewInt256(1)
	minusOne256 = NewInt256(-1)

	twoPow256   = new(big.Int).Lsh(big.NewInt(1), 256)
	maxInt256Bi = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 255), big.NewInt(1))
	minInt256Bi = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 255))
)

// Int256Zero returns the number zero.
func Int256Zero() Int256 { return Int256{} }

// Int256One returns the number one.
func Int256One() Int256 { return one256 }

// Int256MinusOne returns the number minus one.
func Int256MinusOne() Int256 { return minusOne256 }

// Int256Max returns the largest representable value, 2^255-1.
func Int256Max() Int256 {
	var v Int256
	for i := 0; i < Int256Size-1; i++ {
		v.b[i] = 0xff
	}
	v.b[Int256Size-1] = 0x7f
	return v
}

// Int256Min returns the smallest representable value, -2^255.
func Int256Min() Int256 {
	var v Int256
	v.b[Int256Size-1] = 0x80
	return v
}

// NewInt256 converts an int64 to an Int256.
func NewInt256(n int64) Int256 {
	var v Int256
	u := uint64(n)
	for i := 0; i < 8; i++ {
		v.b[i] = byte(u >> (8 * i))
	}
	if n < 0 {
		for i := 8; i < Int256Size; i++ {
			v.b[i] = 0xff
		}
	}
	return v
}

// Int256FromUint64 converts a uint64 to an Int256.
func Int256FromUint64(n uint64) Int256 {
	var v Int256
	for i := 0; i < 8; i++ {
		v.b[i] = byte(n >> (8 * i))
	}
	return v
}

// Int256FromBig converts a big integer to an Int256. An error wrapping
// ErrArithmeticFault is returned when x does not fit into 256 bits.
func Int256FromBig(x *big.Int) (Int256, error) {
	if x.Cmp(maxInt256Bi) > 0 || x.Cmp(minInt256Bi) < 0 {
		return Int256{}, fmt.Errorf("%w: value out of 256-bit range", ErrArithmeticFault)
	}
	v := x
	if x.Sign() < 0 {
		v = new(big.Int).Add(x, twoPow256)
	}
	var out Int256
	bs := v.Bytes()
	for i := range bs {
		out.b[len(bs)-1-i] = bs[i]
	}
	return out, nil
}

// Int256FromBytes decodes a little-endian two's-complement encoding of
// up to 32 bytes, the inverse of Bytes. An empty slice decodes to zero.
func Int256FromBytes(data []byte) (Int256, error) {
	if len(data) > Int256Size {
		return Int256{}, fmt.Errorf("integer encoding is too long: %d bytes", len(data))
	}
	var v Int256
	copy(v.b[:], data)
	if len(data) > 0 && data[len(data)-1]&0x80 != 0 {
		for i := len(data); i < Int256Size; i++ {
			v.b[i] = 0xff
		}
	}
	return v, nil
}

// Big converts the value to a big integer.
func (a Int256) Big() *big.Int {
	buf := make([]byte, Int256Size)
	for i := range a.b {
		buf[Int256Size-1-i] = a.b[i]
	}
	x := new(big.Int).SetBytes(buf)
	if a.b[Int256Size-1]&0x80 != 0 {
		x.Sub(x, twoPow256)
	}
	return x
}

// bits returns the raw two's-complement bit pattern as an unsigned
// 256-bit integer.
func (a Int256) bits() *uint256.Int {
	buf := make([]byte, Int256Size)
	for i := range a.b {
		buf[Int256Size-1-i] = a.b[i]
	}
	return new(uint256.Int).SetBytes(buf)
}

func int256FromBits(u *uint256.Int) Int256 {
	var v Int256
	be := u.Bytes32()
	for i := range be {
		v.b[Int256Size-1-i] = be[i]
	}
	return v
}

// Bytes returns the minimum-length little-endian two's-complement
// encoding of the value. Zero encodes as a single 0x00 byte.
func (a Int256) Bytes() []byte {
	if a.IsZero() {
		return []byte{0x00}
	}
	neg := a.IsNegative()
	filler := byte(0x00)
	if neg {
		filler = 0xff
	}
	end := Int256Size
	for end > 1 && a.b[end-1] == filler && (a.b[end-2]&0x80 != 0) == neg {
		end--
	}
	out := make([]byte, end)
	copy(out, a.b[:end])
	return out
}

// Int64 returns the low 64 bits of the value interpreted as a signed
// integer. The second result reports whether the value fits.
func (a Int256) Int64() (int64, bool) {
	bi := a.Big()
	return bi.Int64(), bi.IsInt64()
}

// IsZero reports whether the value is zero.
func (a Int256) IsZero() bool { return a == Int256{} }

// IsOne reports whether the value is one.
func (a Int256) IsOne() bool { return a == one256 }

// IsNegative reports whether the value is below zero.
func (a Int256) IsNegative() bool { return a.b[Int256Size-1]&0x80 != 0 }

// IsPositive reports whether the value is above zero.
func (a Int256) IsPositive() bool { return !a.IsNegative() && !a.IsZero() }

// Sign returns -1, 0 or 1 depending on the sign of the value.
func (a Int256) Sign() int {
	if a.IsNegative() {
		return -1
	}
	if a.IsZero() {
		return 0
	}
	return 1
}

// Equals reports whether two values are the same number.
func (a Int256) Equals(other Int256) bool { return a == other }

// Cmp compares two values and returns -1, 0 or 1.
func (a Int256) Cmp(other Int256) int {
	an, bn := a.IsNegative(), other.IsNegative()
	if an != bn {
		if an {
			return -1
		}
		return 1
	}
	// Same sign, the two's-complement pattern orders naturally.
	for i := Int256Size - 1; i >= 0; i-- {
		if a.b[i] != other.b[i] {
			if a.b[i] < other.b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Lt reports a < other.
func (a Int256) Lt(other Int256) bool { return a.Cmp(other) < 0 }

// Le reports a <= other.
func (a Int256) Le(other Int256) bool { return a.Cmp(other) <= 0 }

// Gt reports a > other.
func (a Int256) Gt(other Int256) bool { return a.Cmp(other) > 0 }

// Ge reports a >= other.
func (a Int256) Ge(other Int256) bool { return a.Cmp(other) >= 0 }

// Add returns a+other, failing with ErrArithmeticFault on overflow.
func (a Int256) Add(other Int256) (Int256, error) {
	return Int256FromBig(new(big.Int).Add(a.Big(), other.Big()))
}

// Sub returns a-other, failing with ErrArithmeticFault on overflow.
func (a Int256) Sub(other Int256) (Int256, error) {
	return Int256FromBig(new(big.Int).Sub(a.Big(), other.Big()))
}

// Mul returns a*other, failing with ErrArithmeticFault on overflow.
func (a Int256) Mul(other Int256) (Int256, error) {
	return Int256FromBig(new(big.Int).Mul(a.Big(), other.Big()))
}

// Div returns a/other truncated towards zero. Division by zero and
// MinValue/-1 fail with ErrArithmeticFault.
func (a Int256) Div(other Int256) (Int256, error) {
	if other.IsZero() {
		return Int256{}, fmt.Errorf("%w: division by zero", ErrArithmeticFault)
	}
	return Int256FromBig(new(big.Int).Quo(a.Big(), other.Big()))
}

// Mod returns the remainder of a/other with the sign of a. A zero
// modulus fails with ErrArithmeticFault.
func (a Int256) Mod(other Int256) (Int256, error) {
	if other.IsZero() {
		return Int256{}, fmt.Errorf("%w: modulus is zero", ErrArithmeticFault)
	}
	return Int256FromBig(new(big.Int).Rem(a.Big(), other.Big()))
}

// Neg returns -a, failing with ErrArithmeticFault for MinValue.
func (a Int256) Neg() (Int256, error) {
	return Int256FromBig(new(big.Int).Neg(a.Big()))
}

// Abs returns |a|, failing with ErrArithmeticFault for MinValue.
func (a Int256) Abs() (Int256, error) {
	return Int256FromBig(new(big.Int).Abs(a.Big()))
}

// Pow returns a**exp, failing with ErrArithmeticFault on overflow.
func (a Int256) Pow(exp uint32) (Int256, error) {
	res := Int256One()
	sq := a
	for {
		var err error
		if exp&1 == 1 {
			if res, err = res.Mul(sq); err != nil {
				return Int256{}, err
			}
		}
		if exp >>= 1; exp == 0 {
			return res, nil
		}
		if sq, err = sq.Mul(sq); err != nil {
			return Int256{}, err
		}
	}
}

// Sqrt returns the integer square root of a. A negative value fails
// with ErrArithmeticFault.
func (a Int256) Sqrt() (Int256, error) {
	if a.IsNegative() {
		return Int256{}, fmt.Errorf("%w: square root of negative value", ErrArithmeticFault)
	}
	return Int256FromBig(new(big.Int).Sqrt(a.Big()))
}

// Shl shifts the bit pattern left by n bits. Shifts of 256 or more
// fail with ErrArithmeticFault.
func (a Int256) Shl(n uint32) (Int256, error) {
	if n >= 256 {
		return Int256{}, fmt.Errorf("%w: shift of %d bits", ErrArithmeticFault, n)
	}
	u := a.bits()
	return int256FromBits(u.Lsh(u, uint(n))), nil
}

// Shr performs an arithmetic right shift by n bits, preserving the
// sign. Shifts of 256 or more fail with ErrArithmeticFault.
func (a Int256) Shr(n uint32) (Int256, error) {
	if n >= 256 {
		return Int256{}, fmt.Errorf("%w: shift of %d bits", ErrArithmeticFault, n)
	}
	u := a.bits()
	return int256FromBits(u.SRsh(u, uint(n))), nil
}

// MulMod returns (a*other) mod m. A zero modulus fails with
// ErrArithmeticFault. The intermediate product is not range-limited.
func (a Int256) MulMod(other, m Int256) (Int256, error) {
	if m.IsZero() {
		return Int256{}, fmt.Errorf("%w: modulus is zero", ErrArithmeticFault)
	}
	prod := new(big.Int).Mul(a.Big(), other.Big())
	return Int256FromBig(prod.Rem(prod, m.Big()))
}

// ModPow returns a**e mod m. A zero modulus fails with
// ErrArithmeticFault. An exponent of -1 computes the modular inverse,
// other negative exponents fail.
func (a Int256) ModPow(e, m Int256) (Int256, error) {
	if m.IsZero() {
		return Int256{}, fmt.Errorf("%w: modulus is zero", ErrArithmeticFault)
	}
	if e.IsNegative() {
		if !e.Equals(minusOne256) {
			return Int256{}, fmt.Errorf("%w: negative exponent", ErrArithmeticFault)
		}
		inv := new(big.Int).ModInverse(a.Big(), new(big.Int).Abs(m.Big()))
		if inv == nil {
			return Int256{}, fmt.Errorf("%w: no modular inverse", ErrArithmeticFault)
		}
		return Int256FromBig(inv)
	}
	return Int256FromBig(new(big.Int).Exp(a.Big(), e.Big(), m.Big()))
}

// String implements the fmt.Stringer interface.
func (a Int256) String() string {
	return a.Big().String()
}

// MarshalJSON implements the json.Marshaler interface.
func (a Int256) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (a *Int256) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	bi, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return fmt.Errorf("invalid integer: %s", s)
	}
	v, err := Int256FromBig(bi)
	if err != nil {
		return err
	}
	*a = v
	return nil
}
