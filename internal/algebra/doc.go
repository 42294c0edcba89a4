// Package algebra implements a finite symbolic algebra whose "+1" relation is
// supplied by the user instead of being fixed.
//
// An algebra of size N works over the first N lowercase letters. The letter
// 'a' is the additive identity and 'b' the multiplicative identity. A
// successor rule such as "bcdefgha" or "bhg{e,c}afd" says, for each symbol in
// alphabet order, which symbol (or brace group of co-equal symbols) adding
// one yields. BuildHasse linearizes that cyclic relation into a position map
// (the Hasse chain), and every arithmetic operation is derived from it:
//
//   - single-digit add/multiply (with carry counts), subtract, divide, power,
//     gcd and lcm, all tabulated once when the algebra is constructed;
//   - signed multi-digit positional arithmetic on top of those tables,
//     including division with remainder, modulo, power, gcd and lcm;
//   - an optional bounded mode that reports overflow with a sentinel;
//   - a formatter that renders digits as their equivalence groups.
//
// An *Algebra is immutable once New returns. Changing the rule or the bounded
// flag produces a new value, so a single instance may be shared by any number
// of concurrent readers.
package algebra
