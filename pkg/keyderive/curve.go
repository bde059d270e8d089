package keyderive

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// scalarFromKey loads k into a scalar mod n and rejects 0 and values >= n.
// No curve arithmetic happens here.
func scalarFromKey(k *PrivateKey) (*secp256k1.ModNScalar, error) {
	var s secp256k1.ModNScalar
	if overflow := s.SetBytes((*[32]byte)(k)); overflow != 0 {
		return nil, makeError(ErrKeyOutOfRange, "private key is not less than the curve order")
	}
	if s.IsZero() {
		return nil, makeError(ErrKeyOutOfRange, "private key is zero")
	}
	return &s, nil
}

// Multiply computes k·G on secp256k1.
//
// Args:
//   - k: Private key scalar in [1, n-1]
//
// Returns:
//   - Affine point k·G, verified to lie on the curve
func Multiply(k *PrivateKey) (*CurvePoint, error) {
	scalar, err := scalarFromKey(k)
	if err != nil {
		return nil, err
	}
	defer scalar.Zero()

	var result secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(scalar, &result)
	if result.Z.Normalize().IsZero() {
		return nil, makeError(ErrPointNotOnCurve, "scalar multiplication produced the point at infinity")
	}
	result.ToAffine()

	point := &CurvePoint{}
	point.X.Set(&result.X).Normalize()
	point.Y.Set(&result.Y).Normalize()

	if !IsOnCurve(point) {
		return nil, makeError(ErrPointNotOnCurve, "computed public key point is not on the curve")
	}
	return point, nil
}

// IsOnCurve reports whether p satisfies y² = x³ + 7 (mod p).
func IsOnCurve(p *CurvePoint) bool {
	var x, y secp256k1.FieldVal
	x.Set(&p.X).Normalize()
	y.Set(&p.Y).Normalize()

	var lhs, rhs secp256k1.FieldVal
	lhs.SquareVal(&y).Normalize()
	rhs.SquareVal(&x).Mul(&x).AddInt(7).Normalize()
	return lhs.Equals(&rhs)
}
