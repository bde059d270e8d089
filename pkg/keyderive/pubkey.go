package keyderive

const (
	pubKeyEvenPrefix = 0x02
	pubKeyOddPrefix  = 0x03
)

// Compress serializes p as a 33-byte compressed public key.  The prefix is
// 0x02 when y is even and 0x03 when y is odd.
func Compress(p *CurvePoint) PublicKey {
	var y = p.Y
	y.Normalize()

	var pub PublicKey
	pub[0] = pubKeyEvenPrefix
	if y.IsOdd() {
		pub[0] = pubKeyOddPrefix
	}

	var x = p.X
	x.Normalize()
	x.PutBytesUnchecked(pub[1:])
	return pub
}
