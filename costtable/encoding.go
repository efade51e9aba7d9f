package costtable

import (
	"fmt"

	"github.com/spacemeshos/go-scale"

	"github.com/spacemeshos/go-costtables/codec"
	"github.com/spacemeshos/go-costtables/hash"
)

// MaxTiers is the maximal number of tiers per dimension in the encoded table.
const MaxTiers = 1024

// EncodeScale implements scale codec interface.
func (t *Tier) EncodeScale(enc *scale.Encoder) (total int, err error) {
	{
		n, err := scale.EncodeCompact64(enc, t.Start)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeCompact64(enc, t.Cost)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// DecodeScale implements scale codec interface.
func (t *Tier) DecodeScale(dec *scale.Decoder) (total int, err error) {
	{
		field, n, err := scale.DecodeCompact64(dec)
		if err != nil {
			return total, err
		}
		total += n
		t.Start = field
	}
	{
		field, n, err := scale.DecodeCompact64(dec)
		if err != nil {
			return total, err
		}
		total += n
		t.Cost = field
	}
	return total, nil
}

// EncodeScale implements scale codec interface.
func (t *Tiers) EncodeScale(enc *scale.Encoder) (total int, err error) {
	return scale.EncodeStructSliceWithLimit(enc, t.tiers, MaxTiers)
}

// DecodeScale implements scale codec interface.
// Tiers must be encoded in strictly increasing order of their start.
func (t *Tiers) DecodeScale(dec *scale.Decoder) (total int, err error) {
	field, n, err := scale.DecodeStructSliceWithLimit[Tier](dec, MaxTiers)
	if err != nil {
		return n, err
	}
	for i := 1; i < len(field); i++ {
		if field[i].Start <= field[i-1].Start {
			return n, fmt.Errorf("%w: %d after %d", ErrUnsortedTiers, field[i].Start, field[i-1].Start)
		}
	}
	t.tiers = field
	return n, nil
}

// EncodeScale implements scale codec interface.
// Only tiers are encoded, defaults are fixed per dimension.
func (t *Table) EncodeScale(enc *scale.Encoder) (total int, err error) {
	for _, tiers := range []*Tiers{&t.instructions, &t.stackHeight, &t.stackSize} {
		n, err := tiers.EncodeScale(enc)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// DecodeScale implements scale codec interface.
func (t *Table) DecodeScale(dec *scale.Decoder) (total int, err error) {
	var dims [3]Tiers
	for i := range dims {
		n, err := dims[i].DecodeScale(dec)
		if err != nil {
			return total, err
		}
		total += n
	}
	*t = *NewTableFromTiers(dims[0], dims[1], dims[2])
	return total, nil
}

// Hash returns fingerprint of the encoded table.
// Tables that charge the same for every counter have the same fingerprint.
func (t *Table) Hash() (hash.Hash32, error) {
	hasher := hash.GetHasher()
	defer hash.PutHasher(hasher)
	if _, err := codec.EncodeTo(hasher, t); err != nil {
		return hash.Hash32{}, fmt.Errorf("hash table: %w", err)
	}
	var rst hash.Hash32
	hasher.Sum(rst[:0])
	return rst, nil
}
