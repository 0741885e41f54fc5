package schnorr

import (
	"math/big"
)

// fixedBaseWindow is the window width in bits of a FixedBaseTable
const fixedBaseWindow = 4

// FixedBaseTable precomputes j * 2^(w*i) * G for every window i and digit j so
// multiplication by the fixed point G needs one addition per window and no
// doublings.
type FixedBaseTable struct {
	base  Point
	bits  int
	table [][]Point
}

// NewFixedBaseTable builds the table for scalars of up to bits bits
func NewFixedBaseTable(base Point, bits int) *FixedBaseTable {
	windows := (bits + fixedBaseWindow - 1) / fixedBaseWindow
	digits := 1 << fixedBaseWindow

	t := &FixedBaseTable{base: base, bits: windows * fixedBaseWindow, table: make([][]Point, windows)}
	identity := base.ScalarMult(bigZero)
	rowBase := base
	for i := 0; i < windows; i++ {
		row := make([]Point, digits)
		row[0] = identity
		for j := 1; j < digits; j++ {
			row[j] = row[j-1].Add(rowBase)
		}
		t.table[i] = row
		// 2^w * rowBase is the next row's unit
		rowBase = row[digits-1].Add(rowBase)
	}
	return t
}

// Base returns the point the table was built for
func (t *FixedBaseTable) Base() Point { return t.base }

// Mul returns k*G. Scalars outside [0, 2^bits) fall back to ScalarMult.
func (t *FixedBaseTable) Mul(k *big.Int) Point {
	if k.Sign() < 0 || k.BitLen() > t.bits {
		return t.base.ScalarMult(k)
	}
	result := t.table[0][0]
	mask := uint(1<<fixedBaseWindow - 1)
	for i := range t.table {
		digit := uint(0)
		for b := 0; b < fixedBaseWindow; b++ {
			digit |= k.Bit(i*fixedBaseWindow+b) << b
		}
		if digit&mask != 0 {
			result = result.Add(t.table[i][digit])
		}
	}
	return result
}
