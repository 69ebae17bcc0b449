// exp.go - In-circuit modular exponentiation gadget (spec component C5).
//
// Computes y = a^x over the scalar field using square-and-multiply unrolled
// into ExpSize stages. Per spec §4.5, stage i contributes:
//
//	x_bins[i]      the i-th bit of x (LSB-first), via the binary gadget
//	a_exps[i]      a^(2^i): stage 0 is a itself, each later stage squares
//	x_inv_bins[i]  1 - x_bins[i]
//	tmps1[i]       x_bins[i] * a_exps[i]            (contribution if bit set)
//	tmps3[i]       running product, tmps3[0] = tmps1[0] + x_inv_bins[0],
//	               tmps3[i] = (tmps1[i] + x_inv_bins[i]) * tmps3[i-1]
//
// y is tmps3[ExpSize-1]. Using (bit·a^(2^i)) + (1-bit) per stage avoids
// division and keeps each stage a single multiplication constraint.
package core

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark/frontend"
)

// ExpSize is the scalar field's bit capacity (254 for BN254), matching
// spec §9's "254 for BN-128".
const ExpSize = 254

// ExponentiateCircuit constrains and returns y = a^x.
func ExponentiateCircuit(api frontend.API, a, x frontend.Variable) frontend.Variable {
	xBin := NewBinaryFromPacked(api, x, ExpSize)
	// xBin.Bits is MSB-first; the algorithm indexes bits LSB-first (bit i
	// is the coefficient of 2^i), so read it back to front.
	xBins := make([]frontend.Variable, ExpSize)
	for i := 0; i < ExpSize; i++ {
		xBins[i] = xBin.Bits[ExpSize-1-i]
	}

	aExps := make([]frontend.Variable, ExpSize)
	aExps[0] = a
	for i := 1; i < ExpSize; i++ {
		aExps[i] = api.Mul(aExps[i-1], aExps[i-1])
	}

	tmps3 := make([]frontend.Variable, ExpSize)
	for i := 0; i < ExpSize; i++ {
		xInv := api.Sub(1, xBins[i])
		tmp1 := api.Mul(xBins[i], aExps[i])
		if i == 0 {
			tmps3[i] = api.Add(tmp1, xInv)
		} else {
			tmps3[i] = api.Mul(api.Add(tmp1, xInv), tmps3[i-1])
		}
	}
	return tmps3[ExpSize-1]
}

// Exponentiate is the out-of-circuit twin of ExponentiateCircuit.
func Exponentiate(a fr.Element, x *big.Int) fr.Element {
	var y fr.Element
	y.Exp(a, x)
	return y
}
