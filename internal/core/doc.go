// Package core implements a shielded two-input/two-output value-transfer
// transaction: a payer proves in zero knowledge that two input notes are
// unspent members of a commitment pool, that two freshly created output
// notes conserve value against transparent in/out amounts, and that an
// ElGamal ciphertext attached to the proof correctly encrypts the full
// transaction payload under a designated overseer's public key.
//
// Overview:
//   - The arithmetic circuit (R1CS, Groth16 over BN254) is assembled from a
//     small set of gadgets: a field/bit bridge, an in-circuit SHA-256
//     compression function, a windowed incremental Merkle tree, an in-circuit
//     modular exponentiation, and a multi-block ElGamal encryption gadget.
//   - Each gadget has an out-of-circuit twin computing the same function, so
//     witness generation and constraint evaluation agree bit-for-bit.
//   - The façade (Setup/Generate/Prove/Verify/DecryptTxInfo) is the only
//     entry point callers need; everything else is internal machinery.
//
// Security model:
//   - Commitments and serial numbers are SHA-256-compression hash chains.
//   - Only the overseer, holding the ElGamal secret key, can recover the
//     plaintext transaction payload bound to the proof.
//   - All randomness (note randomness, ElGamal ephemeral scalars) must come
//     from a CSPRNG; the windowed Merkle-tree selection may use any RNG since
//     it only serves privacy obfuscation, not soundness.
package core
