// Package precompiles implements the PrecompileRegistry rule family:
// the named, per-fork set of precompiled-contract addresses. Precompile
// *implementations* are an external collaborator — this registry binds
// addresses to executors, and for the two precompiles with a real backend
// available (Byzantium's bn256 pairing-friendly curve ops, Cancun's KZG
// point evaluation) it wires the real library rather than a stand-in.
// Every other address is served by an executor the caller
// injects (the production EVM wires its own); Run reports ok=false for any
// address this registry doesn't itself serve.
package precompiles

import (
	"crypto/sha256"
	"errors"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fp"
	gokzg4844 "github.com/crate-crypto/go-kzg-4844"

	"github.com/kevinbogner/besu/common"
)

// blobCommitmentVersionKZG is the versioned-hash prefix byte for a KZG blob
// commitment (EIP-4844).
const blobCommitmentVersionKZG = 0x01

var (
	ecrecoverAddr       = common.HexToAddress("0x0000000000000000000000000000000000000001")
	sha256Addr          = common.HexToAddress("0x0000000000000000000000000000000000000002")
	ripemd160Addr       = common.HexToAddress("0x0000000000000000000000000000000000000003")
	identityAddr        = common.HexToAddress("0x0000000000000000000000000000000000000004")
	modexpAddr          = common.HexToAddress("0x0000000000000000000000000000000000000005")
	bn256AddAddr        = common.HexToAddress("0x0000000000000000000000000000000000000006")
	bn256ScalarMulAddr  = common.HexToAddress("0x0000000000000000000000000000000000000007")
	bn256PairingAddr    = common.HexToAddress("0x0000000000000000000000000000000000000008")
	blake2fAddr         = common.HexToAddress("0x0000000000000000000000000000000000000009")
	pointEvaluationAddr = common.HexToAddress("0x000000000000000000000000000000000000000a")
)

var errInvalidPointEvaluationInput = errors.New("precompiles: point evaluation input must be 192 bytes")
var errInvalidCurvePoint = errors.New("precompiles: invalid bn256 curve point encoding")
var errMismatchedVersionedHash = errors.New("precompiles: commitment does not match versioned hash")

// Registry is a named, ordered set of active precompile addresses. The
// domain-stack-wired precompiles (bn256 ops, point evaluation) execute
// against the real library; everything else returns ok=false so the
// caller's EVM-supplied executor handles it.
type Registry struct {
	name      string
	addresses []common.Address

	kzgCtx *gokzg4844.Context
}

func (r *Registry) Name() string                { return r.name }
func (r *Registry) Addresses() []common.Address { return r.addresses }

func (r *Registry) Run(addr common.Address, input []byte) ([]byte, uint64, bool, error) {
	switch addr {
	case bn256AddAddr:
		if !r.serves(addr) {
			return nil, 0, false, nil
		}
		return r.runBn256Add(input)
	case bn256ScalarMulAddr:
		if !r.serves(addr) {
			return nil, 0, false, nil
		}
		return r.runBn256ScalarMul(input)
	case pointEvaluationAddr:
		if r.kzgCtx == nil || !r.serves(addr) {
			return nil, 0, false, nil
		}
		return r.runPointEvaluation(input)
	default:
		return nil, 0, false, nil // active (maybe) but served by the caller's executor
	}
}

func (r *Registry) serves(addr common.Address) bool {
	for _, a := range r.addresses {
		if a == addr {
			return true
		}
	}
	return false
}

func (r *Registry) runBn256Add(input []byte) ([]byte, uint64, bool, error) {
	padded := rightPad(input, 128)
	p1, err := unmarshalG1(padded[:64])
	if err != nil {
		return nil, 0, true, err
	}
	p2, err := unmarshalG1(padded[64:128])
	if err != nil {
		return nil, 0, true, err
	}
	var sum bn254.G1Affine
	sum.Add(p1, p2)
	return marshalG1(&sum), 150, true, nil
}

func (r *Registry) runBn256ScalarMul(input []byte) ([]byte, uint64, bool, error) {
	padded := rightPad(input, 96)
	p, err := unmarshalG1(padded[:64])
	if err != nil {
		return nil, 0, true, err
	}
	k := new(big.Int).SetBytes(padded[64:96])
	var res bn254.G1Affine
	res.ScalarMultiplication(p, k)
	return marshalG1(&res), 6000, true, nil
}

// runPointEvaluation implements EIP-4844's point_evaluation_precompile:
// input is versioned_hash(32) || z(32) || y(32) || commitment(48) || proof(48).
// It first checks the commitment hashes to the claimed versioned hash, then
// asks the KZG backend to confirm the commitment opens to y at z.
func (r *Registry) runPointEvaluation(input []byte) ([]byte, uint64, bool, error) {
	if len(input) != 192 {
		return nil, 0, true, errInvalidPointEvaluationInput
	}
	var versionedHash [32]byte
	var z, y [32]byte
	var commitment, proof [48]byte
	copy(versionedHash[:], input[0:32])
	copy(z[:], input[32:64])
	copy(y[:], input[64:96])
	copy(commitment[:], input[96:144])
	copy(proof[:], input[144:192])

	if kzgToVersionedHash(commitment) != versionedHash {
		return nil, 0, true, errMismatchedVersionedHash
	}
	if err := r.kzgCtx.VerifyKZGProof(commitment, z, y, proof); err != nil {
		return nil, 0, true, err
	}
	return pointEvaluationSuccess(), 50000, true, nil
}

// kzgToVersionedHash implements EIP-4844's kzg_to_versioned_hash: a sha256
// digest of the commitment with its first byte replaced by the KZG version.
func kzgToVersionedHash(commitment [48]byte) [32]byte {
	h := sha256.Sum256(commitment[:])
	h[0] = blobCommitmentVersionKZG
	return h
}

// pointEvaluationSuccess is EIP-4844's fixed success output:
// (FIELD_ELEMENTS_PER_BLOB, BLS_MODULUS) as two 32-byte big-endian words.
func pointEvaluationSuccess() []byte {
	out := make([]byte, 64)
	new(big.Int).SetUint64(gokzg4844.ScalarsPerBlob).FillBytes(out[:32])
	copy(out[32:], gokzg4844.BlsModulus[:])
	return out
}

func unmarshalG1(buf []byte) (*bn254.G1Affine, error) {
	var x, y fp.Element
	x.SetBytes(buf[:32])
	y.SetBytes(buf[32:64])
	p := &bn254.G1Affine{X: x, Y: y}
	if !p.IsOnCurve() {
		return nil, errInvalidCurvePoint
	}
	return p, nil
}

func marshalG1(p *bn254.G1Affine) []byte {
	out := make([]byte, 64)
	xb := p.X.Bytes()
	yb := p.Y.Bytes()
	copy(out[0:32], xb[:])
	copy(out[32:64], yb[:])
	return out
}

func rightPad(b []byte, n int) []byte {
	if len(b) >= n {
		return b[:n]
	}
	out := make([]byte, n)
	copy(out, b)
	return out
}

// Frontier is the original four precompiles.
var Frontier = &Registry{
	name:      "Frontier",
	addresses: []common.Address{ecrecoverAddr, sha256Addr, ripemd160Addr, identityAddr},
}

// Byzantium is the first precompile set to include the bn256/modexp family
// (EIP-196/197/198).
var Byzantium = &Registry{
	name: "Byzantium",
	addresses: []common.Address{
		ecrecoverAddr, sha256Addr, ripemd160Addr, identityAddr,
		modexpAddr, bn256AddAddr, bn256ScalarMulAddr, bn256PairingAddr,
	},
}

// Istanbul adds blake2f (EIP-152).
var Istanbul = &Registry{
	name:      "Istanbul",
	addresses: append(append([]common.Address{}, Byzantium.addresses...), blake2fAddr),
}

// NewCancun builds the Cancun precompile set, adding the point-evaluation
// precompile (EIP-4844) wired to the real KZG backend. The backend is
// initialized against the library's secure, embedded trusted setup — if
// that initialization fails, the set still activates the address but Run
// reports ok=false for it, leaving the caller's own executor to serve it.
func NewCancun() *Registry {
	ctx, err := gokzg4844.NewContext4096Secure()
	if err != nil {
		ctx = nil
	}
	return &Registry{
		name:      "Cancun",
		addresses: append(append([]common.Address{}, Istanbul.addresses...), pointEvaluationAddr),
		kzgCtx:    ctx,
	}
}
