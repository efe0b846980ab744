package primality

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

// naiveFactorer is a plain trial-division factorer for chain tests; the real
// driver plugs in the same way through facto.Certify.
func naiveFactorer(n *big.Int) ([]*big.Int, error) {
	var out []*big.Int
	rest := new(big.Int).Set(n)
	r := new(big.Int)
	for d := big.NewInt(2); ; d.Add(d, bigOne) {
		if r.Mul(d, d).Cmp(rest) > 0 {
			break
		}
		for {
			q, rem := new(big.Int).QuoRem(rest, d, new(big.Int))
			if rem.Sign() != 0 {
				break
			}
			out = append(out, new(big.Int).Set(d))
			rest.Set(q)
		}
	}
	if rest.Cmp(bigOne) != 0 {
		out = append(out, rest)
	}
	return out, nil
}

func TestBuildChain(t *testing.T) {
	assert := require.New(t)

	chain := &ProofChain{}
	assert.NoError(BuildChain(big.NewInt(101), chain, naiveFactorer))

	assert.NoError(chain.Verify())
	max := chain.MaxElement()
	assert.NotNil(max)
	assert.Equal(int64(101), max.N.Int64())
	// 100 = 2^2 * 5^2: both divisors certified along the way
	assert.True(chain.Contains(big.NewInt(2)))
	assert.True(chain.Contains(big.NewInt(5)))
	assert.Len(max.Divisors, 2)
}

func TestBuildChainRejectsComposite(t *testing.T) {
	chain := &ProofChain{}
	err := BuildChain(big.NewInt(100), chain, naiveFactorer)
	require.ErrorIs(t, err, ErrCompositeInput)
}

func TestBuildChainLargerPrime(t *testing.T) {
	assert := require.New(t)

	// 782689174619698080 = 2^5 * 3^2 * 5 * 7 * 53 * 122347 * 11974561
	p, _ := new(big.Int).SetString("782689174619698081", 10)
	chain := &ProofChain{}
	assert.NoError(BuildChain(p, chain, naiveFactorer))
	assert.NoError(chain.Verify())
	assert.Equal(0, chain.MaxElement().N.Cmp(p))
	assert.True(chain.Contains(big.NewInt(122347)))
	assert.True(chain.Contains(big.NewInt(11974561)))
}

func TestVerifyCatchesTampering(t *testing.T) {
	assert := require.New(t)

	chain := &ProofChain{}
	assert.NoError(BuildChain(big.NewInt(101), chain, naiveFactorer))

	// drop a divisor from the top element: coverage of n-1 breaks
	top := chain.MaxElement()
	top.Divisors = top.Divisors[:1]
	assert.Error(chain.Verify())

	// rebuild, then claim a composite N
	chain = &ProofChain{}
	assert.NoError(BuildChain(big.NewInt(101), chain, naiveFactorer))
	chain.MaxElement().N = big.NewInt(105)
	assert.Error(chain.Verify())
}

func TestChainDeduplicates(t *testing.T) {
	assert := require.New(t)

	chain := &ProofChain{}
	assert.NoError(BuildChain(big.NewInt(13), chain, naiveFactorer))
	before := len(chain.Elements)
	assert.NoError(BuildChain(big.NewInt(13), chain, naiveFactorer))
	assert.Equal(before, len(chain.Elements))
}
