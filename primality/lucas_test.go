package primality

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/corrodedHash/facto/internal/modular"
)

func TestStrongLucasPrimes(t *testing.T) {
	assert := require.New(t)

	primes := []string{
		"5", "7", "13", "97", "101", "30241", "65537", "1000003",
		// 2^89 - 1
		"618970019642690137449562111",
	}
	for _, s := range primes {
		n, _ := new(big.Int).SetString(s, 10)
		m, err := modular.New(n)
		assert.NoError(err)
		outcome, params := StrongLucas(m)
		assert.Equal(WitnessInconclusive, outcome, "prime %s flagged composite", s)
		assert.NotNil(params)
		assert.Equal(-1, big.Jacobi(params.D, n))
	}
}

func TestStrongLucasComposites(t *testing.T) {
	assert := require.New(t)

	composites := []string{
		"9", "15", "25", "49", "561", "65537196611",
		"340282366920938460843936948965011886881",
	}
	for _, s := range composites {
		n, _ := new(big.Int).SetString(s, 10)
		m, err := modular.New(n)
		assert.NoError(err)
		outcome, _ := StrongLucas(m)
		assert.Equal(WitnessComposite, outcome, "composite %s passed", s)
	}
}

func TestStrongLucasPseudoprimes(t *testing.T) {
	assert := require.New(t)

	// the first strong Lucas pseudoprimes pass by definition; the Fermat
	// side of the oracle catches them, which is the point of pairing the
	// two tests
	for _, v := range []int64{5459, 5777} {
		n := big.NewInt(v)
		m, err := modular.New(n)
		assert.NoError(err)
		outcome, _ := StrongLucas(m)
		assert.Equal(WitnessInconclusive, outcome)
		assert.Equal(WitnessComposite, MillerRabin(m, bigTwo))
	}
}
