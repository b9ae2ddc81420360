package delivery_code

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"io"
	"math/big"
)

const (
	Length = 6

	minCode = 100000
	maxCode = 999999
)

// Generator выдает коды, равномерно распределенные на [100000, 999999].
type Generator struct {
	random io.Reader
}

func NewGenerator() *Generator {
	return &Generator{random: rand.Reader}
}

func NewGeneratorWithReader(random io.Reader) *Generator {
	return &Generator{random: random}
}

func (g *Generator) Generate() (string, error) {
	n, err := rand.Int(g.random, big.NewInt(maxCode-minCode+1))
	if err != nil {
		return "", fmt.Errorf("generate delivery code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+minCode), nil
}

func IsWellFormed(code string) bool {
	if len(code) != Length {
		return false
	}
	for _, c := range code {
		if c < '0' || c > '9' {
			return false
		}
	}
	return code[0] != '0'
}

// Equal сравнивает коды за постоянное время.
func Equal(expected, supplied string) bool {
	return subtle.ConstantTimeCompare([]byte(expected), []byte(supplied)) == 1
}
