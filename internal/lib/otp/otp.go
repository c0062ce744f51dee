// Package otp генерирует одноразовые числовые коды подтверждения.
//
// Код состоит только из цифр и создается криптографически стойким
// генератором случайных чисел.
package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// CodeLength длина генерируемого кода подтверждения.
const CodeLength = 6

// Generate возвращает числовой код длиной CodeLength.
func Generate() (string, error) {
	const op = "otp.Generate"
	var sb strings.Builder
	sb.Grow(CodeLength)
	for range CodeLength {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("%s: %w", op, err)
		}
		sb.WriteByte(byte('0' + n.Int64()))
	}
	return sb.String(), nil
}
