// Package cnpj validates Brazilian company tax IDs.
package cnpj

import "unicode"

// Sanitize strips everything that is not a digit, accepting the usual
// formatted input "12.345.678/0001-95".
func Sanitize(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsDigit(r) {
			out = append(out, r)
		}
	}
	return string(out)
}

// Valid reports whether a sanitized CNPJ has 14 digits, is not a repeated
// digit sequence, and carries correct check digits.
func Valid(cnpj string) bool {
	if len(cnpj) != 14 {
		return false
	}

	allEqual := true
	for i := 1; i < 14; i++ {
		if cnpj[i] != cnpj[0] {
			allEqual = false
			break
		}
	}
	if allEqual {
		return false
	}

	digits := make([]int, 14)
	for i, r := range cnpj {
		if r < '0' || r > '9' {
			return false
		}
		digits[i] = int(r - '0')
	}

	return digits[12] == checkDigit(digits[:12]) && digits[13] == checkDigit(digits[:13])
}

// checkDigit computes a CNPJ verifier over the given prefix using the
// standard weight cycle 2..9 applied right to left.
func checkDigit(digits []int) int {
	weight := 2
	sum := 0
	for i := len(digits) - 1; i >= 0; i-- {
		sum += digits[i] * weight
		weight++
		if weight > 9 {
			weight = 2
		}
	}
	rest := sum % 11
	if rest < 2 {
		return 0
	}
	return 11 - rest
}
