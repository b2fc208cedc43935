package main

import (
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/pkg/errors"
)

// parseNumber reads a 0x-prefixed hex or a decimal integer.
func parseNumber(name, s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	base := 10
	digits := s
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		base = 16
		digits = s[2:]
	}
	v, ok := new(big.Int).SetString(digits, base)
	if !ok || v.Sign() < 0 {
		return nil, errors.Errorf("%s: %q is not a non-negative hex or decimal integer", name, s)
	}
	return v, nil
}

func parseNumbers(name string, args []string) ([]*big.Int, error) {
	out := make([]*big.Int, len(args))
	for i, a := range args {
		v, err := parseNumber(fmt.Sprintf("%s %d", name, i), a)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (c *cli) format(v *big.Int) string {
	if c.v.GetString(keyOutput) == "dec" {
		return v.Text(10)
	}
	return "0x" + v.Text(16)
}

func (c *cli) println(w io.Writer, vs ...*big.Int) {
	for _, v := range vs {
		fmt.Fprintln(w, c.format(v))
	}
}
