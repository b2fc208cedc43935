//go:build ignore

// genconstants writes constants.go with the Hades round constants.
package main

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"go/format"
	"log"
	"math/big"
	"os"
)

const (
	numRounds  = 91
	stateWidth = 3
)

func main() {
	p, _ := new(big.Int).SetString("800000000000011000000000000000000000000000000000000000000000001", 16)

	var buf bytes.Buffer
	buf.WriteString("// Code generated by genconstants.go. DO NOT EDIT.\n\n")
	buf.WriteString("package poseidon\n\n")
	buf.WriteString("import \"github.com/smallyu/go-stark-crypto/internal/crypto/field\"\n\n")
	buf.WriteString("// roundConstants[r][i] = sha256(\"Hades\" || decimal(3r+i)) mod p.\n")
	buf.WriteString("var roundConstants = [numRounds][stateWidth]field.Felt{\n")
	for r := 0; r < numRounds; r++ {
		buf.WriteString("{\n")
		for j := 0; j < stateWidth; j++ {
			sum := sha256.Sum256([]byte(fmt.Sprintf("Hades%d", stateWidth*r+j)))
			c := new(big.Int).SetBytes(sum[:])
			c.Mod(c, p)
			fmt.Fprintf(&buf, "field.MustFeltFromHex(\"0x%s\"),\n", c.Text(16))
		}
		buf.WriteString("},\n")
	}
	buf.WriteString("}\n")

	src, err := format.Source(buf.Bytes())
	if err != nil {
		log.Fatal(err)
	}
	if err := os.WriteFile("constants.go", src, 0o644); err != nil {
		log.Fatal(err)
	}
}
