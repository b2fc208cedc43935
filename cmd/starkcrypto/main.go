// Command starkcrypto exposes the STARK curve primitives on the command
// line: key derivation, Pedersen and Poseidon hashing, sn_keccak and ECDSA
// signing, verification and key recovery.
package main

import "os"

func main() {
	// cobra has already printed the error.
	if newRootCmd().Execute() != nil {
		os.Exit(1)
	}
}
