// armhost is the host program for a planar two-link robotic arm. It loads
// the arm geometry from an ini-style config file, runs an interactive move
// session with a status API and pose stream, and records move history.
//
// Usage:
//
//	armhost run -c arm.cfg
//	armhost check -c arm.cfg 100,100
//	armhost plan -c arm.cfg 150,150 200,100
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
