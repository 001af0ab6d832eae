// Command anombench benchmarks outlier-detection algorithms on
// synthetic 2D/3D suites or external datasets.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
