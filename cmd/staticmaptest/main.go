package main

import (
	"os"

	_ "net/http/pprof"
)

func main() {
	// Pick plan from the environment variable, flags parameterize the run.
	plan := os.Getenv("PLAN")
	switch plan {
	case "static":
		planStatic()
	case "stdmap":
		planStdMap()
	case "freecache":
		planFreecache()
	default:
		panic("invalid plan")
	}
}
