package main

import (
	"context"
	"fmt"
	"os"

	"github.com/adacomputing/ada-engine/internal/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// #region main
func main() {
	if err := cli.Execute(context.Background(), version); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main
