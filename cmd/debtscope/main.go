// main is the entry point for the debtscope CLI.
package main

import (
	"github.com/huangsam/debtscope/cmd"
	"github.com/huangsam/debtscope/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Command failed", err)
	}
}
