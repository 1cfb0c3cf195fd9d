package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/ardanlabs/hashchain/foundation/hashchain/chain"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the chain file",
	Run:   validateRun,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func validateRun(cmd *cobra.Command, args []string) {
	blocks, err := loadChain()
	if err != nil {
		log.Fatal(err)
	}

	valid, err := chain.IsValid(blocks)
	if err != nil {
		log.Fatal(err)
	}

	if !valid {
		fmt.Printf("chain not valid: blocks[%d]\n", len(blocks))
		os.Exit(1)
	}

	fmt.Printf("chain valid: blocks[%d]\n", len(blocks))
}
