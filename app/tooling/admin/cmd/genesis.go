package cmd

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/ardanlabs/hashchain/foundation/hashchain/block"
	"github.com/ardanlabs/hashchain/foundation/hashchain/storage"
	"github.com/spf13/cobra"
)

var genesisCmd = &cobra.Command{
	Use:   "genesis",
	Short: "Print the genesis block",
	Run:   genesisRun,
}

func init() {
	rootCmd.AddCommand(genesisCmd)
}

func genesisRun(cmd *cobra.Command, args []string) {
	data, err := json.MarshalIndent(storage.NewBlockRecord(block.Genesis()), "", "  ")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(string(data))
}
