package cmd

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/ardanlabs/hashchain/foundation/hashchain/storage"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the chain file",
	Run:   showRun,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func showRun(cmd *cobra.Command, args []string) {
	blocks, err := loadChain()
	if err != nil {
		log.Fatal(err)
	}

	records := make([]storage.BlockRecord, len(blocks))
	for i, blk := range blocks {
		records[i] = storage.NewBlockRecord(blk)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(string(data))
}
