// Package cmd contains the admin tool commands.
package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/ardanlabs/hashchain/foundation/hashchain/block"
	"github.com/ardanlabs/hashchain/foundation/hashchain/storage"
	"github.com/spf13/cobra"
)

var chainFile string

func init() {
	rootCmd.PersistentFlags().StringVarP(&chainFile, "file", "f", "zblock/chain.json", "Path to the chain file.")
}

var rootCmd = &cobra.Command{
	Use:   "admin",
	Short: "Administer a chain file without a running node",
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// loadChain reads the chain file and converts the records to blocks.
func loadChain() ([]block.Block, error) {
	data, err := os.ReadFile(chainFile)
	if err != nil {
		return nil, err
	}

	var records []storage.BlockRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}

	blocks := make([]block.Block, len(records))
	for i, record := range records {
		blocks[i] = storage.ToBlock(record)
	}

	return blocks, nil
}

// saveChain writes the blocks back to the chain file as records.
func saveChain(blocks []block.Block) error {
	records := make([]storage.BlockRecord, len(blocks))
	for i, blk := range blocks {
		records[i] = storage.NewBlockRecord(blk)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(chainFile); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	return os.WriteFile(chainFile, data, 0644)
}
