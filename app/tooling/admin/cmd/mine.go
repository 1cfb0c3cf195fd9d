package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"time"

	"github.com/ardanlabs/hashchain/foundation/hashchain/block"
	"github.com/ardanlabs/hashchain/foundation/hashchain/chain"
	"github.com/ardanlabs/hashchain/foundation/hashchain/storage"
	"github.com/spf13/cobra"
)

var mineData string

var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Mine a payload into the chain file",
	Run:   mineRun,
}

func init() {
	rootCmd.AddCommand(mineCmd)
	mineCmd.Flags().StringVarP(&mineData, "data", "d", "", "Payload to mine into the next block.")
	mineCmd.MarkFlagRequired("data")
}

func mineRun(cmd *cobra.Command, args []string) {
	blocks, err := loadChain()
	switch {
	case errors.Is(err, fs.ErrNotExist):
		blocks = nil
	case err != nil:
		log.Fatal(err)
	}

	// A missing or empty file starts a new chain.
	if len(blocks) == 0 {
		blocks = []block.Block{block.Genesis()}
	}

	valid, err := chain.IsValid(blocks)
	if err != nil {
		log.Fatal(err)
	}
	if !valid {
		log.Fatalf("chain file %s is not valid, refusing to extend it", chainFile)
	}

	blk, err := block.Extend(blocks[len(blocks)-1], uint64(time.Now().Unix()), mineData)
	if err != nil {
		log.Fatal(err)
	}
	blocks = append(blocks, blk)

	if err := saveChain(blocks); err != nil {
		log.Fatal(err)
	}

	out, err := json.MarshalIndent(storage.NewBlockRecord(blk), "", "  ")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(string(out))
}
