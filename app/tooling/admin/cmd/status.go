package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the status of a node",
	Run:   statusRun,
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().StringVarP(&url, "url", "u", "http://localhost:8080", "Url of the node.")
}

func statusRun(cmd *cobra.Command, args []string) {
	resp, err := http.Get(fmt.Sprintf("%s/v1/status", url))
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()

	var status struct {
		Host        string `json:"host"`
		LatestIndex uint64 `json:"latestIndex"`
		LatestHash  string `json:"latestHash"`
		Uncommitted int    `json:"uncommitted"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Host: %s\n", status.Host)
	fmt.Printf("Latest: index[%d] hash[%s]\n", status.LatestIndex, status.LatestHash)
	fmt.Printf("Uncommitted: %d\n", status.Uncommitted)
}
