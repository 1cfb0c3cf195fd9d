package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/spf13/cobra"
)

var (
	url        string
	submitData string
)

// submitCmd queues a payload on a running node instead of mining locally.
var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a payload to a node for mining",
	Run:   submitRun,
}

func init() {
	rootCmd.AddCommand(submitCmd)
	submitCmd.Flags().StringVarP(&url, "url", "u", "http://localhost:8080", "Url of the node.")
	submitCmd.Flags().StringVarP(&submitData, "data", "d", "", "Payload to submit.")
	submitCmd.MarkFlagRequired("data")
}

func submitRun(cmd *cobra.Command, args []string) {
	payload := struct {
		Data string `json:"data"`
	}{
		Data: submitData,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		log.Fatal(err)
	}

	resp, err := http.Post(fmt.Sprintf("%s/v1/blocks/submit", url), "application/json", bytes.NewBuffer(data))
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()

	var ack struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%s: payload[%s]\n", ack.Status, ack.ID)
}
