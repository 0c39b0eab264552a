package cmd

import (
	"fmt"
	"log"

	"github.com/frahmantamala/spendwise-server/internal/auth"
	"github.com/spf13/cobra"
)

// hashKeyCmd produces the bcrypt hash that goes into security.access_key_hash.
var hashKeyCmd = &cobra.Command{
	Use:   "hash-key <access-key>",
	Short: "Hash an access key for the security config",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		hash, err := auth.HashAccessKey(args[0])
		if err != nil {
			log.Fatalf("failed to hash access key: %v", err)
		}
		fmt.Println(hash)
	},
}
