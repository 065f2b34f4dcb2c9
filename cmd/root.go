package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "respkv",
	Short:        "A minimal RESP key-value server",
	Long:         "respkv speaks a subset of RESP over TCP (PING, ECHO, SET, GET) and keeps an in-memory key-value store.",
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
