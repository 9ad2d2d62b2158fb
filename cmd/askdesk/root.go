package main

import (
	"github.com/spf13/cobra"
)

const appName = "askdesk"

var rootCmd = &cobra.Command{
	Use:           appName,
	Short:         "askdesk answers questions over resume material and matches job descriptions",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.AddCommand(serveCmd, hashPasswordCmd, createUserCmd)
}
