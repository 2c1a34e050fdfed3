package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	dkvclient "github.com/unum-cloud/ukv-go/cmd/client"
	"github.com/unum-cloud/ukv-go/cmd/serve"
	"github.com/unum-cloud/ukv-go/cmd/util"
)

const (
	Version = "1.0.0"
)

var (
	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "dkv",
		Short: "universal key-value engine",
		Long: fmt.Sprintf(`dkv (v%s)

A embeddable, transactional key-value engine with a pluggable storage
backend and an optional RPC server for remote access.`, Version),
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of dkv",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("dkv v%s\n", Version)
		},
	}
)

func init() {
	RootCmd.AddCommand(serve.ServeCmd)
	RootCmd.AddCommand(dkvclient.ClientCommands)
	RootCmd.AddCommand(versionCmd)

	key := "serializer"
	RootCmd.PersistentFlags().String(key, "binary", util.WrapString("serializer to use (json, gob, binary)"))
	key = "transport"
	RootCmd.PersistentFlags().String(key, "tcp", util.WrapString("transport to use (tcp, unix)"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
