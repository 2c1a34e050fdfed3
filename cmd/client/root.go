// Package client implements the dkv CLI's client-facing subcommands: get,
// put, delete, scan and control, all dialing a running dkv server over RPC.
package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	cmdUtil "github.com/unum-cloud/ukv-go/cmd/util"
	"github.com/unum-cloud/ukv-go/lib/backend"
	"github.com/unum-cloud/ukv-go/rpc/client"
)

// ClientCommands is the parent for every client-facing subcommand.
var ClientCommands = &cobra.Command{
	Use:   "client",
	Short: "Interact with a running dkv server",
}

func init() {
	cmdUtil.SetupRPCClientFlags(ClientCommands)
	ClientCommands.AddCommand(getCmd, putCmd, deleteCmd, scanCmd, controlCmd)
}

// dial connects a remote backend using the flags bound on ClientCommands.
func dial(cmd *cobra.Command) (backend.Backend, error) {
	if err := cmdUtil.BindCommandFlags(cmd); err != nil {
		return nil, err
	}
	cmdUtil.InitClientConfig()

	ser, err := cmdUtil.GetSerializer()
	if err != nil {
		return nil, err
	}
	tr, err := cmdUtil.GetClientTransport()
	if err != nil {
		return nil, err
	}
	return client.NewRemoteBackend(cmdUtil.GetClientConfig(), tr, ser)
}

var getCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Read a single key from the default collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid key %q: %w", args[0], err)
		}

		be, err := dial(cmd)
		if err != nil {
			return err
		}
		defer be.Close()

		value, version, found, err := be.Get(context.Background(), backend.DefaultCollection, key)
		if err != nil {
			return err
		}
		if !found {
			fmt.Println("(not found)")
			return nil
		}
		fmt.Printf("%s (version %d)\n", value, version)
		return nil
	},
}

var putCmd = &cobra.Command{
	Use:   "put <key> <value>",
	Short: "Write a single key in the default collection",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid key %q: %w", args[0], err)
		}

		be, err := dial(cmd)
		if err != nil {
			return err
		}
		defer be.Close()

		task := backend.WriteTask{Collection: backend.DefaultCollection, Key: key, Value: []byte(args[1])}
		point, err := be.PutBatch(context.Background(), []backend.WriteTask{task}, false)
		if err != nil {
			return err
		}
		fmt.Printf("ok (commit point %d)\n", point)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <key>",
	Short: "Delete a single key from the default collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid key %q: %w", args[0], err)
		}

		be, err := dial(cmd)
		if err != nil {
			return err
		}
		defer be.Close()

		task := backend.WriteTask{Collection: backend.DefaultCollection, Key: key, Value: nil}
		point, err := be.PutBatch(context.Background(), []backend.WriteTask{task}, false)
		if err != nil {
			return err
		}
		fmt.Printf("ok (commit point %d)\n", point)
		return nil
	},
}

var scanLimit int

var scanCmd = &cobra.Command{
	Use:   "scan <min-key>",
	Short: "Scan keys >= min-key in the default collection, in ascending order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		minKey, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid key %q: %w", args[0], err)
		}

		be, err := dial(cmd)
		if err != nil {
			return err
		}
		defer be.Close()

		keys, values, versions, err := be.Scan(context.Background(), backend.DefaultCollection, minKey, scanLimit)
		if err != nil {
			return err
		}
		for i, k := range keys {
			fmt.Printf("%d\t%s\t(version %d)\n", k, values[i], versions[i])
		}
		return nil
	},
}

var controlCmd = &cobra.Command{
	Use:   "control <command>",
	Short: "Send a control-channel command to the server (e.g. reset, compact)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		be, err := dial(cmd)
		if err != nil {
			return err
		}
		defer be.Close()

		reply, err := be.Control(context.Background(), args[0])
		if err != nil {
			return err
		}
		fmt.Println(reply)
		return nil
	},
}

func init() {
	scanCmd.Flags().IntVar(&scanLimit, "limit", 100, "Maximum number of keys to return")
}
