package serve

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	cmdUtil "github.com/unum-cloud/ukv-go/cmd/util"
	"github.com/unum-cloud/ukv-go/lib/engine"
	"github.com/unum-cloud/ukv-go/lib/log"
	"github.com/unum-cloud/ukv-go/rpc/common"
	"github.com/unum-cloud/ukv-go/rpc/server"
)

var (
	serveCmdConfig = &common.ServerConfig{}
	ServeCmd       = &cobra.Command{
		Use:     "serve",
		Short:   "Start the dkv server",
		Long:    `Start the dkv server, fronting a local backend over RPC. Configuration can be set via command line flags or environment variables of the form DKV_<flag> (e.g. DKV_TIMEOUT=15)`,
		PreRunE: processConfig,
		RunE:    run,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	key := "engine"
	ServeCmd.PersistentFlags().String(key, "memory", cmdUtil.WrapString("Backend to open: memory or pebble"))

	key = "path"
	ServeCmd.PersistentFlags().String(key, "", cmdUtil.WrapString("Data directory, required for the pebble engine"))

	key = "cache"
	ServeCmd.PersistentFlags().Int64(key, 0, cmdUtil.WrapString("Cache size in bytes, pebble engine only (0 uses the backend default)"))

	key = "endpoint"
	ServeCmd.PersistentFlags().String(key, "0.0.0.0:8080", cmdUtil.WrapString("The address on which the server listens (e.g. localhost:8080 for tcp, /tmp/dkv.sock for unix)"))

	key = "timeout"
	ServeCmd.PersistentFlags().Int64(key, 5, cmdUtil.WrapString("Per-request timeout in seconds"))

	key = "log-level"
	ServeCmd.PersistentFlags().String(key, "info", cmdUtil.WrapString("Log level: debug, info, warn or error"))
}

// processConfig reads the configuration from the command line flags and
// environment variables and converts them to the server configuration
func processConfig(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	engineConfig := fmt.Sprintf(`{"engine":%q,"path":%q,"cache":%d}`,
		viper.GetString("engine"), viper.GetString("path"), viper.GetInt64("cache"))

	serveCmdConfig.Engine = engineConfig
	serveCmdConfig.TimeoutSecond = viper.GetInt64("timeout")
	serveCmdConfig.LogLevel = viper.GetString("log-level")
	serveCmdConfig.Transport = cmdUtil.GetClientConfig().Transport
	serveCmdConfig.Transport.Endpoint = viper.GetString("endpoint")

	return nil
}

// run starts the dkv server
func run(_ *cobra.Command, _ []string) error {
	log.SetLevel("engine", log.ParseLevel(serveCmdConfig.LogLevel))
	log.SetLevel("rpc/server", log.ParseLevel(serveCmdConfig.LogLevel))
	log.SetLevel("transport/server", log.ParseLevel(serveCmdConfig.LogLevel))

	ser, err := cmdUtil.GetSerializer()
	if err != nil {
		return err
	}

	tr, err := cmdUtil.GetServerTransport()
	if err != nil {
		return err
	}

	db, err := engine.Open(serveCmdConfig.Engine)
	if err != nil {
		return fmt.Errorf("opening engine: %w", err)
	}
	defer db.Close()

	fmt.Println(serveCmdConfig.String())

	s := server.NewRPCServer(*serveCmdConfig, db.Backend(), tr, ser)
	return s.Serve()
}

// initConfig reads config files and environment variables
func initConfig() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	viper.SetEnvPrefix("dkv")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}
