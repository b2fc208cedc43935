package main

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const envPrefix = "STARKCRYPTO"

// Configuration keys. Each can be set by flag, by STARKCRYPTO_<KEY> in the
// environment (dashes become underscores) or in the config file.
const (
	keyOutput     = "output"
	keyLogLevel   = "log-level"
	keyMaxRetries = "max-retries"
)

// cli carries state shared by all subcommands.
type cli struct {
	v      *viper.Viper
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{v: viper.New(), logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "starkcrypto",
		Short: "STARK curve cryptography: keys, hashes and signatures",
		Long: `starkcrypto computes Starknet Pedersen and Poseidon hashes, derives
public keys and signs or verifies messages on the STARK curve.

Numbers are read as 0x-prefixed hex or as decimal.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = c.logger.Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "optional config file (yaml, json or toml)")
	flags.StringP(keyOutput, "o", "hex", "output base: hex or dec")
	flags.String(keyLogLevel, "warn", "log level: debug, info, warn or error")
	_ = c.v.BindPFlag(keyOutput, flags.Lookup(keyOutput))
	_ = c.v.BindPFlag(keyLogLevel, flags.Lookup(keyLogLevel))

	c.v.SetEnvPrefix(envPrefix)
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	c.v.AutomaticEnv()
	c.v.SetDefault(keyMaxRetries, 8)

	root.AddCommand(
		c.pubkeyCmd(),
		c.keygenCmd(),
		c.signCmd(),
		c.verifyCmd(),
		c.recoverCmd(),
		c.pedersenCmd(),
		c.poseidonCmd(),
		c.keccakCmd(),
	)
	return root
}

func (c *cli) setup(cmd *cobra.Command) error {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		c.v.SetConfigFile(path)
		if err := c.v.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "reading config file %s", path)
		}
	}

	switch out := c.v.GetString(keyOutput); out {
	case "hex", "dec":
	default:
		return errors.Errorf("unknown output base %q, want hex or dec", out)
	}

	logger, err := newLogger(cmd, c.v.GetString(keyLogLevel))
	if err != nil {
		return err
	}
	c.logger = logger.Named(cmd.Name())
	return nil
}

// newLogger builds a console logger on the command's stderr.
func newLogger(cmd *cobra.Command, level string) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, errors.Wrapf(err, "invalid log level %q", level)
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.Lock(zapcore.AddSync(cmd.ErrOrStderr())),
		lvl,
	)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), nil
}
