package main

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/smallyu/go-stark-crypto/pkg/starkcrypto"
)

func (c *cli) timed(op string, start time.Time) {
	c.logger.Debug("done", zap.String("op", op), zap.Duration("elapsed", time.Since(start)))
}

func (c *cli) pubkeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pubkey <private-key>",
		Short: "Print the public key (x-coordinate) of a private key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseNumber("private key", args[0])
			if err != nil {
				return err
			}
			defer c.timed("pubkey", time.Now())
			pub, err := starkcrypto.GetPublicKey(d)
			if err != nil {
				return errors.Wrap(err, "deriving public key")
			}
			c.println(cmd.OutOrStdout(), pub)
			return nil
		},
	}
}

func (c *cli) keygenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Generate a random key pair and print the private and public key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defer c.timed("keygen", time.Now())
			d, pub, err := starkcrypto.GenerateKeyPair(rand.Reader)
			if err != nil {
				return errors.Wrap(err, "generating key pair")
			}
			c.println(cmd.OutOrStdout(), d, pub)
			return nil
		},
	}
}

func (c *cli) signCmd() *cobra.Command {
	var (
		seed    string
		message string
	)
	cmd := &cobra.Command{
		Use:   "sign <private-key> [msg-hash]",
		Short: "Sign a message hash and print r, s and the recovery id",
		Long: `Sign a message hash with a deterministic RFC 6979 nonce. With --message the
hash is sn_keccak of the given text instead of a positional argument. If the
nonce yields an unusable signature the seed is incremented and signing is
retried, up to max-retries times.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseNumber("private key", args[0])
			if err != nil {
				return err
			}
			z, err := c.messageHash(args[1:], message)
			if err != nil {
				return err
			}
			var s *big.Int
			if seed != "" {
				if s, err = parseNumber("seed", seed); err != nil {
					return err
				}
			}

			defer c.timed("sign", time.Now())
			sig, err := c.signWithRetry(d, z, s)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			c.println(out, sig.R, sig.S)
			fmt.Fprintln(out, sig.V)
			return nil
		},
	}
	cmd.Flags().StringVar(&seed, "seed", "", "extra entropy for the nonce")
	cmd.Flags().StringVar(&message, "message", "", "sign sn_keccak(message) instead of a hash argument")
	cmd.Flags().Int(keyMaxRetries, 8, "how many seeds to try when a signature must be retried")
	_ = c.v.BindPFlag(keyMaxRetries, cmd.Flags().Lookup(keyMaxRetries))
	return cmd
}

func (c *cli) messageHash(args []string, message string) (*big.Int, error) {
	switch {
	case message != "" && len(args) > 0:
		return nil, errors.New("pass either a message hash or --message, not both")
	case message != "":
		return starkcrypto.StarknetKeccak([]byte(message)), nil
	case len(args) == 1:
		return parseNumber("message hash", args[0])
	default:
		return nil, errors.New("missing message hash")
	}
}

// signWithRetry signs, moving to the next seed while the signature has to
// be retried.
func (c *cli) signWithRetry(d, z, seed *big.Int) (*starkcrypto.Signature, error) {
	maxRetries := c.v.GetInt(keyMaxRetries)
	for attempt := 0; ; attempt++ {
		sig, err := starkcrypto.SignRecoverable(d, z, seed)
		if err == nil {
			return sig, nil
		}
		if !errors.Is(err, starkcrypto.ErrSigningRetryRequired) || attempt >= maxRetries {
			return nil, errors.Wrap(err, "signing")
		}
		c.logger.Debug("retrying signature with next seed", zap.Int("attempt", attempt+1))
		if seed == nil {
			seed = new(big.Int)
		}
		seed = new(big.Int).Add(seed, big.NewInt(1))
	}
}

func (c *cli) verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <public-key> <msg-hash> <r> <s>",
		Short: "Verify a signature and print true or false",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			vs, err := parseNumbers("argument", args)
			if err != nil {
				return err
			}
			defer c.timed("verify", time.Now())
			ok, err := starkcrypto.Verify(vs[0], vs[1], vs[2], vs[3])
			if err != nil {
				return errors.Wrap(err, "verifying signature")
			}
			fmt.Fprintln(cmd.OutOrStdout(), ok)
			return nil
		},
	}
}

func (c *cli) recoverCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recover <msg-hash> <r> <s> <v>",
		Short: "Recover the public key that produced a signature",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			vs, err := parseNumbers("argument", args[:3])
			if err != nil {
				return err
			}
			v, err := strconv.ParseUint(args[3], 10, 8)
			if err != nil {
				return errors.Wrapf(err, "recovery id %q", args[3])
			}
			defer c.timed("recover", time.Now())
			pub, err := starkcrypto.Recover(vs[0], vs[1], vs[2], uint8(v))
			if err != nil {
				return errors.Wrap(err, "recovering public key")
			}
			c.println(cmd.OutOrStdout(), pub)
			return nil
		},
	}
}

func (c *cli) pedersenCmd() *cobra.Command {
	var elements bool
	cmd := &cobra.Command{
		Use:   "pedersen <a> <b> | --elements [x...]",
		Short: "Print the Pedersen hash of two field elements, or of an array",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !elements && len(args) != 2 {
				return errors.Errorf("pedersen takes 2 arguments, got %d", len(args))
			}
			xs, err := parseNumbers("input", args)
			if err != nil {
				return err
			}
			defer c.timed("pedersen", time.Now())
			var h *big.Int
			if elements {
				h, err = starkcrypto.PedersenHashOnElements(xs)
			} else {
				h, err = starkcrypto.PedersenHash(xs[0], xs[1])
			}
			if err != nil {
				return errors.Wrap(err, "pedersen hash")
			}
			c.println(cmd.OutOrStdout(), h)
			return nil
		},
	}
	cmd.Flags().BoolVar(&elements, "elements", false, "hash any number of elements with the array construction")
	return cmd
}

func (c *cli) poseidonCmd() *cobra.Command {
	var single, many bool
	cmd := &cobra.Command{
		Use:   "poseidon <x> <y> | --single <x> | --many [x...]",
		Short: "Print the Poseidon hash of one, two or many field elements",
		RunE: func(cmd *cobra.Command, args []string) error {
			if single && many {
				return errors.New("--single and --many are mutually exclusive")
			}
			switch {
			case single && len(args) != 1:
				return errors.Errorf("poseidon --single takes 1 argument, got %d", len(args))
			case !single && !many && len(args) != 2:
				return errors.Errorf("poseidon takes 2 arguments, got %d", len(args))
			}
			xs, err := parseNumbers("input", args)
			if err != nil {
				return err
			}
			defer c.timed("poseidon", time.Now())
			var h *big.Int
			switch {
			case single:
				h, err = starkcrypto.PoseidonHashSingle(xs[0])
			case many:
				h, err = starkcrypto.PoseidonHashMany(xs)
			default:
				h, err = starkcrypto.PoseidonHash(xs[0], xs[1])
			}
			if err != nil {
				return errors.Wrap(err, "poseidon hash")
			}
			c.println(cmd.OutOrStdout(), h)
			return nil
		},
	}
	cmd.Flags().BoolVar(&single, "single", false, "hash exactly one element")
	cmd.Flags().BoolVar(&many, "many", false, "hash any number of elements with the sponge")
	return cmd
}

func (c *cli) keccakCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keccak <text>",
		Short: "Print sn_keccak of the UTF-8 text, e.g. an entry point selector",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.println(cmd.OutOrStdout(), starkcrypto.StarknetKeccak([]byte(args[0])))
			return nil
		},
	}
}
