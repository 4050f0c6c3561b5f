// Command shetool generates keys, encrypts, combines and decrypts integers
// with the two-level homomorphic scheme of package she. Keys and ciphertexts
// are stored as cbor files.
package main

import (
	"os"
	"runtime"

	"github.com/consensys/gnark/logger"
	"github.com/rs/zerolog"
	"github.com/urfave/cli"
	"github.com/vocdoni/gnark-crypto-she/she"
	"golang.org/x/xerrors"
)

func main() {
	// stdout carries plaintexts and reports
	logger.SetOutput(os.Stderr)
	if err := newApp().Run(os.Args); err != nil {
		log := logger.Logger()
		log.Fatal().Err(err).Msg("shetool failed")
	}
}

func newApp() *cli.App {
	outFlag := cli.StringFlag{
		Name:      "out, o",
		Usage:     "output file",
		Required:  true,
		TakesFile: true,
	}
	cliApp := cli.NewApp()
	cliApp.Name = "shetool"
	cliApp.Usage = "somewhat homomorphic encryption over pairing curves"
	cliApp.Version = "0.1"
	cliApp.Commands = cli.Commands{
		{
			Name:   "keygen",
			Usage:  "generate a secret key and its public key",
			Action: keygen,
			Flags: cli.FlagsByName{
				outFlag,
				cli.StringFlag{
					Name:      "pub, p",
					Usage:     "public key output file",
					Required:  true,
					TakesFile: true,
				},
			},
		},
		{
			Name:   "encrypt",
			Usage:  "encrypt an integer",
			Action: encrypt,
			Flags: cli.FlagsByName{
				outFlag,
				cli.StringFlag{
					Name:      "pub, p",
					Usage:     "public key file",
					Required:  true,
					TakesFile: true,
				},
				cli.StringFlag{
					Name:  "group, g",
					Usage: "ciphertext group: G1, G2 or GT",
					Value: "G1",
				},
				cli.Int64Flag{
					Name:  "value, m",
					Usage: "plaintext",
				},
			},
		},
		{
			Name:      "add",
			Usage:     "add two ciphertexts of the same group",
			ArgsUsage: "a.ct b.ct",
			Action:    arithAction("add", 2),
			Flags:     cli.FlagsByName{outFlag},
		},
		{
			Name:      "sub",
			Usage:     "subtract the second ciphertext from the first",
			ArgsUsage: "a.ct b.ct",
			Action:    arithAction("sub", 2),
			Flags:     cli.FlagsByName{outFlag},
		},
		{
			Name:      "neg",
			Usage:     "negate a ciphertext",
			ArgsUsage: "a.ct",
			Action:    arithAction("neg", 1),
			Flags:     cli.FlagsByName{outFlag},
		},
		{
			Name:      "scale",
			Usage:     "multiply a ciphertext by a plain integer",
			ArgsUsage: "a.ct",
			Action:    arithAction("scale", 1),
			Flags: cli.FlagsByName{
				outFlag,
				cli.Int64Flag{
					Name:     "by, k",
					Usage:    "plain factor",
					Required: true,
				},
			},
		},
		{
			Name:      "mul",
			Usage:     "multiply a G1 ciphertext by a G2 ciphertext into GT",
			ArgsUsage: "g1.ct g2.ct",
			Action:    mul,
			Flags:     cli.FlagsByName{outFlag},
		},
		{
			Name:      "convert",
			Usage:     "lift a G1 or G2 ciphertext to GT",
			ArgsUsage: "a.ct",
			Action:    convert,
			Flags:     cli.FlagsByName{outFlag},
		},
		{
			Name:      "decrypt",
			Usage:     "decrypt a ciphertext and print the plaintext",
			ArgsUsage: "a.ct",
			Action:    decrypt,
			Flags: cli.FlagsByName{
				cli.StringFlag{
					Name:      "key, s",
					Usage:     "secret key file",
					Required:  true,
					TakesFile: true,
				},
			},
		},
		{
			Name:  "table",
			Usage: "manage the decryption tables of --table-db",
			Subcommands: cli.Commands{
				{
					Name:   "build",
					Usage:  "compute and store the tables of --curve and --hash-size",
					Action: tableBuild,
				},
				{
					Name:   "inspect",
					Usage:  "list the stored tables",
					Action: tableInspect,
				},
				{
					Name:   "export",
					Usage:  "write the table of one group to a file",
					Action: tableExport,
					Flags: cli.FlagsByName{
						outFlag,
						cli.StringFlag{
							Name:  "group, g",
							Usage: "G1, G2 or GT",
							Value: "G1",
						},
					},
				},
			},
		},
		{
			Name:   "bench",
			Usage:  "measure encryption, decryption and multiplication latencies",
			Action: bench,
			Flags: cli.FlagsByName{
				cli.IntFlag{
					Name:  "n",
					Usage: "number of plaintexts",
					Value: 64,
				},
				cli.IntFlag{
					Name:  "workers, w",
					Usage: "number of concurrent workers",
					Value: runtime.NumCPU(),
				},
				cli.StringFlag{
					Name:  "group, g",
					Usage: "G1, G2 or GT",
					Value: "G1",
				},
			},
		},
	}
	cliApp.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "curve, c",
			Usage:  "bn254, bls12-381, bls12-377 or secp256k1",
			Value:  "bn254",
			EnvVar: "SHE_CURVE",
		},
		cli.BoolFlag{
			Name:  "g1-only",
			Usage: "single-level mode, implied by secp256k1",
		},
		cli.IntFlag{
			Name:   "hash-size",
			Usage:  "baby steps per decryption table",
			Value:  she.DefaultHashSize,
			EnvVar: "SHE_HASH_SIZE",
		},
		cli.IntFlag{
			Name:   "try-num",
			Usage:  "giant steps tried by decryption",
			Value:  she.DefaultTryNum,
			EnvVar: "SHE_TRY_NUM",
		},
		cli.StringFlag{
			Name:      "table-db",
			Usage:     "bbolt database caching the decryption tables",
			EnvVar:    "SHE_TABLE_DB",
			TakesFile: true,
		},
		cli.StringFlag{
			Name:   "log-level",
			Usage:  "debug, info, warn or error",
			Value:  "info",
			EnvVar: "SHE_LOG_LEVEL",
		},
	}
	cliApp.Before = func(c *cli.Context) error {
		lvl, err := zerolog.ParseLevel(c.String("log-level"))
		if err != nil {
			return xerrors.Errorf("log level: %v", err)
		}
		logger.Set(logger.Logger().Level(lvl))
		return nil
	}
	return cliApp
}
