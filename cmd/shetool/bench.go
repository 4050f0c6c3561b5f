package main

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/consensys/gnark/logger"
	"github.com/montanaflynn/stats"
	"github.com/urfave/cli"
	"github.com/vocdoni/gnark-crypto-she/she"
	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"
)

// benchLimit bounds the plaintexts of a run so that decryption stays in the
// range of small tables.
const benchLimit = 1 << 20

// latencies holds one sample per plaintext and operation, in milliseconds.
type latencies map[string][]float64

func bench(c *cli.Context) error {
	n, workers := c.Int("n"), c.Int("workers")
	if n < 2 || workers < 1 {
		return xerrors.New("n must be at least 2 and workers positive")
	}
	id, err := parseGroup(c.String("group"))
	if err != nil {
		return err
	}
	s, release, err := flagScheme(c)
	if err != nil {
		return err
	}
	defer release()
	sk, err := s.GenerateSecretKey()
	if err != nil {
		return err
	}
	limit, err := s.MaxPlaintext(id)
	if err != nil {
		return err
	}
	limit = min(limit, benchLimit)

	var run func(i int, m int64) error
	lat := latencies{"encrypt": make([]float64, n), "decrypt": make([]float64, n)}
	switch id {
	case she.GroupG1:
		run = benchRun[she.G1](sk, lat)
	case she.GroupG2:
		run = benchRun[she.G2](sk, lat)
	case she.GroupGT:
		run = benchRun[she.GT](sk, lat)
	}
	if !s.SingleLevel() {
		lat["multiply"] = make([]float64, n)
		run = withMultiply(run, sk, lat["multiply"])
	}

	start := time.Now()
	g := new(errgroup.Group)
	g.SetLimit(workers)
	for i := range n {
		m := rand.Int64N(2*limit+1) - limit
		g.Go(func() error { return run(i, m) })
	}
	if err := g.Wait(); err != nil {
		return err
	}
	log := logger.Logger()
	log.Info().Str("curve", s.Curve().String()).Stringer("group", id).
		Int("n", n).Int("workers", workers).Dur("elapsed", time.Since(start)).Msg("benchmark done")
	return report(c, lat)
}

func since(t time.Time) float64 {
	return float64(time.Since(t).Microseconds()) / 1000
}

// benchRun returns a function encrypting and decrypting m as the i-th sample.
func benchRun[L she.Level](sk *she.SecretKey, lat latencies) func(int, int64) error {
	pk := sk.PublicKey()
	enc, dec := lat["encrypt"], lat["decrypt"]
	return func(i int, m int64) error {
		t := time.Now()
		ct, err := she.Encrypt[L](pk, m)
		if err != nil {
			return err
		}
		enc[i] = since(t)
		t = time.Now()
		got, err := she.Decrypt(sk, ct)
		if err != nil {
			return err
		}
		dec[i] = since(t)
		if got != m {
			return xerrors.Errorf("decrypted %d, want %d", got, m)
		}
		return nil
	}
}

// withMultiply extends run with the product of fresh G1 and G2 encryptions
// of m and 1.
func withMultiply(run func(int, int64) error, sk *she.SecretKey, out []float64) func(int, int64) error {
	pk := sk.PublicKey()
	return func(i int, m int64) error {
		if err := run(i, m); err != nil {
			return err
		}
		a, err := pk.EncryptG1(m)
		if err != nil {
			return err
		}
		b, err := pk.EncryptG2(1)
		if err != nil {
			return err
		}
		t := time.Now()
		if _, err := she.Multiply(a, b); err != nil {
			return err
		}
		out[i] = since(t)
		return nil
	}
}

func report(c *cli.Context, lat latencies) error {
	fmt.Fprintf(c.App.Writer, "%-10s %10s %10s %10s %10s %10s\n", "op", "mean", "median", "p95", "max", "stddev")
	for _, op := range []string{"encrypt", "decrypt", "multiply"} {
		data, ok := lat[op]
		if !ok {
			continue
		}
		mean, err := stats.Mean(data)
		if err != nil {
			return err
		}
		median, err := stats.Median(data)
		if err != nil {
			return err
		}
		p95, err := stats.Percentile(data, 95)
		if err != nil {
			return err
		}
		maxLat, err := stats.Max(data)
		if err != nil {
			return err
		}
		sd, err := stats.StandardDeviation(data)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "%-10s %8.3fms %8.3fms %8.3fms %8.3fms %8.3fms\n", op, mean, median, p95, maxLat, sd)
	}
	return nil
}
