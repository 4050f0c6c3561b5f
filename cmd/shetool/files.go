package main

import (
	"os"
	"slices"

	"github.com/fxamacker/cbor/v2"
	"github.com/urfave/cli"
	"github.com/vocdoni/gnark-crypto-she/curves"
	"github.com/vocdoni/gnark-crypto-she/dlp/store"
	"github.com/vocdoni/gnark-crypto-she/she"
	"golang.org/x/xerrors"
)

const (
	kindSecretKey = "secret-key"
	kindPublicKey = "public-key"
)

// envelope is the content of every file written by shetool. Kind is one of
// the key kinds or the group of a ciphertext.
type envelope struct {
	Curve  string `cbor:"1,keyasint"`
	Single bool   `cbor:"2,keyasint,omitempty"`
	Kind   string `cbor:"3,keyasint"`
	Data   []byte `cbor:"4,keyasint"`
}

var encMode = func() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}()

func writeEnvelope(path string, env envelope) error {
	buf, err := encMode.Marshal(env)
	if err != nil {
		return xerrors.Errorf("encoding %s: %v", env.Kind, err)
	}
	if err := os.WriteFile(path, buf, 0o600); err != nil {
		return xerrors.Errorf("writing %s: %v", path, err)
	}
	return nil
}

// readEnvelope reads path and checks that its kind is one of kinds.
func readEnvelope(path string, kinds ...string) (*envelope, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, xerrors.Errorf("reading %s: %v", path, err)
	}
	env := new(envelope)
	if err := cbor.Unmarshal(buf, env); err != nil {
		return nil, xerrors.Errorf("decoding %s: %v", path, err)
	}
	if !slices.Contains(kinds, env.Kind) {
		return nil, xerrors.Errorf("%s holds a %s, want %v", path, env.Kind, kinds)
	}
	return env, nil
}

// sameScheme fails unless every envelope was produced with the curve and
// mode of the first one.
func sameScheme(envs ...*envelope) error {
	for _, env := range envs[1:] {
		if env.Curve != envs[0].Curve || env.Single != envs[0].Single {
			return xerrors.Errorf("%s and %s: %w", envs[0].Curve, env.Curve, she.ErrSchemeMismatch)
		}
	}
	return nil
}

func parseGroup(name string) (she.GroupID, error) {
	for _, id := range []she.GroupID{she.GroupG1, she.GroupG2, she.GroupGT} {
		if id.String() == name {
			return id, nil
		}
	}
	return 0, xerrors.Errorf("unknown group %q", name)
}

// openScheme initializes a scheme on the named curve with the global flags.
// The returned function releases the table store, if any.
func openScheme(c *cli.Context, curveName string, single bool) (*she.Scheme, func(), error) {
	id, err := curves.Parse(curveName)
	if err != nil {
		return nil, nil, err
	}
	opts := []she.Option{
		she.WithHashSize(c.GlobalInt("hash-size")),
		she.WithTryNum(c.GlobalInt("try-num")),
	}
	release := func() {}
	if path := c.GlobalString("table-db"); path != "" {
		st, err := store.Open(path)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, she.WithTableStore(st))
		release = func() { st.Close() }
	}
	newScheme := she.New
	if single || slices.Contains(curves.SingleGroup, id) {
		newScheme = she.NewG1Only
	}
	s, err := newScheme(id, opts...)
	if err != nil {
		release()
		return nil, nil, err
	}
	return s, release, nil
}

// flagScheme initializes the scheme selected by --curve and --g1-only.
func flagScheme(c *cli.Context) (*she.Scheme, func(), error) {
	return openScheme(c, c.GlobalString("curve"), c.GlobalBool("g1-only"))
}

func envelopeOf(s *she.Scheme, kind string, data []byte) envelope {
	return envelope{
		Curve:  curves.Name(s.Curve()),
		Single: s.SingleLevel(),
		Kind:   kind,
		Data:   data,
	}
}
