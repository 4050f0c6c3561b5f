package main

import (
	"fmt"
	"os"

	"github.com/consensys/gnark/logger"
	"github.com/urfave/cli"
	"github.com/vocdoni/gnark-crypto-she/dlp/store"
	"golang.org/x/xerrors"
)

func tableBuild(c *cli.Context) error {
	if c.GlobalString("table-db") == "" {
		return xerrors.New("please give --table-db")
	}
	// initializing a scheme with a store computes and saves the missing tables
	s, release, err := flagScheme(c)
	if err != nil {
		return err
	}
	release()
	log := logger.Logger()
	log.Info().Str("curve", s.Curve().String()).
		Int("hashSize", c.GlobalInt("hash-size")).Msg("tables stored")
	return nil
}

func tableInspect(c *cli.Context) error {
	path := c.GlobalString("table-db")
	if path == "" {
		return xerrors.New("please give --table-db")
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return xerrors.New("this db doesn't exist")
	}
	st, err := store.Open(path)
	if err != nil {
		return err
	}
	defer st.Close()
	entries, err := st.List()
	if err != nil {
		return xerrors.Errorf("listing tables: %v", err)
	}
	for _, e := range entries {
		fmt.Fprintf(c.App.Writer, "%s\t%d\t%d bytes\n", e.Group, e.Size, e.Len)
	}
	return nil
}

func tableExport(c *cli.Context) error {
	id, err := parseGroup(c.String("group"))
	if err != nil {
		return err
	}
	s, release, err := flagScheme(c)
	if err != nil {
		return err
	}
	defer release()
	f, err := os.Create(c.String("out"))
	if err != nil {
		return xerrors.Errorf("creating table file: %v", err)
	}
	if err := s.SaveTable(id, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
