package cmd

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/urfave/cli/v2"

	"github.com/rvtools/rvctrl/ctrl"
	"github.com/rvtools/rvctrl/decode"
	"github.com/rvtools/rvctrl/isa"
)

func Dump(ctx *cli.Context) error {
	store, err := isa.LoadDB(ctx.Path(GenDBFlag.Name))
	if err != nil {
		return err
	}
	cfgs, err := ctrl.LoadSignals(ctx.Path(GenConfigFlag.Name))
	if err != nil {
		return err
	}

	tables := make([]*decode.DecodeTable, 0, len(cfgs))
	for _, cfg := range cfgs {
		sig, err := cfg.Build()
		if err != nil {
			return err
		}
		tbl, err := decode.Compile(sig.Name, store.Records(), sig.Rule, sig.Codes)
		if err != nil {
			return err
		}
		tables = append(tables, tbl)
	}

	spew.Dump(tables)
	return nil
}

var DumpCommand = &cli.Command{
	Name:        "dump",
	Usage:       "Dump the compiled decode tables for inspection",
	Description: "Compile the decode tables like gen, then pretty-print the raw table structures instead of emitting backend sources.",
	Action:      Dump,
	Flags: []cli.Flag{
		GenDBFlag,
		GenConfigFlag,
	},
}
