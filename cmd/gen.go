package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"

	"github.com/pkg/profile"

	"github.com/ethereum-optimism/optimism/op-service/ioutil"
	"github.com/ethereum-optimism/optimism/op-service/jsonutil"

	"github.com/rvtools/rvctrl/backend"
	"github.com/rvtools/rvctrl/ctrl"
	"github.com/rvtools/rvctrl/decode"
	"github.com/rvtools/rvctrl/isa"
)

var (
	GenDBFlag = &cli.PathFlag{
		Name:     "db",
		Usage:    "flat instruction record database",
		Required: true,
	}
	GenConfigFlag = &cli.PathFlag{
		Name:     "config",
		Usage:    "JSON control-signal config",
		Required: true,
	}
	GenOutFlag = &cli.PathFlag{
		Name:  "out",
		Value: "generated",
		Usage: "directory for generated Chisel sources",
	}
	GenPackageFlag = &cli.StringFlag{
		Name:  "package",
		Value: "rv.util.decoder.ctrl",
		Usage: "Scala package of the generated sources",
	}
	GenReportFlag = &cli.PathFlag{
		Name:  "report",
		Usage: "write a JSON compile report, '-' for stdout",
	}
	GenPProfCPU = &cli.BoolFlag{
		Name:  "pprof.cpu",
		Usage: "profile cpu usage of the compile",
	}
)

var OutFilePerm = os.FileMode(0o755)

// SignalReport is the per-field compile summary. Unmatched surfaces the
// silent-default classifications so missing entries in the signal config are
// discoverable from build output.
type SignalReport struct {
	Signal    string         `json:"signal"`
	Scheme    string         `json:"scheme"`
	Width     uint           `json:"width"`
	Entries   int            `json:"entries"`
	Unmatched int            `json:"unmatched"`
	Default   hexutil.Uint64 `json:"default"`
}

func Gen(ctx *cli.Context) error {
	if ctx.Bool(GenPProfCPU.Name) {
		defer profile.Start(profile.NoShutdownHook, profile.ProfilePath("."), profile.CPUProfile).Stop()
	}
	l := Logger(os.Stderr, log.LevelInfo)

	store, err := isa.LoadDB(ctx.Path(GenDBFlag.Name))
	if err != nil {
		return err
	}
	cfgs, err := ctrl.LoadSignals(ctx.Path(GenConfigFlag.Name))
	if err != nil {
		return err
	}
	l.Info("loaded inputs", "records", store.Count(), "signals", len(cfgs))

	outDir := ctx.Path(GenOutFlag.Name)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	reports := make([]SignalReport, 0, len(cfgs))
	for _, cfg := range cfgs {
		sig, err := cfg.Build()
		if err != nil {
			return err
		}
		tbl, err := decode.Compile(sig.Name, store.Records(), sig.Rule, sig.Codes)
		if err != nil {
			return err
		}

		for name, cases := range sig.Rule.Overlaps() {
			l.Warn("instruction listed in multiple cases, first match wins",
				"signal", sig.Name, "instruction", name, "cases", strings.Join(cases, ","))
		}
		if n := tbl.Unmatched(); n > 0 {
			l.Warn("instructions fell through to the default code", "signal", sig.Name, "count", n)
		}

		path := filepath.Join(outDir, sig.Name+".scala")
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := backend.WriteChisel(f, ctx.String(GenPackageFlag.Name), sig, tbl); err != nil {
			f.Close()
			return fmt.Errorf("failed to emit %s: %w", sig.Name, err)
		}
		if err := f.Close(); err != nil {
			return err
		}

		l.Info("generated control signal",
			"signal", sig.Name,
			"scheme", sig.Codes.Scheme(),
			"width", tbl.Width(),
			"entries", tbl.Len(),
			"path", path,
		)
		reports = append(reports, SignalReport{
			Signal:    sig.Name,
			Scheme:    sig.Codes.Scheme().String(),
			Width:     tbl.Width(),
			Entries:   tbl.Len(),
			Unmatched: tbl.Unmatched(),
			Default:   hexutil.Uint64(tbl.Default()),
		})
	}

	if reportPath := ctx.Path(GenReportFlag.Name); reportPath != "" {
		if err := jsonutil.WriteJSON(reports, ioutil.ToStdOutOrFileOrNoop(reportPath, OutFilePerm)); err != nil {
			return fmt.Errorf("failed to write compile report: %w", err)
		}
	}
	return nil
}

var GenCommand = &cli.Command{
	Name:        "gen",
	Usage:       "Compile decode tables and emit Chisel control enums",
	Description: "Compile the record database and signal config into per-field decode tables, then emit one Chisel source per control signal.",
	Action:      Gen,
	Flags: []cli.Flag{
		GenDBFlag,
		GenConfigFlag,
		GenOutFlag,
		GenPackageFlag,
		GenReportFlag,
		GenPProfCPU,
	},
}
