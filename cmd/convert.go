package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"

	"github.com/rvtools/rvctrl/isa"
)

var (
	ConvertInputFlag = &cli.PathFlag{
		Name:     "input",
		Aliases:  []string{"i"},
		Usage:    "riscv-opcodes instr_dict.json to import",
		Required: true,
	}
	ConvertOutputFlag = &cli.PathFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Value:   "riscv_instructions.db",
		Usage:   "flat record database to write",
	}
	ConvertExtensionsFlag = &cli.StringFlag{
		Name:    "extensions",
		Aliases: []string{"e"},
		Usage:   "comma-separated extension tags to keep (default: keep all)",
	}
	ConvertListExtensionsFlag = &cli.BoolFlag{
		Name:    "list-extensions",
		Aliases: []string{"l"},
		Usage:   "list the available extension tags and exit",
	}
	ConvertValidateFlag = &cli.BoolFlag{
		Name:  "validate",
		Usage: "re-check record encodings after import",
	}
)

func Convert(ctx *cli.Context) error {
	l := Logger(os.Stderr, log.LevelInfo)

	input := ctx.Path(ConvertInputFlag.Name)
	st, err := isa.LoadOpcodesJSON(input)
	if err != nil {
		return err
	}
	if st.Count() == 0 {
		return fmt.Errorf("no instructions with encodings found in %s", input)
	}

	if ctx.Bool(ConvertListExtensionsFlag.Name) {
		for _, ext := range st.Extensions() {
			fmt.Println(ext)
		}
		return nil
	}

	if raw := ctx.String(ConvertExtensionsFlag.Name); raw != "" {
		var tags []string
		for _, tag := range strings.Split(raw, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
		before := st.Count()
		filtered, unknown, err := st.FilterExtensions(tags)
		if err != nil {
			return err
		}
		if len(unknown) > 0 {
			l.Warn("requested extensions matched no instructions", "extensions", strings.Join(unknown, ","))
		}
		l.Info("filtered instructions by extension", "before", before, "after", filtered.Count())
		st = filtered
	}

	if ctx.Bool(ConvertValidateFlag.Name) {
		if issues := st.Validate(); len(issues) > 0 {
			for _, issue := range issues {
				l.Error("invalid record", "issue", issue)
			}
			return fmt.Errorf("validation found %d issue(s)", len(issues))
		}
	}

	output := ctx.Path(ConvertOutputFlag.Name)
	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create record database: %w", err)
	}
	defer f.Close()
	if err := isa.WriteRecords(f, st.Records()); err != nil {
		return fmt.Errorf("failed to write record database: %w", err)
	}
	l.Info("wrote record database", "path", output, "records", st.Count())
	return nil
}

var ConvertCommand = &cli.Command{
	Name:        "convert",
	Usage:       "Import a riscv-opcodes JSON dictionary into the flat record database",
	Description: "Import a riscv-opcodes instr_dict.json, normalize the encodings to the {0,1,?} alphabet, optionally filter by extension, and write the flat record database consumed by gen.",
	Action:      Convert,
	Flags: []cli.Flag{
		ConvertInputFlag,
		ConvertOutputFlag,
		ConvertExtensionsFlag,
		ConvertListExtensionsFlag,
		ConvertValidateFlag,
	},
}
