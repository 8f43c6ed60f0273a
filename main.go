package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/rvtools/rvctrl/cmd"
)

func main() {
	app := cli.NewApp()
	app.Name = "rvctrl"
	app.Usage = "RISC-V control-signal decode-table compiler"
	app.Description = "Compile instruction records and control-signal configs into decode tables and generated Chisel sources."
	app.Commands = []*cli.Command{
		cmd.ConvertCommand,
		cmd.GenCommand,
		cmd.DumpCommand,
	}
	ctx, cancel := context.WithCancel(context.Background())

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		for {
			<-c
			cancel()
			fmt.Println("\r\nExiting...")
		}
	}()

	err := app.RunContext(ctx, os.Args)
	if err != nil {
		if errors.Is(err, ctx.Err()) {
			_, _ = fmt.Fprintf(os.Stderr, "command interrupted")
			os.Exit(130)
		} else {
			_, _ = fmt.Fprintf(os.Stderr, "error: %v", err)
			os.Exit(1)
		}
	}
}
