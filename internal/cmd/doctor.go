package cmd

import (
	"flag"
	"fmt"
	"io"

	"github.com/offlinefirst/snapvault/pkg/screenshots"
)

func newDoctorCommand() command {
	return command{
		name:        "doctor",
		description: "Diagnose screenshot capture support on this host",
		run:         runDoctor,
	}
}

// detectEnvironment is extracted for testability.
var detectEnvironment = screenshots.DetectEnvironment

func runDoctor(fs *flag.FlagSet, args []string, ctx *AppContext, stdout io.Writer, stderr io.Writer) error {
	if ctx == nil {
		return fmt.Errorf("application context unavailable")
	}

	env := detectEnvironment()
	ctx.Logger.Info("doctor command invoked", "provider", env.Provider, "displays", env.Displays, "available", env.Available)

	fmt.Fprintf(stdout, "capture backend:   %s\n", env.Provider)
	fmt.Fprintf(stdout, "active displays:   %d\n", env.Displays)
	fmt.Fprintf(stdout, "screen recording:  %s\n", env.Permission)
	fmt.Fprintf(stdout, "backup directory:  %s\n", ctx.Config.Paths.BackupDir)
	if env.Message != "" {
		fmt.Fprintf(stdout, "note:              %s\n", env.Message)
	}
	if env.Guidance != "" {
		fmt.Fprintf(stdout, "guidance:          %s\n", env.Guidance)
	}

	if !env.Available {
		fmt.Fprintln(stdout, "status:            capture unavailable")
		return nil
	}
	fmt.Fprintln(stdout, "status:            ok")
	return nil
}
