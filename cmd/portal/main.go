package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
)

var (
	version = "dev"
	cli     struct {
		Version kong.VersionFlag
		Serve   ServeCmd `cmd:"" default:"1" help:"Start the portal web server."`
		Check   CheckCmd `cmd:"" help:"Verify configuration and that the session store and Directory API are reachable."`
	}
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cmd := kong.Parse(&cli,
		kong.Name("portal"),
		kong.Description("Employee directory portal."),
		kong.Vars{"version": version},
		kong.BindTo(ctx, (*context.Context)(nil)))
	err := cmd.Run(&Globals{Version: version})
	cmd.FatalIfErrorf(err)
}
