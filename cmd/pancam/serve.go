package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cjeanneret/PanCam/internal/debug"
	"github.com/cjeanneret/PanCam/internal/web"
)

func newServeCmd(a *app) *cobra.Command {
	port := &portFlag{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the planning session behind the web control UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port.port() == 0 {
				port.val = a.cfg.WebPort()
			}
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return a.serve(ctx, port.port())
		},
	}
	cmd.Flags().VarP(port, "port", "p", "HTTP port 1-65535 (default: web_port from the config)")
	return cmd
}

func (a *app) serve(ctx context.Context, port int) error {
	s, assets, err := buildSession(a.cfg)
	if err != nil {
		return err
	}

	broadcaster := web.NewStatusBroadcaster()
	debug.SetOutput(io.MultiWriter(os.Stdout, web.BroadcastWriter(broadcaster)))

	srv, err := web.NewServer(fmt.Sprintf(":%d", port), s, assets, broadcaster, a.cfg.OverlapRatio())
	if err != nil {
		return err
	}
	go loadAssets(ctx, assets, a.cfg.AssetDir())

	return srv.Run(ctx)
}

// portFlag implements pflag.Value for --port: 0 = use the config.
type portFlag struct {
	val int
}

func (p *portFlag) String() string {
	return strconv.Itoa(p.val)
}

func (p *portFlag) Set(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	if v <= 0 || v > 65535 {
		return fmt.Errorf("port must be 1-65535, got %d", v)
	}
	p.val = v
	return nil
}

func (p *portFlag) Type() string { return "port" }

func (p *portFlag) port() int { return p.val }
