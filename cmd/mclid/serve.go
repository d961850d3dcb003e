package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"mcli"
	"mcli/internal/device"
	"mcli/transport/tcpserver"
)

var (
	serveConfigPath string
	serveListen     string
	servePoll       time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the console over TCP",
	Long: `Serve the console over a TCP listener, one client at a time. Connect
with mcliterm, netcat, or a telnet client.`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to a YAML config file")
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "Listen address, overriding the config file")
	serveCmd.Flags().DurationVar(&servePoll, "poll", 0, "Engine polling interval, overriding the config file")
}

func runServe(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig(serveConfigPath)
	handleError(err, "configuration error")
	if cmd.Flags().Changed("listen") {
		cfg.Listen = serveListen
	}
	if cmd.Flags().Changed("poll") {
		cfg.Poll = servePoll
	}
	handleError(cfg.validate(), "configuration error")

	srv, err := tcpserver.Listen(tcpserver.Config{
		Addr:        cfg.Listen,
		StripTelnet: cfg.Telnet,
	})
	handleError(err, "listen error")
	defer srv.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dev := device.New(srv)
	eng := mcli.New(srv, dev, device.Commands())
	if cfg.Prompt != "" {
		eng.SetPrompt(cfg.Prompt)
	}

	log.Printf("listening on %s", srv.Addr())
	if err := serveLoop(ctx, srv, eng, cfg); err != nil {
		handleError(err, "serve error")
	}
	log.Printf("shut down")
}

// serveLoop accepts one client at a time and polls the engine until
// the client goes away or the context is canceled.
func serveLoop(ctx context.Context, srv *tcpserver.Server, eng *mcli.Engine[device.Device], cfg Config) error {
	tick := time.NewTicker(cfg.Poll)
	defer tick.Stop()

	for {
		if err := srv.WaitClient(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		log.Printf("client connected: %s", srv.RemoteAddr())

		if cfg.Banner != "" {
			mcli.Println(srv, cfg.Banner)
		}
		eng.ResetSession()

		for srv.Connected() {
			select {
			case <-ctx.Done():
				return nil
			case <-tick.C:
				eng.ProcessInput()
			}
		}
		log.Printf("client disconnected")
	}
}
