// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"code.hybscloud.com/netmsg/config"
	"code.hybscloud.com/netmsg/server"
)

// Cmd is the command line arguments, grounded on the coordinator's flat
// flag-struct-plus-cobra pattern.
type Cmd struct {
	ConfigPath         string
	Addr               string
	PongInterval       time.Duration
	PingInterval       time.Duration
	PrintDefaultConfig bool
}

var cmd Cmd

var rootCmd = &cobra.Command{
	Use:   "netmsg-server",
	Short: "UDP message-oriented server",
	RunE: func(_ *cobra.Command, _ []string) error {
		if cmd.PrintDefaultConfig {
			out, err := config.DefaultFileYAML()
			if err != nil {
				return err
			}
			fmt.Print(string(out))
			return nil
		}
		return run(cmd)
	},
}

func init() {
	rootCmd.Flags().StringVarP(&cmd.ConfigPath, "config", "c", "", "Path to an optional config file")
	rootCmd.Flags().StringVarP(&cmd.Addr, "addr", "a", ":9500", "UDP address to bind")
	rootCmd.Flags().DurationVar(&cmd.PongInterval, "pong-interval", 10*time.Second, "heartbeat pong window")
	rootCmd.Flags().DurationVar(&cmd.PingInterval, "ping-interval", 5*time.Second, "heartbeat ping window")
	rootCmd.Flags().BoolVar(&cmd.PrintDefaultConfig, "print-default-config", false, "print a starting config.yaml to stdout and exit")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("ERROR:", err)
		os.Exit(1)
	}
}

func run(cmd Cmd) error {
	logCfg := zap.NewProductionConfig()
	logger, err := logCfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	opts := config.Default()
	if cmd.ConfigPath != "" {
		opts, err = config.Load(cmd.ConfigPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}
	if cmd.PongInterval > 0 && cmd.PingInterval > 0 {
		opts.PongInterval = cmd.PongInterval
		opts.PingInterval = cmd.PingInterval
	}
	opts.Logger = sugar

	srv := server.New(
		server.WithHeartbeat(opts.PongInterval, opts.PingInterval),
		server.WithStartID(opts.StartID),
		server.WithBufferCapacity(opts.BufferCapacity),
		server.WithLogger(sugar),
	)
	srv.OnClientConnected = func(rec *server.ClientRecord) {
		sugar.Infow("client connected", "id", rec.ID, "name", rec.Name)
	}
	srv.OnClientDisconnected = func(rec *server.ClientRecord, timedOut bool) {
		sugar.Infow("client disconnected", "id", rec.ID, "name", rec.Name, "timed_out", timedOut)
	}

	addr, err := net.ResolveUDPAddr("udp", cmd.Addr)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", cmd.Addr, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sugar.Infow("listening", "addr", cmd.Addr)
	return srv.Listen(ctx, addr)
}
