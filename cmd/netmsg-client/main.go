// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"code.hybscloud.com/netmsg/client"
	"code.hybscloud.com/netmsg/config"
)

// Cmd is the command line arguments.
type Cmd struct {
	ConfigPath string
	Host       string
	Port       int
	Name       string
}

var cmd Cmd

var rootCmd = &cobra.Command{
	Use:   "netmsg-client",
	Short: "UDP message-oriented client",
	RunE: func(_ *cobra.Command, _ []string) error {
		return run(cmd)
	},
}

func init() {
	rootCmd.Flags().StringVarP(&cmd.ConfigPath, "config", "c", "", "Path to an optional config file")
	rootCmd.Flags().StringVar(&cmd.Host, "host", "127.0.0.1", "server host")
	rootCmd.Flags().IntVarP(&cmd.Port, "port", "p", 9500, "server port")
	rootCmd.Flags().StringVarP(&cmd.Name, "name", "n", "", "client name sent during handshake")
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
	if cmd.Name != "" {
		opts.Name = cmd.Name
	}

	c := client.New(
		client.WithName(opts.Name),
		client.WithBufferCapacity(opts.BufferCapacity),
		client.WithLogger(sugar),
	)
	c.OnConnected = func() { sugar.Infow("connected", "id", c.ID()) }
	c.OnDisconnected = func(local bool) { sugar.Infow("disconnected", "local", local) }

	if err := c.Connect(cmd.Host, cmd.Port); err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	if err := c.SendConnectionInformation(); err != nil {
		return fmt.Errorf("handshake: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		_ = c.Listen(ctx)
	}()

	sugar.Infow("connected to server, press Ctrl+C to exit", "host", cmd.Host, "port", cmd.Port)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
		}
		stop()
	}()
	<-ctx.Done()
	return c.Disconnect()
}
