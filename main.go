package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"boxLayout/config"
	"boxLayout/layout"
	"boxLayout/models"
	"boxLayout/server"
	"boxLayout/utils"
)

// ====== 命令行 ======

type cli struct {
	logger     *log.Logger
	configPath string
	verbose    bool
}

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

func (c *cli) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "boxlayout",
		Short:        "Place, drag and auto-arrange boxes inside a container",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if c.verbose {
				c.logger.SetLevel(log.DebugLevel)
			}
		},
	}
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "boxlayout.toml", "config file")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.serveCommand())
	root.AddCommand(c.placeCommand())
	return root
}

func (c *cli) serveCommand() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP editor API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			return server.New(cfg, c.logger).Run(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}

// placeCommand 读取表格中的箱子，自动摆放后输出导出数据
func (c *cli) placeCommand() *cobra.Command {
	var (
		column string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "place <boxes.xlsx>",
		Short: "Auto-place boxes from a spreadsheet and print the payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			if column == "" {
				column = cfg.ImportColumn
			}
			boxes, err := c.place(args[0], column, cfg)
			if err != nil {
				return err
			}
			if out != "" {
				if err := writeExcelFile(out, boxes); err != nil {
					return err
				}
				c.logger.Info("layout written", "file", out)
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(layout.ToPayload(boxes))
		},
	}
	cmd.Flags().StringVar(&column, "column", "", "header of the size column")
	cmd.Flags().StringVarP(&out, "out", "o", "", "also write the layout to this xlsx file")
	return cmd
}

func (c *cli) place(path, column string, cfg config.Config) ([]models.Box, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	specs, err := utils.ReadExcel(f, column, cfg.Scale)
	if err != nil {
		return nil, err
	}

	opts := cfg.Layout
	opts.AutoPlace = true
	editor := layout.NewEditor(cfg.Container, cfg.Box, opts)
	for _, spec := range specs {
		if _, err := editor.AddBoxSized(spec.Size, spec.Rotated); err != nil {
			c.logger.Warn("box not placed", "remark", spec.Remark, "err", err)
		}
	}
	c.logger.Info("placement done", "rows", len(specs), "placed", len(editor.Boxes()))
	return editor.Boxes(), nil
}

func writeExcelFile(path string, boxes []models.Box) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := utils.WriteExcel(f, boxes); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	c := &cli{logger: newLogger(os.Stderr, log.InfoLevel)}
	if err := c.rootCommand().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
