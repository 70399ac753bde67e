// Package cli wires the cobra command tree for netdash.
package cli

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/renaudg/netdash/internal/config"
	"github.com/renaudg/netdash/internal/dashboard"
	"github.com/renaudg/netdash/internal/logger"
	"github.com/renaudg/netdash/internal/netstat"
	"github.com/renaudg/netdash/internal/nm"
	"github.com/renaudg/netdash/internal/notify"
)

var (
	flagConfig   string
	flagInterval time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "netdash",
	Short: "Live network throughput dashboard with VPN and Wi-Fi control",
	Long: `netdash is a terminal dashboard showing live per-interface throughput
with browsing and toggling of NetworkManager VPN tunnels and Wi-Fi networks.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "path to config file")
	rootCmd.Flags().DurationVarP(&flagInterval, "interval", "i", 0, "metrics refresh interval (overrides config)")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runDashboard builds the collaborators and runs the Bubble Tea program.
func runDashboard() error {
	path, err := config.Find(flagConfig)
	if err != nil {
		return err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if flagInterval > 0 {
		cfg.TickInterval = flagInterval
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	log := logger.Default()
	runner := nm.NewExecRunner()
	client := nm.NewClient(runner, logger.NewEnvLogger("[nm]"))
	kernel := netstat.NewKernelSource()

	model := dashboard.NewModel(cfg, dashboard.Sources{
		Counters:  kernel,
		Addresses: kernel,
		Directory: client,
		Status:    client,
		Actions:   client,
		Notifier:  notify.NewDesktopNotifier(runner, logger.NewEnvLogger("[notify]"), cfg.Notifications),
	}, log)

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
