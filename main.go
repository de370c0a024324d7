package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sevlyar/go-daemon"
	log "github.com/sirupsen/logrus"
	altsrc "github.com/urfave/cli-altsrc/v3"
	yamlsrc "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"restage/internal/config"
	"restage/internal/copier"
	"restage/internal/ignore"
	"restage/internal/launcher"
	"restage/internal/proc"
	"restage/internal/utils"
)

// Set at build time: go build -ldflags "-X main.version=1.2.3"
var version = "dev"

func main() {
	var configPath string

	app := &cli.Command{
		Name:    "restage",
		Usage:   "install a staged update payload and relaunch the application",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to YAML config file",
				Sources:     cli.EnvVars("RESTAGE_CONFIG"),
				Value:       "restage.yaml",
				Destination: &configPath,
			},
			&cli.StringFlag{
				Name:    "ps",
				Usage:   "comma-separated process names to terminate before copying",
				Sources: cli.NewValueSourceChain(cli.EnvVar("RESTAGE_PS"), yamlsrc.YAML("ps", altsrc.NewStringPtrSourcer(&configPath))),
			},
			&cli.StringFlag{
				Name:    "input",
				Usage:   "directory holding the staged update payload",
				Sources: cli.NewValueSourceChain(cli.EnvVar("RESTAGE_INPUT"), yamlsrc.YAML("input", altsrc.NewStringPtrSourcer(&configPath))),
			},
			&cli.StringFlag{
				Name:    "output",
				Usage:   "application resource directory to install into",
				Sources: cli.NewValueSourceChain(cli.EnvVar("RESTAGE_OUTPUT"), yamlsrc.YAML("output", altsrc.NewStringPtrSourcer(&configPath))),
			},
			&cli.StringFlag{
				Name:    "app",
				Usage:   "application executable to relaunch after the copy",
				Sources: cli.NewValueSourceChain(cli.EnvVar("RESTAGE_APP"), yamlsrc.YAML("app", altsrc.NewStringPtrSourcer(&configPath))),
			},
			&cli.StringFlag{
				Name:    "log",
				Usage:   "log file path (default: restage.log alongside the updater)",
				Sources: cli.NewValueSourceChain(cli.EnvVar("RESTAGE_LOG"), yamlsrc.YAML("log", altsrc.NewStringPtrSourcer(&configPath))),
			},
			&cli.StringSliceFlag{
				Name:    "ignore",
				Usage:   "paths relative to --input to skip (repeat or comma-separated)",
				Sources: cli.NewValueSourceChain(cli.EnvVar("RESTAGE_IGNORE"), yamlsrc.YAML("ignore", altsrc.NewStringPtrSourcer(&configPath))),
			},
			&cli.DurationFlag{
				Name:    "kill-timeout",
				Usage:   "how long to wait for terminated processes to exit",
				Sources: cli.NewValueSourceChain(cli.EnvVar("RESTAGE_KILL_TIMEOUT"), yamlsrc.YAML("kill_timeout", altsrc.NewStringPtrSourcer(&configPath))),
				Value:   5 * time.Second,
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "logging level: debug, info, warn, error",
				Sources: cli.NewValueSourceChain(cli.EnvVar("RESTAGE_LOG_LEVEL"), yamlsrc.YAML("log_level", altsrc.NewStringPtrSourcer(&configPath))),
			},
			&cli.BoolFlag{
				Name:    "dry-run",
				Usage:   "log planned actions without terminating, copying, or relaunching",
				Sources: cli.EnvVars("RESTAGE_DRY_RUN"),
			},
			&cli.BoolFlag{
				Name:    "notify",
				Usage:   "send a desktop notification when the install finishes",
				Sources: cli.EnvVars("RESTAGE_NOTIFY"),
			},
			&cli.BoolFlag{
				Name:    "detach",
				Usage:   "re-fork so the application that spawned the updater can exit",
				Sources: cli.EnvVars("RESTAGE_DETACH"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := &config.Config{
				Processes:   config.SplitList(cmd.String("ps")),
				Input:       utils.ExpandTilde(cmd.String("input")),
				Output:      utils.ExpandTilde(cmd.String("output")),
				App:         utils.ExpandTilde(cmd.String("app")),
				LogFile:     utils.ExpandTilde(cmd.String("log")),
				Ignore:      config.MergeLists(cmd.StringSlice("ignore")),
				KillTimeout: cmd.Duration("kill-timeout"),
				LogLevel:    cmd.String("log-level"),
				DryRun:      cmd.Bool("dry-run"),
				Notify:      cmd.Bool("notify"),
				Detach:      cmd.Bool("detach"),
			}

			if err := cfg.Validate(); err != nil {
				log.Fatalf("Invalid arguments: %v", err)
			}

			ignores, err := ignore.New(cfg.Ignore)
			if err != nil {
				log.Fatalf("Invalid ignore list: %v", err)
			}

			// Re-fork before any work so the application that spawned us can
			// exit and release its file locks.
			if cfg.Detach {
				daemonCtx := &daemon.Context{
					WorkDir: "./",
					Umask:   027,
				}

				d, err := daemonCtx.Reborn()
				if err != nil {
					log.Warnf("Detach not available on this platform, continuing in foreground: %v", err)
				} else if d != nil {
					return nil // Parent process exits
				} else {
					defer daemonCtx.Release()
				}
			}

			setupLogging(cfg)

			log.Infof("restage %s started", version)
			log.Infof("App path: %s", cfg.App)
			log.Infof("Process name(s): %s", strings.Join(cfg.Processes, ", "))
			log.Infof("Input dir: %s", cfg.Input)
			log.Infof("Output dir: %s", cfg.Output)
			if !ignores.Empty() {
				log.Infof("Ignore list: %v", ignores.Patterns())
			}

			if cfg.DryRun {
				log.Info("[dry run] Skipping process termination")
			} else {
				proc.Kill(cfg.Processes, cfg.KillTimeout)
			}

			cp := copier.Copier{Ignore: ignores, DryRun: cfg.DryRun}
			stats, err := cp.Run(cfg.Input, cfg.Output)
			if err != nil {
				utils.SendNotification(cfg.Notify, "Update failed", fmt.Sprintf("Could not install update: %v", err))
				log.Fatalf("File copy failed: %v", err)
			}
			log.Infof("File copy completed: %d copied, %d ignored, %d failed", stats.Copied, stats.Ignored, stats.Failed)

			if cfg.DryRun {
				log.Info("[dry run] Skipping relaunch")
				return nil
			}

			log.Info("Restarting main app...")
			if err := launcher.Launch(cfg.App); err != nil {
				utils.SendNotification(cfg.Notify, "Update installed", "The update was installed, but the application could not be restarted")
				log.Fatalf("Failed to relaunch application: %v", err)
			}

			utils.SendNotification(cfg.Notify, "Update installed", "The application was updated and restarted")
			log.Info("Updater finished")
			return nil
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

// setupLogging applies the configured level and routes output to stdout and
// the log file. An unwritable log file downgrades to stdout-only logging
// rather than aborting the install.
func setupLogging(cfg *config.Config) {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	switch cfg.LogLevel {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "info":
		log.SetLevel(log.InfoLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	case "error":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}

	path := cfg.LogFile
	if path == "" {
		if exe, err := os.Executable(); err == nil {
			path = filepath.Join(filepath.Dir(exe), "restage.log")
		} else {
			path = "restage.log"
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		log.Warnf("Cannot open log file %s, logging to stdout only: %v", path, err)
		return
	}
	log.SetOutput(io.MultiWriter(os.Stdout, f))
}
