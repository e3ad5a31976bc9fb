package main

import (
	"context"

	"gbemu/clip8/internal/audio"
	"gbemu/clip8/internal/chip8"
	"gbemu/clip8/internal/config"
	"gbemu/clip8/internal/statsview"
	"gbemu/clip8/internal/term"
	"gbemu/clip8/internal/window"

	"github.com/faiface/pixel/pixelgl"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
	"github.com/spf13/cobra"
)

const windowTitle = "CHIP-8 Emulator"

func newRunCommand() *cobra.Command {
	cfg := config.Default()

	cmd := &cobra.Command{
		Use:   "run [flags] <rom>",
		Short: "run a CHIP-8 program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.ROM = args[0]
			if cfg.Trace {
				cfg.Debug = true
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			// errors past this point are reported through the logger
			cmd.SilenceErrors = true
			logger := config.CreateLogger(cfg.Debug, cfg.Quiet)
			if err := run(app.Context(), logger, cfg); err != nil {
				logger.Error("Emulation failed", log.Err(err))
				return err
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.Backend, "backend", cfg.Backend, "display backend: window or term")
	flags.IntVar(&cfg.Scale, "scale", cfg.Scale, "window pixels per CHIP-8 pixel")
	flags.IntVar(&cfg.FPS, "fps", cfg.FPS, "frames per second")
	flags.IntVar(&cfg.InstructionsPerFrame, "ipf", cfg.InstructionsPerFrame, "instructions executed per frame")
	flags.BoolVar(&cfg.ExitOnHalt, "exit-on-halt", cfg.ExitOnHalt, "quit as soon as the program halts")
	flags.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed, 0 seeds from the clock")
	flags.BoolVar(&cfg.Mute, "mute", cfg.Mute, "do not play the buzzer")
	flags.StringVar(&cfg.WavFile, "wav", cfg.WavFile, "record the buzzer to a WAV file, kept in memory until exit (about 40 MB per minute)")
	flags.BoolVar(&cfg.StatsView, "statsview", cfg.StatsView, "serve runtime statistics on "+statsview.Address)
	flags.BoolVar(&cfg.Trace, "trace", cfg.Trace, "log every executed instruction")
	flags.BoolVarP(&cfg.Debug, "debug", "d", cfg.Debug, "enable debug logging")
	flags.BoolVarP(&cfg.Quiet, "quiet", "q", cfg.Quiet, "only log errors")

	return cmd
}

func run(ctx context.Context, logger *log.Logger, cfg config.Config) error {
	cpu := chip8.New(cfg.MachineOptions()...)
	if err := cpu.LoadROMFile(cfg.ROM); err != nil {
		return err
	}
	logger.Info("ROM loaded", log.String("file", cfg.ROM))

	if cfg.StatsView {
		stop := statsview.Launch(logger)
		defer stop()
	}

	buzzer, closeAudio := openAudio(logger, cfg)
	defer closeAudio()

	if cfg.Backend == config.BackendTerminal {
		t, err := term.New()
		if err != nil {
			return err
		}
		defer t.Close()

		return chip8.NewDriver(logger, cpu, cfg.Driver(), t, t, buzzer).Run(ctx)
	}

	// pixelgl needs the main thread
	var runErr error
	pixelgl.Run(func() {
		win, err := window.New(windowTitle, cfg.Scale)
		if err != nil {
			runErr = err
			return
		}
		defer win.Destroy()

		runErr = chip8.NewDriver(logger, cpu, cfg.Driver(), win, win, buzzer).Run(ctx)
	})
	return runErr
}

// openAudio sets up the speaker and the WAV recorder as requested. A missing
// audio device is not fatal.
func openAudio(logger *log.Logger, cfg config.Config) (chip8.Buzzer, func()) {
	var buzzers audio.Multi
	var closers []func()

	if !cfg.Mute {
		sp, err := audio.NewSpeaker()
		if err != nil {
			logger.Warn("Audio disabled", log.Err(err))
		} else {
			buzzers = append(buzzers, sp)
			closers = append(closers, sp.Close)
		}
	}

	if cfg.WavFile != "" {
		rec := audio.NewRecorder(cfg.WavFile, cfg.FPS)
		buzzers = append(buzzers, rec)
		closers = append(closers, func() {
			if err := rec.Close(); err != nil {
				logger.Error("Writing audio recording failed", log.Err(err))
				return
			}
			logger.Info("Audio recorded", log.String("file", cfg.WavFile), log.Int("samples", rec.Samples()))
		})
	}

	return buzzers, func() {
		for _, c := range closers {
			c()
		}
	}
}
