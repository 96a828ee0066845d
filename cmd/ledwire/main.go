package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/DerLukas15/ledwire"
	"github.com/DerLukas15/ledwire/internal/config"
	"github.com/DerLukas15/ledwire/internal/preview"
	"github.com/DerLukas15/ledwire/internal/rig"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to config.yaml (default: one simulated WS2812 strip)")
		platform   = flag.String("platform", "", "override platform: sim | rpi | cdev | periph")
		fps        = flag.Int("fps", 30, "animation frames per second")
		brightness = flag.Int("brightness", -1, "override global brightness 0..255")
		frames     = flag.Int("frames", 0, "stop after this many frames, 0 runs until interrupted")
		show       = flag.Bool("preview", true, "draw the simulated wire in the terminal (sim only)")
		width      = flag.Int("width", 60, "pixels per preview row")
		writeCfg   = flag.String("write-config", "", "write the effective config to this path and exit")
		debug      = flag.Bool("debug", false, "debug logging")
	)
	flag.Parse()

	// ---- Logging ----
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	ledwire.SetLogger(log.Logger)

	// ---- Config ----
	cfg := config.Default()
	if *configPath != "" {
		c, err := config.Load(*configPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", *configPath).Msg("config load failed")
		}
		cfg = c
	}
	if *platform != "" {
		cfg.Platform = *platform
	}
	if *brightness >= 0 && *brightness <= 255 {
		cfg.Brightness = uint8(*brightness)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}
	if *writeCfg != "" {
		if err := config.Save(*writeCfg, cfg); err != nil {
			log.Fatal().Err(err).Msg("config save failed")
		}
		log.Info().Str("path", *writeCfg).Msg("config written")
		return
	}

	// ---- Strips ----
	r, err := rig.Build(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("platform", cfg.Platform).Msg("setup failed")
	}
	defer func() {
		if err := r.Close(); err != nil {
			log.Error().Err(err).Msg("cleanup failed")
		}
	}()
	log.Info().Str("platform", r.Platform.Name()).Int("strips", r.Registry.Count()).Uint8("brightness", r.Registry.Brightness()).Msg("running")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	if *fps <= 0 {
		*fps = 30
	}
	ticker := time.NewTicker(time.Second / time.Duration(*fps))
	defer ticker.Stop()

	drawWire := *show && r.Platform.Name() == config.PlatformSim
	var hue float64
	for n := 0; *frames == 0 || n < *frames; n++ {
		select {
		case s := <-sig:
			log.Info().Str("signal", s.String()).Msg("stopping")
			return
		case <-ticker.C:
		}
		hue = rainbow(r, hue)
		r.Registry.Show()
		if drawWire {
			draw(r, *width)
		} else {
			r.Discard()
		}
		if n%(*fps*5) == 0 {
			log.Debug().Uint16("fps", r.Registry.FPS()).Int("frame", n).Msg("frame")
		}
	}
}

//rainbow fills every strip with a rainbow starting at hue and returns the hue of the next frame.
func rainbow(r *rig.Rig, hue float64) float64 {
	for _, s := range r.Strips {
		n := len(s.Leds)
		for i := range s.Leds {
			c := colorful.Hsv(math.Mod(hue+360*float64(i)/float64(n), 360), 1, 1)
			red, green, blue := c.RGB255()
			s.Leds[i] = ledwire.RGB{R: red, G: green, B: blue}
		}
	}
	hue += 3
	if hue >= 360 {
		hue -= 360
	}
	return hue
}

//draw prints what reached the simulated wire of every strip.
func draw(r *rig.Rig, width int) {
	fmt.Print("\033[H\033[2J")
	for _, s := range r.Strips {
		lanes := r.Wire(s)
		if lanes == nil {
			fmt.Println(preview.Row(s.Name, nil, width))
			continue
		}
		fmt.Println(preview.Frame(s.Name, lanes, width))
	}
}
