package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/UnendingLoop/ImageHandles/internal/imageproc"
	"github.com/UnendingLoop/ImageHandles/internal/registry"
	"github.com/wb-go/wbf/config"
)

func stringOr(cfg *config.Config, key, def string) string {
	if v := strings.TrimSpace(cfg.GetString(key)); v != "" {
		return v
	}
	return def
}

func intOr(cfg *config.Config, key string, def int) (int, error) {
	raw := strings.TrimSpace(cfg.GetString(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, raw)
	}
	return v, nil
}

// registryOptions читает RESAMPLER, MAX_DIMENSION, JPEG_QUALITY, PNG_COMPRESSION
func registryOptions(cfg *config.Config) (registry.Options, error) {
	opts := registry.DefaultOptions()

	rs, err := imageproc.ResamplerFromName(cfg.GetString("RESAMPLER"))
	if err != nil {
		return opts, err
	}
	opts.Resampler = rs

	if opts.MaxDimension, err = intOr(cfg, "MAX_DIMENSION", opts.MaxDimension); err != nil {
		return opts, err
	}
	if opts.Encode.JPEGQuality, err = intOr(cfg, "JPEG_QUALITY", opts.Encode.JPEGQuality); err != nil {
		return opts, err
	}
	if opts.Encode.JPEGQuality < 1 || opts.Encode.JPEGQuality > 100 {
		return opts, fmt.Errorf("JPEG_QUALITY must be within 1..100, got %d", opts.Encode.JPEGQuality)
	}

	if opts.Encode.PNGCompression, err = imageproc.PNGCompressionFromName(cfg.GetString("PNG_COMPRESSION")); err != nil {
		return opts, err
	}

	return opts, nil
}
