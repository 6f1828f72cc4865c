package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/forgelab/dungeonforge/pkg/cache"
	"github.com/forgelab/dungeonforge/pkg/export"
	"github.com/forgelab/dungeonforge/pkg/layout"
	"github.com/forgelab/dungeonforge/pkg/observability"
	"github.com/forgelab/dungeonforge/pkg/preset"
)

// generateCommand creates the generate command, the main entry point for
// producing a layout.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		method     string
		width      int
		height     int
		seed       int64
		paramsJSON string
		presetName string
		presetFile string
		output     string
		redisAddr  string
		noCache    bool
		show       bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a dungeon layout and save it as JSON",
		Long: `Generate a dungeon layout and save it as JSON.

A generation run is fully determined by its method, grid size, seed, and
parameter overrides, so repeating the same invocation reproduces the same
layout. Results are cached under that fingerprint; use --no-cache to force
a fresh run.

Parameter overrides are sparse JSON applied on top of the method's defaults:

  dungeonforge generate -m physics_tinykep --params '{"num_rooms": 80}'

Named presets bundle a full configuration in a TOML file:

  dungeonforge generate --preset catacombs --preset-file presets.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)

			req := layout.Request{
				Method: method,
				Width:  width,
				Height: height,
				Seed:   seed,
			}
			if presetName != "" {
				file, err := preset.Load(presetFile)
				if err != nil {
					return err
				}
				req, err = file.Request(presetName)
				if err != nil {
					return err
				}
				// Explicit flags still win over the preset.
				if cmd.Flags().Changed("method") {
					req.Method = method
				}
				if cmd.Flags().Changed("width") {
					req.Width = width
				}
				if cmd.Flags().Changed("height") {
					req.Height = height
				}
				if cmd.Flags().Changed("seed") {
					req.Seed = seed
				}
			}
			if paramsJSON != "" {
				req.Overrides = json.RawMessage(paramsJSON)
			}
			if req.Width == 0 {
				req.Width = layout.DefaultWidth
			}
			if req.Height == 0 {
				req.Height = layout.DefaultHeight
			}

			res, cached, err := c.runGenerate(ctx, req, noCache, redisAddr)
			if err != nil {
				return err
			}

			if err := export.SaveJSON(output, res); err != nil {
				return err
			}

			printSuccess("Generated %s layout (%dx%d, seed %d)", req.Method, req.Width, req.Height, req.Seed)
			printStats(len(res.Rooms), len(res.Graph.Edges), cached)
			printFile(output)
			for _, w := range res.Metadata.Warnings {
				printWarning("%s", w)
			}
			if !res.Metadata.PhysicsConverged {
				printWarning("separation did not converge; rooms may still overlap")
			}

			if show {
				printNewline()
				fmt.Println(renderGrid(res.Grid))
			} else {
				printNextStep("Preview it", "dungeonforge preview "+output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&method, "method", "m", layout.MethodPhysics, "generation method (see 'dungeonforge methods')")
	cmd.Flags().IntVar(&width, "width", layout.DefaultWidth, "grid width in tiles")
	cmd.Flags().IntVar(&height, "height", layout.DefaultHeight, "grid height in tiles")
	cmd.Flags().Int64VarP(&seed, "seed", "s", 0, "random seed")
	cmd.Flags().StringVar(&paramsJSON, "params", "", "JSON parameter overrides for the method")
	cmd.Flags().StringVar(&presetName, "preset", "", "named preset to load")
	cmd.Flags().StringVar(&presetFile, "preset-file", "presets.toml", "TOML file holding presets")
	cmd.Flags().StringVarP(&output, "output", "o", "dungeon.json", "output file")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address for a shared cache (host:port)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&show, "show", false, "print the generated grid to the terminal")

	return cmd
}

// runGenerate executes one generation request through the cache. The second
// return reports whether the result came from the cache.
func (c *CLI) runGenerate(ctx context.Context, req layout.Request, noCache bool, redisAddr string) (*layout.Result, bool, error) {
	store, err := newCache(ctx, noCache, redisAddr)
	if err != nil {
		return nil, false, err
	}
	defer store.Close()

	logger := loggerFromContext(ctx)
	key := cache.ResultKey(req.Method, req.Width, req.Height, req.Seed, req.Overrides)

	if data, ok, err := store.Get(ctx, key); err == nil && ok {
		var res layout.Result
		if json.Unmarshal(data, &res) == nil {
			logger.Debug("cache hit", "key", key)
			observability.Cache().OnCacheHit(ctx, "layout")
			return &res, true, nil
		}
		// Corrupt entry; fall through and regenerate.
		_ = store.Delete(ctx, key)
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	p := newProgress(logger)
	observability.Generation().OnGenerateStart(ctx, req.Method, req.Seed)
	res, err := layout.Generate(req)
	observability.Generation().OnGenerateComplete(ctx, req.Method, resultRoomCount(res), time.Since(p.start), err)
	if err != nil {
		return nil, false, err
	}
	p.done(fmt.Sprintf("Generated %d rooms", len(res.Rooms)))

	if data, err := json.Marshal(res); err == nil {
		if err := store.Set(ctx, key, data, defaultCacheTTL); err != nil {
			logger.Debug("cache write failed", "err", err)
		}
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}
	return res, false, nil
}

func resultRoomCount(res *layout.Result) int {
	if res == nil {
		return 0
	}
	return len(res.Rooms)
}
