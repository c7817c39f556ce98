package commands

import (
	"fmt"

	"github.com/quillpad/quill-terminal/internal/cli"
	"github.com/quillpad/quill-terminal/internal/config"
	"github.com/quillpad/quill-terminal/internal/logger"
	"github.com/quillpad/quill-terminal/pkg/ai"
	"github.com/quillpad/quill-terminal/pkg/tui"
)

// RunTUI starts the interactive editor. A non-empty slug opens that post
// straight away instead of the post list.
func RunTUI(openSlug string) error {
	cfg := config.Load()

	log, err := logger.New(cfg.Log.File, cfg.Log.Debug)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", cfg.Log.File, err)
	}
	defer log.Sync()

	settings := cli.NewCommandContext().LoadSettingsWithDefault()

	client, err := ai.New(ai.Options{
		TextModel:  cfg.AI.TextModel,
		ImageModel: cfg.AI.ImageModel,
		CacheSize:  cfg.AI.CacheSize,
		KeyFunc:    config.APIKey,
		Logger:     logger.Module(log, "ai"),
	})
	if err != nil {
		return err
	}

	return tui.Run(tui.AppConfig{
		Settings: settings,
		AI:       client,
		Logger:   logger.Module(log, "tui"),
		OpenSlug: openSlug,
	})
}
