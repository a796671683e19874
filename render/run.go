package render

import (
	"context"
	"fmt"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"bookr/book"
	"bookr/state"
)

// Run is "build" command action: loads the book from BOOK_ROOT and renders
// it into DESTINATION.
func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("build")

	paths, err := env.ResolvePaths(cmd.Args().Get(0), cmd.Args().Get(1))
	if err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	log.Info("Processing starting", zap.String("book", paths.Root), zap.String("destination", paths.Destination))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	b, err := book.LoadDir(paths.Source, log)
	if err != nil {
		return fmt.Errorf("unable to load book from %s: %w", paths.Source, err)
	}
	if env.Rpt != nil {
		env.Rpt.StoreData("book/structure.txt", []byte(b.String()))
	}

	rc := &RenderContext{
		Root:          paths.Root,
		Destination:   paths.Destination,
		Config:        env.Cfg,
		Book:          b,
		LiveReloadURL: env.LiveReloadURL,
	}
	if err := NewRenderer(log, env.Rpt).Render(ctx, rc); err != nil {
		return fmt.Errorf("unable to render book: %w", err)
	}

	if err := env.Rpt.StoreCopy("output", paths.Destination); err != nil {
		log.Warn("Unable to put rendered book into debug report", zap.Error(err))
	}
	return nil
}
