package commands

import (
	"context"
	"fmt"

	"github.com/JeremyMcCormick/genaialogy/internal/instance"
	"github.com/JeremyMcCormick/genaialogy/internal/printer"
	"github.com/JeremyMcCormick/genaialogy/pkg/archive"
)

// openArchive connects to the configured Redis server and verifies it is
// reachable.
func openArchive(ctx context.Context) (*archive.Client, error) {
	url, name := cfg.Archive.RedisURL, cfg.Archive.Instance

	client, err := archive.NewClientFromURL(url, name, archive.WithLogger(logger))
	if err != nil {
		return nil, printer.Error(
			"invalid archive settings",
			err.Error(),
			[]string{"Redis URLs look like redis://localhost:6379/0"},
		)
	}

	if err := client.Ping(ctx); err != nil {
		client.Close()
		return nil, printer.ErrorWithContext(
			"Redis connection failed",
			fmt.Sprintf("Could not connect to Redis at %s", url),
			map[string]string{"Instance": name},
			[]string{
				fmt.Sprintf("Start a local server:\n  docker run -d -p %d:6379 redis:7", instance.DefaultRedisPort),
				fmt.Sprintf("Point at another server:\n  export %s=redis://host:6379", instance.RedisURLEnv),
			},
		)
	}
	return client, nil
}
