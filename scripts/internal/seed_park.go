package internal

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/flexprice/rvpark/internal/api/dto"
	"github.com/sourcegraph/conc/pool"
)

const defaultSpotCount = 10

// SeedRvPark creates a park with SPOT_COUNT available spots labelled
// <SPOT_PREFIX>-01, <SPOT_PREFIX>-02 and so on.
func SeedRvPark() error {
	name := os.Getenv("PARK_NAME")
	if name == "" {
		return fmt.Errorf("PARK_NAME is required")
	}

	count := defaultSpotCount
	if raw := os.Getenv("SPOT_COUNT"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return fmt.Errorf("invalid SPOT_COUNT %q", raw)
		}
		count = n
	}

	prefix := os.Getenv("SPOT_PREFIX")
	if prefix == "" {
		prefix = "A"
	}

	env, err := newScriptEnv()
	if err != nil {
		return err
	}
	defer env.db.Close()

	ctx := systemContext()
	park, err := env.rvPark.CreateRvPark(ctx, dto.CreateRvParkRequest{
		Name:    name,
		Address: os.Getenv("PARK_ADDRESS"),
	})
	if err != nil {
		return fmt.Errorf("failed to create rv park: %w", err)
	}
	env.log.Infow("created rv park", "id", park.ID, "name", park.Name)

	p := pool.New().WithErrors().WithContext(ctx).WithMaxGoroutines(4)
	for i := 1; i <= count; i++ {
		code := fmt.Sprintf("%s-%02d", prefix, i)
		p.Go(func(ctx context.Context) error {
			if _, err := env.spot.CreateSpot(ctx, dto.CreateSpotRequest{RvParkID: park.ID, Code: code}); err != nil {
				return fmt.Errorf("failed to create spot %s: %w", code, err)
			}
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return err
	}

	env.log.Infow("seeded spots", "rv_park_id", park.ID, "count", count)
	return nil
}
