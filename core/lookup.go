package core

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aiwolfdial/lol-spectator-server/model"
	"github.com/aiwolfdial/lol-spectator-server/service"
	"github.com/aiwolfdial/lol-spectator-server/util"
)

func RunLookup(config *model.Config, puuid string, out io.Writer) error {
	client := service.NewRiotClient(*config)
	region := model.RegionFromString(config.Riot.Region)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(config.Riot.RequestTimeout)*time.Second)
	defer cancel()

	game, err := client.CurrentGameByPUUID(ctx, region, puuid)
	if err != nil {
		return err
	}

	riotIDs := util.DeriveRiotIDs(game)
	fmt.Fprintln(out, util.FormatRiotIDs(riotIDs))
	return nil
}
