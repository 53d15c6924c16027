package cmd

import (
	"context"

	gconfig "github.com/Laisky/go-config/v2"
	gcmd "github.com/Laisky/go-utils/v6/cmd"
	"github.com/Laisky/zap"
	"github.com/spf13/cobra"

	"github.com/video-club/video-club-api/internal/library/llm"
	"github.com/video-club/video-club-api/internal/library/tmdb"
	"github.com/video-club/video-club-api/internal/web"
	"github.com/video-club/video-club-api/internal/web/catalog/controller"
	"github.com/video-club/video-club-api/internal/web/catalog/dao"
	"github.com/video-club/video-club-api/internal/web/catalog/model"
	"github.com/video-club/video-club-api/internal/web/catalog/service"
	"github.com/video-club/video-club-api/library/log"
)

var apiCMD = &cobra.Command{
	Use:   "api",
	Short: "api",
	Long:  `catalog API service for the video club`,
	Args:  gcmd.NoExtraArgs,
	PreRun: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		if err := initialize(ctx, cmd); err != nil {
			log.Logger.Panic("init", zap.Error(err))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		model.Initialize(ctx)

		catalogDAO := dao.New(log.Logger.Named("catalog_dao"), model.CatalogDB)
		if err := catalogDAO.EnsureIndexes(ctx); err != nil {
			log.Logger.Panic("ensure indexes", zap.Error(err))
		}

		metadata := tmdb.New("",
			gconfig.Shared.GetString("settings.tmdb.api_key"), nil)
		extractor := llm.NewGemini("",
			gconfig.Shared.GetString("settings.gemini.api_key"), nil)

		svc := service.New(log.Logger.Named("catalog"),
			catalogDAO, metadata, extractor,
			gconfig.Shared.GetStringSlice("settings.locales"))
		ctl := controller.New(log.Logger.Named("catalog_ctl"), svc)

		web.RunServer(gconfig.Shared.GetString("listen"), ctl)
	},
}

func init() {
	rootCMD.AddCommand(apiCMD)
}
