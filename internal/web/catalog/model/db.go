package model

import (
	"context"

	gconfig "github.com/Laisky/go-config/v2"
	"github.com/Laisky/zap"

	"github.com/video-club/video-club-api/library/db/mongo"
	"github.com/video-club/video-club-api/library/log"
)

var (
	CatalogDB mongo.DB
)

func Initialize(ctx context.Context) {
	var err error
	if CatalogDB, err = mongo.NewDB(ctx,
		mongo.DialInfo{
			Addr:   gconfig.Shared.GetString("settings.db.videoclub.addr"),
			DBName: gconfig.Shared.GetString("settings.db.videoclub.db"),
			User:   gconfig.Shared.GetString("settings.db.videoclub.user"),
			Pwd:    gconfig.Shared.GetString("settings.db.videoclub.pwd"),
		},
	); err != nil {
		log.Logger.Panic("connect to videoclub db", zap.Error(err))
	}
}
