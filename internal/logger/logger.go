package logger

import (
	"context"

	"go-erp/internal/config"
	"go-erp/internal/database"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Mongo     *database.MongodbDB `optional:"true"`
}

// NewLogger builds the process logger. With LOG_TO_DB and a Mongo connection,
// warnings that carry a tenant or user are also persisted as an audit trail.
func NewLogger(p Params) (*zap.Logger, error) {
	var zapConfig zap.Config
	if p.Config.Environment == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	// Important: Enable Caller to get Function Name
	zapConfig.EncoderConfig.FunctionKey = "func"

	baseLogger, err := zapConfig.Build()
	if err != nil {
		return nil, err
	}

	if !p.Config.LogToDB || p.Mongo == nil {
		return baseLogger, nil
	}

	dbWriter := NewDBLogWriter(p.Mongo.DB.Collection(authzLogCollection), p.Config.AppId)
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			dbWriter.Close()
			return nil
		},
	})

	finalCore := NewDBCore(baseLogger.Core(), dbWriter)
	return zap.New(finalCore, zap.AddCaller()), nil
}
