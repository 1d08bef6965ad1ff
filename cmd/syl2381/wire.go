//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"
)

func initTool(path string) (*Tool, func(), error) {
	wire.Build(
		ProvideConfig,
		ProvideLogger,
		ProvideDevice,
		wire.Struct(new(Tool), "*"),
	)
	return nil, nil, nil // wire will generate the result
}

func initBridge(path string) (*Bridge, func(), error) {
	wire.Build(
		ProvideConfig,
		ProvideLogger,
		ProvidePoller,
		ProvideRecorder,
		wire.Struct(new(Bridge), "*"),
	)
	return nil, nil, nil // wire will generate the result
}
