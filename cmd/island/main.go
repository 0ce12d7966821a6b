// Command island opens a window and renders the island scene: heightmap
// terrain under a cubemap sky with an animated windmill.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"island-demo/internal/config"
	"island-demo/internal/logger"
)

// Process exit codes.
const (
	exitOK          = 0
	exitInitFailure = 1 // window or GL context
	exitAssetError  = 2 // shaders, textures, heightmap, skybox
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "JSON config file (defaults are used when empty)")
	debug := flag.Bool("debug", false, "verbose development logging")
	assetDir := flag.String("assets", "", "directory that relative asset paths are resolved against")
	flag.Parse()

	if err := logger.Init(*debug); err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		return exitInitFailure
	}
	defer logger.Sync()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			logger.Log.Error("config", zap.Error(err))
			return exitAssetError
		}
	}
	cfg.Resolve(config.Flags{AssetDir: *assetDir, Debug: *debug})
	if err := cfg.Validate(); err != nil {
		logger.Log.Error("config", zap.Error(err))
		return exitAssetError
	}

	app, code := NewApp(cfg)
	if code != exitOK {
		return code
	}
	defer app.Destroy()

	app.Run()
	return exitOK
}
