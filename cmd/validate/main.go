// Command validate は1枚の画像をターゲットに対して判定し、結果をJSONで出力します。
//
//	validate -target blue-door -image door.jpg [-color blue]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"treasure_backend/internal/app/di"
	"treasure_backend/internal/feature/target/domain/catalog"
	"treasure_backend/internal/feature/target/domain/entity"
	validationhandler "treasure_backend/internal/feature/validation/transport/handler"
	"treasure_backend/internal/platform/config"
	"treasure_backend/internal/platform/logger"
)

func main() {
	targetID := flag.String("target", "", "target id from the catalog")
	imagePath := flag.String("image", "", "path to the photo")
	color := flag.String("color", "", "override the expected color")
	flag.Parse()

	if *targetID == "" || *imagePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}
	logger.Setup(cfg.Log.Level, cfg.Server.Environment)

	cat, err := catalog.Load()
	if err != nil {
		logrus.Fatalf("failed to load target catalog: %v", err)
	}
	target, ok := cat.Target(*targetID)
	if !ok {
		logrus.Fatalf("unknown target %q", *targetID)
	}
	if c := strings.ToLower(strings.TrimSpace(*color)); c != "" {
		target.ExpectedColor = entity.ColorName(c)
	}

	image, err := os.ReadFile(*imagePath)
	if err != nil {
		logrus.Fatalf("failed to read image: %v", err)
	}

	ctx := context.Background()
	base, closeDescriber, err := di.NewBaseDescriber(ctx, cfg)
	if err != nil {
		logrus.Fatalf("failed to create describer: %v", err)
	}
	defer func() { _ = closeDescriber() }()

	// ワンショット実行のためキャッシュと利用台帳は使わない
	describer := di.WrapDescriber(base, cfg, nil, nil)
	verdict := di.NewValidationUsecase(describer, cat, cfg).Validate(ctx, image, target)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(validationhandler.ToResponse(target.ID, verdict)); err != nil {
		logrus.Fatalf("failed to write verdict: %v", err)
	}
}
