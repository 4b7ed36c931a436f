package mockup

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/velvetcrumb/velvetcrumb-backend/internal/catalog"
	"github.com/velvetcrumb/velvetcrumb-backend/pkg/config"
	pkgerrors "github.com/velvetcrumb/velvetcrumb-backend/pkg/errors"
	"github.com/velvetcrumb/velvetcrumb-backend/pkg/gemini"
	"github.com/velvetcrumb/velvetcrumb-backend/pkg/logger"
	"github.com/velvetcrumb/velvetcrumb-backend/pkg/types"
)

// Preview is a generated mockup rendered as an inline data URL.
type Preview struct {
	MockupURL string `json:"mockup_url"`
}

// ImageGenerator is the generation API surface the service needs.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, req gemini.GenerateImageRequest) (*gemini.GeneratedImage, error)
}

// Service turns a configured cake into an AI preview image.
type Service interface {
	Generate(ctx context.Context, item types.CakeItemSpec) (*Preview, error)
}

type service struct {
	generator ImageGenerator
	catalog   catalog.Service
	cfg       config.WizardConfig
	logg      *logger.Logger
}

// NewService builds the mockup service. A nil generator means the feature is
// unconfigured; every request then degrades to no preview.
func NewService(generator ImageGenerator, catalogSvc catalog.Service, cfg config.WizardConfig, logg *logger.Logger) (Service, error) {
	if catalogSvc == nil {
		return nil, fmt.Errorf("catalog service is required")
	}
	return &service{generator: generator, catalog: catalogSvc, cfg: cfg, logg: logg}, nil
}

// Generate requests one preview image. Invalid customer input is rejected,
// but generation failures of any kind degrade to (nil, nil): the storefront
// shows "no preview available" and the order flow carries on.
func (s *service) Generate(ctx context.Context, item types.CakeItemSpec) (*Preview, error) {
	inline, err := s.inlineImage(item.Inspiration)
	if err != nil {
		return nil, err
	}

	if s.generator == nil {
		if s.logg != nil {
			s.logg.Warn(ctx, "mockup generation skipped, no generator configured")
		}
		return nil, nil
	}

	cat, _ := s.catalog.Catalog(ctx)
	image, err := s.generator.GenerateImage(ctx, gemini.GenerateImageRequest{
		Prompt:      BuildPrompt(item, cat),
		InlineImage: inline,
	})
	if err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "mockup generation failed", err)
		}
		return nil, nil
	}
	if image == nil {
		return nil, nil
	}

	return &Preview{MockupURL: image.DataURL()}, nil
}

// inlineImage validates the optional inspiration photo: decodable base64,
// within the size cap, and an actual image per content sniffing.
func (s *service) inlineImage(inspiration *types.InspirationImage) (*gemini.InlineImage, error) {
	if inspiration == nil || strings.TrimSpace(inspiration.Data) == "" {
		return nil, nil
	}

	raw, err := base64.StdEncoding.DecodeString(inspiration.Data)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid inspiration image").
			WithDetails(map[string]string{"inspiration.data": "image must be base64 encoded"})
	}
	if s.cfg.MaxImageBytes > 0 && len(raw) > s.cfg.MaxImageBytes {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid inspiration image").
			WithDetails(map[string]string{
				"inspiration.data": fmt.Sprintf("image must be at most %d bytes", s.cfg.MaxImageBytes),
			})
	}

	detected := mimetype.Detect(raw)
	if !strings.HasPrefix(detected.String(), "image/") {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid inspiration image").
			WithDetails(map[string]string{"inspiration.mime_type": "file is not an image"})
	}

	return &gemini.InlineImage{
		MIMEType: detected.String(),
		Data:     inspiration.Data,
	}, nil
}
