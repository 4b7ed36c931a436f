package mockup

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velvetcrumb/velvetcrumb-backend/internal/catalog"
	"github.com/velvetcrumb/velvetcrumb-backend/pkg/config"
	pkgerrors "github.com/velvetcrumb/velvetcrumb-backend/pkg/errors"
	"github.com/velvetcrumb/velvetcrumb-backend/pkg/gemini"
	"github.com/velvetcrumb/velvetcrumb-backend/pkg/types"
)

// pngBytes is a minimal valid PNG header, enough for content sniffing.
var pngBytes = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

type stubGenerator struct {
	image   *gemini.GeneratedImage
	err     error
	lastReq gemini.GenerateImageRequest
	calls   int
}

func (g *stubGenerator) GenerateImage(_ context.Context, req gemini.GenerateImageRequest) (*gemini.GeneratedImage, error) {
	g.calls++
	g.lastReq = req
	return g.image, g.err
}

type stubCatalog struct{}

func (stubCatalog) Catalog(context.Context) (types.Catalog, string) {
	return catalog.DefaultCatalog(), catalog.SourceDefault
}

func (stubCatalog) Replace(context.Context, types.Catalog) error { return nil }

func newTestService(t *testing.T, generator ImageGenerator) Service {
	t.Helper()
	svc, err := NewService(generator, stubCatalog{}, config.WizardConfig{MaxImageBytes: 1024}, nil)
	require.NoError(t, err)
	return svc
}

func testItem() types.CakeItemSpec {
	return types.CakeItemSpec{
		CakeTypeID: "birthday",
		SizeID:     "medium",
		Flavor:     "Chocolate",
		Filling:    "Salted Caramel",
		Frosting:   "Fondant",
		Message:    "Happy 30th!",
	}
}

func TestGenerateReturnsPreview(t *testing.T) {
	generator := &stubGenerator{image: &gemini.GeneratedImage{MIMEType: "image/png", Data: "abc123"}}
	svc := newTestService(t, generator)

	preview, err := svc.Generate(context.Background(), testItem())
	require.NoError(t, err)
	require.NotNil(t, preview)
	assert.Equal(t, "data:image/png;base64,abc123", preview.MockupURL)

	prompt := generator.lastReq.Prompt
	assert.Contains(t, prompt, "birthday cake")
	assert.Contains(t, prompt, `8" round`)
	assert.Contains(t, prompt, "Chocolate sponge")
	assert.Contains(t, prompt, "fondant")
	assert.Contains(t, prompt, `"Happy 30th!"`)
}

func TestGenerateFailureDegradesToNoPreview(t *testing.T) {
	generator := &stubGenerator{err: errors.New("api down")}
	svc := newTestService(t, generator)

	preview, err := svc.Generate(context.Background(), testItem())
	require.NoError(t, err)
	assert.Nil(t, preview)
	assert.Equal(t, 1, generator.calls)
}

func TestGenerateNoCandidateDegradesToNoPreview(t *testing.T) {
	generator := &stubGenerator{err: gemini.ErrNoImageCandidate}
	svc := newTestService(t, generator)

	preview, err := svc.Generate(context.Background(), testItem())
	require.NoError(t, err)
	assert.Nil(t, preview)
}

func TestGenerateUnconfigured(t *testing.T) {
	svc := newTestService(t, nil)

	preview, err := svc.Generate(context.Background(), testItem())
	require.NoError(t, err)
	assert.Nil(t, preview)
}

func TestGenerateForwardsInspirationImage(t *testing.T) {
	generator := &stubGenerator{image: &gemini.GeneratedImage{MIMEType: "image/png", Data: "abc"}}
	svc := newTestService(t, generator)

	item := testItem()
	item.Inspiration = &types.InspirationImage{
		Data: base64.StdEncoding.EncodeToString(pngBytes),
	}

	_, err := svc.Generate(context.Background(), item)
	require.NoError(t, err)
	require.NotNil(t, generator.lastReq.InlineImage)
	assert.Equal(t, "image/png", generator.lastReq.InlineImage.MIMEType)
	assert.Contains(t, generator.lastReq.Prompt, "style inspiration")
}

func TestGenerateRejectsBadInspiration(t *testing.T) {
	generator := &stubGenerator{}
	svc := newTestService(t, generator)

	// not base64
	item := testItem()
	item.Inspiration = &types.InspirationImage{Data: "not-base64!!!"}
	_, err := svc.Generate(context.Background(), item)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	// too large
	item.Inspiration = &types.InspirationImage{
		Data: base64.StdEncoding.EncodeToString([]byte(strings.Repeat("x", 2048))),
	}
	_, err = svc.Generate(context.Background(), item)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	// not an image
	item.Inspiration = &types.InspirationImage{
		Data: base64.StdEncoding.EncodeToString([]byte("plain text content")),
	}
	_, err = svc.Generate(context.Background(), item)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	assert.Zero(t, generator.calls)
}
