package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ericli5683/food-recipes/internal/models"
)

type stubFinder struct {
	recipes []models.Recipe
	err     error
	queries []string
}

func (s *stubFinder) FindRecipes(ctx context.Context, query string) ([]models.Recipe, error) {
	s.queries = append(s.queries, query)
	return s.recipes, s.err
}

type stubDiscoverer struct {
	recipes []OnlineRecipe
	err     error
	queries []string
}

func (s *stubDiscoverer) Discover(ctx context.Context, query string) ([]OnlineRecipe, error) {
	s.queries = append(s.queries, query)
	return s.recipes, s.err
}

type stubDetector struct {
	label string
	err   error
}

func (s *stubDetector) DetectDishName(ctx context.Context, image []byte, mimeType string) (string, error) {
	return s.label, s.err
}

type stubSaver struct {
	url   string
	err   error
	calls int
}

func (s *stubSaver) SaveImage(ctx context.Context, data []byte, mimeType string) (string, error) {
	s.calls++
	return s.url, s.err
}

func newTestSearchService(finder *stubFinder, online *stubDiscoverer, detector *stubDetector, saver *stubSaver) *SearchService {
	return NewSearchService(finder, online, detector, saver, zap.NewNop())
}

func TestSearch(t *testing.T) {
	localRecipe := models.Recipe{Title: "Lasagne"}
	onlineRecipe := OnlineRecipe{ID: "1", Title: "Ramen"}

	t.Run("blank query lists local recipes only", func(t *testing.T) {
		finder := &stubFinder{recipes: []models.Recipe{localRecipe}}
		online := &stubDiscoverer{}
		svc := newTestSearchService(finder, online, &stubDetector{}, &stubSaver{})

		result, err := svc.Search(context.Background(), "   ")
		require.NoError(t, err)

		assert.Equal(t, "all dishes", result.Query)
		assert.Equal(t, []models.Recipe{localRecipe}, result.LocalRecipes)
		assert.Empty(t, result.OnlineRecipes)
		assert.Empty(t, online.queries)
	})

	t.Run("non-blank query fans out to both sides", func(t *testing.T) {
		finder := &stubFinder{recipes: []models.Recipe{localRecipe}}
		online := &stubDiscoverer{recipes: []OnlineRecipe{onlineRecipe}}
		svc := newTestSearchService(finder, online, &stubDetector{}, &stubSaver{})

		result, err := svc.Search(context.Background(), " ramen ")
		require.NoError(t, err)

		assert.Equal(t, "ramen", result.Query)
		assert.Equal(t, []models.Recipe{localRecipe}, result.LocalRecipes)
		assert.Equal(t, []OnlineRecipe{onlineRecipe}, result.OnlineRecipes)
		assert.Equal(t, []string{"ramen"}, finder.queries)
		assert.Equal(t, []string{"ramen"}, online.queries)
	})

	t.Run("local failure fails the whole search", func(t *testing.T) {
		finder := &stubFinder{err: errors.New("db down")}
		online := &stubDiscoverer{recipes: []OnlineRecipe{onlineRecipe}}
		svc := newTestSearchService(finder, online, &stubDetector{}, &stubSaver{})

		_, err := svc.Search(context.Background(), "ramen")
		require.Error(t, err)

		var serr *SearchError
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, SideLocal, serr.Side)
	})

	t.Run("online failure fails the whole search", func(t *testing.T) {
		finder := &stubFinder{recipes: []models.Recipe{localRecipe}}
		online := &stubDiscoverer{err: ErrProviderUnavailable}
		svc := newTestSearchService(finder, online, &stubDetector{}, &stubSaver{})

		_, err := svc.Search(context.Background(), "ramen")
		require.Error(t, err)

		var serr *SearchError
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, SideOnline, serr.Side)
		assert.ErrorIs(t, err, ErrProviderUnavailable)
	})
}

func TestDiscoverFromImage(t *testing.T) {
	image := []byte("fake image bytes")
	onlineRecipe := OnlineRecipe{ID: "1", Title: "Ramen"}

	t.Run("happy path", func(t *testing.T) {
		online := &stubDiscoverer{recipes: []OnlineRecipe{onlineRecipe}}
		saver := &stubSaver{url: "https://bucket.s3.amazonaws.com/uploads/x.jpg"}
		svc := newTestSearchService(&stubFinder{}, online, &stubDetector{label: "ramen"}, saver)

		result, err := svc.DiscoverFromImage(context.Background(), image, "image/jpeg")
		require.NoError(t, err)

		assert.Equal(t, "ramen", result.DetectedDish)
		assert.Equal(t, saver.url, result.UploadedImageURL)
		assert.Equal(t, []OnlineRecipe{onlineRecipe}, result.Recipes)
		assert.Equal(t, []string{"ramen"}, online.queries)
	})

	t.Run("empty label fails before discovery", func(t *testing.T) {
		online := &stubDiscoverer{}
		svc := newTestSearchService(&stubFinder{}, online, &stubDetector{label: ""}, &stubSaver{url: "u"})

		_, err := svc.DiscoverFromImage(context.Background(), image, "image/jpeg")
		assert.ErrorIs(t, err, ErrDishNotIdentified)
		assert.Empty(t, online.queries)
	})

	t.Run("unsupported media rejected before classification", func(t *testing.T) {
		saver := &stubSaver{err: ErrUnsupportedMedia}
		svc := newTestSearchService(&stubFinder{}, &stubDiscoverer{}, &stubDetector{label: "ramen"}, saver)

		_, err := svc.DiscoverFromImage(context.Background(), image, "text/plain")
		assert.ErrorIs(t, err, ErrUnsupportedMedia)
	})

	t.Run("vision configuration error propagates", func(t *testing.T) {
		svc := newTestSearchService(&stubFinder{}, &stubDiscoverer{}, &stubDetector{err: ErrVisionNotConfigured}, &stubSaver{url: "u"})

		_, err := svc.DiscoverFromImage(context.Background(), image, "image/jpeg")
		assert.ErrorIs(t, err, ErrVisionNotConfigured)
	})

	t.Run("provider failure propagates", func(t *testing.T) {
		online := &stubDiscoverer{err: ErrProviderUnavailable}
		svc := newTestSearchService(&stubFinder{}, online, &stubDetector{label: "ramen"}, &stubSaver{url: "u"})

		_, err := svc.DiscoverFromImage(context.Background(), image, "image/jpeg")
		assert.ErrorIs(t, err, ErrProviderUnavailable)
	})
}
