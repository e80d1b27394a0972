package service

import (
	"context"
	"testing"

	"agentclone-be/internal/apperror"
	"agentclone-be/internal/dto"
	"agentclone-be/internal/pkg/logger"
	filerepo "agentclone-be/internal/repository/file"
	"agentclone-be/internal/tools"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPersonaService(t *testing.T, provider *scriptedProvider) IPersonaService {
	t.Helper()

	registry := tools.NewRegistry()
	registry.Register(tools.NewRetrieveDocumentsTool(&stubIndexProvider{}, 2))

	repo := filerepo.NewPersonaRepository(t.TempDir())
	return NewPersonaService(repo, registry, provider, logger.NewNopLogger())
}

func TestPersonaCreateKeepsProvidedDescription(t *testing.T) {
	provider := &scriptedProvider{}
	svc := newPersonaService(t, provider)

	resp, err := svc.Create(context.Background(), &dto.CreatePersonaRequest{
		Name:             "Marie",
		Type:             "Chemistry Tutor",
		SourceType:       "File",
		Source:           "lectures.pdf",
		ShortDescription: "Explains chemistry from first principles.",
	})
	require.NoError(t, err)

	assert.Equal(t, "Explains chemistry from first principles.", resp.ShortDescription)
	assert.Empty(t, provider.calls, "no model call when the description is provided")
}

func TestPersonaCreateGeneratesMissingDescription(t *testing.T) {
	provider := &scriptedProvider{script: []scriptStep{text("  An expert on 19th century naval history.  ")}}
	svc := newPersonaService(t, provider)

	resp, err := svc.Create(context.Background(), &dto.CreatePersonaRequest{
		Name:       "Horatio",
		Type:       "History Guide",
		SourceType: "File",
		Source:     "logbooks.pdf",
	})
	require.NoError(t, err)

	assert.Equal(t, "An expert on 19th century naval history.", resp.ShortDescription)

	require.Len(t, provider.calls, 1)
	call := provider.calls[0]
	assert.InDelta(t, 0.3, call.options.Temperature, 1e-9)
	assert.Equal(t, 80, call.options.MaxTokens)
	assert.Contains(t, call.messages[0].Content, "Horatio")
}

func TestPersonaCreateSurvivesDescriptionFailure(t *testing.T) {
	provider := &scriptedProvider{script: []scriptStep{{err: assert.AnError}}}
	svc := newPersonaService(t, provider)

	resp, err := svc.Create(context.Background(), &dto.CreatePersonaRequest{
		Name:       "Horatio",
		Type:       "History Guide",
		SourceType: "File",
		Source:     "logbooks.pdf",
	})
	require.NoError(t, err)
	assert.Empty(t, resp.ShortDescription)
}

func TestPersonaCreateRejectsUnknownTool(t *testing.T) {
	svc := newPersonaService(t, &scriptedProvider{})

	_, err := svc.Create(context.Background(), &dto.CreatePersonaRequest{
		Name:         "Ada",
		Type:         "Research Assistant",
		SourceType:   "File",
		Source:       "papers.pdf",
		ToolsEnabled: []string{"web_search"},
	})
	require.ErrorIs(t, err, apperror.ErrValidation)
}

func TestPersonaLifecycle(t *testing.T) {
	svc := newPersonaService(t, &scriptedProvider{})
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.CreatePersonaRequest{
		Name:             "Ada",
		Type:             "Research Assistant",
		SourceType:       "URL",
		Source:           "https://example.org/papers",
		ShortDescription: "Reads papers.",
		ToolsEnabled:     []string{tools.RetrieveDocumentsName},
		MemoryEnabled:    true,
	})
	require.NoError(t, err)

	shown, err := svc.Show(ctx, created.Id)
	require.NoError(t, err)
	assert.Equal(t, "Ada", shown.Name)
	assert.Equal(t, []string{tools.RetrieveDocumentsName}, shown.ToolsEnabled)
	assert.True(t, shown.MemoryEnabled)

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	require.NoError(t, svc.Delete(ctx, created.Id))

	_, err = svc.Show(ctx, created.Id)
	require.ErrorIs(t, err, apperror.ErrNotFound)

	err = svc.Delete(ctx, created.Id)
	require.ErrorIs(t, err, apperror.ErrNotFound)
}
